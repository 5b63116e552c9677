package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inkbar/formscan/internal/pipeline"
	"github.com/inkbar/formscan/internal/server"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an HTTP/websocket server that decodes uploaded form images",
	Long: `Run a server bound to one layout. Clients POST an image to
/scan (or stream one over the /ws/scan websocket) and receive the
decoded field values as JSON.

Examples:
  formscan serve --layout layout.yaml --port 8080
  formscan serve --layout layout.yaml --rate-limit-rpm 30`,
	SilenceUsage: true,
	RunE:         runServeCommand,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("layout", "", "path to the layout YAML file (required)")
	serveCmd.Flags().String("host", "", "host to bind (default: use config default)")
	serveCmd.Flags().Int("port", 0, "port to bind (0 = use config default)")
	serveCmd.Flags().String("cors-origin", "", "CORS allowed origin (default: use config default)")
	serveCmd.Flags().Int64("max-upload-mb", 0, "maximum upload size in MB (0 = use config default)")
	serveCmd.Flags().Int("timeout", 0, "request read/write timeout in seconds (0 = use config default)")
	serveCmd.Flags().Int("shutdown-timeout", 0, "graceful shutdown timeout in seconds (0 = use config default)")
	serveCmd.Flags().Uint8("dark-threshold", 0, "override the dark/light pixel threshold (0 = use config default)")
	serveCmd.Flags().Int("canonical-size", 0, "override the canonical rectified frame size (0 = use config default)")
	serveCmd.Flags().Bool("metrics", false, "expose Prometheus metrics at /metrics")

	serveCmd.Flags().Bool("rate-limit", false, "enable rate limiting")
	serveCmd.Flags().Int("rate-limit-rpm", 60, "maximum requests per minute per client")
	serveCmd.Flags().Int("rate-limit-rph", 1000, "maximum requests per hour per client")
	serveCmd.Flags().Int("rate-limit-rpd", 10000, "maximum requests per day per client")
	serveCmd.Flags().Int64("rate-limit-mb-per-day", 1024, "maximum upload data per client per day, in MB")

	_ = serveCmd.MarkFlagRequired("layout")
}

func runServeCommand(cmd *cobra.Command, _ []string) error {
	layoutPath, _ := cmd.Flags().GetString("layout")
	layout, err := loadLayoutFile(layoutPath)
	if err != nil {
		return err
	}

	appCfg := GetConfig()

	host, _ := cmd.Flags().GetString("host")
	if host == "" {
		host = appCfg.Server.Host
	}
	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = appCfg.Server.Port
	}
	corsOrigin, _ := cmd.Flags().GetString("cors-origin")
	if corsOrigin == "" {
		corsOrigin = appCfg.Server.CORSOrigin
	}
	maxUploadMB, _ := cmd.Flags().GetInt64("max-upload-mb")
	if maxUploadMB == 0 {
		maxUploadMB = int64(appCfg.Server.MaxUploadMB)
	}
	timeoutSec, _ := cmd.Flags().GetInt("timeout")
	if timeoutSec == 0 {
		timeoutSec = appCfg.Server.TimeoutSec
	}
	shutdownTimeout, _ := cmd.Flags().GetInt("shutdown-timeout")
	if shutdownTimeout == 0 {
		shutdownTimeout = appCfg.Server.ShutdownTimeout
	}
	darkThreshold, _ := cmd.Flags().GetUint8("dark-threshold")
	if darkThreshold == 0 {
		darkThreshold = appCfg.Scan.DarkThreshold
	}
	canonicalSize, _ := cmd.Flags().GetInt("canonical-size")
	if canonicalSize == 0 {
		canonicalSize = appCfg.Scan.CanonicalSize
	}
	metricsEnabled, _ := cmd.Flags().GetBool("metrics")
	if !metricsEnabled {
		metricsEnabled = appCfg.Server.MetricsEnabled
	}

	rateLimitEnabled, _ := cmd.Flags().GetBool("rate-limit")
	rpm, _ := cmd.Flags().GetInt("rate-limit-rpm")
	rph, _ := cmd.Flags().GetInt("rate-limit-rph")
	rpd, _ := cmd.Flags().GetInt("rate-limit-rpd")
	mbPerDay, _ := cmd.Flags().GetInt64("rate-limit-mb-per-day")

	srv, err := server.NewServer(server.Config{
		Layout:         layout,
		Scan:           pipeline.Config{DarkThreshold: darkThreshold, CanonicalSize: canonicalSize},
		CORSOrigin:     corsOrigin,
		MaxUploadMB:    maxUploadMB,
		TimeoutSec:     timeoutSec,
		MetricsEnabled: metricsEnabled,
		RateLimit: server.RateLimitConfig{
			Enabled:           rateLimitEnabled,
			RequestsPerMinute: rpm,
			RequestsPerHour:   rph,
			MaxRequestsPerDay: rpd,
			MaxDataPerDay:     mbPerDay * 1024 * 1024,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	mux := http.NewServeMux()
	srv.SetupRoutes(mux)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(timeoutSec) * time.Second,
		WriteTimeout:      time.Duration(timeoutSec) * time.Second,
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	go func() {
		slog.Info("starting formscan server", "host", host, "port", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(shutdownTimeout)*time.Second)
	defer shutdownCancel()

	slog.Info("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown error: %w", err)
	}
	slog.Info("HTTP server shutdown completed")
	return nil
}
