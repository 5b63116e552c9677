package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/inkbar/formscan/internal/config"
	"github.com/inkbar/formscan/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configLoader *config.Loader
	globalConfig *config.Config
	cfgFile      string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "formscan",
	Short: "Render and decode printable paper forms",
	Long: `formscan renders printable paper forms with checkbox and
seven-segment fields, and decodes photographed or scanned copies of
those forms back into structured values.

This tool provides:
- Form layout rendering to PNG or SVG
- Single and batch image decoding
- PDF page extraction and decoding
- An HTTP/websocket scan server

Examples:
  formscan render layout.yaml form.png
  formscan scan scanned-form.jpg --layout layout.yaml
  formscan batch forms/ --layout layout.yaml --recursive
  formscan serve --layout layout.yaml --port 8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, _ := cmd.PersistentFlags().GetBool("version")
		if v {
			ver, commit, date := version.Info()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "formscan version %s (commit: %s, built: %s)\n", ver, commit, date)
			return nil
		}
		return cmd.Help()
	},
}

// SetVersionInfo records build metadata printed by --version, set once
// from main.main() via linker-supplied variables.
func SetVersionInfo(ver, commit, date string) {
	version.Version = ver
	version.GitCommit = commit
	version.BuildDate = date
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", ver, commit, date)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCommand returns the root command for testing purposes.
func GetRootCommand() *cobra.Command {
	return rootCmd
}

func setupLogging(cfg *config.Config) {
	var logLevel slog.Level
	if cfg.Verbose {
		logLevel = slog.LevelDebug
	} else {
		switch cfg.LogLevel {
		case "debug":
			logLevel = slog.LevelDebug
		case "info":
			logLevel = slog.LevelInfo
		case "warn":
			logLevel = slog.LevelWarn
		case "error":
			logLevel = slog.LevelError
		default:
			logLevel = slog.LevelInfo
		}
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is search in ., $HOME, $HOME/.config/formscan, /etc/formscan)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("version", false, "print version information and exit")

	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		panic(fmt.Sprintf("failed to bind flag: %v", err))
	}
	if err := viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		panic(fmt.Sprintf("failed to bind flag: %v", err))
	}
}

func initConfig() {
	configLoader = config.NewLoader()
}

// GetConfig returns the global configuration, reloaded on every call so
// CLI flags bound after initial load are reflected.
func GetConfig() *config.Config {
	loader := GetConfigLoader()

	if globalConfig == nil {
		var err error
		if cfgFile != "" {
			globalConfig, err = loader.LoadWithFileWithoutValidation(cfgFile)
		} else {
			globalConfig, err = loader.LoadWithoutValidation()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}
	}

	var cfg config.Config
	if err := loader.GetViper().Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling updated configuration: %v\n", err)
		return globalConfig
	}

	setupLogging(&cfg)
	return &cfg
}

// GetConfigLoader returns the global configuration loader.
func GetConfigLoader() *config.Loader {
	if configLoader == nil {
		configLoader = config.NewLoader()
	}
	return configLoader
}
