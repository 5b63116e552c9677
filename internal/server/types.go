package server

import (
	"net/http"

	"github.com/inkbar/formscan/internal/pipeline"
	"github.com/inkbar/formscan/internal/sheet"
)

// Server holds the HTTP server state and dependencies: one fixed layout
// (the form this server instance scans) and the pipeline tunables every
// request shares. Unlike the teacher's per-request model/language
// overrides, a scan has nothing to vary per request beyond the image
// itself, so there is no pipeline cache here.
type Server struct {
	layout         sheet.Layout
	scanConfig     pipeline.Config
	corsOrigin     string
	maxUploadMB    int64
	timeoutSec     int
	rateLimiter    *RateLimiter
	metricsEnabled bool
}

// Config holds server configuration.
type Config struct {
	Layout         sheet.Layout
	Scan           pipeline.Config
	CORSOrigin     string
	MaxUploadMB    int64
	TimeoutSec     int
	MetricsEnabled bool
	RateLimit      RateLimitConfig
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	RequestsPerHour   int
	MaxRequestsPerDay int
	MaxDataPerDay     int64 // in bytes
}

// HealthResponse is the /health endpoint's body.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// ScanFieldResponse is one decoded field, JSON-friendly.
type ScanFieldResponse struct {
	Kind    string `json:"kind"`
	Boolean bool   `json:"boolean,omitempty"`
	Number  uint64 `json:"number,omitempty"`
}

// ScanResponse is the /scan endpoint's success body.
type ScanResponse struct {
	Fields    []ScanFieldResponse `json:"fields"`
	Width     int                 `json:"width"`
	Height    int                 `json:"height"`
	ProcessMs int64               `json:"process_ms"`
}

// ScanErrorResponse is the /scan endpoint's failure body.
type ScanErrorResponse struct {
	Error string `json:"error"`
}

// NewServer builds a Server bound to a single sheet.Layout.
func NewServer(config Config) (*Server, error) {
	var rateLimiter *RateLimiter
	if config.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			config.RateLimit.RequestsPerMinute,
			config.RateLimit.RequestsPerHour,
			config.RateLimit.MaxRequestsPerDay,
			config.RateLimit.MaxDataPerDay,
		)
	}

	return &Server{
		layout:         config.Layout,
		scanConfig:     config.Scan,
		corsOrigin:     config.CORSOrigin,
		maxUploadMB:    config.MaxUploadMB,
		timeoutSec:     config.TimeoutSec,
		rateLimiter:    rateLimiter,
		metricsEnabled: config.MetricsEnabled,
	}, nil
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/ws/scan", s.corsMiddleware(s.rateLimitMiddleware(s.scanWebSocketHandler)))
	mux.HandleFunc("/scan", s.corsMiddleware(s.rateLimitMiddleware(s.scanHandler)))

	if s.metricsEnabled {
		mux.Handle("/metrics", s.corsMiddleware(promMetricsHandler()))
	}
}
