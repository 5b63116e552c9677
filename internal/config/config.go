package config

import "fmt"

const (
	infoLevel  = "info"
	debugLevel = "debug"
	warnLevel  = "warn"
	errorLevel = "error"
)

// DefaultConfig returns a configuration with the contract defaults:
// dark threshold 110 and canonical frame 500, per spec.md §3/§4.9.
func DefaultConfig() Config {
	return Config{
		LogLevel: infoLevel,
		Verbose:  false,
		Scan: ScanConfig{
			DarkThreshold: 110,
			CanonicalSize: 500,
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			CORSOrigin:      "*",
			MaxUploadMB:     25,
			TimeoutSec:      30,
			ShutdownTimeout: 10,
			MetricsEnabled:  true,
		},
		Batch: BatchConfig{
			Workers:         4,
			ContinueOnError: false,
		},
	}
}

// Validate checks the configuration for internally inconsistent values
// that would otherwise surface as a confusing failure deep in the
// pipeline or server.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case infoLevel, debugLevel, warnLevel, errorLevel:
	default:
		return fmt.Errorf("config: invalid log_level %q", c.LogLevel)
	}

	if c.Scan.CanonicalSize <= 0 {
		return fmt.Errorf("config: scan.canonical_size must be positive, got %d", c.Scan.CanonicalSize)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port out of range: %d", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("config: server.max_upload_mb must be positive, got %d", c.Server.MaxUploadMB)
	}

	if c.Batch.Workers < 1 {
		return fmt.Errorf("config: batch.workers must be at least 1, got %d", c.Batch.Workers)
	}

	return nil
}
