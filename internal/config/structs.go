//nolint:lll
package config

// Config is the complete configuration for the formscan application: the
// scan/render pipeline plus the serve and batch commands. It loads from
// a config file, environment variables, and command-line flags, in that
// ascending priority order, via Loader.
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose"   yaml:"verbose"   json:"verbose"`

	Scan   ScanConfig   `mapstructure:"scan"   yaml:"scan"   json:"scan"`
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`
	Batch  BatchConfig  `mapstructure:"batch"  yaml:"batch"  json:"batch"`
}

// ScanConfig controls the image-to-fields pipeline's tunables.
type ScanConfig struct {
	// DarkThreshold is the per-channel threshold below which a pixel
	// counts as dark, applied at both detection passes.
	DarkThreshold uint8 `mapstructure:"dark_threshold" yaml:"dark_threshold" json:"dark_threshold"`
	// CanonicalSize is the side length, in pixels, the rectified page is
	// warped to before the second detection pass.
	CanonicalSize int `mapstructure:"canonical_size" yaml:"canonical_size" json:"canonical_size"`
}

// ServerConfig controls the HTTP/websocket scan server.
type ServerConfig struct {
	Host            string `mapstructure:"host"             yaml:"host"             json:"host"`
	Port            int    `mapstructure:"port"             yaml:"port"             json:"port"`
	CORSOrigin      string `mapstructure:"cors_origin"      yaml:"cors_origin"      json:"cors_origin"`
	MaxUploadMB     int    `mapstructure:"max_upload_mb"    yaml:"max_upload_mb"    json:"max_upload_mb"`
	TimeoutSec      int    `mapstructure:"timeout_sec"      yaml:"timeout_sec"      json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
	MetricsEnabled  bool   `mapstructure:"metrics_enabled"  yaml:"metrics_enabled"  json:"metrics_enabled"`
}

// BatchConfig controls directory/PDF batch scanning.
type BatchConfig struct {
	Workers         int  `mapstructure:"workers"           yaml:"workers"           json:"workers"`
	ContinueOnError bool `mapstructure:"continue_on_error" yaml:"continue_on_error" json:"continue_on_error"`
}
