// Package config handles configuration loading for smartcam.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/seenimoa/smartcam/pkg/utils"
)

// EnvPrefix prefixes every environment override, e.g. SMARTCAM_SERVER_PORT.
const EnvPrefix = "SMARTCAM"

// Config represents the complete application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  yaml:"server"  json:"server"`
	Content ContentConfig `mapstructure:"content" yaml:"content" json:"content"`
	Build   BuildConfig   `mapstructure:"build"   yaml:"build"   json:"build"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" json:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string   `mapstructure:"host"              yaml:"host"              json:"host"`
	Port            int      `mapstructure:"port"              yaml:"port"              json:"port"`
	CORSOrigins     []string `mapstructure:"cors_origins"      yaml:"cors_origins"      json:"cors_origins"`
	ReadTimeoutSec  int      `mapstructure:"read_timeout_sec"  yaml:"read_timeout_sec"  json:"read_timeout_sec"`
	WriteTimeoutSec int      `mapstructure:"write_timeout_sec" yaml:"write_timeout_sec" json:"write_timeout_sec"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ContentConfig points at an optional page content file.
type ContentConfig struct {
	File string `mapstructure:"file" yaml:"file" json:"file"` // empty: built-in content
}

// BuildConfig holds static build settings.
type BuildConfig struct {
	OutDir   string `mapstructure:"out_dir"   yaml:"out_dir"   json:"out_dir"`
	PNGScale int    `mapstructure:"png_scale" yaml:"png_scale" json:"png_scale"`
	Date     string `mapstructure:"date"      yaml:"date"      json:"date"` // YYYY-MM-DD footer stamp; empty means today
}

// Stamp returns the date printed in the page footer: build.date when set,
// otherwise now, both in ICT.
func (b BuildConfig) Stamp(now time.Time) (time.Time, error) {
	if b.Date == "" {
		return utils.ToICT(now), nil
	}
	t, err := utils.ParseDateICT(b.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("build.date must be YYYY-MM-DD, got %q", b.Date)
	}
	return t, nil
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"  json:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format" json:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.smartcam/config.yaml (home directory)
//  3. /etc/smartcam/config.yaml (system)
//
// Environment variables override config file values.
// Format: SMARTCAM_<SECTION>_<KEY>, e.g., SMARTCAM_SERVER_PORT
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".smartcam"))
	v.AddConfigPath("/etc/smartcam")

	// Config file is optional; defaults + env vars are enough.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.read_timeout_sec", 15)
	v.SetDefault("server.write_timeout_sec", 30)

	// Content defaults
	v.SetDefault("content.file", "")

	// Build defaults
	v.SetDefault("build.out_dir", "dist")
	v.SetDefault("build.png_scale", 2)
	v.SetDefault("build.date", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks value ranges that viper cannot express.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.ReadTimeoutSec < 0 || c.Server.WriteTimeoutSec < 0 {
		return fmt.Errorf("server timeouts must not be negative")
	}
	if c.Build.PNGScale < 1 || c.Build.PNGScale > 8 {
		return fmt.Errorf("build.png_scale must be 1..8, got %d", c.Build.PNGScale)
	}
	if _, err := c.Build.Stamp(time.Time{}); err != nil {
		return err
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

// ParseLevel maps a logging.level value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown logging.level %q", s)
	}
}

// NewLogger builds a slog logger writing to w in the configured format.
func NewLogger(w io.Writer, cfg LoggingConfig) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
