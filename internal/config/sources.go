package config

import (
	"fmt"
	"os"
	"strings"
)

// SettingSource represents where a setting's value comes from.
type SettingSource string

const (
	SourceEnv     SettingSource = "env"
	SourceConfig  SettingSource = "config"
	SourceDefault SettingSource = "default"
)

// SettingStatus describes one effective setting for the status command.
type SettingStatus struct {
	Key    string        `json:"key"`
	Value  string        `json:"value"`
	Source SettingSource `json:"source"`
}

// Describe reports the effective value and origin of the user-facing settings.
func Describe(cfg *Config) []SettingStatus {
	return []SettingStatus{
		checkSetting("server.host", cfg.Server.Host, "0.0.0.0"),
		checkSetting("server.port", fmt.Sprint(cfg.Server.Port), "8080"),
		checkSetting("server.cors_origins", strings.Join(cfg.Server.CORSOrigins, ","), "*"),
		checkSetting("content.file", displayPath(cfg.Content.File), displayPath("")),
		checkSetting("build.out_dir", cfg.Build.OutDir, "dist"),
		checkSetting("build.png_scale", fmt.Sprint(cfg.Build.PNGScale), "2"),
		checkSetting("build.date", displayDate(cfg.Build.Date), displayDate("")),
		checkSetting("logging.level", cfg.Logging.Level, "info"),
		checkSetting("logging.format", cfg.Logging.Format, "text"),
	}
}

// EnvVar returns the environment variable overriding key.
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// checkSetting attributes a value to env, config file or default.
func checkSetting(key, value, def string) SettingStatus {
	status := SettingStatus{Key: key, Value: value}
	switch {
	case os.Getenv(EnvVar(key)) != "":
		status.Source = SourceEnv
	case value != def:
		status.Source = SourceConfig
	default:
		status.Source = SourceDefault
	}
	return status
}

func displayDate(d string) string {
	if d == "" {
		return "(today)"
	}
	return d
}

func displayPath(p string) string {
	if p == "" {
		return "(built-in)"
	}
	return p
}
