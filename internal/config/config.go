// Package config loads CLI-layer settings. The store itself takes a
// plain path; only this outer layer reads the environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the settings the CLI layer needs.
type Config struct {
	DBPath    string `mapstructure:"DB_PATH"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	ExportDir string `mapstructure:"EXPORT_DIR"`
}

// Load reads configuration from TRIAGEDESK_* environment variables with
// sensible offline defaults: the database under the user config
// directory and exports into the working directory.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TRIAGEDESK")
	v.AutomaticEnv()

	v.SetDefault("DB_PATH", defaultDBPath())
	v.SetDefault("LOG_LEVEL", "warn")
	v.SetDefault("EXPORT_DIR", ".")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("DB_PATH")
	v.BindEnv("LOG_LEVEL")
	v.BindEnv("EXPORT_DIR")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultDBPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "triagedesk.db"
	}
	return filepath.Join(base, "triagedesk", "triagedesk.db")
}
