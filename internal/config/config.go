// Package config loads application configuration from config files and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Env          string `mapstructure:"env"`           // current application environment (local, production)
	DBPath       string `mapstructure:"db_path"`       // SQLite database path; empty = default XDG location
	ReportDir    string `mapstructure:"report_dir"`    // where report exports are written; empty = ~/Downloads
	ReportPrefix string `mapstructure:"report_prefix"` // report file name prefix
	QuizPolicy   string `mapstructure:"quiz_policy"`   // wrong-answer policy: retry or advance
	QuizDir      string `mapstructure:"quiz_dir"`      // optional dir of quiz JSON files overriding built-in content
}

// Load reads configuration from ./config/config.yaml (when present) and
// environment variables prefixed CYBEREDU_.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("db_path", "")
	v.SetDefault("report_dir", "")
	v.SetDefault("report_prefix", "cyberedu_report")
	v.SetDefault("quiz_policy", "retry")
	v.SetDefault("quiz_dir", "")

	v.SetEnvPrefix("CYBEREDU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if cfg.QuizPolicy != "retry" && cfg.QuizPolicy != "advance" {
		return nil, fmt.Errorf("quiz_policy must be retry or advance, got %q", cfg.QuizPolicy)
	}

	if cfg.ReportDir == "" {
		cfg.ReportDir = defaultReportDir()
	}

	return &cfg, nil
}

// defaultReportDir prefers the user's Downloads directory, falling back
// to the working directory.
func defaultReportDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Downloads")
}
