// Package config handles carewatch configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tOgg1/carewatch/internal/dataset"
	"github.com/tOgg1/carewatch/internal/monitor"
)

// Config is the root configuration structure for carewatch.
type Config struct {
	// Dashboard settings
	Dashboard DashboardConfig `yaml:"dashboard" mapstructure:"dashboard"`

	// Data source settings
	Data DataConfig `yaml:"data" mapstructure:"data"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// DashboardConfig contains TUI settings.
type DashboardConfig struct {
	// Role gates facets and columns (admin, clinic).
	Role string `yaml:"role" mapstructure:"role"`

	// Theme is the color theme (default, high-contrast).
	Theme string `yaml:"theme" mapstructure:"theme"`

	// InitialConversation opens a conversation in detail view on startup.
	InitialConversation string `yaml:"initial_conversation" mapstructure:"initial_conversation"`

	// ShowTimestamps shows message timestamps in threads.
	ShowTimestamps bool `yaml:"show_timestamps" mapstructure:"show_timestamps"`

	// SessionFile remembers the last opened conversation.
	SessionFile string `yaml:"session_file" mapstructure:"session_file"`
}

// DataConfig selects where conversations come from.
type DataConfig struct {
	// Source is sample or sqlite.
	Source string `yaml:"source" mapstructure:"source"`

	// Path is the SQLite database file path.
	Path string `yaml:"path" mapstructure:"path"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level" mapstructure:"level"`

	// Format is the output format (json, console).
	Format string `yaml:"format" mapstructure:"format"`

	// File is an optional log file path.
	File string `yaml:"file" mapstructure:"file"`

	// EnableCaller adds caller information to logs.
	EnableCaller bool `yaml:"enable_caller" mapstructure:"enable_caller"`
}

// Theme names accepted by the dashboard.
var Themes = []string{"default", "high-contrast"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Dashboard: DashboardConfig{
			Role:           string(monitor.RoleAdmin),
			Theme:          "default",
			ShowTimestamps: true,
			SessionFile:    filepath.Join(homeDir, ".config", "carewatch", "session.yaml"),
		},
		Data: DataConfig{
			Source: string(dataset.SourceSample),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := monitor.ParseRole(c.Dashboard.Role); err != nil {
		return fmt.Errorf("dashboard.role: %w", err)
	}

	themeOK := false
	for _, name := range Themes {
		if strings.EqualFold(strings.TrimSpace(c.Dashboard.Theme), name) {
			themeOK = true
			break
		}
	}
	if !themeOK {
		return fmt.Errorf("dashboard.theme must be one of %s", strings.Join(Themes, ", "))
	}

	switch dataset.Source(strings.ToLower(strings.TrimSpace(c.Data.Source))) {
	case dataset.SourceSample:
	case dataset.SourceSQLite:
		if strings.TrimSpace(c.Data.Path) == "" {
			return fmt.Errorf("data.path is required when data.source is sqlite")
		}
	default:
		return fmt.Errorf("data.source must be one of sample, sqlite")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be one of console, json")
	}

	return nil
}

// Role returns the parsed dashboard role. Validate must have passed.
func (c *Config) Role() monitor.Role {
	role, _ := monitor.ParseRole(c.Dashboard.Role)
	return role
}
