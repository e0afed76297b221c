package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "CAREWATCH"

// Loader handles configuration loading with Viper.
type Loader struct {
	v          *viper.Viper
	configFile string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{
		v: viper.New(),
	}
}

// SetConfigFile sets an explicit config file path.
func (l *Loader) SetConfigFile(path string) {
	l.configFile = path
}

// Load loads configuration with proper precedence:
// defaults < config file < env vars < CLI flags
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	l.setupViper(cfg)

	if err := l.loadConfigFile(); err != nil {
		// Config file is optional, only error if explicitly specified
		if l.configFile != "" {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	expandPaths(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// expandTilde expands ~ to the user's home directory.
func expandTilde(path string) string {
	if path == "" {
		return path
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func expandPaths(cfg *Config) {
	cfg.Data.Path = expandTilde(cfg.Data.Path)
	cfg.Logging.File = expandTilde(cfg.Logging.File)
	cfg.Dashboard.SessionFile = expandTilde(cfg.Dashboard.SessionFile)
}

func (l *Loader) setupViper(cfg *Config) {
	v := l.v

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		v.AddConfigPath(filepath.Join(xdgConfig, "carewatch"))
	}
	if homeDir, _ := os.UserHomeDir(); homeDir != "" {
		v.AddConfigPath(filepath.Join(homeDir, ".config", "carewatch"))
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	l.setDefaults(cfg)

	// Unmarshal only sees env vars for nested keys that are explicitly bound.
	bindEnvVars(v)

	v.AutomaticEnv()
}

func (l *Loader) setDefaults(cfg *Config) {
	v := l.v

	// Dashboard
	v.SetDefault("dashboard.role", cfg.Dashboard.Role)
	v.SetDefault("dashboard.theme", cfg.Dashboard.Theme)
	v.SetDefault("dashboard.initial_conversation", cfg.Dashboard.InitialConversation)
	v.SetDefault("dashboard.show_timestamps", cfg.Dashboard.ShowTimestamps)
	v.SetDefault("dashboard.session_file", cfg.Dashboard.SessionFile)

	// Data
	v.SetDefault("data.source", cfg.Data.Source)
	v.SetDefault("data.path", cfg.Data.Path)

	// Logging
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.enable_caller", cfg.Logging.EnableCaller)
}

func (l *Loader) loadConfigFile() error {
	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
	}

	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}

	return nil
}

// ConfigFileUsed returns the config file that was loaded.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// Set overrides a key, taking precedence over file and env values.
// CLI flags use this to sit on top of the precedence chain.
func (l *Loader) Set(key string, value interface{}) {
	l.v.Set(key, value)
}

// Viper returns the underlying Viper instance for advanced use.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// LoadFromFile loads configuration from a specific file.
func LoadFromFile(path string) (*Config, error) {
	loader := NewLoader()
	loader.SetConfigFile(path)
	return loader.Load()
}

// LoadDefault loads configuration with default search paths.
func LoadDefault() (*Config, error) {
	return NewLoader().Load()
}

// EnvKeys lists every key that supports a CAREWATCH_* override.
var EnvKeys = []string{
	"dashboard.role",
	"dashboard.theme",
	"dashboard.initial_conversation",
	"dashboard.show_timestamps",
	"dashboard.session_file",
	"data.source",
	"data.path",
	"logging.level",
	"logging.format",
	"logging.file",
	"logging.enable_caller",
}

// EnvVar returns the environment variable name for a config key:
// data.path -> CAREWATCH_DATA_PATH.
func EnvVar(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func bindEnvVars(v *viper.Viper) {
	for _, key := range EnvKeys {
		_ = v.BindEnv(key, EnvVar(key))
	}
}
