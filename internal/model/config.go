package model

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/viper"
)

// ServerConfig holds settings for the remote task tracker API.
type ServerConfig struct {
	// BaseURL is the root of the API, including the /api base path.
	BaseURL string `mapstructure:"base_url" yaml:"base_url" env:"TASKTRACK_SERVER_URL"`

	// TimeoutSec is the HTTP client timeout in seconds.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec" env:"TASKTRACK_TIMEOUT_SEC"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme" env:"TASKTRACK_THEME"`

	// ErrorBannerSec is how long error banners stay visible before
	// auto-dismissing.
	ErrorBannerSec int `mapstructure:"error_banner_sec" yaml:"error_banner_sec" env:"TASKTRACK_ERROR_BANNER_SEC"`

	// SearchDebounceMs is the quiet period before a filter change
	// triggers a server fetch.
	SearchDebounceMs int `mapstructure:"search_debounce_ms" yaml:"search_debounce_ms" env:"TASKTRACK_SEARCH_DEBOUNCE_MS"`
}

// LogConfig controls the file-backed application log.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" env:"TASKTRACK_LOG_LEVEL"`
	File  string `mapstructure:"file" yaml:"file" env:"TASKTRACK_LOG_FILE"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/tasktrack/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "tasktrack", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			BaseURL:    "http://localhost:8080/api",
			TimeoutSec: 30,
		},
		Display: DisplayConfig{
			Theme:            "default",
			ErrorBannerSec:   5,
			SearchDebounceMs: 500,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper,
// then applies environment variable overrides. If the file does not exist,
// defaults (plus env overrides) are returned.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("server.base_url", "http://localhost:8080/api")
	v.SetDefault("server.timeout_sec", 30)
	v.SetDefault("display.theme", "default")
	v.SetDefault("display.error_banner_sec", 5)
	v.SetDefault("display.search_debounce_ms", 500)
	v.SetDefault("log.level", "info")

	cfg := defaultAppConfig()

	if err := v.ReadInConfig(); err != nil {
		_, pathErr := err.(*os.PathError)
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !pathErr && !notFound {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	// Environment variables win over both defaults and file values.
	if err := envconfig.Process(context.Background(), cfg); err != nil {
		return nil, fmt.Errorf("applying env overrides: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("server", cfg.Server)
	v.Set("display", cfg.Display)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
