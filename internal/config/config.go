package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName               string            `mapstructure:"app_name"`
	Env                   string            `mapstructure:"app_env"`
	LogLevel              string            `mapstructure:"log_level"`
	APIURL                string            `mapstructure:"api_url"`
	UserAgent             string            `mapstructure:"user_agent"`
	APIHeaders            map[string]string `mapstructure:"api_headers"`
	RequestTimeoutSeconds int64             `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration     `mapstructure:"-"`
}

// Load reads configuration from configs/.env and environment variables.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an optional YAML config file. Environment variables
// take precedence over values from the file. api_headers is only read from
// the file; viper lowercases its keys, which HTTP header matching ignores.
func LoadFile(path string) (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "travel-api-client")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("api_url", "")
	v.SetDefault("user_agent", "travel-api-client")
	v.SetDefault("request_timeout_seconds", 0) // transport default

	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.APIURL = strings.TrimSpace(cfg.APIURL)
	if cfg.APIURL == "" {
		return nil, errors.New("api_url is required")
	}
	if cfg.RequestTimeoutSeconds < 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be zero or positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	return &cfg, nil
}
