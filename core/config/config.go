// Package config loads runtime settings for the import pipeline.
// Values come from defaults, an optional linkimport.yaml, and environment
// variables prefixed with LINKIMPORT_ (e.g. LINKIMPORT_FETCH_TIMEOUT=15s).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// defaultUserAgent is a mobile-browser UA. Storefronts serve link-preview
// friendly markup to mobile clients more reliably than to obvious bots.
const defaultUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_5 like Mac OS X) " +
	"AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Mobile/15E148 Safari/604.1"

// Config holds the fetch policy and output settings.
type Config struct {
	FetchTimeout time.Duration
	UserAgent    string
	MaxBodyBytes int64
	OutputDir    string
}

// Load reads configuration from defaults, an optional config file in the
// working directory, and LINKIMPORT_* environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("linkimport")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("fetch_timeout", "10s")
	v.SetDefault("user_agent", defaultUserAgent)
	v.SetDefault("max_body_bytes", int64(5<<20))
	v.SetDefault("output_dir", "")

	v.SetConfigName("linkimport")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// The config file is optional; anything else is a real failure.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{
		FetchTimeout: v.GetDuration("fetch_timeout"),
		UserAgent:    v.GetString("user_agent"),
		MaxBodyBytes: v.GetInt64("max_body_bytes"),
		OutputDir:    v.GetString("output_dir"),
	}
	if cfg.FetchTimeout <= 0 {
		return nil, fmt.Errorf("fetch_timeout must be positive, got %s", cfg.FetchTimeout)
	}
	if cfg.MaxBodyBytes <= 0 {
		return nil, fmt.Errorf("max_body_bytes must be positive, got %d", cfg.MaxBodyBytes)
	}
	return cfg, nil
}
