package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Gemini   GeminiConfig
	Places   PlacesConfig
	Upstream UpstreamConfig
	Search   SearchConfig
	Session  SessionConfig
	Log      LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GeminiConfig holds generative-text API configuration
type GeminiConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// PlacesConfig holds places-search API configuration
type PlacesConfig struct {
	APIKey       string `mapstructure:"api_key"`
	BaseURL      string `mapstructure:"base_url"`
	RadiusMeters int    `mapstructure:"radius_meters"`
}

// UpstreamConfig holds settings shared by the outbound API clients
type UpstreamConfig struct {
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"` // 0 disables the throttle
	Burst             int           `mapstructure:"burst"`
}

// SearchConfig holds orchestration settings
type SearchConfig struct {
	MaxConcurrency    int `mapstructure:"max_concurrency"` // 0 = one goroutine per item
	MaxOfflineResults int `mapstructure:"max_offline_results"`
}

// SessionConfig holds the session location store settings
type SessionConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "text" or "json"
}

// Load loads configuration from .env, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/where2buy/")

	v.SetEnvPrefix("WHERE2BUY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads ./.env into the process environment if it exists.
// Variables already set in the environment are not overridden.
func loadEnvFile() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// bindLegacyEnv accepts the unprefixed variable names deployments already use.
// The prefixed name wins when both are set.
func bindLegacyEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"server.port":    {"WHERE2BUY_SERVER_PORT", "PORT"},
		"gemini.api_key": {"WHERE2BUY_GEMINI_API_KEY", "GEMINI_API_KEY"},
		"places.api_key": {"WHERE2BUY_PLACES_API_KEY", "GOOGLE_MAPS_API_KEY"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("error binding env for %s: %w", key, err)
		}
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("gemini.model", "gemini-2.0-flash")

	v.SetDefault("places.api_key", "")
	v.SetDefault("places.base_url", "https://maps.googleapis.com/maps/api/place")
	v.SetDefault("places.radius_meters", 5000)

	v.SetDefault("upstream.timeout", "30s")
	v.SetDefault("upstream.requests_per_second", 0)
	v.SetDefault("upstream.burst", 10)

	v.SetDefault("search.max_concurrency", 0)
	v.SetDefault("search.max_offline_results", 3)

	v.SetDefault("session.ttl", "30m")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// validate validates the configuration.
// Missing API keys are allowed here; they are reported per request.
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if config.Places.RadiusMeters <= 0 {
		return fmt.Errorf("places radius must be positive, got: %d", config.Places.RadiusMeters)
	}

	if config.Upstream.RequestsPerSecond < 0 {
		return fmt.Errorf("upstream requests_per_second must not be negative, got: %v", config.Upstream.RequestsPerSecond)
	}

	if config.Search.MaxConcurrency < 0 {
		return fmt.Errorf("search max_concurrency must not be negative, got: %d", config.Search.MaxConcurrency)
	}

	if config.Search.MaxOfflineResults <= 0 {
		return fmt.Errorf("search max_offline_results must be positive, got: %d", config.Search.MaxOfflineResults)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("log format must be 'text' or 'json', got: %s", config.Log.Format)
	}

	return nil
}

// CredentialsConfigured reports whether both upstream API keys are set
func (c *Config) CredentialsConfigured() bool {
	return c.Gemini.APIKey != "" && c.Places.APIKey != ""
}
