package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		for _, name := range []string{
			"PORT",
			"GEMINI_API_KEY",
			"GOOGLE_MAPS_API_KEY",
			"WHERE2BUY_SERVER_PORT",
			"WHERE2BUY_SERVER_ENVIRONMENT",
			"WHERE2BUY_GEMINI_API_KEY",
			"WHERE2BUY_GEMINI_MODEL",
			"WHERE2BUY_PLACES_API_KEY",
			"WHERE2BUY_PLACES_RADIUS_METERS",
			"WHERE2BUY_UPSTREAM_TIMEOUT",
			"WHERE2BUY_UPSTREAM_REQUESTS_PER_SECOND",
			"WHERE2BUY_SEARCH_MAX_CONCURRENCY",
			"WHERE2BUY_SEARCH_MAX_OFFLINE_RESULTS",
			"WHERE2BUY_SESSION_TTL",
			"WHERE2BUY_LOG_FORMAT",
		} {
			os.Unsetenv(name)
		}
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "3000" {
			t.Errorf("Server.Port = %s, want 3000", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
			t.Errorf("Server.AllowedOrigins = %v, want [*]", cfg.Server.AllowedOrigins)
		}
		if cfg.Gemini.Model != "gemini-2.0-flash" {
			t.Errorf("Gemini.Model = %s, want gemini-2.0-flash", cfg.Gemini.Model)
		}
		if cfg.Places.RadiusMeters != 5000 {
			t.Errorf("Places.RadiusMeters = %d, want 5000", cfg.Places.RadiusMeters)
		}
		if cfg.Upstream.Timeout != 30*time.Second {
			t.Errorf("Upstream.Timeout = %v, want 30s", cfg.Upstream.Timeout)
		}
		if cfg.Upstream.RequestsPerSecond != 0 {
			t.Errorf("Upstream.RequestsPerSecond = %v, want 0", cfg.Upstream.RequestsPerSecond)
		}
		if cfg.Search.MaxOfflineResults != 3 {
			t.Errorf("Search.MaxOfflineResults = %d, want 3", cfg.Search.MaxOfflineResults)
		}
		if cfg.Session.TTL != 30*time.Minute {
			t.Errorf("Session.TTL = %v, want 30m", cfg.Session.TTL)
		}
	})

	t.Run("missing API keys are not a load error", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.CredentialsConfigured() {
			t.Error("CredentialsConfigured() = true, want false without keys")
		}
	})

	t.Run("reads unprefixed variable names", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("PORT", "4000")
		os.Setenv("GEMINI_API_KEY", "gemini-key")
		os.Setenv("GOOGLE_MAPS_API_KEY", "maps-key")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "4000" {
			t.Errorf("Server.Port = %s, want 4000", cfg.Server.Port)
		}
		if cfg.Gemini.APIKey != "gemini-key" {
			t.Errorf("Gemini.APIKey = %s, want gemini-key", cfg.Gemini.APIKey)
		}
		if cfg.Places.APIKey != "maps-key" {
			t.Errorf("Places.APIKey = %s, want maps-key", cfg.Places.APIKey)
		}
		if !cfg.CredentialsConfigured() {
			t.Error("CredentialsConfigured() = false, want true")
		}
	})

	t.Run("prefixed variables take precedence", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("PORT", "4000")
		os.Setenv("WHERE2BUY_SERVER_PORT", "9090")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("WHERE2BUY_SERVER_ENVIRONMENT", "production")
		os.Setenv("WHERE2BUY_GEMINI_MODEL", "gemini-1.5-pro")
		os.Setenv("WHERE2BUY_PLACES_RADIUS_METERS", "2500")
		os.Setenv("WHERE2BUY_UPSTREAM_TIMEOUT", "5s")
		os.Setenv("WHERE2BUY_UPSTREAM_REQUESTS_PER_SECOND", "2.5")
		os.Setenv("WHERE2BUY_SEARCH_MAX_CONCURRENCY", "4")
		os.Setenv("WHERE2BUY_SESSION_TTL", "1h")
		os.Setenv("WHERE2BUY_LOG_FORMAT", "json")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Gemini.Model != "gemini-1.5-pro" {
			t.Errorf("Gemini.Model = %s, want gemini-1.5-pro", cfg.Gemini.Model)
		}
		if cfg.Places.RadiusMeters != 2500 {
			t.Errorf("Places.RadiusMeters = %d, want 2500", cfg.Places.RadiusMeters)
		}
		if cfg.Upstream.Timeout != 5*time.Second {
			t.Errorf("Upstream.Timeout = %v, want 5s", cfg.Upstream.Timeout)
		}
		if cfg.Upstream.RequestsPerSecond != 2.5 {
			t.Errorf("Upstream.RequestsPerSecond = %v, want 2.5", cfg.Upstream.RequestsPerSecond)
		}
		if cfg.Search.MaxConcurrency != 4 {
			t.Errorf("Search.MaxConcurrency = %d, want 4", cfg.Search.MaxConcurrency)
		}
		if cfg.Session.TTL != time.Hour {
			t.Errorf("Session.TTL = %v, want 1h", cfg.Session.TTL)
		}
		if cfg.Log.Format != "json" {
			t.Errorf("Log.Format = %s, want json", cfg.Log.Format)
		}
	})

	t.Run("fails validation for invalid log format", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("WHERE2BUY_LOG_FORMAT", "xml")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for invalid log format")
		}
	})

	t.Run("fails validation for non-positive radius", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("WHERE2BUY_PLACES_RADIUS_METERS", "0")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for zero radius")
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("returns nil when .env file doesn't exist", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		tempDir := t.TempDir()
		os.Chdir(tempDir)

		err := loadEnvFile()
		if err != nil {
			t.Errorf("loadEnvFile() error = %v, want nil when file doesn't exist", err)
		}
	})

	t.Run("loads variables from .env file", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		tempDir := t.TempDir()
		os.Chdir(tempDir)

		envContent := `
# Comment line
TEST_VAR_1=value1
TEST_VAR_2=value2
`
		if err := os.WriteFile(".env", []byte(envContent), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		os.Unsetenv("TEST_VAR_1")
		os.Unsetenv("TEST_VAR_2")
		defer os.Unsetenv("TEST_VAR_1")
		defer os.Unsetenv("TEST_VAR_2")

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_VAR_1") != "value1" {
			t.Errorf("TEST_VAR_1 = %s, want value1", os.Getenv("TEST_VAR_1"))
		}
		if os.Getenv("TEST_VAR_2") != "value2" {
			t.Errorf("TEST_VAR_2 = %s, want value2", os.Getenv("TEST_VAR_2"))
		}
	})

	t.Run("doesn't override existing environment variables", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		tempDir := t.TempDir()
		os.Chdir(tempDir)

		os.Setenv("TEST_OVERRIDE", "existing-value")
		defer os.Unsetenv("TEST_OVERRIDE")

		if err := os.WriteFile(".env", []byte("TEST_OVERRIDE=new-value"), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_OVERRIDE") != "existing-value" {
			t.Errorf("TEST_OVERRIDE = %s, want existing-value (should not override)", os.Getenv("TEST_OVERRIDE"))
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: "3000"},
			Places: PlacesConfig{RadiusMeters: 5000},
			Search: SearchConfig{MaxOfflineResults: 3},
			Log:    LogConfig{Format: "text"},
		}
	}

	t.Run("validates successfully without API keys", func(t *testing.T) {
		if err := validate(valid()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("fails for empty port", func(t *testing.T) {
		cfg := valid()
		cfg.Server.Port = ""
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for empty port")
		}
	})

	t.Run("fails for negative rate", func(t *testing.T) {
		cfg := valid()
		cfg.Upstream.RequestsPerSecond = -1
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for negative rate")
		}
	})

	t.Run("fails for negative concurrency", func(t *testing.T) {
		cfg := valid()
		cfg.Search.MaxConcurrency = -2
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for negative concurrency")
		}
	})

	t.Run("fails for zero offline results", func(t *testing.T) {
		cfg := valid()
		cfg.Search.MaxOfflineResults = 0
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for zero offline results")
		}
	})
}
