package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.path", "jyotish.db")

	// Geocoder defaults
	v.SetDefault("geocoder.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocoder.user_agent", "jyotish-horoscope/1.0 (birth chart service)")
	v.SetDefault("geocoder.timeout_seconds", 10)

	// Ephemeris defaults
	v.SetDefault("ephemeris.ayanamsa", "lahiri")

	// Local Inference (Ollama) defaults
	v.SetDefault("local_inference.enabled", true)
	v.SetDefault("local_inference.base_url", "http://localhost:11434")
	v.SetDefault("local_inference.model", "llama3.2:3b")
	v.SetDefault("local_inference.timeout_seconds", 120)

	// OpenRouter defaults
	v.SetDefault("openrouter.model", "openai/gpt-4o-mini") // Cost-effective default
	v.SetDefault("openrouter.temperature", 0.2)            // Deterministic
	v.SetDefault("openrouter.max_tokens", 1000)            // Token limit

	// Reading defaults
	v.SetDefault("reading.lang", "en")
	v.SetDefault("reading.chart_style", "north")

	// Server configuration defaults
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.allowed_origins", []string{
		"http://localhost",
		"https://localhost",
		"http://127.0.0.1",
		"https://127.0.0.1",
	})
}

// BindSensitiveEnvVars explicitly binds sensitive configuration to environment variables
func BindSensitiveEnvVars(v *viper.Viper) {
	// OpenRouter API key never belongs in a config file on shared machines
	v.BindEnv("openrouter.api_key", "JYOTISH_OPENROUTER_API_KEY")

	// Database path
	v.BindEnv("database.path", "JYOTISH_DATABASE_PATH")

	// Local inference configuration
	v.BindEnv("local_inference.enabled", "JYOTISH_LOCAL_INFERENCE_ENABLED")
	v.BindEnv("local_inference.base_url", "JYOTISH_LOCAL_INFERENCE_BASE_URL")
	v.BindEnv("local_inference.model", "JYOTISH_LOCAL_INFERENCE_MODEL")
}

// GetServerPort returns the configured server port, or the default when unset
func (c *Config) GetServerPort() int {
	if c.Server.Port == nil || *c.Server.Port == 0 {
		return DefaultServerPort
	}
	return *c.Server.Port
}

// GetDatabasePath returns the configured database path
func (c *Config) GetDatabasePath() string {
	if c.Database.Path == "" {
		return "jyotish.db" // Fallback default
	}
	return c.Database.Path
}

// GetServerAllowedOrigins returns the allowed CORS origins
func (c *Config) GetServerAllowedOrigins() []string {
	if len(c.Server.AllowedOrigins) == 0 {
		return []string{
			"http://localhost",
			"https://localhost",
			"http://127.0.0.1",
			"https://127.0.0.1",
		}
	}
	return c.Server.AllowedOrigins
}

// GetChartStyle returns the default chart rendering style
func (c *Config) GetChartStyle() string {
	if c.Reading.ChartStyle == "" {
		return "north"
	}
	return c.Reading.ChartStyle
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Database: %s, Geocoder: %s, LocalInference: {Enabled: %t}}",
		c.Database.Path, c.Geocoder.BaseURL, c.LocalInference.Enabled)
}
