package config

// Config represents the core jyotish configuration
type Config struct {
	Database       DatabaseConfig       `mapstructure:"database"`
	Server         ServerConfig         `mapstructure:"server"`
	Geocoder       GeocoderConfig       `mapstructure:"geocoder"`
	Ephemeris      EphemerisConfig      `mapstructure:"ephemeris"`
	LocalInference LocalInferenceConfig `mapstructure:"local_inference"`
	OpenRouter     OpenRouterConfig     `mapstructure:"openrouter"`
	Reading        ReadingConfig        `mapstructure:"reading"`
}

// DatabaseConfig configures the SQLite database used for LLM usage accounting
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ServerConfig configures the jyotish web server
type ServerConfig struct {
	Port           *int     `mapstructure:"port"` // nil = default 8787, 0 is invalid (omit for default)
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Server port constants
const (
	DefaultServerPort  = 8787 // Development port (above privileged range)
	FallbackServerPort = 7878 // Fallback when the default port is taken
)

// GeocoderConfig configures place name resolution
type GeocoderConfig struct {
	BaseURL        string `mapstructure:"base_url"`        // Nominatim endpoint
	UserAgent      string `mapstructure:"user_agent"`      // Required by the Nominatim usage policy
	TimeoutSeconds int    `mapstructure:"timeout_seconds"` // Request timeout in seconds
}

// EphemerisConfig configures planetary position computation
type EphemerisConfig struct {
	Ayanamsa string `mapstructure:"ayanamsa"` // Sidereal correction: "lahiri" (only supported value for now)
}

// LocalInferenceConfig configures local model inference (Ollama, LocalAI, etc.)
type LocalInferenceConfig struct {
	Enabled        bool   `mapstructure:"enabled"`         // Prefer local inference over cloud APIs
	BaseURL        string `mapstructure:"base_url"`        // e.g., "http://localhost:11434" for Ollama
	Model          string `mapstructure:"model"`           // e.g., "mistral", "llama3.2:3b"
	TimeoutSeconds int    `mapstructure:"timeout_seconds"` // Request timeout in seconds
}

// OpenRouterConfig configures OpenRouter.ai API access
type OpenRouterConfig struct {
	APIKey      string   `mapstructure:"api_key"`     // OpenRouter API key
	Model       string   `mapstructure:"model"`       // Default model (e.g., "openai/gpt-4o-mini")
	Temperature *float64 `mapstructure:"temperature"` // Sampling temperature (nil = default 0.2)
	MaxTokens   *int     `mapstructure:"max_tokens"`  // Maximum tokens per request (nil = default 1000)
}

// ReadingConfig configures horoscope reading generation
type ReadingConfig struct {
	Lang           string `mapstructure:"lang"`            // Reading language hint passed to the LLM
	ChartStyle     string `mapstructure:"chart_style"`     // Default chart rendering style: north, south
	PromptTemplate string `mapstructure:"prompt_template"` // Path to a custom prompt template (empty = built-in)
}

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)
