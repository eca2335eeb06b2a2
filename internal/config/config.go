package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
	TTS      TTSConfig      `mapstructure:"tts"`
	Deck     DeckConfig     `mapstructure:"deck"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// SessionIdleHours expires sessions untouched for this long. Zero keeps
	// them forever.
	SessionIdleHours int `mapstructure:"session_idle_hours" validate:"gte=0"`
}

// DatabaseConfig contains database settings. An empty URL keeps sessions in
// memory.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// AuthConfig contains session token settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// LLMConfig contains word analysis settings.
type LLMConfig struct {
	Provider      string  `mapstructure:"provider"        validate:"required,oneof=gemini openai none"`
	GeminiAPIKey  string  `mapstructure:"gemini_api_key"  validate:"required_if=Provider gemini"`
	OpenAIAPIKey  string  `mapstructure:"openai_api_key"  validate:"required_if=Provider openai"`
	OpenAIBaseURL string  `mapstructure:"openai_base_url" validate:"omitempty,url"`
	ModelName     string  `mapstructure:"model_name"`
	MaxAttempts   int     `mapstructure:"max_attempts"    validate:"required,gte=1,lte=10"`
	BaseDelayMS   int     `mapstructure:"base_delay_ms"   validate:"gte=0"`
	Multiplier    float64 `mapstructure:"multiplier"      validate:"gte=1"`
}

// TTSConfig contains speech synthesis settings. An empty API key disables
// audio.
type TTSConfig struct {
	APIKey         string `mapstructure:"api_key"`
	CacheDir       string `mapstructure:"cache_dir"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=1"`
}

// DeckConfig contains deck loading settings.
type DeckConfig struct {
	DataDir  string `mapstructure:"data_dir"  validate:"required"`
	UnitSize int    `mapstructure:"unit_size" validate:"required,gt=0"`
	Furigana bool   `mapstructure:"furigana"`
}
