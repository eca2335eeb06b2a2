package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// WORDFLIP_SERVER_PORT.
const EnvPrefix = "WORDFLIP"

var defaults = map[string]any{
	"server.port":                 8080,
	"server.log_level":            "info",
	"server.session_idle_hours":   72,
	"database.url":                "",
	"auth.jwt_secret":             "",
	"auth.token_lifetime_minutes": 720,
	"llm.provider":                "gemini",
	"llm.gemini_api_key":          "",
	"llm.openai_api_key":          "",
	"llm.openai_base_url":         "",
	"llm.model_name":              "",
	"llm.max_attempts":            5,
	"llm.base_delay_ms":           1000,
	"llm.multiplier":              2.0,
	"tts.api_key":                 "",
	"tts.cache_dir":               "tts_cache",
	"tts.timeout_seconds":         10,
	"deck.data_dir":               "data",
	"deck.unit_size":              20,
	"deck.furigana":               true,
}

// Load configuration from environment variables and optionally a
// config.yaml in the working directory or ./config. Environment variables
// take precedence over values from the file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return load(viper.New())
}

// LoadFile is like Load but reads the given config file, which must exist.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	} else if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
