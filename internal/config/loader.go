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

// Load reads .env (when present), an optional config.yaml and the process
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}
	return build(v)
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return build(v)
}

func build(v *viper.Viper) (*Config, error) {
	applyDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Session.Backend = strings.ToLower(strings.TrimSpace(cfg.Session.Backend))

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")

	v.SetDefault("provider.name", "Groq")
	v.SetDefault("provider.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("provider.model", "llama-3.3-70b-versatile")
	v.SetDefault("provider.temperature", 0.3)
	v.SetDefault("provider.max_tokens", 800)
	v.SetDefault("provider.top_p", 1.0)
	v.SetDefault("provider.frequency_penalty", 0.0)
	v.SetDefault("provider.presence_penalty", 0.0)

	v.SetDefault("session.backend", BackendMemory)
	v.SetDefault("session.cookie_name", "session")
	v.SetDefault("session.ttl", 31*24*time.Hour)

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// envBindings maps config keys to the environment variables that override
// them, first match wins.
var envBindings = map[string][]string{
	"server.addr":       {"LISTEN_ADDR"},
	"provider.api_key":  {"GROQ_API_KEY", "groq_api"},
	"provider.base_url": {"PROVIDER_BASE_URL"},
	"provider.model":    {"PROVIDER_MODEL"},
	"session.backend":   {"SESSION_BACKEND"},
	"session.secret":    {"SECRET_KEY"},
	"session.ttl":       {"SESSION_TTL"},
	"redis.address":     {"REDIS_ADDRESS"},
	"redis.password":    {"REDIS_PASSWORD"},
	"redis.db":          {"REDIS_DB"},
	"database.url":      {"DATABASE_URL"},
	"logging.level":     {"LOG_LEVEL"},
	"logging.format":    {"LOG_FORMAT"},
}

func bindEnv(v *viper.Viper) error {
	for key, names := range envBindings {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	// PORT is the conventional knob on hosted platforms.
	if port := os.Getenv("PORT"); port != "" && os.Getenv("LISTEN_ADDR") == "" {
		v.Set("server.addr", ":"+port)
	}
	return nil
}
