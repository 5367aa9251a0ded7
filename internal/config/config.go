package config

import (
	"fmt"
	"time"
)

// Config is the full application configuration.  It is loaded once at
// startup and handed to constructors; nothing mutates it afterwards.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Provider ProviderConfig `mapstructure:"provider"`
	Session  SessionConfig  `mapstructure:"session"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// ProviderConfig describes the chat completion endpoint and the fixed
// generation parameters sent with every request.
type ProviderConfig struct {
	Name             string  `mapstructure:"name"`
	APIKey           string  `mapstructure:"api_key"`
	BaseURL          string  `mapstructure:"base_url"`
	Model            string  `mapstructure:"model"`
	Temperature      float32 `mapstructure:"temperature"`
	MaxTokens        int     `mapstructure:"max_tokens"`
	TopP             float32 `mapstructure:"top_p"`
	FrequencyPenalty float32 `mapstructure:"frequency_penalty"`
	PresencePenalty  float32 `mapstructure:"presence_penalty"`
}

// Session backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type SessionConfig struct {
	Backend    string        `mapstructure:"backend"`
	Secret     string        `mapstructure:"secret"`
	CookieName string        `mapstructure:"cookie_name"`
	TTL        time.Duration `mapstructure:"ttl"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func validateConfig(cfg *Config) error {
	switch cfg.Session.Backend {
	case BackendMemory:
	case BackendRedis:
		if cfg.Redis.Address == "" {
			return fmt.Errorf("redis.address is required for the redis session backend")
		}
	case BackendPostgres:
		if cfg.Database.URL == "" {
			return fmt.Errorf("database.url is required for the postgres session backend")
		}
	default:
		return fmt.Errorf("unsupported session backend: %q (supported: memory, redis, postgres)", cfg.Session.Backend)
	}
	if cfg.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}
	if cfg.Provider.MaxTokens <= 0 {
		return fmt.Errorf("provider.max_tokens must be positive")
	}
	return nil
}
