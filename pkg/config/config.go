package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// HTTP holds the HTTP server settings.
type HTTP struct {
	Port            string
	ReadTimeoutSec  int
	WriteTimeoutSec int
}

// DB holds the PostgreSQL connection settings.
type DB struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWT holds token issuing settings.
type JWT struct {
	Secret string
	TTLMin int
}

// Config is the full application configuration, loaded from the
// environment (optionally seeded from a .env file).
type Config struct {
	ServiceName    string
	Environment    string
	LogLevel       string
	JaegerEndpoint string
	HTTP           HTTP
	DB             DB
	JWT            JWT
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// TokenTTL returns the configured access token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.TTLMin) * time.Minute
}

// Load reads configuration from environment variables with sane local
// defaults. A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("SERVICE_NAME", "online-store")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JAEGER_ENDPOINT", "http://localhost:14268/api/traces")

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("HTTP_READ_TIMEOUT_SEC", 15)
	v.SetDefault("HTTP_WRITE_TIMEOUT_SEC", 15)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "storedb")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("JWT_SECRET", "dev-secret-change-me")
	v.SetDefault("JWT_TTL_MIN", 60)

	cfg := &Config{
		ServiceName:    v.GetString("SERVICE_NAME"),
		Environment:    v.GetString("ENVIRONMENT"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		JaegerEndpoint: v.GetString("JAEGER_ENDPOINT"),
		HTTP: HTTP{
			Port:            v.GetString("HTTP_PORT"),
			ReadTimeoutSec:  v.GetInt("HTTP_READ_TIMEOUT_SEC"),
			WriteTimeoutSec: v.GetInt("HTTP_WRITE_TIMEOUT_SEC"),
		},
		DB: DB{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		JWT: JWT{
			Secret: v.GetString("JWT_SECRET"),
			TTLMin: v.GetInt("JWT_TTL_MIN"),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}
	return cfg, nil
}
