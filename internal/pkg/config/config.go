package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string `env:"PORT,          default=8080"`
	Env         string `env:"ENV,           default=development"`
	LogLevel    string `env:"LOG_LEVEL,     default=info"`
	APIBasePath string `env:"API_BASE_PATH, default=/api/v1"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"JWT_TTL,     default=24h"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=admin_auth"`
}

// RedisConfig is optional; an empty Addr disables Redis.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

var (
	ErrMissingJWTSecret = errors.New("config: JWT_SECRET must be set")
	ErrInvalidBcrypt    = errors.New("config: BCRYPT_COST must be between 4 and 31")
)

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the service cannot run safely with.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return ErrInvalidBcrypt
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
