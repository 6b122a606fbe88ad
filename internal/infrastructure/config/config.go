package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// AccessTokenSecret signs every access token. Deliberately no default:
	// a missing secret must fail startup, not mint forgeable tokens.
	AccessTokenSecret string `env:"ACCESS_TOKEN_SECRET"`

	TokenTTL time.Duration `env:"TOKEN_TTL, default=720h"`
	OTPTTL   time.Duration `env:"OTP_TTL,   default=10m"`

	// OTPStore selects where pending verification codes live: "memory"
	// (single instance) or "redis" (shared across instances).
	OTPStore string `env:"OTP_STORE, default=memory"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=gourmetcare"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// IsProduction gates production-only behaviour such as the Secure cookie
// attribute and suppressing the OTP echo in responses.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
