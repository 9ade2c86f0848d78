package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	WordPress WordPressConfig
	SendGrid  SendGridConfig
	Cookies   CookieConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

type WordPressConfig struct {
	BaseURL string        `env:"WP_BASE_URL, default=https://wp.tributestream.com"`
	Timeout time.Duration `env:"WP_TIMEOUT,  default=10s"`
}

type SendGridConfig struct {
	APIKey     string `env:"SENDGRID_API_KEY"`
	Sender     string `env:"EMAIL_SENDER,      default=tributestream@tributestream.com"`
	StaffEmail string `env:"STAFF_EMAIL,       default=tributestream@gmail.com"`
}

type CookieConfig struct {
	// SessionTTL bounds the session_token cookie; the token's own exp claim
	// caps it further when shorter.
	SessionTTL time.Duration `env:"COOKIE_SESSION_TTL, default=168h"`
	ProfileTTL time.Duration `env:"COOKIE_PROFILE_TTL, default=24h"`
	Secure     bool          `env:"COOKIE_SECURE,      default=true"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=tributestream"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
