package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port           string   `env:"PORT" envDefault:"8080"`
	Env            string   `env:"ENV" envDefault:"development"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	SiteBaseURL    string   `env:"SITE_BASE_URL" envDefault:"http://localhost:8080"`

	// Database
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// Redis (optional, enables caching)
	RedisURL string `env:"REDIS_URL"`

	// Admin
	JWTSecret         string `env:"JWT_SECRET"`
	AdminUsername     string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`

	// Chat
	BotUnavailableDelay time.Duration `env:"BOT_UNAVAILABLE_DELAY" envDefault:"1s"`
	ChatReplyDelay      time.Duration `env:"CHAT_REPLY_DELAY" envDefault:"2s"`
	ContentCacheTTL     time.Duration `env:"CONTENT_CACHE_TTL" envDefault:"5m"`
	ChatRateLimit       int           `env:"CHAT_RATE_LIMIT" envDefault:"30"`
	SettingsSeedFile    string        `env:"SETTINGS_SEED_FILE"`
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.SiteBaseURL = strings.TrimRight(cfg.SiteBaseURL, "/")
	cfg.AllowedOrigins = trimEmpty(cfg.AllowedOrigins)
	if cfg.ChatRateLimit <= 0 {
		cfg.ChatRateLimit = 30
	}

	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// AdminEnabled reports whether the admin API can issue tokens at all.
func (c *Config) AdminEnabled() bool {
	return c.JWTSecret != "" && c.AdminPasswordHash != ""
}

func trimEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
