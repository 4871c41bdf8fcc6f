package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/chat")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "http://localhost:8080", cfg.SiteBaseURL)
	assert.Equal(t, time.Second, cfg.BotUnavailableDelay)
	assert.Equal(t, 2*time.Second, cfg.ChatReplyDelay)
	assert.Equal(t, 5*time.Minute, cfg.ContentCacheTTL)
	assert.Equal(t, 30, cfg.ChatRateLimit)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.False(t, cfg.AdminEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg *Config)
	}{
		{
			"trims trailing slash from site URL",
			map[string]string{"SITE_BASE_URL": "https://docs.example.org/"},
			func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://docs.example.org", cfg.SiteBaseURL)
			},
		},
		{
			"splits allowed origins",
			map[string]string{"ALLOWED_ORIGINS": "https://a.example.org, ,https://b.example.org"},
			func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"https://a.example.org", "https://b.example.org"}, cfg.AllowedOrigins)
			},
		},
		{
			"parses delays",
			map[string]string{"BOT_UNAVAILABLE_DELAY": "0s", "CHAT_REPLY_DELAY": "250ms"},
			func(t *testing.T, cfg *Config) {
				assert.Equal(t, time.Duration(0), cfg.BotUnavailableDelay)
				assert.Equal(t, 250*time.Millisecond, cfg.ChatReplyDelay)
			},
		},
		{
			"falls back on non-positive rate limit",
			map[string]string{"CHAT_RATE_LIMIT": "0"},
			func(t *testing.T, cfg *Config) {
				assert.Equal(t, 30, cfg.ChatRateLimit)
			},
		},
		{
			"admin enabled with secret and hash",
			map[string]string{"JWT_SECRET": "s3cret", "ADMIN_PASSWORD_HASH": "$2a$10$abc"},
			func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.AdminEnabled())
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgres://localhost/chat")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			require.NoError(t, err)
			tc.check(t, cfg)
		})
	}
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/chat")
	t.Setenv("CHAT_REPLY_DELAY", "soon")

	_, err := Load()
	assert.Error(t, err)
}
