package services

import (
	"context"
	"time"

	"supportchat-backend/internal/database"
)

// Cache is the string cache used for settings and content lookups.
// Get returns database.ErrCacheMiss for absent keys.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// noopCache is used when Redis is not configured.
type noopCache struct{}

func (noopCache) Get(context.Context, string) (string, error) {
	return "", database.ErrCacheMiss
}

func (noopCache) Set(context.Context, string, string, time.Duration) error { return nil }

func (noopCache) Delete(context.Context, ...string) error { return nil }

func cacheOrNoop(c Cache) Cache {
	if c == nil {
		return noopCache{}
	}
	return c
}
