package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"supportchat-backend/internal/database"
	"supportchat-backend/internal/metrics"
	"supportchat-backend/internal/models"
)

// absentMarker is cached for categories that resolve to nothing.
const absentMarker = "-"

type contentRepository interface {
	FirstTermByName(ctx context.Context, name string) (*models.Term, error)
	FirstNodeByTerm(ctx context.Context, termID int64) (*models.Node, error)
}

// ContentResolver maps a bot category to the canonical URL of a content item
// tagged with a term of the same name. Only the first term and the first node
// are considered.
type ContentResolver struct {
	repo    contentRepository
	cache   Cache
	ttl     time.Duration
	baseURL string
	logger  zerolog.Logger
}

func NewContentResolver(repo contentRepository, cache Cache, ttl time.Duration, baseURL string, logger zerolog.Logger) *ContentResolver {
	return &ContentResolver{
		repo:    repo,
		cache:   cacheOrNoop(cache),
		ttl:     ttl,
		baseURL: baseURL,
		logger:  logger.With().Str("component", "content_lookup").Logger(),
	}
}

// Resolve returns the absolute URL for category and whether one was found.
func (c *ContentResolver) Resolve(ctx context.Context, category string) (string, bool, error) {
	key := "content_lookup:" + category

	cached, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		metrics.ContentLookups.WithLabelValues("cached").Inc()
		if cached == absentMarker {
			return "", false, nil
		}
		return cached, true, nil
	case !errors.Is(err, database.ErrCacheMiss):
		c.logger.Warn().Err(err).Str("category", category).Msg("lookup cache read failed")
	}

	url, found, err := c.lookup(ctx, category)
	if err != nil {
		metrics.ContentLookups.WithLabelValues("error").Inc()
		return "", false, err
	}

	value := absentMarker
	if found {
		value = url
		metrics.ContentLookups.WithLabelValues("found").Inc()
	} else {
		metrics.ContentLookups.WithLabelValues("absent").Inc()
	}
	if c.ttl > 0 {
		if err := c.cache.Set(ctx, key, value, c.ttl); err != nil {
			c.logger.Warn().Err(err).Str("category", category).Msg("lookup cache write failed")
		}
	}

	return url, found, nil
}

func (c *ContentResolver) lookup(ctx context.Context, category string) (string, bool, error) {
	term, err := c.repo.FirstTermByName(ctx, category)
	if err != nil {
		return "", false, fmt.Errorf("failed to load term %q: %w", category, err)
	}
	if term == nil {
		return "", false, nil
	}

	// TODO: return every tagged node once the widget can render a list of links.
	node, err := c.repo.FirstNodeByTerm(ctx, term.ID)
	if err != nil {
		return "", false, fmt.Errorf("failed to load node for term %d: %w", term.ID, err)
	}
	if node == nil {
		return "", false, nil
	}

	return c.baseURL + node.CanonicalPath(), true, nil
}
