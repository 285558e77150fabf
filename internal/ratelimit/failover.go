package ratelimit

import (
	"context"
	"sync/atomic"
	"time"

	"renthub/internal/domain"

	"github.com/rs/zerolog"
)

// FailoverStore serves limits from the primary store and falls back to the
// secondary while the primary is failing, retrying it after a minute.
type FailoverStore struct {
	primary   domain.RateLimitStore
	fallback  domain.RateLimitStore
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

func NewFailoverStore(primary, fallback domain.RateLimitStore, logger *zerolog.Logger) *FailoverStore {
	return &FailoverStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (s *FailoverStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if !s.isDown.Load() {
		allowed, err := s.primary.Allow(ctx, key, limit, window)
		if err == nil {
			return allowed, nil
		}
		s.logger.Error().Err(err).Msg("primary rate limit store failed, falling back to memory")
		s.isDown.Store(true)
		s.lastCheck.Store(time.Now().UnixNano())
	}

	// Try to recover after a minute.
	if s.isDown.Load() && time.Since(time.Unix(0, s.lastCheck.Load())) > time.Minute {
		allowed, err := s.primary.Allow(ctx, key, limit, window)
		if err == nil {
			s.isDown.Store(false)
			return allowed, nil
		}
		s.lastCheck.Store(time.Now().UnixNano())
	}

	return s.fallback.Allow(ctx, key, limit, window)
}
