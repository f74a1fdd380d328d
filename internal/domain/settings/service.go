package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	cacheKey = "settings:policy"
	cacheTTL = 5 * time.Minute
)

// PolicyRepository is the persistence dependency of the service.
type PolicyRepository interface {
	Get(ctx context.Context) (*Policy, error)
	Upsert(ctx context.Context, p *Policy) error
}

// Service reads the booking policy through a Redis cache. The policy is
// consulted on every availability request, so the hot path avoids the DB.
type Service struct {
	repo  PolicyRepository
	redis *redis.Client // optional, nil disables caching
}

// NewService creates the settings service
func NewService(repo PolicyRepository, redisClient *redis.Client) *Service {
	return &Service{repo: repo, redis: redisClient}
}

// Resolved returns the current policy with defaults applied.
func (s *Service) Resolved(ctx context.Context) (Resolved, error) {
	if s.redis != nil {
		val, err := s.redis.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var r Resolved
			if jsonErr := json.Unmarshal(val, &r); jsonErr == nil {
				return r, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("Settings cache read failed, falling back to DB")
		}
	}

	p, err := s.repo.Get(ctx)
	if err != nil {
		return Resolved{}, fmt.Errorf("load booking policy: %w", err)
	}
	r := p.Resolve()

	if s.redis != nil {
		if data, err := json.Marshal(r); err == nil {
			if err := s.redis.Set(ctx, cacheKey, data, cacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("Settings cache write failed")
			}
		}
	}

	return r, nil
}

// Raw returns the stored policy row without defaulting; nil when unset.
func (s *Service) Raw(ctx context.Context) (*Policy, error) {
	return s.repo.Get(ctx)
}

// Update replaces the policy and invalidates the cache.
func (s *Service) Update(ctx context.Context, p *Policy) error {
	if err := s.repo.Upsert(ctx, p); err != nil {
		return fmt.Errorf("store booking policy: %w", err)
	}
	if s.redis != nil {
		if err := s.redis.Del(ctx, cacheKey).Err(); err != nil {
			log.Warn().Err(err).Msg("Settings cache invalidation failed")
		}
	}
	return nil
}
