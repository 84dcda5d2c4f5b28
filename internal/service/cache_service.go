package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/man-in-dev/goal-backend-sub001/pkg/errors"
)

// CacheRepository abstracts persistence for cached payloads and short lived markers.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	SetIfAbsent(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Exists(ctx context.Context, key string) (bool, error)
	DeleteByPattern(ctx context.Context, pattern string) error
}

const (
	guardKeyPrefix     = "guard:"
	blacklistKeyPrefix = "blacklist:"
)

// CacheService orchestrates cache operations and related metrics.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Get attempts to retrieve a cached entry. It returns true when the cache was hit.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	duration := time.Since(start)
	if err != nil {
		s.metrics.RecordCacheOperation(false, duration)
		if errors.Is(err, appErrors.ErrCacheMiss) {
			return false, nil
		}
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return false, err
	}
	s.metrics.RecordCacheOperation(true, duration)
	return true, nil
}

// Set stores the value in cache.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	start := time.Now()
	err := s.repo.Set(ctx, key, value, ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

// Invalidate removes cached values for the provided pattern.
func (s *CacheService) Invalidate(ctx context.Context, pattern string) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.repo.DeleteByPattern(ctx, pattern); err != nil {
		s.logger.Warn("cache invalidate failed", zap.String("pattern", pattern), zap.Error(err))
		return err
	}
	return nil
}

// AcquireGuard claims a submission guard for key. Without a cache it always succeeds,
// leaving the read-then-write check as the only protection.
func (s *CacheService) AcquireGuard(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if !s.Enabled() {
		return true, nil
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return s.repo.SetIfAbsent(ctx, guardKeyPrefix+key, ttl)
}

// Revoke blacklists a token id until it would have expired anyway.
func (s *CacheService) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if !s.Enabled() || tokenID == "" || ttl <= 0 {
		return nil
	}
	return s.repo.Set(ctx, blacklistKeyPrefix+tokenID, true, ttl)
}

// IsRevoked reports whether a token id was blacklisted.
func (s *CacheService) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if !s.Enabled() || tokenID == "" {
		return false, nil
	}
	return s.repo.Exists(ctx, blacklistKeyPrefix+tokenID)
}
