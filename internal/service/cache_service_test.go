package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheServiceDisabledIsPassThrough(t *testing.T) {
	svc := NewCacheService(newMockCacheRepo(), nil, 0, nil, false)
	assert.False(t, svc.Enabled())

	var dest string
	hit, err := svc.Get(context.Background(), "key", &dest)
	require.NoError(t, err)
	assert.False(t, hit)

	acquired, err := svc.AcquireGuard(context.Background(), "enquiries:abc", time.Second)
	require.NoError(t, err)
	assert.True(t, acquired)

	revoked, err := svc.IsRevoked(context.Background(), "jti")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestCacheServiceRecordsHitsAndMisses(t *testing.T) {
	metrics := NewMetricsService()
	svc := NewCacheService(newMockCacheRepo(), metrics, time.Minute, nil, true)

	var dest string
	hit, err := svc.Get(context.Background(), "missing", &dest)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, svc.Set(context.Background(), "present", "value", 0))
	hit, err = svc.Get(context.Background(), "present", &dest)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "value", dest)

	snapshot := metrics.Snapshot()
	assert.Equal(t, uint64(1), snapshot.CacheHits)
	assert.Equal(t, uint64(1), snapshot.CacheMisses)
	assert.InDelta(t, 0.5, snapshot.CacheHitRatio, 0.0001)
}

func TestCacheServiceGuardIsSingleUse(t *testing.T) {
	repo := newMockCacheRepo()
	svc := NewCacheService(repo, nil, time.Minute, nil, true)

	first, err := svc.AcquireGuard(context.Background(), "enquiries:abc", time.Second)
	require.NoError(t, err)
	second, err := svc.AcquireGuard(context.Background(), "enquiries:abc", time.Second)
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)
	assert.Contains(t, repo.values, "guard:enquiries:abc")
}

func TestCacheServiceRevokeSkipsExpiredTokens(t *testing.T) {
	repo := newMockCacheRepo()
	svc := NewCacheService(repo, nil, time.Minute, nil, true)

	require.NoError(t, svc.Revoke(context.Background(), "expired", -time.Second))
	require.NoError(t, svc.Revoke(context.Background(), "live", time.Minute))

	assert.NotContains(t, repo.values, "blacklist:expired")
	revoked, err := svc.IsRevoked(context.Background(), "live")
	require.NoError(t, err)
	assert.True(t, revoked)
}
