package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/man-in-dev/goal-backend-sub001/pkg/config"
)

func TestRetryPolicyDelayDoublesUntilCap(t *testing.T) {
	policy := RetryPolicy{Initial: time.Second, Max: 30 * time.Second}

	expected := []time.Duration{
		time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
		30 * time.Second,
		30 * time.Second,
	}
	for attempt, want := range expected {
		assert.Equal(t, want, policy.Delay(attempt), "attempt %d", attempt)
	}
	assert.Equal(t, 30*time.Second, policy.Delay(500))
}

func TestRetryPolicyDefaults(t *testing.T) {
	policy := RetryPolicy{}
	assert.Equal(t, time.Second, policy.Delay(0))
	assert.Equal(t, time.Second, policy.Delay(3))
}

func TestNewRetryPolicyFromConfig(t *testing.T) {
	policy := NewRetryPolicy(config.MongoConfig{RetryInitial: 2 * time.Second, RetryMax: time.Minute, RetryAttempts: 5})
	assert.Equal(t, RetryPolicy{Initial: 2 * time.Second, Max: time.Minute, MaxAttempts: 5}, policy)
}

func TestWaitForRetriesUntilPingSucceeds(t *testing.T) {
	calls := 0
	ping := func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	}

	err := WaitFor(context.Background(), "mongo", ping, RetryPolicy{Initial: time.Millisecond, Max: 2 * time.Millisecond}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWaitForGivesUpAfterMaxAttempts(t *testing.T) {
	calls := 0
	ping := func(context.Context) error {
		calls++
		return errors.New("connection refused")
	}

	err := WaitFor(context.Background(), "mongo", ping, RetryPolicy{Initial: time.Millisecond, Max: time.Millisecond, MaxAttempts: 2}, nil)
	require.Error(t, err)
	assert.Equal(t, 2, calls)
	assert.Contains(t, err.Error(), "after 2 attempts")
}

func TestWaitForStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ping := func(context.Context) error {
		cancel()
		return errors.New("connection refused")
	}

	err := WaitFor(ctx, "mongo", ping, RetryPolicy{Initial: time.Hour, Max: time.Hour}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewMongoRejectsMalformedURI(t *testing.T) {
	_, err := NewMongo(context.Background(), config.MongoConfig{URI: "not-a-uri", Database: "goal"})
	require.Error(t, err)
}

func TestAuditDSN(t *testing.T) {
	dsn := AuditDSN(config.AuditConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "audit", SSLMode: "disable"})
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=audit sslmode=disable", dsn)
}
