package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/man-in-dev/goal-backend-sub001/pkg/config"
)

// Mongo bundles the driver client with the application database handle.
type Mongo struct {
	Client  *mongo.Client
	DB      *mongo.Database
	timeout time.Duration
}

// NewMongo configures a client. The driver dials lazily, so an unreachable
// server is not an error here; only a malformed URI is.
func NewMongo(ctx context.Context, cfg config.MongoConfig) (*Mongo, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("configure mongo client: %w", err)
	}

	return &Mongo{Client: client, DB: client.Database(cfg.Database), timeout: timeout}, nil
}

// Ping checks the primary is reachable.
func (m *Mongo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return m.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// RetryPolicy is a capped exponential backoff. MaxAttempts of zero never gives up.
type RetryPolicy struct {
	Initial     time.Duration
	Max         time.Duration
	MaxAttempts int
}

// NewRetryPolicy reads the retry settings from the mongo config.
func NewRetryPolicy(cfg config.MongoConfig) RetryPolicy {
	return RetryPolicy{Initial: cfg.RetryInitial, Max: cfg.RetryMax, MaxAttempts: cfg.RetryAttempts}
}

// Delay returns the wait before the given zero based retry attempt.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	initial := p.Initial
	if initial <= 0 {
		initial = time.Second
	}
	ceiling := p.Max
	if ceiling < initial {
		ceiling = initial
	}
	if attempt < 0 {
		attempt = 0
	}
	if attempt > 30 {
		return ceiling
	}
	backoff := initial * time.Duration(1<<uint(attempt))
	if backoff > ceiling || backoff <= 0 {
		return ceiling
	}
	return backoff
}

// WaitFor calls ping until it succeeds, the context ends or the policy runs out
// of attempts. Failures are logged and never terminate the process.
func WaitFor(ctx context.Context, name string, ping func(context.Context) error, policy RetryPolicy, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	for attempt := 0; ; attempt++ {
		err := ping(ctx)
		if err == nil {
			logger.Info("datastore connected", zap.String("store", name), zap.Int("attempt", attempt+1))
			return nil
		}
		if policy.MaxAttempts > 0 && attempt+1 >= policy.MaxAttempts {
			return fmt.Errorf("%s unreachable after %d attempts: %w", name, attempt+1, err)
		}

		delay := policy.Delay(attempt)
		logger.Warn("datastore unreachable, retrying",
			zap.String("store", name),
			zap.Int("attempt", attempt+1),
			zap.Duration("retry_in", delay),
			zap.Error(err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
