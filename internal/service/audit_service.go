package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/man-in-dev/goal-backend-sub001/internal/models"
	appErrors "github.com/man-in-dev/goal-backend-sub001/pkg/errors"
)

// AuditStore persists audit entries.
type AuditStore interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
	List(ctx context.Context, query models.ListQuery) ([]models.AuditLog, int64, error)
}

type auditQueue interface {
	Enqueue(entry *models.AuditLog) error
}

// AuditService records admin activity. With a nil store it records nothing and lists nothing.
type AuditService struct {
	store  AuditStore
	queue  auditQueue
	logger *zap.Logger
}

// NewAuditService constructs an AuditService.
func NewAuditService(store AuditStore, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{store: store, logger: logger}
}

// WithQueue hands entries to q instead of writing them inline. The queue's
// handler is expected to call Write.
func (s *AuditService) WithQueue(q auditQueue) *AuditService {
	if s != nil {
		s.queue = q
	}
	return s
}

// Enabled reports whether entries are persisted.
func (s *AuditService) Enabled() bool {
	return s != nil && s.store != nil
}

// Record stores an entry. Failures are logged and never surface to the caller.
func (s *AuditService) Record(ctx context.Context, entry *models.AuditLog) {
	if !s.Enabled() || entry == nil {
		return
	}
	if s.queue != nil {
		err := s.queue.Enqueue(entry)
		if err == nil {
			return
		}
		s.logger.Warn("audit queue rejected entry, writing inline", zap.Error(err))
	}
	if err := s.Write(ctx, entry); err != nil {
		s.logger.Warn("failed to record audit log",
			zap.String("action", entry.Action),
			zap.String("resource", entry.Resource),
			zap.Error(err),
		)
	}
}

// Write persists entry immediately.
func (s *AuditService) Write(ctx context.Context, entry *models.AuditLog) error {
	if !s.Enabled() {
		return nil
	}
	return s.store.CreateAuditLog(ctx, entry)
}

// List returns one page of entries, newest first.
func (s *AuditService) List(ctx context.Context, query models.ListQuery) ([]models.AuditLog, *models.Pagination, error) {
	query = query.Normalize()
	if !s.Enabled() {
		return []models.AuditLog{}, models.NewPagination(query, 0), nil
	}
	logs, total, err := s.store.List(ctx, query)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list audit logs")
	}
	return logs, models.NewPagination(query, total), nil
}

// AuditValues marshals v for the new_values column, dropping it when it cannot be encoded.
func AuditValues(v interface{}) json.RawMessage {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return raw
}
