package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/man-in-dev/goal-backend-sub001/internal/models"
	"github.com/man-in-dev/goal-backend-sub001/internal/repository"
	appErrors "github.com/man-in-dev/goal-backend-sub001/pkg/errors"
	"github.com/man-in-dev/goal-backend-sub001/pkg/export"
	"github.com/man-in-dev/goal-backend-sub001/pkg/schema"
)

type submissionStore[T any] interface {
	Insert(ctx context.Context, doc *T) error
	FindByID(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, query models.ListQuery) ([]T, int64, error)
	FindAll(ctx context.Context, query models.ListQuery) ([]T, error)
	Exists(ctx context.Context, filter bson.M) (bool, error)
	UpdateStatus(ctx context.Context, id, status string) (*T, error)
	Delete(ctx context.Context, id string) (*T, error)
}

type fileRemover interface {
	Delete(filename string) error
}

type submissionGuard interface {
	AcquireGuard(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// FormDefinition describes one public form resource.
type FormDefinition struct {
	// Name is the collection style plural used for metrics, audit and export file names.
	Name string
	// Noun is used in messages such as "Enquiry not found".
	Noun  string
	Title string
	// TerminalStatuses are excluded from duplicate detection so a closed
	// record does not block a fresh submission.
	TerminalStatuses []string
	DuplicateMessage string
	ExportHeaders    []string
}

// Actor identifies who performed an admin operation.
type Actor struct {
	UserID    string
	IP        string
	UserAgent string
}

// ExportFile is a rendered export ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// SubmissionService implements submit, review and export for a form resource.
type SubmissionService[T any, PT interface {
	*T
	models.Submission
}] struct {
	def      FormDefinition
	store    submissionStore[T]
	files    fileRemover
	guard    submissionGuard
	guardTTL time.Duration
	metrics  *MetricsService
	audit    *AuditService
	logger   *zap.Logger
	now      func() time.Time
}

// SubmissionDeps groups the optional collaborators of a SubmissionService.
type SubmissionDeps struct {
	Files    fileRemover
	Guard    submissionGuard
	GuardTTL time.Duration
	Metrics  *MetricsService
	Audit    *AuditService
	Logger   *zap.Logger
}

// NewSubmissionService constructs a SubmissionService.
func NewSubmissionService[T any, PT interface {
	*T
	models.Submission
}](def FormDefinition, store submissionStore[T], deps SubmissionDeps) *SubmissionService[T, PT] {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if def.DuplicateMessage == "" {
		def.DuplicateMessage = fmt.Sprintf("A %s with these details already exists", strings.ToLower(def.Noun))
	}
	return &SubmissionService[T, PT]{
		def:      def,
		store:    store,
		files:    deps.Files,
		guard:    deps.Guard,
		guardTTL: deps.GuardTTL,
		metrics:  deps.Metrics,
		audit:    deps.Audit,
		logger:   logger.With(zap.String("form", def.Name)),
		now:      time.Now,
	}
}

// Definition exposes the form definition.
func (s *SubmissionService[T, PT]) Definition() FormDefinition {
	return s.def
}

// Submit stores a validated submission. files maps upload fields to stored names.
func (s *SubmissionService[T, PT]) Submit(ctx context.Context, doc schema.Document, files map[string]string) (*T, error) {
	var item T
	if err := schema.Decode(doc, &item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode "+strings.ToLower(s.def.Noun))
	}
	record := PT(&item)
	if attachable, ok := any(record).(models.Attachable); ok {
		for field, stored := range files {
			attachable.Attach(field, stored)
		}
	}

	if key := record.NaturalKey(); key != nil {
		if err := s.checkDuplicate(ctx, key); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	err := s.store.Insert(ctx, &item)
	s.metrics.ObserveDBQuery(s.def.Name, "insert", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save "+strings.ToLower(s.def.Noun))
	}

	s.metrics.RecordSubmission(s.def.Name)
	s.logger.Info("submission stored", zap.String("id", record.Base().ID.Hex()), zap.String("status", record.CurrentStatus()))
	return &item, nil
}

func (s *SubmissionService[T, PT]) checkDuplicate(ctx context.Context, key map[string]interface{}) error {
	filter := bson.M{}
	for field, value := range key {
		filter[field] = value
	}
	if len(s.def.TerminalStatuses) > 0 {
		filter["status"] = bson.M{"$nin": s.def.TerminalStatuses}
	}

	exists, err := s.store.Exists(ctx, filter)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check for duplicates")
	}
	if exists {
		s.metrics.RecordDuplicate(s.def.Name)
		return appErrors.Clone(appErrors.ErrDuplicate, s.def.DuplicateMessage)
	}

	if s.guard == nil {
		return nil
	}
	acquired, err := s.guard.AcquireGuard(ctx, s.def.Name+":"+GuardKey(key), s.guardTTL)
	if err != nil {
		s.logger.Warn("submission guard unavailable", zap.Error(err))
		return nil
	}
	if !acquired {
		s.metrics.RecordDuplicate(s.def.Name)
		return appErrors.Clone(appErrors.ErrDuplicate, s.def.DuplicateMessage)
	}
	return nil
}

// List returns one page of submissions.
func (s *SubmissionService[T, PT]) List(ctx context.Context, query models.ListQuery) ([]T, *models.Pagination, error) {
	query = query.Normalize()
	start := time.Now()
	items, total, err := s.store.List(ctx, query)
	s.metrics.ObserveDBQuery(s.def.Name, "list", time.Since(start))
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list "+s.def.Name)
	}
	return items, models.NewPagination(query, total), nil
}

// Get returns a submission by id.
func (s *SubmissionService[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	item, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, "failed to load")
	}
	return item, nil
}

// UpdateStatus sets the status. Any status may follow any other.
func (s *SubmissionService[T, PT]) UpdateStatus(ctx context.Context, id, status, remarks string, actor Actor) (*T, error) {
	item, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, s.mapLookupError(err, "failed to update")
	}

	values := map[string]interface{}{"status": status}
	if remarks != "" {
		values["remarks"] = remarks
	}
	s.record(ctx, models.AuditActionStatusUpdate, id, values, actor)
	return item, nil
}

// Delete removes a submission and every file it references.
func (s *SubmissionService[T, PT]) Delete(ctx context.Context, id string, actor Actor) error {
	item, err := s.store.Delete(ctx, id)
	if err != nil {
		return s.mapLookupError(err, "failed to delete")
	}

	if s.files != nil {
		for _, name := range PT(item).Attachments() {
			if err := s.files.Delete(name); err != nil {
				s.logger.Warn("failed to remove attachment", zap.String("file", name), zap.Error(err))
			}
		}
	}

	s.record(ctx, models.AuditActionDelete, id, nil, actor)
	return nil
}

// Export renders every submission matching the query filters.
func (s *SubmissionService[T, PT]) Export(ctx context.Context, query models.ListQuery, format export.Format, actor Actor) (*ExportFile, error) {
	renderer, err := export.For(format)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Format must be one of: csv, pdf")
	}

	items, err := s.store.FindAll(ctx, query)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load "+s.def.Name)
	}

	rows := make([]map[string]string, 0, len(items))
	for i := range items {
		rows = append(rows, PT(&items[i]).ExportRow())
	}

	payload, err := renderer.Render(export.Dataset{Title: s.def.Title, Headers: s.def.ExportHeaders, Rows: rows})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	s.record(ctx, models.AuditActionExport, "", map[string]interface{}{"format": renderer.Extension(), "rows": len(rows)}, actor)
	return &ExportFile{
		Filename:    export.Filename(s.def.Name, s.now().UTC().Format("20060102"), renderer),
		ContentType: renderer.ContentType(),
		Data:        payload,
	}, nil
}

func (s *SubmissionService[T, PT]) mapLookupError(err error, action string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return appErrors.Clone(appErrors.ErrNotFound, s.def.Noun+" not found")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, action+" "+strings.ToLower(s.def.Noun))
}

func (s *SubmissionService[T, PT]) record(ctx context.Context, action, id string, values map[string]interface{}, actor Actor) {
	entry := &models.AuditLog{
		Action:    action,
		Resource:  s.def.Name,
		IPAddress: actor.IP,
		UserAgent: actor.UserAgent,
	}
	if values != nil {
		entry.NewValues = AuditValues(values)
	}
	if id != "" {
		entry.ResourceID = &id
	}
	if actor.UserID != "" {
		entry.UserID = &actor.UserID
	}
	s.audit.Record(ctx, entry)
}

// GuardKey derives a stable identifier for a natural key. String values are
// compared case-insensitively.
func GuardKey(key map[string]interface{}) string {
	fields := make([]string, 0, len(key))
	for field := range key {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+"="+strings.ToLower(fmt.Sprint(key[field])))
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.Join(parts, "|"))).String()
}
