package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/man-in-dev/goal-backend-sub001/internal/models"
	"github.com/man-in-dev/goal-backend-sub001/internal/repository"
	appErrors "github.com/man-in-dev/goal-backend-sub001/pkg/errors"
	"github.com/man-in-dev/goal-backend-sub001/pkg/schema"
)

type catalogStore[T any] interface {
	Insert(ctx context.Context, doc *T) error
	FindByID(ctx context.Context, id string) (*T, error)
	FindAll(ctx context.Context, query models.ListQuery) ([]T, error)
	Update(ctx context.Context, id string, set bson.M) (*T, error)
	Delete(ctx context.Context, id string) (*T, error)
}

type catalogCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, pattern string) error
}

// CatalogDefinition describes a publisher managed reference list.
type CatalogDefinition struct {
	Name string
	Noun string
}

// Reference catalogs shown on the public site.
var (
	GAETDateCatalog          = CatalogDefinition{Name: "gaet-dates", Noun: "GAET date"}
	AITSVideoSolutionCatalog = CatalogDefinition{Name: "aits-video-solutions", Noun: "Video solution"}
)

// CatalogService manages reference records and caches the public listing.
type CatalogService[T any, PT interface {
	*T
	models.Document
}] struct {
	def    CatalogDefinition
	store  catalogStore[T]
	cache  catalogCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCatalogService constructs a CatalogService. cache may be nil. Writes are
// audited by the routing layer.
func NewCatalogService[T any, PT interface {
	*T
	models.Document
}](def CatalogDefinition, store catalogStore[T], cache catalogCache, ttl time.Duration, logger *zap.Logger) *CatalogService[T, PT] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService[T, PT]{def: def, store: store, cache: cache, ttl: ttl, logger: logger.With(zap.String("catalog", def.Name))}
}

// ListActive returns the active records matching filters, served from cache when possible.
func (s *CatalogService[T, PT]) ListActive(ctx context.Context, filters map[string]interface{}) ([]T, error) {
	query := models.ListQuery{Filters: map[string]interface{}{"isActive": true}}
	for key, value := range filters {
		query.Filters[key] = value
	}

	cacheKey := s.listKey(filters)
	if s.cache != nil {
		var cached []T
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	items, err := s.store.FindAll(ctx, query)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list "+s.def.Name)
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, items, s.ttl)
	}
	return items, nil
}

// Get returns one record.
func (s *CatalogService[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	item, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, "failed to load")
	}
	return item, nil
}

// Create stores a validated record.
func (s *CatalogService[T, PT]) Create(ctx context.Context, doc schema.Document) (*T, error) {
	var item T
	if err := schema.Decode(doc, &item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode "+strings.ToLower(s.def.Noun))
	}
	if err := s.store.Insert(ctx, &item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save "+strings.ToLower(s.def.Noun))
	}

	s.invalidate(ctx)
	s.logger.Info("catalog entry created", zap.String("id", PT(&item).Base().ID.Hex()))
	return &item, nil
}

// Update applies the supplied fields only.
func (s *CatalogService[T, PT]) Update(ctx context.Context, id string, doc schema.Document) (*T, error) {
	if len(doc) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "No fields to update")
	}
	set := bson.M{}
	for key, value := range doc {
		set[key] = value
	}

	item, err := s.store.Update(ctx, id, set)
	if err != nil {
		return nil, s.mapLookupError(err, "failed to update")
	}
	s.invalidate(ctx)
	return item, nil
}

// Delete removes a record.
func (s *CatalogService[T, PT]) Delete(ctx context.Context, id string) error {
	if _, err := s.store.Delete(ctx, id); err != nil {
		return s.mapLookupError(err, "failed to delete")
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService[T, PT]) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, s.def.Name+":*"); err != nil {
		s.logger.Warn("failed to invalidate catalog cache", zap.Error(err))
	}
}

func (s *CatalogService[T, PT]) listKey(filters map[string]interface{}) string {
	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, filters[key]))
	}
	return s.def.Name + ":list:" + strings.Join(parts, "&")
}

func (s *CatalogService[T, PT]) mapLookupError(err error, action string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return appErrors.Clone(appErrors.ErrNotFound, s.def.Noun+" not found")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, action+" "+strings.ToLower(s.def.Noun))
}
