package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/man-in-dev/goal-backend-sub001/internal/middleware"
	"github.com/man-in-dev/goal-backend-sub001/pkg/response"
	"github.com/man-in-dev/goal-backend-sub001/pkg/schema"
)

type catalogService[T any] interface {
	ListActive(ctx context.Context, filters map[string]interface{}) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, doc schema.Document) (*T, error)
	Update(ctx context.Context, id string, doc schema.Document) (*T, error)
	Delete(ctx context.Context, id string) error
}

// CatalogHandler serves a publisher managed reference list.
type CatalogHandler[T any] struct {
	catalog catalogService[T]
	noun    string
	plural  string
}

// NewCatalogHandler constructs a CatalogHandler. noun and plural are used in
// response messages.
func NewCatalogHandler[T any](catalog catalogService[T], noun, plural string) *CatalogHandler[T] {
	return &CatalogHandler[T]{catalog: catalog, noun: noun, plural: plural}
}

// List returns the active entries.
func (h *CatalogHandler[T]) List(c *gin.Context) {
	filters := map[string]interface{}{}
	for key, value := range middleware.Query(c) {
		filters[key] = value
	}
	items, err := h.catalog.ListActive(c.Request.Context(), filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.plural+" retrieved successfully", items)
}

// Get returns a single entry.
func (h *CatalogHandler[T]) Get(c *gin.Context) {
	item, err := h.catalog.Get(c.Request.Context(), stringValue(middleware.Params(c), "id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.noun+" retrieved successfully", item)
}

// Create adds an entry.
func (h *CatalogHandler[T]) Create(c *gin.Context) {
	item, err := h.catalog.Create(c.Request.Context(), middleware.Body(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, h.noun+" created successfully", item)
}

// Update applies a partial update.
func (h *CatalogHandler[T]) Update(c *gin.Context) {
	item, err := h.catalog.Update(c.Request.Context(), stringValue(middleware.Params(c), "id"), middleware.Body(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.noun+" updated successfully", item)
}

// Delete removes an entry.
func (h *CatalogHandler[T]) Delete(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), stringValue(middleware.Params(c), "id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
