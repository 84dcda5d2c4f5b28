package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/man-in-dev/goal-backend-sub001/internal/middleware"
	"github.com/man-in-dev/goal-backend-sub001/internal/models"
	"github.com/man-in-dev/goal-backend-sub001/internal/service"
	"github.com/man-in-dev/goal-backend-sub001/pkg/export"
	"github.com/man-in-dev/goal-backend-sub001/pkg/response"
	"github.com/man-in-dev/goal-backend-sub001/pkg/schema"
)

type submissionService[T any] interface {
	Definition() service.FormDefinition
	Submit(ctx context.Context, doc schema.Document, files map[string]string) (*T, error)
	List(ctx context.Context, query models.ListQuery) ([]T, *models.Pagination, error)
	Get(ctx context.Context, id string) (*T, error)
	UpdateStatus(ctx context.Context, id, status, remarks string, actor service.Actor) (*T, error)
	Delete(ctx context.Context, id string, actor service.Actor) error
	Export(ctx context.Context, query models.ListQuery, format export.Format, actor service.Actor) (*service.ExportFile, error)
}

// SubmissionHandler exposes the CRUD and export endpoints of one public form.
// Request payloads arrive already validated by the middleware chain.
type SubmissionHandler[T any] struct {
	forms submissionService[T]
	def   service.FormDefinition
}

// NewSubmissionHandler constructs a SubmissionHandler.
func NewSubmissionHandler[T any](forms submissionService[T]) *SubmissionHandler[T] {
	return &SubmissionHandler[T]{forms: forms, def: forms.Definition()}
}

// Name is the resource path segment of the form.
func (h *SubmissionHandler[T]) Name() string {
	return h.def.Name
}

// Create stores a public submission.
func (h *SubmissionHandler[T]) Create(c *gin.Context) {
	item, err := h.forms.Submit(c.Request.Context(), middleware.Body(c), middleware.UploadedFiles(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, h.def.Noun+" submitted successfully", item)
}

// List returns one page of submissions.
func (h *SubmissionHandler[T]) List(c *gin.Context) {
	items, pagination, err := h.forms.List(c.Request.Context(), listQuery(middleware.Query(c)))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.def.Title+" retrieved successfully", items, pagination)
}

// Get returns a single submission.
func (h *SubmissionHandler[T]) Get(c *gin.Context) {
	item, err := h.forms.Get(c.Request.Context(), stringValue(middleware.Params(c), "id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.def.Noun+" retrieved successfully", item)
}

// UpdateStatus changes the review status.
func (h *SubmissionHandler[T]) UpdateStatus(c *gin.Context) {
	body := middleware.Body(c)
	item, err := h.forms.UpdateStatus(
		c.Request.Context(),
		stringValue(middleware.Params(c), "id"),
		stringValue(body, "status"),
		stringValue(body, "remarks"),
		actorFromContext(c),
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.def.Noun+" status updated successfully", item)
}

// Delete removes a submission.
func (h *SubmissionHandler[T]) Delete(c *gin.Context) {
	if err := h.forms.Delete(c.Request.Context(), stringValue(middleware.Params(c), "id"), actorFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export downloads the matching submissions as CSV or PDF.
func (h *SubmissionHandler[T]) Export(c *gin.Context) {
	doc := middleware.Query(c)
	format := export.Format(strings.ToLower(stringValue(doc, "format")))
	if format == "" {
		format = export.FormatCSV
	}

	query := listQuery(doc)
	file, err := h.forms.Export(c.Request.Context(), query, format, actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.Filename, file.ContentType, file.Data)
}
