package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Record carries the identity and timestamps shared by every stored document.
type Record struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Base exposes the embedded record to generic repositories.
func (r *Record) Base() *Record { return r }

// Stamp sets CreatedAt on first save and always refreshes UpdatedAt.
func (r *Record) Stamp(now time.Time) {
	now = now.UTC()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
}

// Document is implemented by every type stored through the generic repository.
type Document interface {
	Base() *Record
}

// Submission is a publicly submitted form reviewed by staff.
type Submission interface {
	Document
	CurrentStatus() string
	// NaturalKey returns the fields identifying a resubmission of the same form.
	// A nil key disables duplicate detection.
	NaturalKey() map[string]interface{}
	Attachments() []string
	ExportRow() map[string]string
}

// Attachable is implemented by submissions that reference uploaded files.
type Attachable interface {
	Attach(field, stored string)
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListQuery is the normalized listing request handed to repositories.
type ListQuery struct {
	Page    int
	Limit   int
	Search  string
	Filters map[string]interface{}
}

// Normalize clamps paging values so a repository never runs an unbounded query.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

// Skip is the offset of the first item of the page.
func (q ListQuery) Skip() int64 {
	return int64((q.Page - 1) * q.Limit)
}

// NewPagination derives page totals from the query and the matching count.
func NewPagination(q ListQuery, total int64) *Pagination {
	pages := 0
	if q.Limit > 0 {
		pages = int((total + int64(q.Limit) - 1) / int64(q.Limit))
	}
	return &Pagination{Page: q.Page, Limit: q.Limit, Total: total, TotalPages: pages}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatBool(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
