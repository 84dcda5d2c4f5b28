package schemas

import (
	"github.com/man-in-dev/goal-backend-sub001/internal/models"
	"github.com/man-in-dev/goal-backend-sub001/pkg/export"
	"github.com/man-in-dev/goal-backend-sub001/pkg/schema"
)

// Pagination validates page and limit. Limits above MaxLimit are rejected.
func Pagination() *schema.Schema {
	return schema.Object(
		schema.Int("page").Min(1, "Page must be at least 1").Default(models.DefaultPage),
		schema.Int("limit").
			Min(1, "Limit must be at least 1").
			Max(models.MaxLimit, "Limit cannot exceed 100").
			Default(models.DefaultLimit),
	)
}

// Search is the free text search fragment.
func Search() *schema.Schema {
	return schema.Object(schema.String("search").Max(100, "Search term cannot exceed 100 characters"))
}

// StatusFilter restricts the optional status filter to a form's statuses.
func StatusFilter(statuses []string) *schema.Schema {
	return schema.Object(schema.String("status").OneOf(statuses, ""))
}

// ExportFormat selects the export encoding, defaulting to CSV.
func ExportFormat() *schema.Schema {
	return schema.Object(
		schema.String("format").
			Lower().
			OneOf([]string{string(export.FormatCSV), string(export.FormatPDF)}, "Format must be csv or pdf").
			Default(string(export.FormatCSV)),
	)
}

// IDParams validates the :id path parameter.
func IDParams() *schema.Schema {
	return schema.Object(schema.String("id").Required("ID is required").ObjectID("Invalid ID format"))
}

// StatusUpdate is the body of PATCH /:id/status.
func StatusUpdate(statuses []string) *schema.Schema {
	return schema.Object(
		schema.String("status").Required("Status is required").OneOf(statuses, ""),
		schema.String("remarks").Max(500, "Remarks cannot exceed 500 characters"),
	)
}

// ListQuery composes pagination, search, the status filter and any extra filters.
func ListQuery(statuses []string, extra ...*schema.Schema) *schema.Schema {
	parts := append([]*schema.Schema{Pagination(), Search(), StatusFilter(statuses)}, extra...)
	return schema.Merge(parts...)
}

// ExportQuery takes the listing filters minus pagination.
func ExportQuery(statuses []string, extra ...*schema.Schema) *schema.Schema {
	parts := append([]*schema.Schema{Search(), StatusFilter(statuses), ExportFormat()}, extra...)
	return schema.Merge(parts...)
}

func contact() *schema.Schema {
	return schema.Object(
		schema.String("name").
			Required("Name is required").
			Min(2, "Name must be at least 2 characters").
			Max(100, "Name cannot exceed 100 characters"),
		schema.String("email").Required("Email is required").Lower().Email("Please provide a valid email"),
		schema.String("phone").Required("Phone number is required").Phone("Please provide a valid 10-digit phone number"),
	)
}

// goalStudent adds the enrolled student identifiers, required only for GOAL students.
func goalStudent() *schema.Schema {
	return schema.Object(
		schema.Bool("isGoalStudent").Default(false),
		schema.String("uid").Max(50, "UID cannot exceed 50 characters"),
		schema.String("rollNo").Max(50, "Roll number cannot exceed 50 characters"),
	).
		Refine(schema.RequiredWhen("uid", "isGoalStudent", true, "UID is required for GOAL students")).
		Refine(schema.RequiredWhen("rollNo", "isGoalStudent", true, "Roll number is required for GOAL students"))
}

func location() *schema.Schema {
	return schema.Object(
		schema.String("state").Required("State is required").Max(100, ""),
		schema.String("district").Required("District is required").Max(100, ""),
		schema.String("address").Max(500, "Address cannot exceed 500 characters"),
	)
}

// AuditQuery filters the audit trail by action and resource.
func AuditQuery() *schema.Schema {
	return schema.Merge(
		Pagination(),
		schema.Object(
			schema.String("action").Max(50, ""),
			schema.String("resource").Max(100, ""),
		),
	)
}
