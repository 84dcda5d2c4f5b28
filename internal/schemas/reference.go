package schemas

import (
	"github.com/man-in-dev/goal-backend-sub001/internal/models"
	"github.com/man-in-dev/goal-backend-sub001/pkg/schema"
)

// Catalog is the schema set for admin managed reference data.
type Catalog struct {
	Create *schema.Schema
	Update *schema.Schema
	List   *schema.Schema
}

func GAETDate() Catalog {
	create := schema.Object(
		schema.String("date").Required("Date is required").Date(""),
		schema.String("mode").Required("Mode is required").Lower().OneOf(models.ExamModes, ""),
		schema.String("label").Max(100, ""),
		schema.Bool("isActive").Default(true),
	)
	return Catalog{
		Create: create,
		Update: create.Partial(),
		List:   schema.Object(schema.String("mode").Lower().OneOf(models.ExamModes, "")),
	}
}

func AITSVideoSolution() Catalog {
	create := schema.Object(
		schema.String("testName").Required("Test name is required").Max(200, ""),
		schema.String("subject").Required("Subject is required").Max(100, ""),
		schema.String("videoLink").Required("Video link is required").URL("Please provide a valid video URL"),
		schema.Int("order").Min(0, "Order cannot be negative").Default(0),
		schema.Bool("isActive").Default(true),
	)
	return Catalog{
		Create: create,
		Update: create.Partial(),
		List: schema.Object(
			schema.String("testName").Max(200, ""),
			schema.String("subject").Max(100, ""),
		),
	}
}
