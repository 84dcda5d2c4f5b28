package schemas

import (
	"github.com/man-in-dev/goal-backend-sub001/internal/models"
	"github.com/man-in-dev/goal-backend-sub001/pkg/schema"
)

func Login() *schema.Schema {
	return schema.Object(
		schema.String("email").Required("Email is required").Lower().Email("Please provide a valid email"),
		schema.String("password").Required("Password is required"),
	)
}

func Register() *schema.Schema {
	return schema.Object(
		schema.String("name").Required("Name is required").Min(2, "").Max(100, ""),
		schema.String("email").Required("Email is required").Lower().Email("Please provide a valid email"),
		schema.String("password").
			Required("Password is required").
			Min(8, "Password must be at least 8 characters").
			Max(72, "Password cannot exceed 72 characters"),
		schema.String("role").OneOf(models.RoleNames(), "").Default(string(models.RoleStaff)),
	)
}
