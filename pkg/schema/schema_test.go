package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contactSchema() *Schema {
	return Object(
		String("name").Required("Name is required").Min(2, "").Max(50, ""),
		String("email").Required().Lower().Email(""),
		String("phone").Required().Phone("Phone number must be 10 digits"),
		String("status").OneOf([]string{"pending", "contacted"}, "").Default("pending"),
	)
}

func TestValidateNormalizes(t *testing.T) {
	doc, violations := contactSchema().Validate(map[string]interface{}{
		"name":    "  Asha  ",
		"email":   " Asha@Example.COM ",
		"phone":   " 9876543210 ",
		"unknown": "dropped",
	})
	require.Empty(t, violations)

	assert.Equal(t, "Asha", doc["name"])
	assert.Equal(t, "asha@example.com", doc["email"])
	assert.Equal(t, "9876543210", doc["phone"])
	assert.Equal(t, "pending", doc["status"])
	assert.NotContains(t, doc, "unknown")
}

func TestValidateCollectsEveryViolation(t *testing.T) {
	_, violations := contactSchema().Validate(map[string]interface{}{
		"name":   "",
		"email":  "not-an-email",
		"phone":  "12345",
		"status": "archived",
	})
	require.Len(t, violations, 4)

	fields := []string{}
	for _, v := range violations {
		fields = append(fields, v.Field)
	}
	assert.Equal(t, []string{"name", "email", "phone", "status"}, fields)
	assert.Equal(t, "Name is required, Please provide a valid email, Phone number must be 10 digits, Status must be one of: pending, contacted", violations.Error())
}

func TestValidateFirstFailingRulePerField(t *testing.T) {
	_, violations := Object(String("name").Min(5, "too short").Max(3, "too long")).
		Validate(map[string]interface{}{"name": "ab"})
	require.Len(t, violations, 1)
	assert.Equal(t, "too short", violations[0].Message)
}

func TestNumericPhoneIsCoerced(t *testing.T) {
	doc, violations := contactSchema().Validate(map[string]interface{}{
		"name":  "Ravi",
		"email": "ravi@example.com",
		"phone": float64(9876543210),
	})
	require.Empty(t, violations)
	assert.Equal(t, "9876543210", doc["phone"])
}

func TestBoolAndIntCoercion(t *testing.T) {
	s := Object(
		Bool("isGoalStudent").Default(false),
		Int("page").Min(1, "").Default(1),
	)

	doc, violations := s.Validate(map[string]interface{}{"isGoalStudent": "true", "page": "3"})
	require.Empty(t, violations)
	assert.Equal(t, true, doc["isGoalStudent"])
	assert.Equal(t, 3, doc["page"])

	doc, violations = s.Validate(map[string]interface{}{})
	require.Empty(t, violations)
	assert.Equal(t, false, doc["isGoalStudent"])
	assert.Equal(t, 1, doc["page"])

	_, violations = s.Validate(map[string]interface{}{"isGoalStudent": "maybe", "page": "x"})
	require.Len(t, violations, 2)
	assert.Equal(t, "Is goal student must be a boolean", violations[0].Message)
	assert.Equal(t, "Page must be a whole number", violations[1].Message)
}

func TestRequiredWhenRunsAfterFieldChecks(t *testing.T) {
	s := Object(
		Bool("isGoalStudent").Default(false),
		String("uid"),
		String("email").Required().Email(""),
	).Refine(RequiredWhen("uid", "isGoalStudent", true, "UID is required for GOAL students"))

	_, violations := s.Validate(map[string]interface{}{"isGoalStudent": true, "email": "bad"})
	require.Len(t, violations, 1)
	assert.Equal(t, "email", violations[0].Field)

	_, violations = s.Validate(map[string]interface{}{"isGoalStudent": true, "email": "a@b.co", "uid": "  "})
	require.Len(t, violations, 1)
	assert.Equal(t, "uid", violations[0].Field)
	assert.Equal(t, "UID is required for GOAL students", violations[0].Message)

	doc, violations := s.Validate(map[string]interface{}{"isGoalStudent": false, "email": "a@b.co"})
	require.Empty(t, violations)
	assert.NotContains(t, doc, "uid")
}

func TestMergeLaterFieldWins(t *testing.T) {
	base := Object(String("status").Default("pending"), String("search"))
	override := Object(String("status").Required())

	merged := Merge(base, override)
	assert.Equal(t, []string{"status", "search"}, merged.Fields())

	_, violations := merged.Validate(map[string]interface{}{})
	require.Len(t, violations, 1)
	assert.Equal(t, "Status is required", violations[0].Message)

	doc, violations := base.Validate(map[string]interface{}{})
	require.Empty(t, violations)
	assert.Equal(t, "pending", doc["status"])
}

func TestPartialDropsRequiredAndDefaults(t *testing.T) {
	doc, violations := contactSchema().Partial().Validate(map[string]interface{}{"phone": "9876543210"})
	require.Empty(t, violations)
	assert.Equal(t, Document{"phone": "9876543210"}, doc)
}

func TestCustomTags(t *testing.T) {
	s := Object(
		String("id").Required().ObjectID(""),
		String("pincode").Rule("pincode", "Pincode must be 6 digits"),
		String("date").Date(""),
		String("link").URL(""),
	)

	_, violations := s.Validate(map[string]interface{}{
		"id":      "507f1f77bcf86cd799439011",
		"pincode": "560001",
		"date":    "2025-03-14",
		"link":    "https://youtu.be/abc",
	})
	assert.Empty(t, violations)

	_, violations = s.Validate(map[string]interface{}{
		"id":      "xyz",
		"pincode": "56",
		"date":    "14/03/2025",
		"link":    "nope",
	})
	require.Len(t, violations, 4)
	assert.Equal(t, "Invalid Id format", violations[0].Message)
}

func TestFromValuesAndDecode(t *testing.T) {
	input := FromValues(map[string][]string{"page": {"2"}, "limit": {"5", "9"}, "empty": {}})
	assert.Equal(t, map[string]interface{}{"page": "2", "limit": "5"}, input)

	type query struct {
		Page   int    `json:"page"`
		Limit  int    `json:"limit"`
		Status string `json:"status,omitempty"`
	}
	var q query
	require.NoError(t, Decode(Document{"page": 2, "limit": 5, "status": "pending"}, &q))
	assert.Equal(t, query{Page: 2, Limit: 5, Status: "pending"}, q)
}
