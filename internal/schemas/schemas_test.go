package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/man-in-dev/goal-backend-sub001/pkg/schema"
)

func validEnquiry() map[string]interface{} {
	return map[string]interface{}{
		"name":     "Asha Verma",
		"phone":    " 9876543210 ",
		"email":    "asha@example.com",
		"studying": "11",
		"course":   "JEE",
		"state":    "Bihar",
		"district": "Patna",
	}
}

func fieldsOf(v schema.Violations) []string {
	out := make([]string, len(v))
	for i, item := range v {
		out[i] = item.Field
	}
	return out
}

func TestEnquiryCreateAppliesDefaults(t *testing.T) {
	doc, violations := Enquiry().Create.Validate(validEnquiry())
	require.Empty(t, violations)
	assert.Equal(t, "9876543210", doc["phone"])
	assert.Equal(t, "pending", doc["status"])
}

func TestEnquiryCreateRejectsBadFields(t *testing.T) {
	input := validEnquiry()
	input["phone"] = "98765"
	input["email"] = "asha"
	input["status"] = "archived"

	_, violations := Enquiry().Create.Validate(input)
	assert.ElementsMatch(t, []string{"phone", "email", "status"}, fieldsOf(violations))
}

func validComplaint() map[string]interface{} {
	return map[string]interface{}{
		"name":    "Ravi",
		"email":   "ravi@example.com",
		"phone":   "9123456780",
		"type":    "Feedback",
		"message": "The new batch timings clash with school hours.",
	}
}

func TestComplaintGoalStudentRequiresUID(t *testing.T) {
	input := validComplaint()
	input["isGoalStudent"] = true
	input["rollNo"] = "R-12"

	_, violations := Complaint().Create.Validate(input)
	require.Len(t, violations, 1)
	assert.Equal(t, "uid", violations[0].Field)

	input["isGoalStudent"] = false
	doc, violations := Complaint().Create.Validate(input)
	require.Empty(t, violations)
	assert.Equal(t, "feedback", doc["type"])
	assert.Equal(t, false, doc["isGoalStudent"])
}

func TestComplaintConditionalCheckWaitsForFieldChecks(t *testing.T) {
	input := validComplaint()
	input["isGoalStudent"] = "true"
	input["message"] = "short"

	_, violations := Complaint().Create.Validate(input)
	assert.Equal(t, []string{"message"}, fieldsOf(violations))
}

func validAdmission() map[string]interface{} {
	return map[string]interface{}{
		"fullName":            "Meera Singh",
		"dateOfBirth":         "2008-05-17",
		"gender":              "Female",
		"email":               "meera@example.com",
		"phone":               "9988776655",
		"address":             "12 Boring Road",
		"city":                "Patna",
		"state":               "Bihar",
		"pincode":             "800001",
		"fatherName":          "Raj Singh",
		"motherName":          "Kavita Singh",
		"guardianPhone":       "9988776644",
		"currentClass":        "10",
		"schoolName":          "DPS Patna",
		"board":               "CBSE",
		"course":              "NEET",
		"declarationAccepted": "true",
	}
}

func TestAdmissionCreate(t *testing.T) {
	doc, violations := Admission().Create.Validate(validAdmission())
	require.Empty(t, violations)
	assert.Equal(t, "female", doc["gender"])
	assert.Equal(t, "general", doc["category"])
	assert.Equal(t, "offline", doc["testMode"])
	assert.Equal(t, true, doc["declarationAccepted"])
	assert.Equal(t, "pending", doc["status"])
}

func TestAdmissionDeclarationMustBeAccepted(t *testing.T) {
	input := validAdmission()
	input["declarationAccepted"] = false

	_, violations := Admission().Create.Validate(input)
	require.Len(t, violations, 1)
	assert.Equal(t, "You must accept the declaration", violations[0].Message)
}

func TestExamRegistrationRequiresKnownExam(t *testing.T) {
	input := map[string]interface{}{
		"name":         "Kiran",
		"email":        "kiran@example.com",
		"phone":        "9000000001",
		"exam":         "SAT",
		"currentClass": "9",
		"city":         "Gaya",
		"state":        "Bihar",
	}
	_, violations := ExamRegistration().Create.Validate(input)
	require.Len(t, violations, 1)
	assert.Equal(t, "Exam must be GAET or GVET", violations[0].Message)
}

func TestCareerExperienceCoercion(t *testing.T) {
	doc, violations := Career().Create.Validate(map[string]interface{}{
		"name":          "Anil",
		"email":         "anil@example.com",
		"phone":         "9000000002",
		"position":      "Physics Faculty",
		"qualification": "M.Sc",
		"experience":    "4",
	})
	require.Empty(t, violations)
	assert.Equal(t, 4, doc["experience"])
}

func TestListQueryPagination(t *testing.T) {
	doc, violations := Enquiry().List.Validate(map[string]interface{}{})
	require.Empty(t, violations)
	assert.Equal(t, 1, doc["page"])
	assert.Equal(t, 10, doc["limit"])

	_, violations = Enquiry().List.Validate(map[string]interface{}{"limit": "500"})
	require.Len(t, violations, 1)
	assert.Equal(t, "Limit cannot exceed 100", violations[0].Message)

	_, violations = Complaint().List.Validate(map[string]interface{}{"type": "praise"})
	require.Len(t, violations, 1)
	assert.Equal(t, "type", violations[0].Field)
}

func TestExportQueryFormat(t *testing.T) {
	doc, violations := Admission().Export.Validate(map[string]interface{}{"format": "PDF", "page": "3"})
	require.Empty(t, violations)
	assert.Equal(t, "pdf", doc["format"])
	assert.NotContains(t, doc, "page")

	_, violations = Admission().Export.Validate(map[string]interface{}{"format": "xlsx"})
	require.Len(t, violations, 1)
}

func TestIDParams(t *testing.T) {
	_, violations := IDParams().Validate(map[string]interface{}{"id": "507f1f77bcf86cd799439011"})
	assert.Empty(t, violations)

	_, violations = IDParams().Validate(map[string]interface{}{"id": "123"})
	require.Len(t, violations, 1)
	assert.Equal(t, "Invalid ID format", violations[0].Message)
}

func TestStatusUpdateRequiresKnownStatus(t *testing.T) {
	_, violations := Enquiry().Status.Validate(map[string]interface{}{})
	require.Len(t, violations, 1)
	assert.Equal(t, "Status is required", violations[0].Message)

	doc, violations := Enquiry().Status.Validate(map[string]interface{}{"status": "contacted"})
	require.Empty(t, violations)
	assert.Equal(t, "contacted", doc["status"])
}

func TestReferenceUpdateIsPartial(t *testing.T) {
	doc, violations := AITSVideoSolution().Update.Validate(map[string]interface{}{"order": 3})
	require.Empty(t, violations)
	assert.Equal(t, schema.Document{"order": 3}, doc)

	_, violations = AITSVideoSolution().Create.Validate(map[string]interface{}{
		"testName":  "AITS-1",
		"subject":   "Physics",
		"videoLink": "not a url",
	})
	require.Len(t, violations, 1)
	assert.Equal(t, "Please provide a valid video URL", violations[0].Message)
}

func TestRegisterDefaultsRole(t *testing.T) {
	doc, violations := Register().Validate(map[string]interface{}{
		"name":     "Ops",
		"email":    "OPS@goal.in",
		"password": "supersecret",
	})
	require.Empty(t, violations)
	assert.Equal(t, "staff", doc["role"])
	assert.Equal(t, "ops@goal.in", doc["email"])

	_, violations = Register().Validate(map[string]interface{}{
		"name":     "Ops",
		"email":    "ops@goal.in",
		"password": "supersecret",
		"role":     "root",
	})
	require.Len(t, violations, 1)
}
