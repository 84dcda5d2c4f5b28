package schemas

import (
	"github.com/man-in-dev/goal-backend-sub001/internal/models"
	"github.com/man-in-dev/goal-backend-sub001/pkg/schema"
)

// Form is the set of schemas registered for one submission resource.
type Form struct {
	Create *schema.Schema
	Status *schema.Schema
	List   *schema.Schema
	Export *schema.Schema
}

var classes = []string{"6", "7", "8", "9", "10", "11", "12", "12-pass", "dropper"}

func Enquiry() Form {
	create := schema.Merge(
		contact(),
		schema.Object(
			schema.String("studying").Required("Current class is required").Max(50, ""),
			schema.String("course").Required("Course is required").Max(100, ""),
		),
		location(),
		schema.Object(
			schema.String("query").Max(1000, "Query cannot exceed 1000 characters"),
			schema.String("status").OneOf(models.EnquiryStatuses, "").Default(models.EnquiryStatusPending),
		),
	)
	return Form{
		Create: create,
		Status: StatusUpdate(models.EnquiryStatuses),
		List:   ListQuery(models.EnquiryStatuses, courseFilter()),
		Export: ExportQuery(models.EnquiryStatuses, courseFilter()),
	}
}

func Complaint() Form {
	typeField := schema.String("type").Lower().OneOf(models.ComplaintTypes, "Type must be one of: complaint, feedback, suggestion")

	create := schema.Merge(
		goalStudent(),
		contact(),
		schema.Object(
			typeField.Default(models.ComplaintTypeComplaint),
			schema.String("course").Max(100, ""),
			schema.String("subject").Max(200, "Subject cannot exceed 200 characters"),
			schema.String("message").
				Required("Message is required").
				Min(10, "Message must be at least 10 characters").
				Max(2000, "Message cannot exceed 2000 characters"),
			schema.String("status").OneOf(models.ComplaintStatuses, "").Default(models.ComplaintStatusPending),
		),
	)

	typeFilter := schema.Object(schema.String("type").Lower().OneOf(models.ComplaintTypes, ""))
	return Form{
		Create: create,
		Status: StatusUpdate(models.ComplaintStatuses),
		List:   ListQuery(models.ComplaintStatuses, typeFilter),
		Export: ExportQuery(models.ComplaintStatuses, typeFilter),
	}
}

func Admission() Form {
	applicant := schema.Object(
		schema.String("fullName").Required("Full name is required").Min(2, "").Max(100, ""),
		schema.String("dateOfBirth").Required("Date of birth is required").Date(""),
		schema.String("gender").Required("Gender is required").Lower().OneOf([]string{"male", "female", "other"}, ""),
		schema.String("email").Required("Email is required").Lower().Email("Please provide a valid email"),
		schema.String("phone").Required("Phone number is required").Phone("Please provide a valid 10-digit phone number"),
		schema.String("category").Lower().OneOf([]string{"general", "obc", "sc", "st", "ews"}, "").Default("general"),
		schema.String("address").Required("Address is required").Max(500, ""),
		schema.String("city").Required("City is required").Max(100, ""),
		schema.String("state").Required("State is required").Max(100, ""),
		schema.String("pincode").Required("Pincode is required").Rule("pincode", "Pincode must be 6 digits"),
	)
	guardian := schema.Object(
		schema.String("fatherName").Required("Father's name is required").Max(100, ""),
		schema.String("motherName").Required("Mother's name is required").Max(100, ""),
		schema.String("guardianPhone").Required("Guardian phone is required").Phone("Please provide a valid 10-digit guardian phone number"),
		schema.String("guardianEmail").Lower().Email("Please provide a valid guardian email"),
		schema.String("guardianOccupation").Max(100, ""),
	)
	academic := schema.Object(
		schema.String("currentClass").Required("Current class is required").OneOf(classes, ""),
		schema.String("schoolName").Required("School name is required").Max(200, ""),
		schema.String("board").Required("Board is required").Max(50, ""),
		schema.String("previousPercentage").Rule("numeric", "Previous percentage must be a number"),
	)
	preference := schema.Object(
		schema.String("course").Required("Course is required").Max(100, ""),
		schema.String("testMode").Lower().OneOf(models.ExamModes, "").Default(models.ExamModeOffline),
		schema.String("preferredTestDate").Date(""),
		schema.String("testCenter").Max(100, ""),
	)
	declaration := schema.Object(
		schema.Bool("declarationAccepted").
			Required("You must accept the declaration").
			Rule("eq=true", "You must accept the declaration"),
		schema.String("status").OneOf(models.AdmissionStatuses, "").Default(models.AdmissionStatusPending),
	)

	return Form{
		Create: schema.Merge(applicant, guardian, academic, preference, goalStudent(), declaration),
		Status: StatusUpdate(models.AdmissionStatuses),
		List:   ListQuery(models.AdmissionStatuses, courseFilter()),
		Export: ExportQuery(models.AdmissionStatuses, courseFilter()),
	}
}

func ExamRegistration() Form {
	examField := func() *schema.Field {
		return schema.String("exam").OneOf(models.Exams, "Exam must be GAET or GVET")
	}
	create := schema.Merge(
		contact(),
		schema.Object(
			examField().Required("Exam is required"),
			schema.String("currentClass").Required("Current class is required").OneOf(classes, ""),
			schema.String("schoolName").Max(200, ""),
			schema.String("city").Required("City is required").Max(100, ""),
			schema.String("state").Required("State is required").Max(100, ""),
			schema.String("mode").Lower().OneOf(models.ExamModes, "").Default(models.ExamModeOffline),
			schema.String("testDate").Date(""),
			schema.String("status").OneOf(models.ExamRegistrationStatuses, "").Default(models.ExamRegistrationStatusPending),
		),
	)
	examFilter := schema.Object(examField())
	return Form{
		Create: create,
		Status: StatusUpdate(models.ExamRegistrationStatuses),
		List:   ListQuery(models.ExamRegistrationStatuses, examFilter),
		Export: ExportQuery(models.ExamRegistrationStatuses, examFilter),
	}
}

func Career() Form {
	create := schema.Merge(
		contact(),
		schema.Object(
			schema.String("position").Required("Position is required").Max(100, ""),
			schema.String("qualification").Required("Qualification is required").Max(200, ""),
			schema.Int("experience").Min(0, "Experience cannot be negative").Max(50, "Experience cannot exceed 50 years").Default(0),
			schema.String("message").Max(2000, "Message cannot exceed 2000 characters"),
			schema.String("status").OneOf(models.CareerStatuses, "").Default(models.CareerStatusPending),
		),
	)
	positionFilter := schema.Object(schema.String("position").Max(100, ""))
	return Form{
		Create: create,
		Status: StatusUpdate(models.CareerStatuses),
		List:   ListQuery(models.CareerStatuses, positionFilter),
		Export: ExportQuery(models.CareerStatuses, positionFilter),
	}
}

func courseFilter() *schema.Schema {
	return schema.Object(schema.String("course").Max(100, ""))
}
