package models

const (
	AdmissionStatusPending     = "pending"
	AdmissionStatusUnderReview = "under_review"
	AdmissionStatusApproved    = "approved"
	AdmissionStatusRejected    = "rejected"
	AdmissionStatusAdmitted    = "admitted"
)

var AdmissionStatuses = []string{
	AdmissionStatusPending,
	AdmissionStatusUnderReview,
	AdmissionStatusApproved,
	AdmissionStatusRejected,
	AdmissionStatusAdmitted,
}

// Admission document upload fields.
const (
	DocumentPassportPhoto    = "passportPhoto"
	DocumentReportCard       = "reportCard"
	DocumentBirthCertificate = "birthCertificate"
	DocumentIDProof          = "idProof"
)

var AdmissionDocumentFields = []string{DocumentPassportPhoto, DocumentReportCard, DocumentBirthCertificate, DocumentIDProof}

// AdmissionDocuments references the stored upload names.
type AdmissionDocuments struct {
	PassportPhoto    string `bson:"passportPhoto,omitempty" json:"passportPhoto,omitempty"`
	ReportCard       string `bson:"reportCard,omitempty" json:"reportCard,omitempty"`
	BirthCertificate string `bson:"birthCertificate,omitempty" json:"birthCertificate,omitempty"`
	IDProof          string `bson:"idProof,omitempty" json:"idProof,omitempty"`
}

// AdmissionForm is the full admission application.
type AdmissionForm struct {
	Record `bson:",inline"`

	FullName    string `bson:"fullName" json:"fullName"`
	DateOfBirth string `bson:"dateOfBirth" json:"dateOfBirth"`
	Gender      string `bson:"gender" json:"gender"`
	Email       string `bson:"email" json:"email"`
	Phone       string `bson:"phone" json:"phone"`
	Category    string `bson:"category" json:"category"`
	Address     string `bson:"address" json:"address"`
	City        string `bson:"city" json:"city"`
	State       string `bson:"state" json:"state"`
	Pincode     string `bson:"pincode" json:"pincode"`

	FatherName         string `bson:"fatherName" json:"fatherName"`
	MotherName         string `bson:"motherName" json:"motherName"`
	GuardianPhone      string `bson:"guardianPhone" json:"guardianPhone"`
	GuardianEmail      string `bson:"guardianEmail,omitempty" json:"guardianEmail,omitempty"`
	GuardianOccupation string `bson:"guardianOccupation,omitempty" json:"guardianOccupation,omitempty"`

	CurrentClass    string `bson:"currentClass" json:"currentClass"`
	SchoolName      string `bson:"schoolName" json:"schoolName"`
	Board           string `bson:"board" json:"board"`
	PreviousPercent string `bson:"previousPercentage,omitempty" json:"previousPercentage,omitempty"`

	Course            string `bson:"course" json:"course"`
	TestMode          string `bson:"testMode" json:"testMode"`
	PreferredTestDate string `bson:"preferredTestDate,omitempty" json:"preferredTestDate,omitempty"`
	TestCenter        string `bson:"testCenter,omitempty" json:"testCenter,omitempty"`

	IsGoalStudent bool   `bson:"isGoalStudent" json:"isGoalStudent"`
	UID           string `bson:"uid,omitempty" json:"uid,omitempty"`
	RollNo        string `bson:"rollNo,omitempty" json:"rollNo,omitempty"`

	Documents           AdmissionDocuments `bson:"documents" json:"documents"`
	DeclarationAccepted bool               `bson:"declarationAccepted" json:"declarationAccepted"`
	Status              string             `bson:"status" json:"status"`
}

func (a *AdmissionForm) CurrentStatus() string { return a.Status }

func (a *AdmissionForm) NaturalKey() map[string]interface{} {
	return map[string]interface{}{"email": a.Email, "course": a.Course}
}

// Attachments lists the stored document names that are set.
func (a *AdmissionForm) Attachments() []string {
	names := make([]string, 0, 4)
	for _, name := range []string{a.Documents.PassportPhoto, a.Documents.ReportCard, a.Documents.BirthCertificate, a.Documents.IDProof} {
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Attach sets the stored name for one of the upload fields.
func (a *AdmissionForm) Attach(field, stored string) {
	switch field {
	case DocumentPassportPhoto:
		a.Documents.PassportPhoto = stored
	case DocumentReportCard:
		a.Documents.ReportCard = stored
	case DocumentBirthCertificate:
		a.Documents.BirthCertificate = stored
	case DocumentIDProof:
		a.Documents.IDProof = stored
	}
}

func (a *AdmissionForm) ExportRow() map[string]string {
	return map[string]string{
		"Full Name":      a.FullName,
		"Date of Birth":  a.DateOfBirth,
		"Gender":         a.Gender,
		"Email":          a.Email,
		"Phone":          a.Phone,
		"Category":       a.Category,
		"City":           a.City,
		"State":          a.State,
		"Father Name":    a.FatherName,
		"Mother Name":    a.MotherName,
		"Guardian Phone": a.GuardianPhone,
		"Current Class":  a.CurrentClass,
		"School":         a.SchoolName,
		"Board":          a.Board,
		"Course":         a.Course,
		"Test Mode":      a.TestMode,
		"GOAL Student":   formatBool(a.IsGoalStudent),
		"Status":         a.Status,
		"Submitted At":   formatTime(a.CreatedAt),
	}
}
