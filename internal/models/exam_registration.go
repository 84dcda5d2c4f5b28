package models

const (
	ExamGAET = "GAET"
	ExamGVET = "GVET"

	ExamModeOnline  = "online"
	ExamModeOffline = "offline"

	ExamRegistrationStatusPending   = "pending"
	ExamRegistrationStatusConfirmed = "confirmed"
	ExamRegistrationStatusCancelled = "cancelled"
)

var (
	Exams                    = []string{ExamGAET, ExamGVET}
	ExamModes                = []string{ExamModeOnline, ExamModeOffline}
	ExamRegistrationStatuses = []string{ExamRegistrationStatusPending, ExamRegistrationStatusConfirmed, ExamRegistrationStatusCancelled}
)

// ExamRegistration is a GAET or GVET entrance test registration.
type ExamRegistration struct {
	Record       `bson:",inline"`
	Exam         string `bson:"exam" json:"exam"`
	Name         string `bson:"name" json:"name"`
	Email        string `bson:"email" json:"email"`
	Phone        string `bson:"phone" json:"phone"`
	CurrentClass string `bson:"currentClass" json:"currentClass"`
	SchoolName   string `bson:"schoolName,omitempty" json:"schoolName,omitempty"`
	City         string `bson:"city" json:"city"`
	State        string `bson:"state" json:"state"`
	Mode         string `bson:"mode" json:"mode"`
	TestDate     string `bson:"testDate,omitempty" json:"testDate,omitempty"`
	Status       string `bson:"status" json:"status"`
}

func (e *ExamRegistration) CurrentStatus() string { return e.Status }

func (e *ExamRegistration) NaturalKey() map[string]interface{} {
	return map[string]interface{}{"email": e.Email, "exam": e.Exam}
}

func (e *ExamRegistration) Attachments() []string { return nil }

func (e *ExamRegistration) ExportRow() map[string]string {
	return map[string]string{
		"Exam":          e.Exam,
		"Name":          e.Name,
		"Email":         e.Email,
		"Phone":         e.Phone,
		"Current Class": e.CurrentClass,
		"School":        e.SchoolName,
		"City":          e.City,
		"State":         e.State,
		"Mode":          e.Mode,
		"Test Date":     e.TestDate,
		"Status":        e.Status,
		"Submitted At":  formatTime(e.CreatedAt),
	}
}
