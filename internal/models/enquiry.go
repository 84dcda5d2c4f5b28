package models

// Enquiry statuses. Enquiries are never deleted; they are closed instead.
const (
	EnquiryStatusPending   = "pending"
	EnquiryStatusContacted = "contacted"
	EnquiryStatusResolved  = "resolved"
	EnquiryStatusClosed    = "closed"
)

var EnquiryStatuses = []string{EnquiryStatusPending, EnquiryStatusContacted, EnquiryStatusResolved, EnquiryStatusClosed}

// Enquiry is an admission enquiry submitted from the public site.
type Enquiry struct {
	Record   `bson:",inline"`
	Name     string `bson:"name" json:"name"`
	Phone    string `bson:"phone" json:"phone"`
	Email    string `bson:"email" json:"email"`
	Studying string `bson:"studying" json:"studying"`
	Course   string `bson:"course" json:"course"`
	State    string `bson:"state" json:"state"`
	District string `bson:"district" json:"district"`
	Address  string `bson:"address,omitempty" json:"address,omitempty"`
	Query    string `bson:"query,omitempty" json:"query,omitempty"`
	Status   string `bson:"status" json:"status"`
}

func (e *Enquiry) CurrentStatus() string { return e.Status }

func (e *Enquiry) NaturalKey() map[string]interface{} {
	return map[string]interface{}{"email": e.Email, "phone": e.Phone, "course": e.Course}
}

func (e *Enquiry) Attachments() []string { return nil }

func (e *Enquiry) ExportRow() map[string]string {
	return map[string]string{
		"Name":         e.Name,
		"Phone":        e.Phone,
		"Email":        e.Email,
		"Studying":     e.Studying,
		"Course":       e.Course,
		"State":        e.State,
		"District":     e.District,
		"Address":      e.Address,
		"Query":        e.Query,
		"Status":       e.Status,
		"Submitted At": formatTime(e.CreatedAt),
	}
}
