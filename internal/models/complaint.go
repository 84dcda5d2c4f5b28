package models

const (
	ComplaintStatusPending  = "pending"
	ComplaintStatusInReview = "in_review"
	ComplaintStatusResolved = "resolved"
	ComplaintStatusClosed   = "closed"

	ComplaintTypeComplaint  = "complaint"
	ComplaintTypeFeedback   = "feedback"
	ComplaintTypeSuggestion = "suggestion"

	AttachmentField = "attachment"
)

var (
	ComplaintStatuses = []string{ComplaintStatusPending, ComplaintStatusInReview, ComplaintStatusResolved, ComplaintStatusClosed}
	ComplaintTypes    = []string{ComplaintTypeComplaint, ComplaintTypeFeedback, ComplaintTypeSuggestion}
)

// Complaint covers complaints, feedback and suggestions. UID and roll number
// are only collected from enrolled GOAL students.
type Complaint struct {
	Record        `bson:",inline"`
	IsGoalStudent bool   `bson:"isGoalStudent" json:"isGoalStudent"`
	UID           string `bson:"uid,omitempty" json:"uid,omitempty"`
	RollNo        string `bson:"rollNo,omitempty" json:"rollNo,omitempty"`
	Name          string `bson:"name" json:"name"`
	Email         string `bson:"email" json:"email"`
	Phone         string `bson:"phone" json:"phone"`
	Course        string `bson:"course,omitempty" json:"course,omitempty"`
	Type          string `bson:"type" json:"type"`
	Subject       string `bson:"subject,omitempty" json:"subject,omitempty"`
	Message       string `bson:"message" json:"message"`
	Attachment    string `bson:"attachment,omitempty" json:"attachment,omitempty"`
	Status        string `bson:"status" json:"status"`
}

func (c *Complaint) CurrentStatus() string { return c.Status }

// NaturalKey is nil: repeated complaints are legitimate.
func (c *Complaint) NaturalKey() map[string]interface{} { return nil }

func (c *Complaint) Attachments() []string {
	if c.Attachment == "" {
		return nil
	}
	return []string{c.Attachment}
}

func (c *Complaint) Attach(field, stored string) {
	if field == AttachmentField {
		c.Attachment = stored
	}
}

func (c *Complaint) ExportRow() map[string]string {
	return map[string]string{
		"Type":         c.Type,
		"GOAL Student": formatBool(c.IsGoalStudent),
		"UID":          c.UID,
		"Roll No":      c.RollNo,
		"Name":         c.Name,
		"Email":        c.Email,
		"Phone":        c.Phone,
		"Course":       c.Course,
		"Subject":      c.Subject,
		"Message":      c.Message,
		"Attachment":   c.Attachment,
		"Status":       c.Status,
		"Submitted At": formatTime(c.CreatedAt),
	}
}
