package models

import "strconv"

const (
	CareerStatusPending     = "pending"
	CareerStatusShortlisted = "shortlisted"
	CareerStatusRejected    = "rejected"
	CareerStatusHired       = "hired"

	ResumeField = "resume"
)

var CareerStatuses = []string{CareerStatusPending, CareerStatusShortlisted, CareerStatusRejected, CareerStatusHired}

// CareerApplication is a job application with an uploaded resume.
type CareerApplication struct {
	Record        `bson:",inline"`
	Name          string `bson:"name" json:"name"`
	Email         string `bson:"email" json:"email"`
	Phone         string `bson:"phone" json:"phone"`
	Position      string `bson:"position" json:"position"`
	Qualification string `bson:"qualification" json:"qualification"`
	Experience    int    `bson:"experience" json:"experience"`
	Message       string `bson:"message,omitempty" json:"message,omitempty"`
	Resume        string `bson:"resume" json:"resume"`
	Status        string `bson:"status" json:"status"`
}

func (c *CareerApplication) CurrentStatus() string { return c.Status }

func (c *CareerApplication) NaturalKey() map[string]interface{} {
	return map[string]interface{}{"email": c.Email, "position": c.Position}
}

func (c *CareerApplication) Attachments() []string {
	if c.Resume == "" {
		return nil
	}
	return []string{c.Resume}
}

func (c *CareerApplication) Attach(field, stored string) {
	if field == ResumeField {
		c.Resume = stored
	}
}

func (c *CareerApplication) ExportRow() map[string]string {
	return map[string]string{
		"Name":          c.Name,
		"Email":         c.Email,
		"Phone":         c.Phone,
		"Position":      c.Position,
		"Qualification": c.Qualification,
		"Experience":    strconv.Itoa(c.Experience),
		"Resume":        c.Resume,
		"Status":        c.Status,
		"Submitted At":  formatTime(c.CreatedAt),
	}
}
