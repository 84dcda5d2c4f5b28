package service

import "github.com/man-in-dev/goal-backend-sub001/internal/models"

// Form definitions for every public submission resource.
var (
	EnquiryForm = FormDefinition{
		Name:             "enquiries",
		Noun:             "Enquiry",
		Title:            "Enquiries",
		TerminalStatuses: []string{models.EnquiryStatusResolved, models.EnquiryStatusClosed},
		DuplicateMessage: "An enquiry with the same email, phone and course is already in progress",
		ExportHeaders: []string{
			"Name", "Phone", "Email", "Studying", "Course", "State", "District",
			"Address", "Query", "Status", "Submitted At",
		},
	}

	ComplaintForm = FormDefinition{
		Name:  "complaints",
		Noun:  "Complaint",
		Title: "Complaints and Feedback",
		ExportHeaders: []string{
			"Type", "GOAL Student", "UID", "Roll No", "Name", "Email", "Phone", "Course",
			"Subject", "Message", "Attachment", "Status", "Submitted At",
		},
	}

	AdmissionForm = FormDefinition{
		Name:             "admissions",
		Noun:             "Admission form",
		Title:            "Admission Forms",
		TerminalStatuses: []string{models.AdmissionStatusRejected},
		DuplicateMessage: "An admission form for this course has already been submitted with this email",
		ExportHeaders: []string{
			"Full Name", "Date of Birth", "Gender", "Email", "Phone", "Category", "City", "State",
			"Father Name", "Mother Name", "Guardian Phone", "Current Class", "School", "Board",
			"Course", "Test Mode", "GOAL Student", "Status", "Submitted At",
		},
	}

	ExamRegistrationForm = FormDefinition{
		Name:             "exam-registrations",
		Noun:             "Exam registration",
		Title:            "Exam Registrations",
		TerminalStatuses: []string{models.ExamRegistrationStatusCancelled},
		DuplicateMessage: "You have already registered for this exam with this email",
		ExportHeaders: []string{
			"Exam", "Name", "Email", "Phone", "Current Class", "School", "City", "State",
			"Mode", "Test Date", "Status", "Submitted At",
		},
	}

	CareerForm = FormDefinition{
		Name:             "careers",
		Noun:             "Career application",
		Title:            "Career Applications",
		TerminalStatuses: []string{models.CareerStatusRejected},
		DuplicateMessage: "You have already applied for this position with this email",
		ExportHeaders: []string{
			"Name", "Email", "Phone", "Position", "Qualification", "Experience",
			"Resume", "Status", "Submitted At",
		},
	}
)
