package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Grant statuses as stored. Anything else normalizes to StatusUnknown.
const (
	StatusActive      = "Active"
	StatusUnderReview = "Under Review"
	StatusApproved    = "Approved"
	StatusPending     = "Pending"
	StatusRejected    = "Rejected"
	StatusCompleted   = "Completed"
	StatusUnknown     = "Unknown"
)

type Grant struct {
	ID                          string       `json:"id" bson:"_id"`
	Title                       string       `json:"title" bson:"title" validate:"required"`
	Organization                string       `json:"organization" bson:"organization"`
	Status                      string       `json:"status" bson:"status"`
	FiscalYear                  string       `json:"fiscal_year" bson:"fiscal_year"`
	ApplicationDate             string       `json:"application_date" bson:"application_date"`
	AnticipatedNotificationDate string       `json:"anticipated_notification_date" bson:"anticipated_notification_date"`
	ReportDeadline              string       `json:"report_deadline" bson:"report_deadline"`
	DateAwarded                 string       `json:"date_awarded" bson:"date_awarded"`
	ReportSubmitted             string       `json:"report_submitted" bson:"report_submitted"`
	Attachments                 []Attachment `json:"attachments" bson:"attachments"`
	Metadata                    Metadata     `json:"metadata" bson:"metadata"`
}

type Metadata struct {
	CreatedBy string    `json:"created_by" bson:"created_by"`
	UpdatedBy string    `json:"updated_by" bson:"updated_by"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type Attachment struct {
	FileID   primitive.ObjectID `bson:"file_id" json:"file_id"`   // GridFS file ID
	Filename string             `bson:"filename" json:"filename"` // Original filename
}

// DateField is one of the grant's application-management dates, in the fixed
// order the calendar derives deadline events from.
type DateField struct {
	Label string
	Value string
}

// DateFields returns the grant's date fields in derivation order. Empty values
// are included; callers skip them.
func (g *Grant) DateFields() []DateField {
	return []DateField{
		{Label: "Application Date", Value: g.ApplicationDate},
		{Label: "Anticipated Notification Date", Value: g.AnticipatedNotificationDate},
		{Label: "Report Deadline", Value: g.ReportDeadline},
		{Label: "Date Awarded", Value: g.DateAwarded},
		{Label: "Report Submitted", Value: g.ReportSubmitted},
	}
}
