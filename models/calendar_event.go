package models

// Calendar event types. "All" is only a filter value, never stored.
const (
	EventDeadline = "Deadline"
	EventReview   = "Review"
	EventVisit    = "Visit"
	EventReport   = "Report"

	EventFilterAll = "All"
)

// CalendarEvent is a manually created event under a grant. Derived deadline
// events are synthesized from the grant's own date fields and never stored.
type CalendarEvent struct {
	ID      string `json:"id" bson:"_id,omitempty"`
	GrantID string `json:"grant_id" bson:"grant_id"`
	Title   string `json:"title" bson:"title" validate:"required"`
	Type    string `json:"type" bson:"type" validate:"required,oneof=Deadline Review Visit Report"`
	Date    string `json:"date" bson:"date" validate:"required"`
	Org     string `json:"org" bson:"org"`
}
