package models

// Task statuses. The progress calculation weights these 0, 0.5 and 1;
// anything unrecognized counts as zero.
const (
	TaskToDo       = "To Do"
	TaskInProgress = "In Progress"
	TaskDone       = "Done"
)

type TrackingSection struct {
	ID      string `json:"id" bson:"_id,omitempty"`
	GrantID string `json:"grant_id" bson:"grant_id"`
	Name    string `json:"name" bson:"name" validate:"required"`
}

type TrackingTask struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	SectionID string `json:"section_id" bson:"section_id"`
	GrantID   string `json:"grant_id" bson:"grant_id"`
	Title     string `json:"title" bson:"title" validate:"required"`
	Status    string `json:"status" bson:"status"`
}
