package models

import "time"

type Notification struct {
	ID        string    `json:"id" bson:"id"`
	Message   string    `json:"message" bson:"message" validate:"required"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}
