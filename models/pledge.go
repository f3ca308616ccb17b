package models

type Pledge struct {
	ID          string  `json:"id" bson:"_id,omitempty"`
	GrantID     string  `json:"grant_id" bson:"grant_id"`
	Donor       string  `json:"donor" bson:"donor" validate:"required"`
	Amount      float64 `json:"amount" bson:"amount" validate:"min=0"`
	Received    float64 `json:"received" bson:"received" validate:"min=0"`
	PledgedDate string  `json:"pledged_date" bson:"pledged_date"`
	Schedule    string  `json:"schedule" bson:"schedule"`
	Notes       string  `json:"notes" bson:"notes"`
}

// Outstanding is the signed remainder of the pledge. It goes negative when a
// donor over-delivers; callers clamp for display where needed.
func (p *Pledge) Outstanding() float64 {
	return p.Amount - p.Received
}
