package models

const (
	GiftTypeRestricted   = "Restricted"
	GiftTypeUnrestricted = "Unrestricted"

	GiftStatusReceived = "Received"
	GiftStatusPending  = "Pending"

	GiftCompliant   = "Compliant"
	GiftUnderReview = "Under Review"
)

type Gift struct {
	ID           string  `json:"id" bson:"_id,omitempty"`
	GrantID      string  `json:"grant_id" bson:"grant_id"`
	Amount       float64 `json:"amount" bson:"amount" validate:"min=0"`
	Spent        float64 `json:"spent" bson:"spent" validate:"min=0"`
	BudgetCode   string  `json:"budget_code" bson:"budget_code"`
	Type         string  `json:"type" bson:"type"`
	Status       string  `json:"status" bson:"status"`
	Compliance   string  `json:"compliance" bson:"compliance"`
	Acknowledged bool    `json:"acknowledged" bson:"acknowledged"`
}

func (g *Gift) Remaining() float64 {
	return g.Amount - g.Spent
}
