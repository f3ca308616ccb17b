package models

type Address struct {
	ID           string `json:"id" bson:"_id,omitempty"`
	GrantID      string `json:"grant_id" bson:"grant_id"`
	Type         string `json:"type" bson:"type"`
	Line1        string `json:"line1" bson:"line1" validate:"required"`
	Line2        string `json:"line2" bson:"line2"`
	City         string `json:"city" bson:"city"`
	State        string `json:"state" bson:"state"`
	PostalCode   string `json:"postal_code" bson:"postal_code"`
	Country      string `json:"country" bson:"country"`
	VerifiedDate string `json:"verified_date" bson:"verified_date"`
	Primary      bool   `json:"primary" bson:"primary"`
}
