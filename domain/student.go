package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Student is a roster entry. PhoneNumber and PasskeyHash back the guardian
// login portal; payment fields are maintained through sanitized patches.
// Like Batch, anything else the dashboard submits lives in Fields.
type Student struct {
	ID            bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	OwnerID       bson.ObjectID  `bson:"createdBy" json:"createdBy"`
	Name          string         `bson:"name,omitempty" json:"name,omitempty"`
	PhoneNumber   string         `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	PasskeyHash   string         `bson:"passkey,omitempty" json:"-"`
	PaymentStatus bool           `bson:"payment_status" json:"payment_status"`
	PaymentAmount float64        `bson:"payment_amount" json:"payment_amount"`
	CreatedAt     time.Time      `bson:"createdAt" json:"createdAt"`
	Fields        map[string]any `bson:",inline" json:"fields,omitempty"`
}
