package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Plan names a subscription tier for a coaching-center account.
type Plan string

const (
	PlanFree Plan = "Free"
	PlanPro  Plan = "Pro"
)

// User represents a coaching-center account (the owner of batches and students).
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string        `bson:"name" json:"name"`
	Email        string        `bson:"email" json:"email"`
	Phone        string        `bson:"phone" json:"phone"`
	PasswordHash string        `bson:"password" json:"-"`
	Plan         Plan          `bson:"plan" json:"plan"`
	IsActive     bool          `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
}
