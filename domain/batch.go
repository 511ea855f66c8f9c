package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Batch is a scheduled group of students owned by exactly one account.
// Batches are schemaless beyond the server-managed fields: whatever the
// dashboard submits (name, subject, schedule, fee, ...) is kept verbatim
// in Fields.
type Batch struct {
	ID        bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	OwnerID   bson.ObjectID  `bson:"createdBy" json:"createdBy"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
	Fields    map[string]any `bson:",inline" json:"fields,omitempty"`
}
