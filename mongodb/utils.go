package mongodb

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"go.edulab.hu/coachdesk/domain"
)

// parseID converts a client-supplied hex id into an ObjectID. Malformed ids
// are a validation failure, reported before any store call.
func parseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, domain.NewValidationError(domain.ValidationMalformedID, "invalid id")
	}
	return oid, nil
}

// scrubClientFields removes server-managed keys from a client payload before
// it is persisted. Ids, owners and creation timestamps are never trusted from
// client input.
func scrubClientFields(fields map[string]any) map[string]any {
	cleaned := make(map[string]any, len(fields))
	for key, value := range fields {
		switch key {
		case "_id", "createdBy", "createdAt":
			continue
		}
		cleaned[key] = value
	}
	return cleaned
}
