package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"go.edulab.hu/coachdesk/domain"
)

func TestParseID(t *testing.T) {
	oid := bson.NewObjectID()

	parsed, err := parseID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, parsed)

	for _, bad := range []string{"", "not-hex", "123", oid.Hex() + "00"} {
		_, err := parseID(bad)
		ve, ok := domain.IsValidationError(err)
		require.Truef(t, ok, "parseID(%q)", bad)
		assert.Equal(t, domain.ValidationMalformedID, ve.Kind)
	}
}

func TestScrubClientFields(t *testing.T) {
	cleaned := scrubClientFields(map[string]any{
		"_id":       "507f1f77bcf86cd799439011",
		"createdBy": "507f1f77bcf86cd799439012",
		"createdAt": "2024-01-01",
		"name":      "Morning",
		"fee":       1200.0,
	})

	assert.Equal(t, map[string]any{"name": "Morning", "fee": 1200.0}, cleaned)
}
