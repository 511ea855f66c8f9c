package domain

import "strconv"

// Coercion describes how a recognized patch field is normalized. A coercion
// returns the value to store and whether the field should be kept at all.
type Coercion func(value any) (any, bool)

// FieldRules maps recognized field names to their coercion. Fields not listed
// pass through verbatim (documents are schemaless).
type FieldRules map[string]Coercion

// serverManagedFields are never accepted from a client payload.
var serverManagedFields = []string{"_id", "createdBy", "createdAt"}

// NumberField parses numeric input given either as a native number or its
// string form. Unparseable values drop the field from the patch.
func NumberField(value any) (any, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, false
		}
		return n, true
	default:
		return nil, false
	}
}

// BoolField accepts native booleans and the strings "true"/"false". Anything
// else drops the field from the patch.
func BoolField(value any) (any, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		if v == "true" {
			return true, true
		}
		if v == "false" {
			return false, true
		}
		return nil, false
	default:
		return nil, false
	}
}

// StudentPatchRules are the recognized student update fields.
var StudentPatchRules = FieldRules{
	"payment_amount": NumberField,
	"payment_status": BoolField,
}

// BatchPatchRules are the recognized batch update fields.
var BatchPatchRules = FieldRules{
	"fee": NumberField,
}

// SanitizePatch filters a client-supplied partial update. Empty-string, nil
// and server-managed fields are removed ("no change requested", never "clear
// this field"). Recognized fields are coerced per rules and dropped when the
// coercion rejects them. The input map is not modified.
func SanitizePatch(input map[string]any, rules FieldRules) map[string]any {
	patch := make(map[string]any, len(input))
	for key, value := range input {
		if value == nil {
			continue
		}
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		if coerce, ok := rules[key]; ok {
			coerced, keep := coerce(value)
			if !keep {
				continue
			}
			patch[key] = coerced
			continue
		}
		patch[key] = value
	}
	for _, key := range serverManagedFields {
		delete(patch, key)
	}
	return patch
}
