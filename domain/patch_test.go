package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizePatch_DropsEmptyAndNilValues(t *testing.T) {
	patch := SanitizePatch(map[string]any{
		"name":     "",
		"schedule": nil,
		"subject":  "Physics",
	}, StudentPatchRules)

	assert.Equal(t, map[string]any{"subject": "Physics"}, patch)
}

func TestSanitizePatch_PaymentAmountCoercion(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  any
		kept  bool
	}{
		{"string number", "1500.50", 1500.5, true},
		{"native number", 42.0, 42.0, true},
		{"integer", 7, 7.0, true},
		{"unparseable string", "abc", nil, false},
		{"wrong type", []string{"x"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch := SanitizePatch(map[string]any{"payment_amount": tt.value}, StudentPatchRules)
			if tt.kept {
				assert.Equal(t, tt.want, patch["payment_amount"])
			} else {
				assert.NotContains(t, patch, "payment_amount")
			}
		})
	}
}

func TestSanitizePatch_PaymentStatusCoercion(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  any
		kept  bool
	}{
		{"native true", true, true, true},
		{"native false", false, false, true},
		{"string true", "true", true, true},
		{"string false", "false", false, true},
		{"garbage string", "paid", nil, false},
		{"number", 1.0, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch := SanitizePatch(map[string]any{"payment_status": tt.value}, StudentPatchRules)
			if tt.kept {
				assert.Equal(t, tt.want, patch["payment_status"])
			} else {
				assert.NotContains(t, patch, "payment_status")
			}
		})
	}
}

func TestSanitizePatch_InvalidFieldDoesNotSinkSiblings(t *testing.T) {
	patch := SanitizePatch(map[string]any{
		"payment_amount": "abc",
		"name":           "Asha",
	}, StudentPatchRules)

	assert.Equal(t, map[string]any{"name": "Asha"}, patch)
}

func TestSanitizePatch_UnknownFieldsPassThrough(t *testing.T) {
	patch := SanitizePatch(map[string]any{
		"guardian_note": "call after 6pm",
		"roll_no":       12.0,
	}, StudentPatchRules)

	assert.Equal(t, "call after 6pm", patch["guardian_note"])
	assert.Equal(t, 12.0, patch["roll_no"])
}

func TestSanitizePatch_StripsServerManagedFields(t *testing.T) {
	patch := SanitizePatch(map[string]any{
		"_id":       "507f1f77bcf86cd799439011",
		"createdBy": "507f1f77bcf86cd799439012",
		"createdAt": "2024-01-01",
		"name":      "Asha",
	}, StudentPatchRules)

	assert.Equal(t, map[string]any{"name": "Asha"}, patch)
}

func TestSanitizePatch_AllInvalidYieldsEmptyPatch(t *testing.T) {
	patch := SanitizePatch(map[string]any{
		"payment_amount": "abc",
		"payment_status": "maybe",
		"name":           "",
	}, StudentPatchRules)

	assert.Empty(t, patch)
}

func TestSanitizePatch_DoesNotMutateInput(t *testing.T) {
	input := map[string]any{"payment_amount": "1500.50", "name": ""}
	SanitizePatch(input, StudentPatchRules)

	assert.Equal(t, "1500.50", input["payment_amount"])
	assert.Contains(t, input, "name")
}
