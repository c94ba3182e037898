package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type donorStub struct {
	BloodType string `json:"blood_type" validate:"required,is-blood-type"`
	Gender    string `json:"gender" validate:"required,is-gender"`
	Organ     string `json:"organ" validate:"omitempty,is-organ"`
	Unos      string `json:"unos_status" validate:"omitempty,is-unos-status"`
}

func TestValidate_CustomRules(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		input   donorStub
		wantErr bool
		field   string
	}{
		{"valid full", donorStub{BloodType: "O-", Gender: "female", Organ: "kidney", Unos: "1A"}, false, ""},
		{"valid minimal", donorStub{BloodType: "AB+", Gender: "male"}, false, ""},
		{"bad blood type", donorStub{BloodType: "C+", Gender: "male"}, true, "blood_type"},
		{"lowercase blood type", donorStub{BloodType: "a+", Gender: "male"}, true, "blood_type"},
		{"bad organ", donorStub{BloodType: "A+", Gender: "male", Organ: "lung"}, true, "organ"},
		{"bad gender", donorStub{BloodType: "A+", Gender: "unknown"}, true, "gender"},
		{"bad unos", donorStub{BloodType: "A+", Gender: "male", Unos: "5"}, true, "unos_status"},
		{"missing required", donorStub{Gender: "male"}, true, "blood_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.Errors, tt.field)
		})
	}
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(donorStub{BloodType: "XX", Gender: "male"})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	_, hasGoName := vErr.Errors["BloodType"]
	assert.False(t, hasGoName)
	assert.Contains(t, vErr.Errors, "blood_type")
}
