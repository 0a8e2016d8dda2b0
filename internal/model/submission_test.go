package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexFloat_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{name: "number", in: `2500`, want: 2500},
		{name: "decimal", in: `1850.5`, want: 1850.5},
		{name: "numeric_string", in: `"3200"`, want: 3200},
		{name: "padded_string", in: `" 3200 "`, want: 3200},
		{name: "empty_string", in: `""`, want: 0},
		{name: "null", in: `null`, want: 0},
		{name: "garbage_string", in: `"about 2000"`, want: 0},
		{name: "bool", in: `true`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexFloat
			require.NoError(t, json.Unmarshal([]byte(tt.in), &f))
			assert.Equal(t, tt.want, float64(f))
		})
	}
}

func TestSubmission_Decode(t *testing.T) {
	body := `{
		"first_name": "Dana",
		"property_address": "123 Oak St, Springfield",
		"property_type": "Residential",
		"services_requested": ["House Washing", "Roof Cleaning"],
		"estimated_sqft": "2750",
		"email": "dana@example.com"
	}`

	var sub Submission
	require.NoError(t, json.Unmarshal([]byte(body), &sub))

	assert.Equal(t, PropertyTypeResidential, sub.PropertyType)
	assert.Equal(t, []string{"House Washing", "Roof Cleaning"}, sub.ServicesRequested)
	assert.Equal(t, FlexFloat(2750), sub.EstimatedSqft)
	assert.Empty(t, sub.ID)
}

func TestSubmission_PreferredContact(t *testing.T) {
	assert.Equal(t, "a@b.com", Submission{Email: "a@b.com", Phone: "555"}.PreferredContact())
	assert.Equal(t, "555", Submission{Phone: "555"}.PreferredContact())
	assert.Equal(t, "n/a", Submission{}.PreferredContact())
}

func TestNormalizedAddress_DisplayAddress(t *testing.T) {
	assert.Equal(t, "1 Main St", NormalizedAddress{StreetAddress: "1 Main St", FullAddress: "1 Main St, Town"}.DisplayAddress())
	assert.Equal(t, "1 Main St, Town", NormalizedAddress{FullAddress: "1 Main St, Town"}.DisplayAddress())
}
