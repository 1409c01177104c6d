package types

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Text
	}{
		{name: "string", input: `{"age":"34"}`, expected: "34"},
		{name: "integer", input: `{"age":34}`, expected: "34"},
		{name: "decimal keeps its text", input: `{"age":34.5}`, expected: "34.5"},
		{name: "null", input: `{"age":null}`, expected: ""},
		{name: "absent", input: `{}`, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req RegistrationRequest
			require.NoError(t, json.Unmarshal([]byte(tt.input), &req))
			assert.Equal(t, tt.expected, req.Age)
		})
	}

	t.Run("rejects objects", func(t *testing.T) {
		var req RegistrationRequest
		err := json.Unmarshal([]byte(`{"cvv":{"x":1}}`), &req)
		assert.Error(t, err)
	})
}

func TestRegistrationRequestFromForm(t *testing.T) {
	form := url.Values{
		"name":        {"Jane Doe"},
		"dateOfbirth": {"1990-05-01"},
		"age":         {"36"},
		"cvv":         {"123"},
		"timeStamp":   {"2026-10-15T09:00:00Z"},
	}

	req := RegistrationRequestFromForm(form)

	assert.Equal(t, "Jane Doe", req.Name)
	assert.Equal(t, "1990-05-01", req.DateOfBirth)
	assert.Equal(t, Text("36"), req.Age)
	assert.Equal(t, Text("123"), req.CVV)
	assert.Equal(t, "2026-10-15T09:00:00Z", req.TimeStamp)
	assert.Empty(t, req.Email)
}
