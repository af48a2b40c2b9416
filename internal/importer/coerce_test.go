package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		name        string
		token       string
		expected    float64
		wantPresent bool
	}{
		{
			name:        "empty token is absent",
			token:       "",
			expected:    0,
			wantPresent: false,
		},
		{
			name:        "whitespace-only token is absent",
			token:       "   ",
			expected:    0,
			wantPresent: false,
		},
		{
			name:        "literal null is absent",
			token:       "null",
			expected:    0,
			wantPresent: false,
		},
		{
			name:        "uppercase NULL is absent",
			token:       "NULL",
			expected:    0,
			wantPresent: false,
		},
		{
			name:        "mixed-case Null with padding is absent",
			token:       "  Null ",
			expected:    0,
			wantPresent: false,
		},
		{
			name:        "valid float",
			token:       "3.14",
			expected:    3.14,
			wantPresent: true,
		},
		{
			name:        "negative integer literal",
			token:       "-2",
			expected:    -2,
			wantPresent: true,
		},
		{
			name:        "valid float with padding",
			token:       " 9780439023480.0 ",
			expected:    9780439023480.0,
			wantPresent: true,
		},
		{
			name:        "malformed token falls back to zero",
			token:       "abc123",
			expected:    0,
			wantPresent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, present := parseFloat(tt.token)
			assert.Equal(t, tt.expected, v)
			assert.Equal(t, tt.wantPresent, present)
		})
	}
}

func TestParseIntOrZero(t *testing.T) {
	assert.Equal(t, 0, parseIntOrZero(""))
	assert.Equal(t, 0, parseIntOrZero("null"))
	assert.Equal(t, 0, parseIntOrZero("not-a-number"))
	assert.Equal(t, 272, parseIntOrZero("272"))
	assert.Equal(t, -1, parseIntOrZero(" -1 "))
}

func TestOptionalString(t *testing.T) {
	assert.Nil(t, optionalString(""))
	assert.Nil(t, optionalString("  \t"))

	s := optionalString("439023483")
	if assert.NotNil(t, s) {
		assert.Equal(t, "439023483", *s)
	}
}
