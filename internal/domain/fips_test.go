package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFIPS(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"five digits", "13121", "13121"},
		{"four digits zero-padded", "1073", "01073"},
		{"float string", "13121.0", "13121"},
		{"short float string", "459.0", "00459"},
		{"whitespace", "  42001 ", "42001"},
		{"leading zeros kept", "04019", "04019"},
		{"empty", "", ""},
		{"non-numeric", "unknown", ""},
		{"negative", "-1", ""},
		{"nan", "NaN", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeFIPS(tc.in))
		})
	}
}
