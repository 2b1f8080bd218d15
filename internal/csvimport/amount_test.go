package csvimport_test

import (
	"testing"

	"github.com/fondosar/backoffice_api/internal/csvimport"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLooseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"40.000,00", "40000.00"},
		{"40,000.00", "40000.00"},
		{"120", "120"},
		{"1.234.567,89", "1234567.89"},
		{"1,234,567.89", "1234567.89"},
		{"-1.500,25", "-1500.25"},
		{"120,5", "120.5"},
		{"120.5", "120.5"},
		{"1.234.567", "1234567"},   // repeated dot can only group thousands
		{"1,234,567", "1234567"},   // repeated comma likewise
		{"$ 40.000,00", "40000.00"}, // currency symbol stripped
		{"ARS 99,10", "99.10"},
		{"0,01", "0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := csvimport.ParseLooseAmount(tt.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s want %s", got, tt.want)
		})
	}
}

func TestParseLooseAmount_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "-", "..,,"} {
		t.Run(in, func(t *testing.T) {
			_, err := csvimport.ParseLooseAmount(in)
			assert.Error(t, err)
		})
	}
}
