package numeric

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseOrZero(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "0"},
		{"abc", "0"},
		{"42", "42"},
		{"  42.5  ", "42.5"},
		{"-7", "-7"},
		{"+3", "3"},
		{"12.5kg", "12.5"},
		{"1.234,56", "1.234"},
		{".5", "0.5"},
		{"-.5", "-0.5"},
		{"5.", "5"},
		{"1e3", "1000"},
		{"2.5E-1", "0.25"},
		{"1e", "1"},
		{"--1", "0"},
		{"NaN", "0"},
		{"1e99999999", "0"},
		{"-1e99999999", "0"},
		{"1e-99999999", "0"},
		{"123e98", "0"},
		{"1e99", "1e99"},
		{"5e-3", "0.005"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseOrZero(tt.in)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestParseOrZero_LongFractionIsRounded(t *testing.T) {
	in := "0." + strings.Repeat("0", 99) + "4" + strings.Repeat("9", 50)
	got := ParseOrZero(in)

	assert.LessOrEqual(t, -got.Exponent(), int32(MaxExponent))
	assert.True(t, decimal.New(5, -MaxExponent).Equal(got), "got %s", got)
}
