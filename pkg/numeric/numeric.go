// Package numeric holds the single coercion policy used for user-entered and
// spreadsheet-sourced numbers: anything that does not start with a number is zero.
package numeric

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// MaxExponent bounds the magnitude of accepted values. Larger values parse as zero,
// smaller fractions are rounded to MaxExponent decimal places.
const MaxExponent = 100

// leadingNumber matches the longest numeric prefix a lenient float parser accepts.
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseOrZero parses the leading numeric prefix of s and returns zero when there is none.
// "12.5kg" parses as 12.5, "abc" and "" as 0.
func ParseOrZero(s string) decimal.Decimal {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	match := leadingNumber.FindString(s)
	if match == "" {
		return decimal.Zero
	}

	match = strings.TrimPrefix(match, "+")
	if i := strings.IndexAny(match, "eE"); i > 0 && match[i-1] == '.' {
		match = match[:i-1] + match[i:]
	}
	match = strings.TrimSuffix(match, ".")
	if strings.HasPrefix(match, ".") || strings.HasPrefix(match, "-.") {
		match = strings.Replace(match, ".", "0.", 1)
	}

	d, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero
	}
	return clamp(d)
}

// clamp keeps d within MaxExponent without ever materializing a huge coefficient.
func clamp(d decimal.Decimal) decimal.Decimal {
	exp := int64(d.Exponent())
	digits := int64(len(d.Coefficient().String()))
	if d.Sign() < 0 {
		digits--
	}

	switch {
	case d.IsZero():
		return decimal.Zero
	case exp+digits > MaxExponent:
		return decimal.Zero
	case exp+digits < -MaxExponent:
		return decimal.Zero
	case exp < -MaxExponent:
		return d.Round(MaxExponent)
	}
	return d
}
