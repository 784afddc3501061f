// Package display renders amounts for people: locale grouping, fixed decimals, currency symbol.
package display

import (
	"coinnecta/pkg/numeric"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is used when no locale, or an unparseable one, is configured.
const DefaultLocale = "es-ES"

// Formatter formats numbers for one locale. It is safe for concurrent use.
type Formatter struct {
	tag language.Tag
}

func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return &Formatter{tag: tag}
}

// Int renders n rounded to a whole number with grouping separators.
func (f *Formatter) Int(n decimal.Decimal) string {
	p := message.NewPrinter(f.tag)
	return p.Sprint(number.Decimal(n.Round(0).InexactFloat64(), number.MaxFractionDigits(0)))
}

// Money renders n with exactly two decimals.
func (f *Formatter) Money(n decimal.Decimal) string {
	p := message.NewPrinter(f.tag)
	return p.Sprint(number.Decimal(n.Round(2).InexactFloat64(), number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// MoneyString formats raw text with two decimals; anything non-numeric renders as zero.
func (f *Formatter) MoneyString(s string) string {
	return f.Money(numeric.ParseOrZero(s))
}

// WithSymbol prefixes formatted text with a currency symbol, keeping the sign in front.
func WithSymbol(symbol, formatted string) string {
	if len(formatted) > 0 && formatted[0] == '-' {
		return "-" + symbol + formatted[1:]
	}
	return symbol + formatted
}
