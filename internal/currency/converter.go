// Package currency converts amounts between currencies through a USD pivot rate table.
package currency

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Pivot is the currency every rate is quoted against.
const Pivot = "USD"

// RateTable maps a currency code to units of that currency per 1 USD.
type RateTable map[string]decimal.Decimal

// DefaultRates returns the built-in static rate table.
func DefaultRates() RateTable {
	return RateTable{
		"COP": decimal.NewFromInt(4000),
		"EUR": decimal.RequireFromString("0.92"),
		"GTQ": decimal.RequireFromString("7.8"),
		"ARS": decimal.NewFromInt(1000),
	}
}

// Converter converts amounts using a fixed RateTable. It is safe for concurrent use.
type Converter struct {
	rates  RateTable
	log    logrus.FieldLogger
	warned sync.Map
}

// NewConverter copies rates into a new Converter. A nil logger falls back to the logrus standard logger.
func NewConverter(rates RateTable, log logrus.FieldLogger) *Converter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	cp := make(RateTable, len(rates))
	for code, rate := range rates {
		cp[code] = rate
	}
	return &Converter{rates: cp, log: log}
}

// Rate returns units of code per 1 USD. Unknown codes and zero rates count as 1.
func (c *Converter) Rate(code string) decimal.Decimal {
	if code == Pivot {
		return decimal.NewFromInt(1)
	}
	rate, ok := c.rates[code]
	if !ok || rate.IsZero() {
		if _, seen := c.warned.LoadOrStore(code, struct{}{}); !seen {
			c.log.WithField("currency", code).Warn("no exchange rate configured, using 1")
		}
		return decimal.NewFromInt(1)
	}
	return rate
}

// Convert converts amount from one currency to another. Amounts are never rounded.
func (c *Converter) Convert(amount decimal.Decimal, from, to string) decimal.Decimal {
	if from == to {
		return amount
	}
	if to == Pivot {
		return amount.Div(c.Rate(from))
	}
	if from == Pivot {
		return amount.Mul(c.Rate(to))
	}
	return amount.Div(c.Rate(from)).Mul(c.Rate(to))
}

// ToPivot converts amount into USD.
func (c *Converter) ToPivot(amount decimal.Decimal, from string) decimal.Decimal {
	return c.Convert(amount, from, Pivot)
}

// Codes lists the configured currency codes, pivot included, sorted.
func (c *Converter) Codes() []string {
	codes := []string{Pivot}
	for code := range c.rates {
		if code != Pivot {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

// Rates returns a copy of the rate table.
func (c *Converter) Rates() RateTable {
	cp := make(RateTable, len(c.rates))
	for code, rate := range c.rates {
		cp[code] = rate
	}
	return cp
}
