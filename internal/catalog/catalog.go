// Package catalog holds the static country and exchange-rate reference data.
package catalog

import (
	"fmt"
	"os"

	"coinnecta/internal/currency"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Country describes a market the operator sells into.
type Country struct {
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Currency string          `json:"currency"`
	Symbol   string          `json:"symbol"`
	Flag     string          `json:"flag"`
	TaxRate  decimal.Decimal `json:"tax_rate"`

	// FlatReturnCost marks markets whose reports do not populate return freight,
	// so a configured per-unit return cost replaces the reported total.
	FlatReturnCost bool `json:"flat_return_cost"`

	// InvestmentCurrency is preselected for ad spend entered for this market.
	InvestmentCurrency string `json:"investment_currency"`
}

// Catalog is an immutable, ordered set of countries plus the rate table.
type Catalog struct {
	order     []string
	countries map[string]Country
	symbols   map[string]string
	rates     currency.RateTable
}

// New builds a catalog preserving the order of countries.
func New(countries []Country, rates currency.RateTable) *Catalog {
	c := &Catalog{
		countries: make(map[string]Country, len(countries)),
		symbols:   map[string]string{currency.Pivot: "$"},
		rates:     make(currency.RateTable, len(rates)),
	}
	for _, country := range countries {
		if country.InvestmentCurrency == "" {
			country.InvestmentCurrency = currency.Pivot
		}
		if _, dup := c.countries[country.Code]; !dup {
			c.order = append(c.order, country.Code)
		}
		c.countries[country.Code] = country
		c.symbols[country.Currency] = country.Symbol
	}
	for code, rate := range rates {
		c.rates[code] = rate
	}
	return c
}

// Default returns the built-in reference data.
func Default() *Catalog {
	return New([]Country{
		{Code: "colombia", Name: "Colombia", Currency: "COP", Symbol: "$", Flag: "🇨🇴", TaxRate: decimal.Zero},
		{Code: "espana", Name: "España", Currency: "EUR", Symbol: "€", Flag: "🇪🇸", TaxRate: decimal.NewFromInt(21), FlatReturnCost: true, InvestmentCurrency: "EUR"},
		{Code: "guatemala", Name: "Guatemala", Currency: "GTQ", Symbol: "Q", Flag: "🇬🇹", TaxRate: decimal.Zero},
		{Code: "argentina", Name: "Argentina", Currency: "ARS", Symbol: "$", Flag: "🇦🇷", TaxRate: decimal.Zero},
	}, currency.DefaultRates())
}

// Country looks a country up by code.
func (c *Catalog) Country(code string) (Country, bool) {
	country, ok := c.countries[code]
	return country, ok
}

// Countries returns all countries in declaration order.
func (c *Catalog) Countries() []Country {
	out := make([]Country, 0, len(c.order))
	for _, code := range c.order {
		out = append(out, c.countries[code])
	}
	return out
}

// Rates returns a copy of the rate table.
func (c *Catalog) Rates() currency.RateTable {
	out := make(currency.RateTable, len(c.rates))
	for code, rate := range c.rates {
		out[code] = rate
	}
	return out
}

// SymbolFor returns the display symbol for a currency code, "$" when unknown.
func (c *Catalog) SymbolFor(code string) string {
	if symbol, ok := c.symbols[code]; ok {
		return symbol
	}
	return "$"
}

// DefaultInvestmentCurrency is the currency preselected for ad spend in a market.
func (c *Catalog) DefaultInvestmentCurrency(code string) string {
	if country, ok := c.countries[code]; ok {
		return country.InvestmentCurrency
	}
	return currency.Pivot
}

// InvestmentCurrencies lists the currencies ad spend may be entered in for a market.
func (c *Catalog) InvestmentCurrencies(code string) []string {
	country := c.countries[code]
	return uniq(currency.Pivot, "EUR", country.Currency)
}

// CPACurrencies lists the currencies an average CPA may be entered in for a market.
func (c *Catalog) CPACurrencies(code string) []string {
	country := c.countries[code]
	return uniq(currency.Pivot, country.Currency)
}

func uniq(codes ...string) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}

type fileCountry struct {
	Code               string  `yaml:"code"`
	Name               string  `yaml:"name"`
	Currency           string  `yaml:"currency"`
	Symbol             string  `yaml:"symbol"`
	Flag               string  `yaml:"flag"`
	TaxRate            float64 `yaml:"tax_rate"`
	FlatReturnCost     bool    `yaml:"flat_return_cost"`
	InvestmentCurrency string  `yaml:"investment_currency"`
}

type fileData struct {
	Countries []fileCountry     `yaml:"countries"`
	Rates     map[string]string `yaml:"rates"`
}

// Load reads reference data from a YAML file with top-level "countries" and "rates" keys.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference data: %w", err)
	}
	return Parse(raw)
}

// Parse decodes YAML reference data.
func Parse(raw []byte) (*Catalog, error) {
	var data fileData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode reference data: %w", err)
	}
	if len(data.Countries) == 0 {
		return nil, fmt.Errorf("reference data defines no countries")
	}

	countries := make([]Country, 0, len(data.Countries))
	for _, fc := range data.Countries {
		if fc.Code == "" || fc.Currency == "" {
			return nil, fmt.Errorf("country entry %q is missing code or currency", fc.Name)
		}
		countries = append(countries, Country{
			Code:               fc.Code,
			Name:               fc.Name,
			Currency:           fc.Currency,
			Symbol:             fc.Symbol,
			Flag:               fc.Flag,
			TaxRate:            decimal.NewFromFloat(fc.TaxRate),
			FlatReturnCost:     fc.FlatReturnCost,
			InvestmentCurrency: fc.InvestmentCurrency,
		})
	}

	rates := make(currency.RateTable, len(data.Rates))
	for code, value := range data.Rates {
		rate, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("invalid rate for %s: %w", code, err)
		}
		rates[code] = rate
	}

	return New(countries, rates), nil
}
