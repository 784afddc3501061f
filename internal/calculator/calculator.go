// Package calculator computes per-unit cash-on-delivery economics for a product.
package calculator

import (
	"coinnecta/internal/catalog"
	"coinnecta/internal/currency"
	"coinnecta/internal/model"
	"coinnecta/pkg/numeric"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Inputs are the user-entered product amounts, in the country's currency.
type Inputs struct {
	Price     decimal.Decimal
	Cost      decimal.Decimal
	Shipping  decimal.Decimal
	TargetCPA decimal.Decimal
}

// ParseInputs coerces raw entered values, treating malformed ones as zero.
func ParseInputs(price, cost, shipping, targetCPA string) Inputs {
	return Inputs{
		Price:     numeric.ParseOrZero(price),
		Cost:      numeric.ParseOrZero(cost),
		Shipping:  numeric.ParseOrZero(shipping),
		TargetCPA: numeric.ParseOrZero(targetCPA),
	}
}

// Rates are the assumed phone-confirmation and delivery success percentages.
type Rates struct {
	Confirm decimal.Decimal
	Deliver decimal.Decimal
}

// ComputeMetrics returns nil when the price is zero.
func ComputeMetrics(in Inputs, country catalog.Country, taxIncluded bool, rates Rates) *model.ProductMetrics {
	if in.Price.IsZero() {
		return nil
	}

	taxFactor := decimal.NewFromInt(1)
	if taxIncluded && country.TaxRate.IsPositive() {
		taxFactor = taxFactor.Add(country.TaxRate.Div(hundred))
	}

	costWithTax := in.Cost.Mul(taxFactor)
	grossProfit := in.Price.Sub(costWithTax).Sub(in.Shipping)

	confirm := rates.Confirm.Div(hundred)
	blended := confirm.Mul(rates.Deliver.Div(hundred))

	expectedRevenue := in.Price.Mul(blended)
	expectedProductCost := costWithTax.Mul(blended)
	expectedShippingCost := in.Shipping.Mul(confirm)
	expectedProfit := expectedRevenue.Sub(expectedProductCost).Sub(expectedShippingCost)

	m := &model.ProductMetrics{
		Cost:                 in.Cost,
		CostWithTax:          costWithTax,
		Shipping:             in.Shipping,
		GrossProfit:          grossProfit,
		GrossMargin:          grossProfit.Div(in.Price).Mul(hundred),
		TargetCPA:            in.TargetCPA,
		ConfirmRate:          rates.Confirm,
		DeliverRate:          rates.Deliver,
		BlendedRate:          blended,
		ExpectedRevenue:      expectedRevenue,
		ExpectedProductCost:  expectedProductCost,
		ExpectedShippingCost: expectedShippingCost,
		ExpectedCODProfit:    expectedProfit,
	}
	if in.TargetCPA.IsPositive() {
		vsTarget := expectedProfit.Sub(in.TargetCPA)
		m.ProfitVsTarget = &vsTarget
	}
	return m
}

// ProjectAverageCPA subtracts the operator's average CPA, converted into the local
// currency, from the expected COD profit. It returns nil when no positive CPA is set.
func ProjectAverageCPA(m *model.ProductMetrics, price decimal.Decimal, avg model.AverageCPA, conv *currency.Converter, local string) *model.CPAProjection {
	if m == nil {
		return nil
	}
	value := numeric.ParseOrZero(avg.Value)
	if !value.IsPositive() {
		return nil
	}

	cpaLocal := conv.Convert(value, avg.Currency, local)
	profit := m.ExpectedCODProfit.Sub(cpaLocal)
	pct := decimal.Zero
	if price.IsPositive() {
		pct = profit.Div(price).Mul(hundred)
	}

	return &model.CPAProjection{
		AverageCPA:      avg,
		AverageCPALocal: cpaLocal,
		Profit:          profit,
		ProfitPct:       pct,
		ProfitUSD:       conv.ToPivot(profit, local),
		Profitable:      !profit.IsNegative(),
	}
}
