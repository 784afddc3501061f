// Package profit derives per-import profit reports and the portfolio summary.
package profit

import (
	"coinnecta/internal/catalog"
	"coinnecta/internal/currency"
	"coinnecta/internal/model"
	"coinnecta/pkg/numeric"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Spend is the advertising investment and operating expenses attached to one import.
type Spend struct {
	Investment model.Investment
	Expenses   model.OperatingExpenses
}

// ComputeReport derives the profit report of one import in the country's currency.
func ComputeReport(agg model.ImportAggregate, spend Spend, country catalog.Country, conv *currency.Converter) model.ProfitReport {
	local := country.Currency

	investment := conv.Convert(numeric.ParseOrZero(spend.Investment.Amount), spend.Investment.Currency, local)
	expenses := decimal.Zero
	for _, e := range spend.Expenses.Expenses {
		expenses = expenses.Add(conv.Convert(numeric.ParseOrZero(e.Amount), e.Currency, local))
	}

	returnFreight := agg.ReturnFreightCost
	overridden := false
	if unit := numeric.ParseOrZero(spend.Expenses.UnitReturnCost); country.FlatReturnCost && unit.IsPositive() {
		returnFreight = decimal.NewFromInt(int64(agg.ReceivedReturns)).Mul(unit)
		overridden = true
	}

	totalCosts := agg.SupplierCost.Add(agg.ShippingCost).Add(returnFreight)
	operating := agg.Revenue.Sub(totalCosts)
	beforeReturns := agg.Revenue.Sub(agg.SupplierCost).Sub(agg.ShippingCost)
	adsAndExpenses := investment.Add(expenses)
	final := operating.Sub(adsAndExpenses)

	return model.ProfitReport{
		Country:                 country.Code,
		Currency:                local,
		Symbol:                  country.Symbol,
		Aggregate:               agg,
		Revenue:                 agg.Revenue,
		SupplierCost:            agg.SupplierCost,
		ShippingCost:            agg.ShippingCost,
		ReturnFreightCost:       returnFreight,
		ReturnFreightOverridden: overridden,
		TotalCosts:              totalCosts,
		OperatingProfit:         operating,
		BeforeReturnsProfit:     beforeReturns,
		AfterReturnsProfit:      beforeReturns.Sub(returnFreight),
		InvestmentSnapshot:      spend.Investment,
		Investment:              investment,
		ExpensesTotal:           expenses,
		AdsAndExpenses:          adsAndExpenses,
		FinalProfit:             final,
		AdProfit:                beforeReturns.Sub(investment),
		ROI:                     percentOf(final, adsAndExpenses),
		RealCPA:                 ratio(investment, agg.Total),
		Shares:                  ComputeShares(agg),
	}
}

// ReportFor computes the report of a stored import from its own snapshots.
func ReportFor(rec model.ImportRecord, cat *catalog.Catalog, conv *currency.Converter) model.ProfitReport {
	country, ok := cat.Country(rec.Country)
	if !ok {
		country = catalog.Country{Code: rec.Country, Currency: currency.Pivot, Symbol: "$"}
	}
	report := ComputeReport(rec.Aggregate, Spend{Investment: rec.Investment, Expenses: rec.Expenses}, country, conv)
	report.ImportID = rec.ID
	return report
}

// ComputeShares returns outcome percentages, zero when the base count is zero.
func ComputeShares(agg model.ImportAggregate) model.StatusShares {
	return model.StatusShares{
		Sent:          share(agg.Sent, agg.Total),
		Rejected:      share(agg.Rejected, agg.Total),
		Unconfirmable: share(agg.Unconfirmable, agg.Total),
		OfficeClaim:   share(agg.OfficeClaim, agg.Total),
		Delivered:     share(agg.Delivered, agg.Sent),
		InRoute:       share(agg.InRoute, agg.Sent),
		Incidents:     share(agg.Incidents, agg.Sent),
	}
}

// percentOf returns part/whole*100, or zero unless whole is positive.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

func ratio(amount decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return amount.Div(decimal.NewFromInt(int64(count)))
}

func share(n, base int) decimal.Decimal {
	if base <= 0 {
		return decimal.Zero
	}
	return percentOf(decimal.NewFromInt(int64(n)), decimal.NewFromInt(int64(base)))
}
