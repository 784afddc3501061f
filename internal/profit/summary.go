package profit

import (
	"coinnecta/internal/catalog"
	"coinnecta/internal/currency"
	"coinnecta/internal/model"

	"github.com/shopspring/decimal"
)

// Summarize totals every import in USD. Each import contributes the investment and
// expenses of its own snapshot, and its return freight after any flat-cost override.
// Imports whose country is no longer in the catalog are converted as if they were in USD
// and counted in UnknownCountry.
func Summarize(records []model.ImportRecord, cat *catalog.Catalog, conv *currency.Converter) model.PortfolioSummary {
	s := model.PortfolioSummary{
		Currency:        currency.Pivot,
		Revenue:         decimal.Zero,
		Costs:           decimal.Zero,
		OperatingProfit: decimal.Zero,
		Investment:      decimal.Zero,
		Expenses:        decimal.Zero,
		AdsAndExpenses:  decimal.Zero,
		FinalProfit:     decimal.Zero,
		ROI:             decimal.Zero,
	}

	for _, rec := range records {
		if _, ok := cat.Country(rec.Country); !ok {
			s.UnknownCountry++
		}
		report := ReportFor(rec, cat, conv)

		s.Imports++
		s.TotalOrders += rec.Aggregate.Total
		s.DeliveredOrders += rec.Aggregate.Delivered
		s.Revenue = s.Revenue.Add(conv.ToPivot(report.Revenue, report.Currency))
		s.Costs = s.Costs.Add(conv.ToPivot(report.TotalCosts, report.Currency))
		s.Investment = s.Investment.Add(conv.ToPivot(report.Investment, report.Currency))
		s.Expenses = s.Expenses.Add(conv.ToPivot(report.ExpensesTotal, report.Currency))
	}

	s.OperatingProfit = s.Revenue.Sub(s.Costs)
	s.AdsAndExpenses = s.Investment.Add(s.Expenses)
	s.FinalProfit = s.OperatingProfit.Sub(s.AdsAndExpenses)
	s.ROI = percentOf(s.FinalProfit, s.AdsAndExpenses)
	return s
}
