package service

import (
	"context"
	"fmt"
	"time"

	"coinnecta/internal/catalog"
	"coinnecta/internal/currency"
	"coinnecta/internal/model"
	"coinnecta/internal/profit"
	"coinnecta/internal/session"
	"coinnecta/pkg/display"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

const summaryCacheKey = "summary"

type ReportService interface {
	GetReport(ctx context.Context, id string) (model.ProfitReport, error)
	GetSummary(ctx context.Context) model.PortfolioSummary
	// Invalidate drops the cached report for id and the portfolio summary.
	Invalidate(id model.ID)
}

// cachedEntry remembers which workspace version a value was computed from.
// Entries from an older version are never served.
type cachedEntry struct {
	version uint64
	value   interface{}
}

type reportService struct {
	ws      *Workspace
	catalog *catalog.Catalog
	conv    *currency.Converter
	format  *display.Formatter
	cache   *cache.Cache
}

func NewReportService(ws *Workspace, cat *catalog.Catalog, conv *currency.Converter, format *display.Formatter, ttl time.Duration) ReportService {
	return &reportService{
		ws:      ws,
		catalog: cat,
		conv:    conv,
		format:  format,
		cache:   cache.New(ttl, 2*ttl),
	}
}

func reportCacheKey(id model.ID) string {
	return "report:" + id.String()
}

func (s *reportService) cached(key string) (interface{}, bool) {
	item, ok := s.cache.Get(key)
	if !ok {
		return nil, false
	}
	entry := item.(cachedEntry)
	if entry.version != s.ws.Version() {
		return nil, false
	}
	return entry.value, true
}

func (s *reportService) GetReport(ctx context.Context, id string) (model.ProfitReport, error) {
	key := reportCacheKey(model.ID(id))
	if v, ok := s.cached(key); ok {
		return v.(model.ProfitReport), nil
	}

	var rec model.ImportRecord
	var version uint64
	found := false
	s.ws.ViewVersion(func(sess *session.Session, v uint64) {
		version = v
		if i := sess.ImportIndex(model.ID(id)); i >= 0 {
			rec = sess.Imports[i].Clone()
			found = true
		}
	})
	if !found {
		return model.ProfitReport{}, fmt.Errorf("import %s: %w", id, ErrNotFound)
	}

	report := profit.ReportFor(rec, s.catalog, s.conv)
	report.Display = s.displayReport(report)
	s.cache.SetDefault(key, cachedEntry{version: version, value: report})
	return report, nil
}

func (s *reportService) GetSummary(ctx context.Context) model.PortfolioSummary {
	if v, ok := s.cached(summaryCacheKey); ok {
		return v.(model.PortfolioSummary)
	}

	var records []model.ImportRecord
	var version uint64
	s.ws.ViewVersion(func(sess *session.Session, v uint64) {
		version = v
		records = make([]model.ImportRecord, len(sess.Imports))
		for i, rec := range sess.Imports {
			records[i] = rec.Clone()
		}
	})

	summary := profit.Summarize(records, s.catalog, s.conv)
	summary.Display = s.displaySummary(summary)
	s.cache.SetDefault(summaryCacheKey, cachedEntry{version: version, value: summary})
	return summary
}

func (s *reportService) Invalidate(id model.ID) {
	s.cache.Delete(reportCacheKey(id))
	s.cache.Delete(summaryCacheKey)
}

func (s *reportService) displayReport(r model.ProfitReport) map[string]string {
	money := func(d decimal.Decimal) string { return display.WithSymbol(r.Symbol, s.format.Int(d)) }

	inv := r.InvestmentSnapshot
	return map[string]string{
		"revenue":               money(r.Revenue),
		"supplier_cost":         money(r.SupplierCost),
		"shipping_cost":         money(r.ShippingCost),
		"return_freight_cost":   money(r.ReturnFreightCost),
		"total_costs":           money(r.TotalCosts),
		"operating_profit":      money(r.OperatingProfit),
		"before_returns_profit": money(r.BeforeReturnsProfit),
		"after_returns_profit":  money(r.AfterReturnsProfit),
		"investment":            money(r.Investment),
		"investment_snapshot":   display.WithSymbol(s.catalog.SymbolFor(inv.Currency), s.format.MoneyString(inv.Amount)),
		"expenses_total":        money(r.ExpensesTotal),
		"ads_and_expenses":      money(r.AdsAndExpenses),
		"final_profit":          money(r.FinalProfit),
		"ad_profit":             money(r.AdProfit),
		"roi":                   s.format.Money(r.ROI) + "%",
		"real_cpa":              display.WithSymbol(r.Symbol, s.format.Money(r.RealCPA)),
	}
}

func (s *reportService) displaySummary(sum model.PortfolioSummary) map[string]string {
	usd := func(d decimal.Decimal) string { return display.WithSymbol("$", s.format.Money(d)) }

	return map[string]string{
		"revenue":          usd(sum.Revenue),
		"costs":            usd(sum.Costs),
		"operating_profit": usd(sum.OperatingProfit),
		"investment":       usd(sum.Investment),
		"expenses":         usd(sum.Expenses),
		"ads_and_expenses": usd(sum.AdsAndExpenses),
		"final_profit":     usd(sum.FinalProfit),
		"roi":              s.format.Money(sum.ROI) + "%",
	}
}
