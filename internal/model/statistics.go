package model

import (
	"github.com/shopspring/decimal"
)

// ProfitReport is derived from an ImportRecord on demand and never persisted.
// Money fields are in the import country's currency.
type ProfitReport struct {
	ImportID  ID              `json:"import_id"`
	Country   string          `json:"country"`
	Currency  string          `json:"currency"`
	Symbol    string          `json:"symbol"`
	Aggregate ImportAggregate `json:"aggregate"`

	Revenue                 decimal.Decimal `json:"revenue"`
	SupplierCost            decimal.Decimal `json:"supplier_cost"`
	ShippingCost            decimal.Decimal `json:"shipping_cost"`
	ReturnFreightCost       decimal.Decimal `json:"return_freight_cost"`
	ReturnFreightOverridden bool            `json:"return_freight_overridden"`
	TotalCosts              decimal.Decimal `json:"total_costs"`
	OperatingProfit         decimal.Decimal `json:"operating_profit"`
	BeforeReturnsProfit     decimal.Decimal `json:"before_returns_profit"`
	AfterReturnsProfit      decimal.Decimal `json:"after_returns_profit"`

	InvestmentSnapshot Investment      `json:"investment_snapshot"`
	Investment         decimal.Decimal `json:"investment"`
	ExpensesTotal      decimal.Decimal `json:"expenses_total"`
	AdsAndExpenses     decimal.Decimal `json:"ads_and_expenses"`
	FinalProfit        decimal.Decimal `json:"final_profit"`
	AdProfit           decimal.Decimal `json:"ad_profit"`
	ROI                decimal.Decimal `json:"roi"`
	RealCPA            decimal.Decimal `json:"real_cpa"`

	Shares StatusShares `json:"shares"`

	// Display holds the amounts above formatted for people, keyed by their JSON name.
	Display map[string]string `json:"display,omitempty"`
}

// StatusShares are order outcome percentages. Pre-dispatch outcomes are shares of the
// total, post-dispatch outcomes are shares of the sent orders.
type StatusShares struct {
	Sent          decimal.Decimal `json:"sent"`
	Rejected      decimal.Decimal `json:"rejected"`
	Unconfirmable decimal.Decimal `json:"unconfirmable"`
	OfficeClaim   decimal.Decimal `json:"office_claim"`
	Delivered     decimal.Decimal `json:"delivered"`
	InRoute       decimal.Decimal `json:"in_route"`
	Incidents     decimal.Decimal `json:"incidents"`
}

// PortfolioSummary aggregates every import in USD.
type PortfolioSummary struct {
	Currency        string          `json:"currency"`
	Imports         int             `json:"imports"`
	UnknownCountry  int             `json:"unknown_country"`
	TotalOrders     int             `json:"total_orders"`
	DeliveredOrders int             `json:"delivered_orders"`
	Revenue         decimal.Decimal `json:"revenue"`
	Costs           decimal.Decimal `json:"costs"`
	OperatingProfit decimal.Decimal `json:"operating_profit"`
	Investment      decimal.Decimal `json:"investment"`
	Expenses        decimal.Decimal `json:"expenses"`
	AdsAndExpenses  decimal.Decimal `json:"ads_and_expenses"`
	FinalProfit     decimal.Decimal `json:"final_profit"`
	ROI             decimal.Decimal `json:"roi"`

	Display map[string]string `json:"display,omitempty"`
}
