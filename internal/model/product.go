package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a saved unit-economics calculation. Amounts are kept as entered and
// Metrics is the snapshot computed when the product was last saved.
type Product struct {
	ID          ID             `json:"id"`
	Name        string         `json:"name"`
	Country     string         `json:"country"`
	Price       string         `json:"price"`
	Cost        string         `json:"cost"`
	Shipping    string         `json:"shipping"`
	TargetCPA   string         `json:"target_cpa"`
	TaxIncluded bool           `json:"tax_included"`
	Metrics     ProductMetrics `json:"metrics"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// UnitCost is the landed cost of one unit: cost with tax plus shipping.
func (p Product) UnitCost() decimal.Decimal {
	return p.Metrics.CostWithTax.Add(p.Metrics.Shipping)
}

// ProductMetrics holds per-unit economics in the product's local currency.
type ProductMetrics struct {
	Cost                 decimal.Decimal  `json:"cost"`
	CostWithTax          decimal.Decimal  `json:"cost_with_tax"`
	Shipping             decimal.Decimal  `json:"shipping"`
	GrossProfit          decimal.Decimal  `json:"gross_profit"`
	GrossMargin          decimal.Decimal  `json:"gross_margin"`
	TargetCPA            decimal.Decimal  `json:"target_cpa"`
	ConfirmRate          decimal.Decimal  `json:"confirm_rate"`
	DeliverRate          decimal.Decimal  `json:"deliver_rate"`
	BlendedRate          decimal.Decimal  `json:"blended_rate"`
	ExpectedRevenue      decimal.Decimal  `json:"expected_revenue"`
	ExpectedProductCost  decimal.Decimal  `json:"expected_product_cost"`
	ExpectedShippingCost decimal.Decimal  `json:"expected_shipping_cost"`
	ExpectedCODProfit    decimal.Decimal  `json:"expected_cod_profit"`
	ProfitVsTarget       *decimal.Decimal `json:"profit_vs_target"`
}

// CPAProjection is the expected COD profit after paying the operator's average CPA.
type CPAProjection struct {
	AverageCPA      AverageCPA      `json:"average_cpa"`
	AverageCPALocal decimal.Decimal `json:"average_cpa_local"`
	Profit          decimal.Decimal `json:"profit"`
	ProfitPct       decimal.Decimal `json:"profit_pct"`
	ProfitUSD       decimal.Decimal `json:"profit_usd"`
	Profitable      bool            `json:"profitable"`
}
