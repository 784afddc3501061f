package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ImportAggregate is the classified summary of one courier order report. It never changes after import.
type ImportAggregate struct {
	Total            int `json:"total"`
	Delivered        int `json:"delivered"`
	Sent             int `json:"sent"`
	Rejected         int `json:"rejected"`
	Unconfirmable    int `json:"unconfirmable"`
	OfficeClaim      int `json:"office_claim"`
	InTransitReturns int `json:"in_transit_returns"`
	ReceivedReturns  int `json:"received_returns"`
	InRoute          int `json:"in_route"`
	Incidents        int `json:"incidents"`
	Unclassified     int `json:"unclassified"`

	Revenue           decimal.Decimal `json:"revenue"`
	SupplierCost      decimal.Decimal `json:"supplier_cost"`
	ShippingCost      decimal.Decimal `json:"shipping_cost"`
	ReturnFreightCost decimal.Decimal `json:"return_freight_cost"`
	IncidentRevenue   decimal.Decimal `json:"incident_revenue"`
}

// ImportRecord is one imported report with the investment and expenses frozen at import time.
// Only Investment may be edited afterwards.
type ImportRecord struct {
	ID         ID                `json:"id"`
	CreatedAt  time.Time         `json:"created_at"`
	Filename   string            `json:"filename"`
	Country    string            `json:"country"`
	Aggregate  ImportAggregate   `json:"aggregate"`
	Investment Investment        `json:"investment"`
	Expenses   OperatingExpenses `json:"expenses"`
}

// Clone returns a deep copy of the record.
func (r ImportRecord) Clone() ImportRecord {
	r.Expenses = r.Expenses.Clone()
	return r
}
