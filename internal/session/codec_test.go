package session

import (
	"testing"
	"time"

	"coinnecta/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	s := New()
	s.Investment = model.Investment{Amount: "150", Currency: "EUR"}
	s.AverageCPA = model.AverageCPA{Value: "3.5", Currency: "USD"}
	s.Expenses.UnitReturnCost = "4"
	s.Products = []model.Product{{
		ID:      "p1",
		Name:    "Lamp",
		Country: "colombia",
		Price:   "22000",
		Metrics: model.ProductMetrics{ExpectedCODProfit: decimal.RequireFromString("8452.8")},
	}}
	s.Imports = []model.ImportRecord{{
		ID:         "i1",
		CreatedAt:  time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Filename:   "mayo.xlsx",
		Country:    "espana",
		Aggregate:  model.ImportAggregate{Total: 10, Delivered: 4, Revenue: decimal.NewFromInt(400)},
		Investment: model.Investment{Amount: "50", Currency: "USD"},
		Expenses:   model.OperatingExpenses{Expenses: []model.ExpenseEntry{{ID: "e1", Name: "Apps", Amount: "10", Currency: "EUR"}}},
	}}

	data, err := Encode(s)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, s.Investment, got.Investment)
	assert.Equal(t, s.AverageCPA, got.AverageCPA)
	assert.Equal(t, "4", got.Expenses.UnitReturnCost)
	require.Len(t, got.Products, 1)
	assert.True(t, decimal.RequireFromString("8452.8").Equal(got.Products[0].Metrics.ExpectedCODProfit))
	require.Len(t, got.Imports, 1)
	assert.Equal(t, 10, got.Imports[0].Aggregate.Total)
	assert.Equal(t, "50", got.Imports[0].Investment.Amount)
	assert.Equal(t, "Apps", got.Imports[0].Expenses.Expenses[0].Name)
	assert.True(t, s.Imports[0].CreatedAt.Equal(got.Imports[0].CreatedAt))
}

func TestDecode_LegacyShopifyAmount(t *testing.T) {
	got, err := Decode([]byte(`{"expenses":{"shopify":"39","unit_return_cost":"6"}}`))
	require.NoError(t, err)

	require.Len(t, got.Expenses.Expenses, 1)
	e := got.Expenses.Expenses[0]
	assert.Equal(t, "Shopify", e.Name)
	assert.Equal(t, "39", e.Amount)
	assert.Equal(t, "USD", e.Currency)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "6", got.Expenses.UnitReturnCost)
}

func TestDecode_LegacyEmptyShopifyAmount(t *testing.T) {
	got, err := Decode([]byte(`{"expenses":{"shopify":""}}`))
	require.NoError(t, err)
	assert.Equal(t, "29", got.Expenses.Expenses[0].Amount)
}

func TestDecode_MissingExpenses(t *testing.T) {
	for _, blob := range []string{`{}`, `{"expenses":null}`, `{"expenses":{}}`, `{"expenses":"garbage"}`} {
		got, err := Decode([]byte(blob))
		require.NoError(t, err, blob)
		require.Len(t, got.Expenses.Expenses, 1, blob)
		assert.Equal(t, "29", got.Expenses.Expenses[0].Amount, blob)
		assert.Equal(t, "USD", got.Investment.Currency, blob)
	}
}

func TestDecode_ImportsWithoutSnapshots(t *testing.T) {
	blob := `{
		"investment": {"amount": "80", "currency": "EUR"},
		"expenses": {"expenses": [{"id": 1700000000000, "name": "Shopify", "amount": "29", "currency": "USD"}]},
		"imports": [
			{"id": 1700000000001, "country": "espana", "aggregate": {"total": 3}},
			{"id": "x", "country": "colombia", "aggregate": {"total": 1},
			 "investment": {"amount": "5", "currency": "USD"},
			 "expenses": {"shopify": "10"}}
		]
	}`

	got, err := Decode([]byte(blob))
	require.NoError(t, err)
	require.Len(t, got.Imports, 2)

	first := got.Imports[0]
	assert.Equal(t, model.ID("1700000000001"), first.ID)
	assert.Equal(t, model.Investment{Amount: "80", Currency: "EUR"}, first.Investment)
	require.Len(t, first.Expenses.Expenses, 1)
	assert.Equal(t, model.ID("1700000000000"), first.Expenses.Expenses[0].ID)

	first.Expenses.Expenses[0].Amount = "0"
	assert.Equal(t, "29", got.Expenses.Expenses[0].Amount)

	second := got.Imports[1]
	assert.Equal(t, "5", second.Investment.Amount)
	assert.Equal(t, "10", second.Expenses.Expenses[0].Amount)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode([]byte(`{not json`))
	assert.Error(t, err)
}
