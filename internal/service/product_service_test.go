package service

import (
	"context"
	"testing"

	"coinnecta/internal/websocket"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceProduct() ProductRequest {
	return ProductRequest{
		Name:        "Lámpara",
		Country:     "colombia",
		Price:       "22000",
		Cost:        "4680",
		Shipping:    "1000",
		TaxIncluded: true,
	}
}

func TestProductService_Preview(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.products.Preview(context.Background(), referenceProduct())
	require.NoError(t, err)
	require.NotNil(t, res.Metrics)
	assert.Equal(t, "COP", res.Currency)
	decEqual(t, "8452.8", res.Metrics.ExpectedCODProfit)
	assert.Equal(t, "$8,453", res.Display["expected_cod_profit"])
	assert.Nil(t, res.Projection, "no average CPA configured")
}

func TestProductService_PreviewZeroPrice(t *testing.T) {
	env := newTestEnv(t)
	req := referenceProduct()
	req.Price = "0"

	res, err := env.products.Preview(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, res.Metrics)
}

func TestProductService_PreviewUsesRequestRates(t *testing.T) {
	env := newTestEnv(t)
	req := referenceProduct()
	full := decimal.NewFromInt(100)
	req.ConfirmRate = &full
	req.DeliverRate = &full

	res, err := env.products.Preview(context.Background(), req)
	require.NoError(t, err)
	decEqual(t, "1", res.Metrics.BlendedRate)
	decEqual(t, "16320", res.Metrics.ExpectedCODProfit)
}

func TestProductService_PreviewUnknownCountry(t *testing.T) {
	env := newTestEnv(t)
	req := referenceProduct()
	req.Country = "peru"

	_, err := env.products.Preview(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProductService_CreateValidates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := referenceProduct()
	req.Name = "  "
	_, err := env.products.CreateProduct(ctx, req, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = referenceProduct()
	req.Price = "abc"
	_, err = env.products.CreateProduct(ctx, req, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	list, err := env.products.ListProducts(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProductService_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.settings.UpdateAverageCPA(ctx, AverageCPARequest{Value: "2", Currency: "USD"}, "ana")
	require.NoError(t, err)

	created, err := env.products.CreateProduct(ctx, referenceProduct(), "ana")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	decEqual(t, "5680", created.UnitCost)
	require.NotNil(t, created.Projection)
	decEqual(t, "452.8", created.Projection.Profit)

	spain := ProductRequest{Name: "Silla", Country: "espana", Price: "30", Cost: "10", Shipping: "5", TaxIncluded: true}
	_, err = env.products.CreateProduct(ctx, spain, "ana")
	require.NoError(t, err)

	colombian, err := env.products.ListProducts(ctx, "colombia")
	require.NoError(t, err)
	require.Len(t, colombian, 1)
	assert.Equal(t, "Lámpara", colombian[0].Name)

	all, err := env.products.ListProducts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	update := referenceProduct()
	update.Price = "30000"
	updated, err := env.products.UpdateProduct(ctx, created.ID.String(), update, "ana")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "30000", updated.Price)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	decEqual(t, "24320", updated.Metrics.GrossProfit)

	require.NoError(t, env.products.DeleteProduct(ctx, created.ID.String(), "ana"))
	all, err = env.products.ListProducts(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Silla", all[0].Name)

	assert.Contains(t, env.events.names(), websocket.EventProductSaved)
	assert.Contains(t, env.events.names(), websocket.EventProductDeleted)

	logs, total, err := env.audits.GetAuditLogs(ctx, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Equal(t, "ana", logs[0].Actor)
}

func TestProductService_MissingProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.products.UpdateProduct(ctx, "nope", referenceProduct(), "")
	assert.ErrorIs(t, err, ErrNotFound)

	err = env.products.DeleteProduct(ctx, "nope", "")
	assert.ErrorIs(t, err, ErrNotFound)
}
