package service

import (
	"context"
	"strings"
	"testing"

	"coinnecta/internal/orders"
	"coinnecta/internal/session"
	"coinnecta/internal/websocket"
	"coinnecta/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reportHeader = "ESTATUS,VALOR DE COMPRA EN PRODUCTOS,PRECIO FLETE,TOTAL EN PRECIOS DE PROVEEDOR,COSTO DEVOLUCION FLETE\n"

func reportCSV(rows ...string) []byte {
	return []byte(reportHeader + strings.Join(rows, "\n") + "\n")
}

func guatemalaImport() ImportRequest {
	return ImportRequest{
		Filename: "pedidos.csv",
		Country:  "guatemala",
		Data: reportCSV(
			"ENTREGADO,100,10,40,0",
			"RECHAZADO,100,10,40,5",
		),
	}
}

func TestImportService_CreateFreezesSpend(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.settings.UpdateInvestment(ctx, InvestmentRequest{Amount: "10", Currency: "USD"}, "")
	require.NoError(t, err)

	rec, err := env.imports.CreateImport(ctx, guatemalaImport(), "ana")
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Aggregate.Total)
	assert.Equal(t, 1, rec.Aggregate.Delivered)
	assert.Equal(t, "10", rec.Investment.Amount)
	require.Len(t, rec.Expenses.Expenses, 1)

	// later edits to the working settings do not reach the snapshot
	_, err = env.settings.UpdateInvestment(ctx, InvestmentRequest{Amount: "500", Currency: "USD"}, "")
	require.NoError(t, err)
	_, err = env.settings.UpdateExpenses(ctx, ExpensesRequest{}, "")
	require.NoError(t, err)

	stored, err := env.imports.GetImport(ctx, rec.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "10", stored.Investment.Amount)
	assert.Len(t, stored.Expenses.Expenses, 1)
	assert.Contains(t, env.events.names(), websocket.EventImportCreated)
}

func TestImportService_FailedImportLeavesSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.imports.CreateImport(ctx, ImportRequest{Filename: "vacio.csv", Country: "guatemala", Data: []byte(reportHeader)}, "")
	assert.ErrorIs(t, err, orders.ErrEmptyFile)

	_, err = env.imports.CreateImport(ctx, ImportRequest{
		Filename: "malo.csv",
		Country:  "guatemala",
		Data:     []byte("VALOR DE COMPRA EN PRODUCTOS,PRECIO FLETE\n1,2\n"),
	}, "")
	var ie *orders.ImportError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, orders.KindMissingColumns, ie.Kind)
	assert.Contains(t, ie.Missing, orders.ColStatus)

	_, err = env.imports.CreateImport(ctx, ImportRequest{Filename: "pedidos.csv", Country: "peru", Data: reportCSV("ENTREGADO,1,1,1,0")}, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	env.ws.View(func(s *session.Session) {
		assert.Empty(t, s.Imports)
	})
}

func TestImportService_ListNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.imports.CreateImport(ctx, guatemalaImport(), "")
	require.NoError(t, err)
	second, err := env.imports.CreateImport(ctx, guatemalaImport(), "")
	require.NoError(t, err)

	page, total, err := env.imports.ListImports(ctx, pagination.New(1, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, page, 1)
	assert.Equal(t, second.ID, page[0].ID)

	page, _, err = env.imports.ListImports(ctx, pagination.New(2, 1))
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, first.ID, page[0].ID)

	page, _, err = env.imports.ListImports(ctx, pagination.New(3, 10))
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestImportService_UpdateInvestmentRefreshesReport(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	rec, err := env.imports.CreateImport(ctx, guatemalaImport(), "")
	require.NoError(t, err)

	before, err := env.reports.GetReport(ctx, rec.ID.String())
	require.NoError(t, err)
	decEqual(t, "100", before.Revenue)
	decEqual(t, "0", before.Investment)
	decEqual(t, "226.2", before.ExpensesTotal)

	updated, err := env.imports.UpdateInvestment(ctx, rec.ID.String(), ImportInvestmentRequest{Amount: "10"}, "")
	require.NoError(t, err)
	assert.Equal(t, "USD", updated.Investment.Currency)
	assert.Equal(t, rec.Aggregate, updated.Aggregate)
	assert.Equal(t, rec.Expenses, updated.Expenses)

	after, err := env.reports.GetReport(ctx, rec.ID.String())
	require.NoError(t, err)
	decEqual(t, "78", after.Investment)
	decEqual(t, "-269.2", after.FinalProfit)

	_, err = env.imports.UpdateInvestment(ctx, "nope", ImportInvestmentRequest{Amount: "1"}, "")
	assert.ErrorIs(t, err, ErrNotFound)
}
