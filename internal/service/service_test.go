package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"coinnecta/internal/calculator"
	"coinnecta/internal/catalog"
	"coinnecta/internal/config"
	"coinnecta/internal/currency"
	"coinnecta/internal/database"
	"coinnecta/internal/logger"
	"coinnecta/internal/orders"
	"coinnecta/internal/repository"
	"coinnecta/pkg/display"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testStateKey = "coinnecta_data_v5"

type recordedEvent struct {
	Event string
	Data  interface{}
}

type recordingPublisher struct {
	events []recordedEvent
}

func (p *recordingPublisher) Publish(event string, data interface{}) {
	p.events = append(p.events, recordedEvent{Event: event, Data: data})
}

func (p *recordingPublisher) names() []string {
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Event)
	}
	return out
}

type testEnv struct {
	db       *gorm.DB
	ws       *Workspace
	catalog  *catalog.Catalog
	conv     *currency.Converter
	events   *recordingPublisher
	products ProductService
	settings SettingsService
	imports  ImportService
	reports  ReportService
	audits   AuditService
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewConnection(database.Options{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "test.db"),
	}, logger.Discard())
	require.NoError(t, err)
	return db
}

func newWorkspace(db *gorm.DB) *Workspace {
	return NewWorkspace(
		testStateKey,
		repository.NewStateRepository(db),
		repository.NewAuditRepository(db),
		repository.NewTransactionManager(db),
		logger.Discard(),
	)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	ws := newWorkspace(db)
	require.NoError(t, ws.Load(context.Background()))

	cat := catalog.Default()
	conv := currency.NewConverter(cat.Rates(), logger.Discard())
	events := &recordingPublisher{}
	rates := calculator.Rates{Confirm: decimal.NewFromInt(90), Deliver: decimal.NewFromInt(60)}
	reports := NewReportService(ws, cat, conv, display.NewFormatter("en-US"), time.Minute)

	return &testEnv{
		db:       db,
		ws:       ws,
		catalog:  cat,
		conv:     conv,
		events:   events,
		products: NewProductService(ws, cat, conv, display.NewFormatter("en-US"), rates, events),
		settings: NewSettingsService(ws, cat, events),
		imports:  NewImportService(ws, cat, orders.NewClassifier(logger.Discard()), reports, events, logger.Discard()),
		reports:  reports,
		audits:   NewAuditService(repository.NewAuditRepository(db)),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decEqual(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, dec(want).Equal(got), "want %s got %s", want, got)
}
