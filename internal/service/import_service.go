package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"coinnecta/internal/catalog"
	"coinnecta/internal/model"
	"coinnecta/internal/orders"
	"coinnecta/internal/session"
	"coinnecta/internal/spreadsheet"
	"coinnecta/internal/websocket"
	"coinnecta/pkg/pagination"

	"github.com/sirupsen/logrus"
)

type ImportRequest struct {
	Filename string
	Country  string
	Data     []byte
}

type ImportInvestmentRequest struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency" binding:"omitempty,currency"`
}

type ImportService interface {
	CreateImport(ctx context.Context, req ImportRequest, actor string) (model.ImportRecord, error)
	ListImports(ctx context.Context, p pagination.Params) ([]model.ImportRecord, int64, error)
	GetImport(ctx context.Context, id string) (model.ImportRecord, error)
	UpdateInvestment(ctx context.Context, id string, req ImportInvestmentRequest, actor string) (model.ImportRecord, error)
}

type importService struct {
	ws         *Workspace
	catalog    *catalog.Catalog
	classifier *orders.Classifier
	reports    ReportService
	events     EventPublisher
	log        logrus.FieldLogger
}

func NewImportService(ws *Workspace, cat *catalog.Catalog, classifier *orders.Classifier, reports ReportService, events EventPublisher, log logrus.FieldLogger) ImportService {
	if events == nil {
		events = noopPublisher{}
	}
	return &importService{
		ws:         ws,
		catalog:    cat,
		classifier: classifier,
		reports:    reports,
		events:     events,
		log:        log,
	}
}

// CreateImport decodes and classifies a courier report, then records it with the current
// investment and expenses frozen into it. Nothing is stored when any step fails.
func (s *importService) CreateImport(ctx context.Context, req ImportRequest, actor string) (model.ImportRecord, error) {
	if _, ok := s.catalog.Country(req.Country); !ok {
		return model.ImportRecord{}, fmt.Errorf("unknown country %q: %w", req.Country, ErrInvalidInput)
	}

	sheet, err := spreadsheet.Decode(req.Filename, req.Data)
	if err != nil {
		return model.ImportRecord{}, orders.Wrap(err)
	}

	agg, err := s.classifier.Classify(sheet)
	if err != nil {
		return model.ImportRecord{}, err
	}

	rec := model.ImportRecord{
		ID:        model.NewID(),
		CreatedAt: time.Now().UTC(),
		Filename:  req.Filename,
		Country:   req.Country,
		Aggregate: agg,
	}

	err = s.ws.Update(ctx, func(sess *session.Session) (*model.AuditLog, error) {
		rec.Investment, rec.Expenses = sess.SnapshotSpend()
		sess.PrependImport(rec)
		return auditEntry(actor, model.ActionCreateImport, rec.ID, rec.Filename, map[string]interface{}{
			"country": rec.Country,
			"orders":  agg.Total,
		}), nil
	})
	if err != nil {
		return model.ImportRecord{}, err
	}

	s.log.WithFields(logrus.Fields{
		"import_id": rec.ID,
		"country":   rec.Country,
		"orders":    agg.Total,
		"delivered": agg.Delivered,
	}).Info("report imported")

	s.reports.Invalidate(rec.ID)
	s.events.Publish(websocket.EventImportCreated, rec)
	return rec, nil
}

// ListImports pages through the history, newest first.
func (s *importService) ListImports(ctx context.Context, p pagination.Params) ([]model.ImportRecord, int64, error) {
	var res []model.ImportRecord
	var total int64

	s.ws.View(func(sess *session.Session) {
		total = int64(len(sess.Imports))
		start, end := p.Bounds(len(sess.Imports))
		res = make([]model.ImportRecord, 0, end-start)
		for _, rec := range sess.Imports[start:end] {
			res = append(res, rec.Clone())
		}
	})
	return res, total, nil
}

func (s *importService) GetImport(ctx context.Context, id string) (model.ImportRecord, error) {
	var rec model.ImportRecord
	found := false
	s.ws.View(func(sess *session.Session) {
		if i := sess.ImportIndex(model.ID(id)); i >= 0 {
			rec = sess.Imports[i].Clone()
			found = true
		}
	})
	if !found {
		return model.ImportRecord{}, fmt.Errorf("import %s: %w", id, ErrNotFound)
	}
	return rec, nil
}

// UpdateInvestment edits the investment frozen into one import. The aggregate and the
// expense snapshot are left as they were.
func (s *importService) UpdateInvestment(ctx context.Context, id string, req ImportInvestmentRequest, actor string) (model.ImportRecord, error) {
	var rec model.ImportRecord
	err := s.ws.Update(ctx, func(sess *session.Session) (*model.AuditLog, error) {
		i := sess.ImportIndex(model.ID(id))
		if i < 0 {
			return nil, fmt.Errorf("import %s: %w", id, ErrNotFound)
		}

		inv := model.Investment{
			Amount:   strings.TrimSpace(req.Amount),
			Currency: req.Currency,
		}
		if inv.Currency == "" {
			inv.Currency = sess.Imports[i].Investment.Currency
		}
		if inv.Currency == "" {
			inv.Currency = s.catalog.DefaultInvestmentCurrency(sess.Imports[i].Country)
		}

		sess.Imports[i].Investment = inv
		rec = sess.Imports[i].Clone()
		return auditEntry(actor, model.ActionUpdateImportSpend, rec.ID, rec.Filename, inv), nil
	})
	if err != nil {
		return model.ImportRecord{}, err
	}

	s.reports.Invalidate(rec.ID)
	s.events.Publish(websocket.EventImportInvestmentUpdated, rec)
	return rec, nil
}
