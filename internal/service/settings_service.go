package service

import (
	"context"
	"strings"

	"coinnecta/internal/catalog"
	"coinnecta/internal/currency"
	"coinnecta/internal/model"
	"coinnecta/internal/session"
	"coinnecta/internal/websocket"
)

type InvestmentRequest struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency" binding:"omitempty,currency"`
	// Country picks the default currency when Currency is empty.
	Country string `json:"country" binding:"omitempty,country"`
}

type ExpenseInput struct {
	ID       model.ID `json:"id"`
	Name     string   `json:"name"`
	Amount   string   `json:"amount"`
	Currency string   `json:"currency" binding:"omitempty,currency"`
}

type ExpensesRequest struct {
	Expenses       []ExpenseInput `json:"expenses" binding:"dive"`
	UnitReturnCost string         `json:"unit_return_cost"`
}

type AverageCPARequest struct {
	Value    string `json:"value"`
	Currency string `json:"currency" binding:"omitempty,currency"`
}

type SettingsService interface {
	GetInvestment(ctx context.Context) model.Investment
	UpdateInvestment(ctx context.Context, req InvestmentRequest, actor string) (model.Investment, error)
	GetExpenses(ctx context.Context) model.OperatingExpenses
	UpdateExpenses(ctx context.Context, req ExpensesRequest, actor string) (model.OperatingExpenses, error)
	GetAverageCPA(ctx context.Context) model.AverageCPA
	UpdateAverageCPA(ctx context.Context, req AverageCPARequest, actor string) (model.AverageCPA, error)
}

type settingsService struct {
	ws      *Workspace
	catalog *catalog.Catalog
	events  EventPublisher
}

func NewSettingsService(ws *Workspace, cat *catalog.Catalog, events EventPublisher) SettingsService {
	if events == nil {
		events = noopPublisher{}
	}
	return &settingsService{ws: ws, catalog: cat, events: events}
}

func (s *settingsService) GetInvestment(ctx context.Context) model.Investment {
	var inv model.Investment
	s.ws.View(func(sess *session.Session) { inv = sess.Investment })
	return inv
}

func (s *settingsService) UpdateInvestment(ctx context.Context, req InvestmentRequest, actor string) (model.Investment, error) {
	inv := model.Investment{
		Amount:   strings.TrimSpace(req.Amount),
		Currency: req.Currency,
	}
	if inv.Currency == "" {
		inv.Currency = s.catalog.DefaultInvestmentCurrency(req.Country)
	}

	err := s.ws.Update(ctx, func(sess *session.Session) (*model.AuditLog, error) {
		sess.Investment = inv
		return auditEntry(actor, model.ActionUpdateInvestment, "", "investment", inv), nil
	})
	if err != nil {
		return model.Investment{}, err
	}

	s.events.Publish(websocket.EventSettingsUpdated, map[string]interface{}{"investment": inv})
	return inv, nil
}

func (s *settingsService) GetExpenses(ctx context.Context) model.OperatingExpenses {
	var exp model.OperatingExpenses
	s.ws.View(func(sess *session.Session) { exp = sess.Expenses.Clone() })
	return exp
}

func (s *settingsService) UpdateExpenses(ctx context.Context, req ExpensesRequest, actor string) (model.OperatingExpenses, error) {
	exp := model.OperatingExpenses{
		Expenses:       make([]model.ExpenseEntry, 0, len(req.Expenses)),
		UnitReturnCost: strings.TrimSpace(req.UnitReturnCost),
	}
	for _, in := range req.Expenses {
		entry := model.ExpenseEntry{
			ID:       in.ID,
			Name:     strings.TrimSpace(in.Name),
			Amount:   strings.TrimSpace(in.Amount),
			Currency: in.Currency,
		}
		if entry.ID == "" {
			entry.ID = model.NewID()
		}
		if entry.Currency == "" {
			entry.Currency = currency.Pivot
		}
		exp.Expenses = append(exp.Expenses, entry)
	}

	err := s.ws.Update(ctx, func(sess *session.Session) (*model.AuditLog, error) {
		sess.Expenses = exp.Clone()
		return auditEntry(actor, model.ActionUpdateExpenses, "", "expenses", exp), nil
	})
	if err != nil {
		return model.OperatingExpenses{}, err
	}

	s.events.Publish(websocket.EventSettingsUpdated, map[string]interface{}{"expenses": exp})
	return exp, nil
}

func (s *settingsService) GetAverageCPA(ctx context.Context) model.AverageCPA {
	var avg model.AverageCPA
	s.ws.View(func(sess *session.Session) { avg = sess.AverageCPA })
	return avg
}

func (s *settingsService) UpdateAverageCPA(ctx context.Context, req AverageCPARequest, actor string) (model.AverageCPA, error) {
	avg := model.AverageCPA{
		Value:    strings.TrimSpace(req.Value),
		Currency: req.Currency,
	}
	if avg.Currency == "" {
		avg.Currency = currency.Pivot
	}

	err := s.ws.Update(ctx, func(sess *session.Session) (*model.AuditLog, error) {
		sess.AverageCPA = avg
		return auditEntry(actor, model.ActionUpdateAverageCPA, "", "average_cpa", avg), nil
	})
	if err != nil {
		return model.AverageCPA{}, err
	}

	s.events.Publish(websocket.EventSettingsUpdated, map[string]interface{}{"average_cpa": avg})
	return avg, nil
}
