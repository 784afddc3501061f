package session

import (
	"encoding/json"
	"fmt"
	"time"

	"coinnecta/internal/currency"
	"coinnecta/internal/model"
)

type storedState struct {
	Products   []model.Product   `json:"products"`
	Imports    []storedImport    `json:"imports"`
	Investment *model.Investment `json:"investment"`
	Expenses   json.RawMessage   `json:"expenses"`
	AverageCPA *model.AverageCPA `json:"average_cpa"`
}

type storedImport struct {
	ID         model.ID              `json:"id"`
	CreatedAt  time.Time             `json:"created_at"`
	Filename   string                `json:"filename"`
	Country    string                `json:"country"`
	Aggregate  model.ImportAggregate `json:"aggregate"`
	Investment *model.Investment     `json:"investment"`
	Expenses   json.RawMessage       `json:"expenses"`
}

// storedExpenses covers both the current expense list and the older single "shopify" amount.
type storedExpenses struct {
	Shopify        *string               `json:"shopify"`
	Expenses       *[]model.ExpenseEntry `json:"expenses"`
	UnitReturnCost string                `json:"unit_return_cost"`
}

// Encode serializes the session.
func Encode(s *Session) ([]byte, error) {
	state := storedState{
		Products:   s.Products,
		Imports:    make([]storedImport, 0, len(s.Imports)),
		Investment: &s.Investment,
		AverageCPA: &s.AverageCPA,
	}
	if state.Products == nil {
		state.Products = []model.Product{}
	}

	expenses, err := json.Marshal(s.Expenses)
	if err != nil {
		return nil, fmt.Errorf("failed to encode expenses: %w", err)
	}
	state.Expenses = expenses

	for _, rec := range s.Imports {
		inv := rec.Investment
		snap, err := json.Marshal(rec.Expenses)
		if err != nil {
			return nil, fmt.Errorf("failed to encode import %s: %w", rec.ID, err)
		}
		state.Imports = append(state.Imports, storedImport{
			ID:         rec.ID,
			CreatedAt:  rec.CreatedAt,
			Filename:   rec.Filename,
			Country:    rec.Country,
			Aggregate:  rec.Aggregate,
			Investment: &inv,
			Expenses:   snap,
		})
	}

	return json.Marshal(state)
}

// Decode restores a session, migrating older shapes:
// a single "shopify" amount becomes a named expense list, a missing expense object
// becomes the default 29 USD Shopify entry, and imports without snapshots receive
// copies of the loaded working investment and expenses.
func Decode(data []byte) (*Session, error) {
	var state storedState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode stored state: %w", err)
	}

	s := New()
	s.Products = state.Products
	if state.Investment != nil {
		s.Investment = *state.Investment
	}
	if s.Investment.Currency == "" {
		s.Investment.Currency = currency.Pivot
	}
	if state.AverageCPA != nil {
		s.AverageCPA = *state.AverageCPA
	}
	if s.AverageCPA.Currency == "" {
		s.AverageCPA.Currency = currency.Pivot
	}
	s.Expenses = migrateExpenses(state.Expenses)

	s.Imports = make([]model.ImportRecord, 0, len(state.Imports))
	for _, si := range state.Imports {
		rec := model.ImportRecord{
			ID:        si.ID,
			CreatedAt: si.CreatedAt,
			Filename:  si.Filename,
			Country:   si.Country,
			Aggregate: si.Aggregate,
		}
		if si.Investment != nil {
			rec.Investment = *si.Investment
		} else {
			rec.Investment = s.Investment
		}
		if isAbsent(si.Expenses) {
			rec.Expenses = s.Expenses.Clone()
		} else {
			rec.Expenses = migrateExpenses(si.Expenses)
		}
		s.Imports = append(s.Imports, rec)
	}

	return s, nil
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func migrateExpenses(raw json.RawMessage) model.OperatingExpenses {
	if isAbsent(raw) {
		return model.DefaultOperatingExpenses()
	}

	var stored storedExpenses
	if err := json.Unmarshal(raw, &stored); err != nil {
		return model.DefaultOperatingExpenses()
	}

	switch {
	case stored.Expenses != nil:
		out := model.OperatingExpenses{
			Expenses:       *stored.Expenses,
			UnitReturnCost: stored.UnitReturnCost,
		}
		for i := range out.Expenses {
			if out.Expenses[i].ID == "" {
				out.Expenses[i].ID = model.NewID()
			}
		}
		return out
	case stored.Shopify != nil:
		amount := *stored.Shopify
		if amount == "" {
			amount = "29"
		}
		return model.OperatingExpenses{
			Expenses:       []model.ExpenseEntry{{ID: model.NewID(), Name: "Shopify", Amount: amount, Currency: currency.Pivot}},
			UnitReturnCost: stored.UnitReturnCost,
		}
	default:
		return model.DefaultOperatingExpenses()
	}
}
