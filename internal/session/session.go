// Package session holds the operator's single workspace: products, import history and the
// working investment, expense and average-CPA settings.
package session

import (
	"coinnecta/internal/currency"
	"coinnecta/internal/model"
)

// Session is replaced as a whole value on every change; callers mutate a Clone and swap it in.
type Session struct {
	Products   []model.Product
	Imports    []model.ImportRecord // newest first
	Investment model.Investment
	Expenses   model.OperatingExpenses
	AverageCPA model.AverageCPA
}

// New returns an empty workspace with default settings.
func New() *Session {
	return &Session{
		Investment: model.Investment{Currency: currency.Pivot},
		Expenses:   model.DefaultOperatingExpenses(),
		AverageCPA: model.AverageCPA{Currency: currency.Pivot},
	}
}

// Clone deep-copies the session.
func (s *Session) Clone() *Session {
	out := &Session{
		Investment: s.Investment,
		Expenses:   s.Expenses.Clone(),
		AverageCPA: s.AverageCPA,
	}
	if s.Products != nil {
		out.Products = make([]model.Product, len(s.Products))
		copy(out.Products, s.Products)
		for i := range out.Products {
			if pvt := out.Products[i].Metrics.ProfitVsTarget; pvt != nil {
				v := *pvt
				out.Products[i].Metrics.ProfitVsTarget = &v
			}
		}
	}
	if s.Imports != nil {
		out.Imports = make([]model.ImportRecord, len(s.Imports))
		for i, rec := range s.Imports {
			out.Imports[i] = rec.Clone()
		}
	}
	return out
}

// SnapshotSpend copies the working investment and expenses for freezing into a new import.
func (s *Session) SnapshotSpend() (model.Investment, model.OperatingExpenses) {
	return s.Investment, s.Expenses.Clone()
}

func (s *Session) ProductIndex(id model.ID) int {
	for i, p := range s.Products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) ImportIndex(id model.ID) int {
	for i, rec := range s.Imports {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

// ProductsIn returns the products saved for a country, all of them when country is empty.
func (s *Session) ProductsIn(country string) []model.Product {
	out := make([]model.Product, 0, len(s.Products))
	for _, p := range s.Products {
		if country == "" || p.Country == country {
			out = append(out, p)
		}
	}
	return out
}

// PrependImport adds a record at the head of the history.
func (s *Session) PrependImport(rec model.ImportRecord) {
	s.Imports = append([]model.ImportRecord{rec}, s.Imports...)
}

// RemoveProduct deletes a product by id and reports whether it existed.
func (s *Session) RemoveProduct(id model.ID) bool {
	i := s.ProductIndex(id)
	if i < 0 {
		return false
	}
	s.Products = append(s.Products[:i:i], s.Products[i+1:]...)
	return true
}
