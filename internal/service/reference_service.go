package service

import (
	"context"

	"coinnecta/internal/calculator"
	"coinnecta/internal/catalog"
	"coinnecta/internal/currency"

	"github.com/shopspring/decimal"
)

type CountryReference struct {
	catalog.Country
	InvestmentCurrencies []string `json:"investment_currencies"`
	CPACurrencies        []string `json:"cpa_currencies"`
}

type ReferenceResponse struct {
	Countries          []CountryReference `json:"countries"`
	Currencies         []string           `json:"currencies"`
	Rates              currency.RateTable `json:"rates"`
	DefaultConfirmRate decimal.Decimal    `json:"default_confirm_rate"`
	DefaultDeliverRate decimal.Decimal    `json:"default_deliver_rate"`
}

type ReferenceService interface {
	GetReference(ctx context.Context) ReferenceResponse
}

type referenceService struct {
	catalog  *catalog.Catalog
	conv     *currency.Converter
	defaults calculator.Rates
}

func NewReferenceService(cat *catalog.Catalog, conv *currency.Converter, defaults calculator.Rates) ReferenceService {
	return &referenceService{catalog: cat, conv: conv, defaults: defaults}
}

func (s *referenceService) GetReference(ctx context.Context) ReferenceResponse {
	countries := s.catalog.Countries()
	res := ReferenceResponse{
		Countries:          make([]CountryReference, 0, len(countries)),
		Currencies:         s.conv.Codes(),
		Rates:              s.conv.Rates(),
		DefaultConfirmRate: s.defaults.Confirm,
		DefaultDeliverRate: s.defaults.Deliver,
	}
	for _, c := range countries {
		res.Countries = append(res.Countries, CountryReference{
			Country:              c,
			InvestmentCurrencies: s.catalog.InvestmentCurrencies(c.Code),
			CPACurrencies:        s.catalog.CPACurrencies(c.Code),
		})
	}
	return res
}
