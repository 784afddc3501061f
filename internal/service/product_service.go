package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"coinnecta/internal/calculator"
	"coinnecta/internal/catalog"
	"coinnecta/internal/currency"
	"coinnecta/internal/model"
	"coinnecta/internal/session"
	"coinnecta/internal/websocket"
	"coinnecta/pkg/display"
	"coinnecta/pkg/numeric"

	"github.com/shopspring/decimal"
)

// --- DTOs ---

type ProductRequest struct {
	Name        string           `json:"name"`
	Country     string           `json:"country" binding:"required,country"`
	Price       string           `json:"price"`
	Cost        string           `json:"cost"`
	Shipping    string           `json:"shipping"`
	TargetCPA   string           `json:"target_cpa"`
	TaxIncluded bool             `json:"tax_included"`
	ConfirmRate *decimal.Decimal `json:"confirm_rate"`
	DeliverRate *decimal.Decimal `json:"deliver_rate"`
}

type ProductPreviewResponse struct {
	Country    string                `json:"country"`
	Currency   string                `json:"currency"`
	Symbol     string                `json:"symbol"`
	Metrics    *model.ProductMetrics `json:"metrics"`
	Projection *model.CPAProjection  `json:"projection"`
	Display    map[string]string     `json:"display,omitempty"`
}

type ProductResponse struct {
	model.Product
	Currency   string               `json:"currency"`
	Symbol     string               `json:"symbol"`
	UnitCost   decimal.Decimal      `json:"unit_cost"`
	Projection *model.CPAProjection `json:"projection"`
	Display    map[string]string    `json:"display"`
}

// --- Interface ---

type ProductService interface {
	Preview(ctx context.Context, req ProductRequest) (ProductPreviewResponse, error)
	ListProducts(ctx context.Context, country string) ([]ProductResponse, error)
	CreateProduct(ctx context.Context, req ProductRequest, actor string) (ProductResponse, error)
	UpdateProduct(ctx context.Context, id string, req ProductRequest, actor string) (ProductResponse, error)
	DeleteProduct(ctx context.Context, id string, actor string) error
}

type productService struct {
	ws       *Workspace
	catalog  *catalog.Catalog
	conv     *currency.Converter
	format   *display.Formatter
	defaults calculator.Rates
	events   EventPublisher
}

func NewProductService(ws *Workspace, cat *catalog.Catalog, conv *currency.Converter, format *display.Formatter, defaults calculator.Rates, events EventPublisher) ProductService {
	if events == nil {
		events = noopPublisher{}
	}
	return &productService{ws: ws, catalog: cat, conv: conv, format: format, defaults: defaults, events: events}
}

// --- Implementation ---

func (s *productService) Preview(ctx context.Context, req ProductRequest) (ProductPreviewResponse, error) {
	country, err := s.country(req.Country)
	if err != nil {
		return ProductPreviewResponse{}, err
	}

	metrics := s.compute(req, country)
	resp := ProductPreviewResponse{
		Country:  country.Code,
		Currency: country.Currency,
		Symbol:   country.Symbol,
		Metrics:  metrics,
	}
	if metrics != nil {
		resp.Projection = s.project(metrics, req.Price, country)
		resp.Display = s.displayMetrics(metrics, resp.Projection, country.Symbol)
	}
	return resp, nil
}

func (s *productService) ListProducts(ctx context.Context, country string) ([]ProductResponse, error) {
	var products []model.Product
	s.ws.View(func(sess *session.Session) {
		products = sess.ProductsIn(country)
	})

	res := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, s.toResponse(p))
	}
	return res, nil
}

func (s *productService) CreateProduct(ctx context.Context, req ProductRequest, actor string) (ProductResponse, error) {
	country, metrics, err := s.validateForSave(req)
	if err != nil {
		return ProductResponse{}, err
	}

	now := time.Now().UTC()
	product := model.Product{
		ID:        model.NewID(),
		CreatedAt: now,
	}
	applyRequest(&product, req, country, metrics, now)

	err = s.ws.Update(ctx, func(sess *session.Session) (*model.AuditLog, error) {
		sess.Products = append(sess.Products, product)
		return auditEntry(actor, model.ActionCreateProduct, product.ID, product.Name, req), nil
	})
	if err != nil {
		return ProductResponse{}, err
	}

	resp := s.toResponse(product)
	s.events.Publish(websocket.EventProductSaved, resp)
	return resp, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req ProductRequest, actor string) (ProductResponse, error) {
	country, metrics, err := s.validateForSave(req)
	if err != nil {
		return ProductResponse{}, err
	}

	var product model.Product
	err = s.ws.Update(ctx, func(sess *session.Session) (*model.AuditLog, error) {
		i := sess.ProductIndex(model.ID(id))
		if i < 0 {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		product = sess.Products[i]
		applyRequest(&product, req, country, metrics, time.Now().UTC())
		sess.Products[i] = product
		return auditEntry(actor, model.ActionUpdateProduct, product.ID, product.Name, req), nil
	})
	if err != nil {
		return ProductResponse{}, err
	}

	resp := s.toResponse(product)
	s.events.Publish(websocket.EventProductSaved, resp)
	return resp, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string, actor string) error {
	err := s.ws.Update(ctx, func(sess *session.Session) (*model.AuditLog, error) {
		i := sess.ProductIndex(model.ID(id))
		if i < 0 {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		name := sess.Products[i].Name
		sess.RemoveProduct(model.ID(id))
		return auditEntry(actor, model.ActionDeleteProduct, model.ID(id), name, map[string]string{"deleted_id": id}), nil
	})
	if err != nil {
		return err
	}

	s.events.Publish(websocket.EventProductDeleted, map[string]string{"id": id})
	return nil
}

// --- Helpers ---

func (s *productService) country(code string) (catalog.Country, error) {
	country, ok := s.catalog.Country(code)
	if !ok {
		return catalog.Country{}, fmt.Errorf("unknown country %q: %w", code, ErrInvalidInput)
	}
	return country, nil
}

func (s *productService) validateForSave(req ProductRequest) (catalog.Country, *model.ProductMetrics, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Price) == "" {
		return catalog.Country{}, nil, fmt.Errorf("Completa nombre y precio de venta: %w", ErrInvalidInput)
	}
	country, err := s.country(req.Country)
	if err != nil {
		return catalog.Country{}, nil, err
	}
	metrics := s.compute(req, country)
	if metrics == nil {
		return catalog.Country{}, nil, fmt.Errorf("sale price must be a non-zero number: %w", ErrInvalidInput)
	}
	return country, metrics, nil
}

func (s *productService) compute(req ProductRequest, country catalog.Country) *model.ProductMetrics {
	rates := s.defaults
	if req.ConfirmRate != nil {
		rates.Confirm = *req.ConfirmRate
	}
	if req.DeliverRate != nil {
		rates.Deliver = *req.DeliverRate
	}
	in := calculator.ParseInputs(req.Price, req.Cost, req.Shipping, req.TargetCPA)
	return calculator.ComputeMetrics(in, country, req.TaxIncluded, rates)
}

func (s *productService) project(m *model.ProductMetrics, price string, country catalog.Country) *model.CPAProjection {
	var avg model.AverageCPA
	s.ws.View(func(sess *session.Session) {
		avg = sess.AverageCPA
	})
	return calculator.ProjectAverageCPA(m, numeric.ParseOrZero(price), avg, s.conv, country.Currency)
}

func applyRequest(p *model.Product, req ProductRequest, country catalog.Country, metrics *model.ProductMetrics, now time.Time) {
	p.Name = strings.TrimSpace(req.Name)
	p.Country = country.Code
	p.Price = req.Price
	p.Cost = req.Cost
	p.Shipping = req.Shipping
	p.TargetCPA = req.TargetCPA
	p.TaxIncluded = req.TaxIncluded
	p.Metrics = *metrics
	p.UpdatedAt = now
}

func (s *productService) toResponse(p model.Product) ProductResponse {
	country, ok := s.catalog.Country(p.Country)
	if !ok {
		country = catalog.Country{Code: p.Country, Currency: currency.Pivot, Symbol: "$"}
	}
	projection := s.project(&p.Metrics, p.Price, country)
	return ProductResponse{
		Product:    p,
		Currency:   country.Currency,
		Symbol:     country.Symbol,
		UnitCost:   p.UnitCost(),
		Projection: projection,
		Display:    s.displayMetrics(&p.Metrics, projection, country.Symbol),
	}
}

func (s *productService) displayMetrics(m *model.ProductMetrics, p *model.CPAProjection, symbol string) map[string]string {
	money := func(d decimal.Decimal) string { return display.WithSymbol(symbol, s.format.Int(d)) }

	out := map[string]string{
		"cost_with_tax":       money(m.CostWithTax),
		"gross_profit":        money(m.GrossProfit),
		"gross_margin":        s.format.Money(m.GrossMargin) + "%",
		"expected_revenue":    money(m.ExpectedRevenue),
		"expected_cod_profit": money(m.ExpectedCODProfit),
	}
	if m.ProfitVsTarget != nil {
		out["profit_vs_target"] = money(*m.ProfitVsTarget)
	}
	if p != nil {
		out["profit_after_cpa"] = money(p.Profit)
		out["profit_after_cpa_usd"] = display.WithSymbol("$", s.format.Money(p.ProfitUSD))
	}
	return out
}
