// Package catalog serves priced storefront views: every price it returns has
// already been through the shared sale resolver.
package catalog

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/pricing"
)

type productRepo interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
}

type saleRepo interface {
	ListActive(ctx context.Context) ([]domain.Sale, error)
}

type Service struct {
	products productRepo
	sales    saleRepo
}

func New(products productRepo, sales saleRepo) *Service {
	return &Service{products: products, sales: sales}
}

// PricedProduct is a product plus its resolved storefront price. Discount is
// present only when a sale applied; its absence tells the UI not to render a
// struck-through original price.
type PricedProduct struct {
	domain.Product
	FinalPrice float64 `json:"final_price"`
	Discount   *int    `json:"discount,omitempty"`
}

func (s *Service) ListProducts(ctx context.Context) ([]PricedProduct, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.sales.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]PricedProduct, 0, len(products))
	for _, p := range products {
		out = append(out, priceProduct(p, sales))
	}
	return out, nil
}

func (s *Service) GetProduct(ctx context.Context, slug string) (*PricedProduct, error) {
	p, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	sales, err := s.sales.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	priced := priceProduct(*p, sales)
	return &priced, nil
}

func (s *Service) ActiveSales(ctx context.Context) ([]domain.Sale, error) {
	return s.sales.ListActive(ctx)
}

func priceProduct(p domain.Product, sales []domain.Sale) PricedProduct {
	productSale, globalSale := pricing.Select(sales, p.ID)
	res := pricing.Resolve(p.Price, productSale, globalSale, true)
	return PricedProduct{Product: p, FinalPrice: res.FinalPrice, Discount: res.Discount}
}
