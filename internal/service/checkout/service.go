// Package checkout turns a guest cart into a persisted order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/guestcart"
	"storefront/internal/pricing"
	orderrepo "storefront/internal/repository/order"
)

// ErrInvalidInput marks caller mistakes: missing customer fields or a cart
// line whose product no longer exists.
var ErrInvalidInput = errors.New("invalid checkout input")

type orderRepo interface {
	Create(ctx context.Context, order domain.Order) (*domain.Order, error)
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type saleRepo interface {
	ListActive(ctx context.Context) ([]domain.Sale, error)
}

type Service struct {
	orders   orderRepo
	products productRepo
	sales    saleRepo
}

func New(orders orderrepo.Repository, products productRepo, sales saleRepo) *Service {
	return &Service{orders: orders, products: products, sales: sales}
}

type PlaceOrderInput struct {
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerEmail   string `json:"customer_email,omitempty"`
	ShippingAddress string `json:"shipping_address"`
	City            string `json:"city,omitempty"`
}

// PlaceOrder snapshots the cart lines into an order. Unit prices are derived
// from the current catalog rows, never from the prices stored in the cart
// snapshot (a cart write is client-reachable, catalog rows are not), then go
// through the shared sale resolver with the sales active right now. The cart
// is cleared only after the order is persisted.
func (s *Service) PlaceOrder(ctx context.Context, cart *guestcart.Cart, in PlaceOrderInput) (*domain.Order, error) {
	if strings.TrimSpace(in.CustomerName) == "" {
		return nil, fmt.Errorf("%w: customer name required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.CustomerPhone) == "" {
		return nil, fmt.Errorf("%w: customer phone required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.ShippingAddress) == "" {
		return nil, fmt.Errorf("%w: shipping address required", ErrInvalidInput)
	}

	lines := cart.Items(ctx)
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	sales, err := s.sales.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	order := domain.Order{
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
		CustomerEmail:   strings.TrimSpace(in.CustomerEmail),
		ShippingAddress: strings.TrimSpace(in.ShippingAddress),
		City:            strings.TrimSpace(in.City),
		Status:          domain.OrderStatusPending,
	}

	for _, line := range lines {
		product, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: product %s not found", ErrInvalidInput, line.ProductID)
			}
			return nil, err
		}

		base, applySale := linePrice(line, *product)
		productSale, globalSale := pricing.Select(sales, line.ProductID)
		res := pricing.Resolve(base, productSale, globalSale, applySale)

		lineTotal := res.FinalPrice * float64(line.Quantity)
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:     line.ProductID,
			ProductName:   line.ProductName,
			VariationName: line.VariationName,
			ColorName:     line.ColorName,
			SizeName:      line.SizeName,
			Quantity:      line.Quantity,
			UnitPrice:     res.FinalPrice,
			Discount:      res.Discount,
			LineTotal:     lineTotal,
		})
		order.Subtotal += lineTotal

		if line.ShippingCost != nil && *line.ShippingCost > order.ShippingCost {
			order.ShippingCost = *line.ShippingCost
		}
	}
	order.Total = order.Subtotal + order.ShippingCost

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	cart.Clear(ctx)
	return created, nil
}

// linePrice resolves the line's base price and opt-out from the catalog rows
// matching the line's selected options. A selector whose row has vanished
// simply falls down the precedence chain.
func linePrice(line domain.GuestCartItem, product domain.Product) (base float64, applySale bool) {
	var variation *domain.ProductVariation
	if line.VariationID != nil {
		for i := range product.Variations {
			if product.Variations[i].ID == *line.VariationID {
				variation = &product.Variations[i]
				break
			}
		}
	}
	var color *domain.ProductColor
	if line.ColorID != nil {
		for i := range product.Colors {
			if product.Colors[i].ID == *line.ColorID {
				color = &product.Colors[i]
				break
			}
		}
	}
	var size *domain.ProductSize
	if line.SizeID != nil {
		for i := range product.Sizes {
			if product.Sizes[i].ID == *line.SizeID {
				size = &product.Sizes[i]
				break
			}
		}
	}
	return pricing.BaseFor(product, variation, color, size)
}
