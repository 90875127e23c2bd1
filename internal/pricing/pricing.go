// Package pricing resolves the effective price of a priced entity against
// the currently running sales. It is the single sale-selection rule shared
// by the storefront handlers, checkout and the catalog feed exporters.
package pricing

import (
	"math"

	"storefront/internal/domain"
)

// Result is the outcome of a price resolution. Discount is set only when a
// sale was actually applied; callers use its presence to decide whether to
// render the struck-through original price.
type Result struct {
	FinalPrice float64 `json:"final_price"`
	Discount   *int    `json:"discount,omitempty"`
}

// Resolve computes the effective price for basePrice given at most one
// product-specific and one store-wide sale candidate.
//
// A product sale always wins over a global sale; the two never stack.
// When applySale is false both candidates are ignored. The only eligibility
// gate applied here is IsActive: callers are expected to have filtered out
// expired sales already (repositories query end_date > now), so an inactive
// candidate is skipped but an expired-yet-active one is honoured.
//
// basePrice must be >= 0; a zero base price never yields a discount, and a
// candidate with a 0% discount is treated as no visible sale.
func Resolve(basePrice float64, productSale, globalSale *domain.Sale, applySale bool) Result {
	if !applySale {
		return Result{FinalPrice: basePrice}
	}

	sale := productSale
	if sale == nil || !sale.IsActive {
		sale = globalSale
	}
	if sale == nil || !sale.IsActive {
		return Result{FinalPrice: basePrice}
	}
	if basePrice == 0 || sale.DiscountPercentage <= 0 {
		return Result{FinalPrice: basePrice}
	}

	pct := sale.DiscountPercentage
	final := basePrice - basePrice*float64(pct)/100
	return Result{FinalPrice: final, Discount: &pct}
}

// Select splits a sale list into the product-specific candidate for productID
// and the store-wide candidate. The first match of each kind wins; the data
// model expects at most one per product, but Select stays deterministic when
// upstream data breaks that assumption.
func Select(sales []domain.Sale, productID string) (productSale, globalSale *domain.Sale) {
	for i := range sales {
		s := &sales[i]
		if productSale == nil && s.ProductID != nil && *s.ProductID == productID {
			productSale = s
		}
		if globalSale == nil && s.IsGlobal {
			globalSale = s
		}
		if productSale != nil && globalSale != nil {
			break
		}
	}
	return productSale, globalSale
}

// BaseFor picks the base price and sale opt-in for a product with the given
// selected overrides. Precedence: color (when it carries a price) beats
// variation beats size beats the product price. The sale opt-out follows the
// most specific selected override, whether or not its price was used.
func BaseFor(p domain.Product, variation *domain.ProductVariation, color *domain.ProductColor, size *domain.ProductSize) (base float64, applySale bool) {
	switch {
	case color != nil && color.Price > 0:
		base = color.Price
	case variation != nil:
		base = variation.Price
	case size != nil:
		base = size.Price
	default:
		base = p.Price
	}

	switch {
	case color != nil:
		applySale = color.ApplySale
	case variation != nil:
		applySale = variation.ApplySale
	case size != nil:
		applySale = size.ApplySale
	default:
		applySale = true
	}
	return base, applySale
}

// DisplayPrice rounds p to the currency's minor-unit precision. Resolution
// keeps full float precision internally; rounding happens only where a price
// is shown or exported.
func DisplayPrice(p float64, fractionDigits int) float64 {
	shift := math.Pow(10, float64(fractionDigits))
	return math.Round(p*shift) / shift
}
