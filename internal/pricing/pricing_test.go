package pricing

import (
	"testing"
	"time"

	"storefront/internal/domain"
)

func activeSale(pct int) *domain.Sale {
	return &domain.Sale{
		ID:                 "sale-1",
		DiscountPercentage: pct,
		IsActive:           true,
		EndDate:            time.Now().Add(time.Hour),
	}
}

func TestResolve_ProductSaleBeatsGlobal(t *testing.T) {
	product := activeSale(30)
	global := activeSale(10)

	res := Resolve(1000, product, global, true)
	if res.FinalPrice != 700 {
		t.Fatalf("FinalPrice = %v, want 700", res.FinalPrice)
	}
	if res.Discount == nil || *res.Discount != 30 {
		t.Fatalf("Discount = %v, want 30", res.Discount)
	}
}

func TestResolve_GlobalWhenNoProductSale(t *testing.T) {
	global := activeSale(10)

	res := Resolve(1000, nil, global, true)
	if res.FinalPrice != 900 {
		t.Fatalf("FinalPrice = %v, want 900", res.FinalPrice)
	}
	if res.Discount == nil || *res.Discount != 10 {
		t.Fatalf("Discount = %v, want 10", res.Discount)
	}
}

func TestResolve_NoSale(t *testing.T) {
	res := Resolve(1000, nil, nil, true)
	if res.FinalPrice != 1000 || res.Discount != nil {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestResolve_ApplySaleFalseBypassesBoth(t *testing.T) {
	res := Resolve(1000, activeSale(50), activeSale(10), false)
	if res.FinalPrice != 1000 || res.Discount != nil {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestResolve_InactiveProductSaleFallsThroughToGlobal(t *testing.T) {
	product := activeSale(50)
	product.IsActive = false
	global := activeSale(10)

	res := Resolve(1000, product, global, true)
	if res.FinalPrice != 900 {
		t.Fatalf("FinalPrice = %v, want 900", res.FinalPrice)
	}
	if res.Discount == nil || *res.Discount != 10 {
		t.Fatalf("Discount = %v, want 10", res.Discount)
	}
}

func TestResolve_ExpiredButActiveCandidateIsHonoured(t *testing.T) {
	// Expiry filtering belongs to the sale queries; a candidate that made it
	// here with IsActive set still applies.
	sale := activeSale(20)
	sale.EndDate = time.Now().Add(-time.Hour)

	res := Resolve(500, sale, nil, true)
	if res.FinalPrice != 400 {
		t.Fatalf("FinalPrice = %v, want 400", res.FinalPrice)
	}
}

func TestResolve_ZeroBasePriceNeverDiscounts(t *testing.T) {
	res := Resolve(0, activeSale(50), nil, true)
	if res.FinalPrice != 0 || res.Discount != nil {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestResolve_ZeroPercentIsNoVisibleSale(t *testing.T) {
	res := Resolve(1000, activeSale(0), nil, true)
	if res.FinalPrice != 1000 || res.Discount != nil {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestResolve_FullDiscount(t *testing.T) {
	res := Resolve(1000, activeSale(100), nil, true)
	if res.FinalPrice != 0 {
		t.Fatalf("FinalPrice = %v, want 0", res.FinalPrice)
	}
	if res.Discount == nil || *res.Discount != 100 {
		t.Fatalf("Discount = %v, want 100", res.Discount)
	}
}

func TestSelect(t *testing.T) {
	p1 := "prod-1"
	p2 := "prod-2"
	sales := []domain.Sale{
		{ID: "s1", ProductID: &p2, IsActive: true, DiscountPercentage: 5},
		{ID: "s2", IsGlobal: true, IsActive: true, DiscountPercentage: 10},
		{ID: "s3", ProductID: &p1, IsActive: true, DiscountPercentage: 20},
		{ID: "s4", ProductID: &p1, IsActive: true, DiscountPercentage: 40},
		{ID: "s5", IsGlobal: true, IsActive: true, DiscountPercentage: 50},
	}

	product, global := Select(sales, p1)
	if product == nil || product.ID != "s3" {
		t.Fatalf("product sale = %+v, want s3", product)
	}
	if global == nil || global.ID != "s2" {
		t.Fatalf("global sale = %+v, want s2", global)
	}

	product, global = Select(sales, "prod-3")
	if product != nil {
		t.Fatalf("product sale = %+v, want nil", product)
	}
	if global == nil || global.ID != "s2" {
		t.Fatalf("global sale = %+v, want s2", global)
	}
}

func TestBaseFor(t *testing.T) {
	p := domain.Product{Price: 100}
	variation := &domain.ProductVariation{Price: 200, ApplySale: true}
	size := &domain.ProductSize{Price: 150, ApplySale: true}
	colorPriced := &domain.ProductColor{Price: 300, ApplySale: false}
	colorFree := &domain.ProductColor{Price: 0, ApplySale: false}

	base, apply := BaseFor(p, nil, nil, nil)
	if base != 100 || !apply {
		t.Fatalf("product only: base=%v apply=%v", base, apply)
	}

	base, apply = BaseFor(p, variation, colorPriced, size)
	if base != 300 || apply {
		t.Fatalf("priced color should win and carry its opt-out: base=%v apply=%v", base, apply)
	}

	// A selected color without its own price falls back to the variation
	// price but still dictates the sale opt-out.
	base, apply = BaseFor(p, variation, colorFree, size)
	if base != 200 || apply {
		t.Fatalf("zero-price color: base=%v apply=%v", base, apply)
	}

	base, apply = BaseFor(p, nil, nil, size)
	if base != 150 || !apply {
		t.Fatalf("size only: base=%v apply=%v", base, apply)
	}
}

func TestDisplayPrice(t *testing.T) {
	if got := DisplayPrice(1234.567, 0); got != 1235 {
		t.Fatalf("DisplayPrice(1234.567, 0) = %v, want 1235", got)
	}
	if got := DisplayPrice(1234.564, 2); got != 1234.56 {
		t.Fatalf("DisplayPrice(1234.564, 2) = %v, want 1234.56", got)
	}
	if got := DisplayPrice(1499.5, 0); got != 1500 {
		t.Fatalf("DisplayPrice(1499.5, 0) = %v, want 1500", got)
	}
}
