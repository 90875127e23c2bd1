package domain

import "time"

type Product struct {
	ID            string             `json:"id"`
	Slug          string             `json:"slug"`
	Name          string             `json:"name"`
	Description   string             `json:"description,omitempty"`
	Price         float64            `json:"price"`
	Images        []string           `json:"images,omitempty"`
	StockQuantity int                `json:"stock_quantity"`
	WeightKG      *float64           `json:"weight_kg,omitempty"`
	ShippingCost  *float64           `json:"shipping_cost,omitempty"`
	CategoryID    *string            `json:"category_id,omitempty"`
	CategoryName  string             `json:"category_name,omitempty"`
	Variations    []ProductVariation `json:"variations,omitempty"`
	Colors        []ProductColor     `json:"colors,omitempty"`
	Sizes         []ProductSize      `json:"sizes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// ProductVariation, ProductColor and ProductSize are per-product price
// overrides. ApplySale opts a single override out of promotions.
type ProductVariation struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ApplySale bool    `json:"apply_sale"`
}

type ProductColor struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Code      string  `json:"code,omitempty"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ApplySale bool    `json:"apply_sale"`
}

type ProductSize struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ApplySale bool    `json:"apply_sale"`
}
