package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Slug          string
	Name          string
	Description   string
	Price         float64
	Images        []string
	StockQuantity int
	ShippingCost  float64
	CategoryKey   string
	Sizes         []optionSeed
	Colors        []colorSeed
}

type optionSeed struct {
	Name      string
	Price     float64
	Quantity  int
	ApplySale bool
}

type colorSeed struct {
	optionSeed
	Code string
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	categories := map[string]string{
		"clothing": "Clothing",
		"beauty":   "Beauty",
	}
	categoryIDs := make(map[string]string, len(categories))
	for key, name := range categories {
		id, err := ensureCategory(ctx, pool, key, name)
		if err != nil {
			return fmt.Errorf("ensure category %s: %w", key, err)
		}
		categoryIDs[key] = id
	}

	products := []productSeed{
		{
			Slug:          "lawn-suit-3-piece",
			Name:          "Lawn Suit 3 Piece",
			Description:   "Unstitched printed lawn suit with dupatta",
			Price:         3499,
			Images:        []string{"https://cdn.example.com/lawn-suit-1.jpg", "https://cdn.example.com/lawn-suit-2.jpg"},
			StockQuantity: 25,
			ShippingCost:  200,
			CategoryKey:   "clothing",
			Sizes: []optionSeed{
				{Name: "Small", Price: 0, Quantity: 10, ApplySale: true},
				{Name: "Medium", Price: 0, Quantity: 10, ApplySale: true},
				{Name: "Large", Price: 3699, Quantity: 5, ApplySale: true},
			},
			Colors: []colorSeed{
				{optionSeed: optionSeed{Name: "Teal", Price: 0, Quantity: 12, ApplySale: true}, Code: "#008080"},
				{optionSeed: optionSeed{Name: "Maroon", Price: 3799, Quantity: 8, ApplySale: false}, Code: "#800000"},
			},
		},
		{
			Slug:          "rose-face-serum",
			Name:          "Rose Face Serum",
			Description:   "Hydrating rose extract serum, 30ml",
			Price:         1599,
			Images:        []string{"https://cdn.example.com/rose-serum.jpg"},
			StockQuantity: 60,
			ShippingCost:  150,
			CategoryKey:   "beauty",
		},
	}

	productIDs := make(map[string]string, len(products))
	for _, p := range products {
		id, err := upsertProduct(ctx, pool, categoryIDs[p.CategoryKey], p)
		if err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Slug, err)
		}
		productIDs[p.Slug] = id
	}

	// One product sale and one storewide sale, so a fresh database exercises
	// both branches of price resolution.
	if err := ensureSale(ctx, pool, "Serum Launch Offer", productIDs["rose-face-serum"], false, 20); err != nil {
		return fmt.Errorf("ensure product sale: %w", err)
	}
	if err := ensureSale(ctx, pool, "Season End Sale", "", true, 10); err != nil {
		return fmt.Errorf("ensure global sale: %w", err)
	}

	return nil
}

func ensureCategory(ctx context.Context, pool *pgxpool.Pool, key, name string) (string, error) {
	const q = `
INSERT INTO categories (key, name)
VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET name = EXCLUDED.name
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, key, name).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, categoryID string, p productSeed) (string, error) {
	const q = `
INSERT INTO products (slug, name, description, price, images, stock_quantity, shipping_cost, category_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, '')::uuid)
ON CONFLICT (slug) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    images = EXCLUDED.images,
    stock_quantity = EXCLUDED.stock_quantity,
    shipping_cost = EXCLUDED.shipping_cost,
    category_id = EXCLUDED.category_id
RETURNING id::text
`
	images := p.Images
	if images == nil {
		images = []string{}
	}
	var id string
	if err := pool.QueryRow(ctx, q, p.Slug, p.Name, p.Description, p.Price, images, p.StockQuantity, p.ShippingCost, categoryID).Scan(&id); err != nil {
		return "", err
	}

	// Option rows have no natural key, so replace them wholesale to keep the
	// seed idempotent.
	if _, err := pool.Exec(ctx, `DELETE FROM product_sizes WHERE product_id = $1`, id); err != nil {
		return "", err
	}
	for _, s := range p.Sizes {
		const sq = `
INSERT INTO product_sizes (product_id, name, price, quantity, apply_sale)
VALUES ($1, $2, $3, $4, $5)
`
		if _, err := pool.Exec(ctx, sq, id, s.Name, s.Price, s.Quantity, s.ApplySale); err != nil {
			return "", err
		}
	}

	if _, err := pool.Exec(ctx, `DELETE FROM product_colors WHERE product_id = $1`, id); err != nil {
		return "", err
	}
	for _, c := range p.Colors {
		const cq = `
INSERT INTO product_colors (product_id, name, code, price, quantity, apply_sale)
VALUES ($1, $2, $3, $4, $5, $6)
`
		if _, err := pool.Exec(ctx, cq, id, c.Name, c.Code, c.Price, c.Quantity, c.ApplySale); err != nil {
			return "", err
		}
	}

	return id, nil
}

func ensureSale(ctx context.Context, pool *pgxpool.Pool, name, productID string, isGlobal bool, pct int) error {
	const q = `
INSERT INTO sales (name, product_id, is_global, discount_percentage, is_active, end_date)
SELECT $1, NULLIF($2, '')::uuid, $3, $4, true, $5
WHERE NOT EXISTS (SELECT 1 FROM sales WHERE name = $1)
`
	_, err := pool.Exec(ctx, q, name, productID, isGlobal, pct, time.Now().Add(30*24*time.Hour))
	return err
}
