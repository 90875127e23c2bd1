package product

import (
	"context"
	"io"
	"log"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `
p.id::text, p.slug, p.name, COALESCE(p.description, ''), p.price, COALESCE(p.images, '[]'::jsonb),
p.stock_quantity, p.weight_kg, p.shipping_cost, p.category_id::text, COALESCE(c.name, ''), p.created_at
`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
ORDER BY p.created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}

	if err := r.fillOptions(ctx, result); err != nil {
		return nil, err
	}
	r.logger.Printf("product repo: list count=%d", len(result))
	return result, nil
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
WHERE p.slug = $1
`
	return r.getOne(ctx, q, slug)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
WHERE p.id = $1
`
	return r.getOne(ctx, q, id)
}

func (r *postgresRepo) getOne(ctx context.Context, q string, arg any) (*domain.Product, error) {
	rows, err := r.pool.Query(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, domain.ErrNotFound
	}
	p, err := scanProduct(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()

	batch := []domain.Product{*p}
	if err := r.fillOptions(ctx, batch); err != nil {
		return nil, err
	}
	return &batch[0], nil
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, slug, name, description, price, images, stock_quantity, weight_kg, shipping_cost, category_id)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10::uuid)
ON CONFLICT (slug) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    images = EXCLUDED.images,
    stock_quantity = EXCLUDED.stock_quantity,
    weight_kg = EXCLUDED.weight_kg,
    shipping_cost = EXCLUDED.shipping_cost,
    category_id = EXCLUDED.category_id
RETURNING id::text, created_at
`
	images := product.Images
	if images == nil {
		images = []string{}
	}
	res := product
	err := r.pool.QueryRow(ctx, q,
		product.ID,
		product.Slug,
		product.Name,
		product.Description,
		product.Price,
		images,
		product.StockQuantity,
		product.WeightKG,
		product.ShippingCost,
		product.CategoryID,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: upsert slug=%s error=%v", product.Slug, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted slug=%s id=%s", res.Slug, res.ID)
	return &res, nil
}

func scanProduct(rows pgx.Rows) (*domain.Product, error) {
	var p domain.Product
	var categoryID *string
	if err := rows.Scan(
		&p.ID,
		&p.Slug,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Images,
		&p.StockQuantity,
		&p.WeightKG,
		&p.ShippingCost,
		&categoryID,
		&p.CategoryName,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	p.CategoryID = categoryID
	return &p, nil
}

// fillOptions loads variation, color and size overrides for every product in
// the slice with three batched queries.
func (r *postgresRepo) fillOptions(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]string, len(products))
	index := make(map[string]int, len(products))
	for i := range products {
		ids[i] = products[i].ID
		index[products[i].ID] = i
	}

	const variationsQ = `
SELECT product_id::text, id::text, name, price, quantity, apply_sale
FROM product_variations
WHERE product_id = ANY($1)
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, variationsQ, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var pid string
		var v domain.ProductVariation
		if err := rows.Scan(&pid, &v.ID, &v.Name, &v.Price, &v.Quantity, &v.ApplySale); err != nil {
			rows.Close()
			return err
		}
		i := index[pid]
		products[i].Variations = append(products[i].Variations, v)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	const colorsQ = `
SELECT product_id::text, id::text, name, COALESCE(code, ''), price, quantity, apply_sale
FROM product_colors
WHERE product_id = ANY($1)
ORDER BY created_at ASC
`
	rows, err = r.pool.Query(ctx, colorsQ, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var pid string
		var c domain.ProductColor
		if err := rows.Scan(&pid, &c.ID, &c.Name, &c.Code, &c.Price, &c.Quantity, &c.ApplySale); err != nil {
			rows.Close()
			return err
		}
		i := index[pid]
		products[i].Colors = append(products[i].Colors, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	const sizesQ = `
SELECT product_id::text, id::text, name, price, quantity, apply_sale
FROM product_sizes
WHERE product_id = ANY($1)
ORDER BY created_at ASC
`
	rows, err = r.pool.Query(ctx, sizesQ, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var pid string
		var s domain.ProductSize
		if err := rows.Scan(&pid, &s.ID, &s.Name, &s.Price, &s.Quantity, &s.ApplySale); err != nil {
			rows.Close()
			return err
		}
		i := index[pid]
		products[i].Sizes = append(products[i].Sizes, s)
	}
	rows.Close()
	return rows.Err()
}
