package order

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

// Create inserts the order and its item snapshots in one transaction.
func (r *postgresRepo) Create(ctx context.Context, order domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const orderQ = `
INSERT INTO orders (customer_name, customer_phone, customer_email, shipping_address, city, status, subtotal, shipping_cost, total)
VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6, $7, $8, $9)
RETURNING id::text, created_at
`
	res := order
	if res.Status == "" {
		res.Status = domain.OrderStatusPending
	}
	if err := tx.QueryRow(ctx, orderQ,
		order.CustomerName,
		order.CustomerPhone,
		order.CustomerEmail,
		order.ShippingAddress,
		order.City,
		res.Status,
		order.Subtotal,
		order.ShippingCost,
		order.Total,
	).Scan(&res.ID, &res.CreatedAt); err != nil {
		return nil, err
	}

	const itemQ = `
INSERT INTO order_items (order_id, product_id, product_name, variation_name, color_name, size_name, quantity, unit_price, discount, line_total)
VALUES ($1, $2::uuid, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id::text
`
	for i := range res.Items {
		item := &res.Items[i]
		item.OrderID = res.ID
		if err := tx.QueryRow(ctx, itemQ,
			res.ID,
			item.ProductID,
			item.ProductName,
			item.VariationName,
			item.ColorName,
			item.SizeName,
			item.Quantity,
			item.UnitPrice,
			item.Discount,
			item.LineTotal,
		).Scan(&item.ID); err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
SELECT id::text, customer_name, customer_phone, COALESCE(customer_email, ''), shipping_address, COALESCE(city, ''), status, subtotal, shipping_cost, total, created_at
FROM orders
WHERE id = $1
`
	var o domain.Order
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&o.ID,
		&o.CustomerName,
		&o.CustomerPhone,
		&o.CustomerEmail,
		&o.ShippingAddress,
		&o.City,
		&o.Status,
		&o.Subtotal,
		&o.ShippingCost,
		&o.Total,
		&o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const itemsQ = `
SELECT id::text, order_id::text, product_id::text, product_name, variation_name, color_name, size_name, quantity, unit_price, discount, line_total
FROM order_items
WHERE order_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, itemsQ, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.VariationName,
			&item.ColorName,
			&item.SizeName,
			&item.Quantity,
			&item.UnitPrice,
			&item.Discount,
			&item.LineTotal,
		); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepo) List(ctx context.Context, filter ListFilter) ([]domain.Order, int, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	where := "1=1"
	args := []any{}
	arg := 1
	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", arg)
		args = append(args, filter.Status)
		arg++
	}

	q := fmt.Sprintf(`
SELECT id::text, customer_name, customer_phone, COALESCE(customer_email, ''), shipping_address, COALESCE(city, ''), status, subtotal, shipping_cost, total, created_at,
       COUNT(*) OVER() AS total_rows
FROM orders
WHERE %s
ORDER BY created_at DESC
LIMIT $%d OFFSET $%d
`, where, arg, arg+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []domain.Order
	total := 0
	for rows.Next() {
		var o domain.Order
		var t int
		if err := rows.Scan(
			&o.ID,
			&o.CustomerName,
			&o.CustomerPhone,
			&o.CustomerEmail,
			&o.ShippingAddress,
			&o.City,
			&o.Status,
			&o.Subtotal,
			&o.ShippingCost,
			&o.Total,
			&o.CreatedAt,
			&t,
		); err != nil {
			return nil, 0, err
		}
		if total == 0 {
			total = t
		}
		out = append(out, o)
	}
	return out, total, rows.Err()
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
