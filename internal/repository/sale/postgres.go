package sale

import (
	"context"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const saleColumns = `
id::text, COALESCE(name, ''), product_id::text, is_global, discount_percentage, is_active, start_date, end_date, created_at
`

func (r *postgresRepo) ListActive(ctx context.Context) ([]domain.Sale, error) {
	const q = `
SELECT ` + saleColumns + `
FROM sales
WHERE is_active = true AND end_date > now()
ORDER BY created_at ASC
`
	return r.list(ctx, q)
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Sale, error) {
	const q = `
SELECT ` + saleColumns + `
FROM sales
ORDER BY created_at DESC
`
	return r.list(ctx, q)
}

func (r *postgresRepo) list(ctx context.Context, q string) ([]domain.Sale, error) {
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Sale
	for rows.Next() {
		var s domain.Sale
		var productID *string
		if err := rows.Scan(&s.ID, &s.Name, &productID, &s.IsGlobal, &s.DiscountPercentage, &s.IsActive, &s.StartDate, &s.EndDate, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.ProductID = productID
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Create(ctx context.Context, sale domain.Sale) (*domain.Sale, error) {
	const q = `
INSERT INTO sales (name, product_id, is_global, discount_percentage, is_active, start_date, end_date)
VALUES (NULLIF($1, ''), $2::uuid, $3, $4, $5, COALESCE($6, now()), $7)
RETURNING id::text, start_date, created_at
`
	res := sale
	var start any
	if !sale.StartDate.IsZero() {
		start = sale.StartDate
	}
	err := r.pool.QueryRow(ctx, q,
		sale.Name,
		sale.ProductID,
		sale.IsGlobal,
		sale.DiscountPercentage,
		sale.IsActive,
		start,
		sale.EndDate,
	).Scan(&res.ID, &res.StartDate, &res.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
