package sale

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// ListActive returns sales that are active and not yet past their end
	// date. Price resolution trusts this filter for expiry.
	ListActive(ctx context.Context) ([]domain.Sale, error)
	List(ctx context.Context) ([]domain.Sale, error)
	Create(ctx context.Context, sale domain.Sale) (*domain.Sale, error)
	Delete(ctx context.Context, id string) error
}
