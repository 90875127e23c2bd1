package order

import (
	"context"

	"storefront/internal/domain"
)

type ListFilter struct {
	Status string
	Limit  int
	Offset int
}

type Repository interface {
	Create(ctx context.Context, order domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Order, int, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
