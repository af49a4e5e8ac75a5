package product

import (
	"context"

	"tapto-backend/internal/domain"
)

// ListFilter narrows the public catalog listing.
type ListFilter struct {
	Category string
	Search   string
	MinPrice *float64
	MaxPrice *float64
	Limit    int
	Offset   int
}

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Product, int, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
