package driver

import (
	"context"

	"tapto-backend/internal/domain"
)

// Repository persists the delivery driver directory.
type Repository interface {
	Create(ctx context.Context, d domain.DeliveryDriver) (*domain.DeliveryDriver, error)
	GetByID(ctx context.Context, id string) (*domain.DeliveryDriver, error)
	List(ctx context.Context) ([]domain.DeliveryDriver, error)
	Update(ctx context.Context, d domain.DeliveryDriver) (*domain.DeliveryDriver, error)
	Delete(ctx context.Context, id string) error
}
