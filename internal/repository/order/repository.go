package order

import (
	"context"

	"tapto-backend/internal/domain"
)

type Repository interface {
	// Create persists a new order. A tracking number collision is surfaced
	// as domain.ErrAlreadyExists so the caller can regenerate and retry.
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	// Update writes back the mutable portion of the order document:
	// status, tracking log, cancellation reason, delivery person, live
	// location and delivery timestamp. Last write wins.
	Update(ctx context.Context, o domain.Order) (*domain.Order, error)
	// ListByStatus returns orders currently in the given status.
	ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
}
