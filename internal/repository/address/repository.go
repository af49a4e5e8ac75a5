package address

import (
	"context"

	"tapto-backend/internal/domain"
)

// Repository persists the per-user address book. All lookups are scoped to
// the owning user; cross-user access yields domain.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, a domain.Address) (*domain.Address, error)
	GetByID(ctx context.Context, id, userID string) (*domain.Address, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Address, error)
	Update(ctx context.Context, a domain.Address) (*domain.Address, error)
	Delete(ctx context.Context, id, userID string) error
	// SetDefault marks the address as the user's default and clears every
	// other default for that user in the same transaction.
	SetDefault(ctx context.Context, id, userID string) (*domain.Address, error)
}
