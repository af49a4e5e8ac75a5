package cart

import (
	"context"

	"tapto-backend/internal/domain"
)

type Repository interface {
	// GetByUser returns the user's cart, or domain.ErrNotFound if none exists.
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	// Create persists an empty cart for the user.
	Create(ctx context.Context, userID string) (*domain.Cart, error)
	// ReplaceItems overwrites the cart's line items wholesale.
	ReplaceItems(ctx context.Context, cartID string, items []domain.CartItem) error
}
