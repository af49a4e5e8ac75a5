package cart

import (
	"context"
	"errors"

	"tapto-backend/internal/domain"
	cartrepo "tapto-backend/internal/repository/cart"
)

// Service owns the per-user cart aggregate: merge-by-identity-key adds,
// absolute quantity updates, removals and wholesale replacement. Line prices,
// names and images are re-read from the catalog on every write that touches
// the line, so a line is only stale until its next write.
type Service struct {
	repo    cartRepo
	catalog catalogRepo
}

type cartRepo interface {
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	Create(ctx context.Context, userID string) (*domain.Cart, error)
	ReplaceItems(ctx context.Context, cartID string, items []domain.CartItem) error
}

type catalogRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartrepo.Repository, catalog catalogRepo) *Service {
	return &Service{repo: repo, catalog: catalog}
}

// ItemInput addresses one cart line. Missing size/color are the empty string.
type ItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

func (in ItemInput) key() domain.ItemKey {
	return domain.ItemKey{ProductID: in.ProductID, Size: in.Size, Color: in.Color}
}

// GetOrCreate returns the user's cart, creating and persisting an empty one
// on first access.
func (s *Service) GetOrCreate(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.GetByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return s.repo.Create(ctx, userID)
}

// AddItem adds quantity to the line matching (productId, size, color), or
// appends a new line. The product must resolve in the catalog; an existing
// line has its price, name and image refreshed from the current catalog.
func (s *Service) AddItem(ctx context.Context, userID string, in ItemInput) (*domain.Cart, error) {
	if in.Quantity <= 0 {
		return nil, domain.Invalid("quantity must be positive")
	}
	product, err := s.catalog.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	cart, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].Key() == in.key() {
			cart.Items[i].Quantity += in.Quantity
			cart.Items[i].UnitPrice = product.Price
			cart.Items[i].ProductName = product.Name
			cart.Items[i].ProductImage = product.FirstImage()
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID:    in.ProductID,
			ProductName:  product.Name,
			ProductImage: product.FirstImage(),
			Quantity:     in.Quantity,
			UnitPrice:    product.Price,
			Size:         in.Size,
			Color:        in.Color,
		})
	}

	if err := s.repo.ReplaceItems(ctx, cart.ID, cart.Items); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateItemQuantity sets the matching line's quantity exactly. A quantity of
// zero or less removes the line; removing an absent line is a no-op. Setting
// a positive quantity on an absent line fails with ErrItemNotFound.
func (s *Service) UpdateItemQuantity(ctx context.Context, userID string, in ItemInput) (*domain.Cart, error) {
	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Quantity <= 0 {
		cart.Items = removeMatching(cart.Items, in.key())
	} else {
		found := false
		for i := range cart.Items {
			if cart.Items[i].Key() == in.key() {
				cart.Items[i].Quantity = in.Quantity
				found = true
				break
			}
		}
		if !found {
			return nil, domain.ErrItemNotFound
		}
	}

	if err := s.repo.ReplaceItems(ctx, cart.ID, cart.Items); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops the matching line. An absent match is a silent no-op; only
// a missing cart is an error.
func (s *Service) RemoveItem(ctx context.Context, userID, productID, size, color string) (*domain.Cart, error) {
	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.Items = removeMatching(cart.Items, domain.ItemKey{ProductID: productID, Size: size, Color: color})

	if err := s.repo.ReplaceItems(ctx, cart.ID, cart.Items); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.Items = []domain.CartItem{}
	if err := s.repo.ReplaceItems(ctx, cart.ID, cart.Items); err != nil {
		return nil, err
	}
	return cart, nil
}

// Sync replaces the cart wholesale with the client's local cart. Every line
// is re-resolved against the catalog; lines whose product no longer resolves
// are dropped silently rather than failing the sync. Lines sharing an
// identity key are merged into one with their quantities summed. Prices,
// names and images are always taken from the current catalog, never trusted
// from the caller.
func (s *Service) Sync(ctx context.Context, userID string, items []ItemInput) (*domain.Cart, error) {
	for _, in := range items {
		if in.Quantity <= 0 {
			return nil, domain.Invalid("quantity must be positive")
		}
	}

	cart, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	resolved := []domain.CartItem{}
	index := map[domain.ItemKey]int{}
	for _, in := range items {
		if at, ok := index[in.key()]; ok {
			resolved[at].Quantity += in.Quantity
			continue
		}
		product, err := s.catalog.GetByID(ctx, in.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		index[in.key()] = len(resolved)
		resolved = append(resolved, domain.CartItem{
			ProductID:    in.ProductID,
			ProductName:  product.Name,
			ProductImage: product.FirstImage(),
			Quantity:     in.Quantity,
			UnitPrice:    product.Price,
			Size:         in.Size,
			Color:        in.Color,
		})
	}

	cart.Items = resolved
	if err := s.repo.ReplaceItems(ctx, cart.ID, cart.Items); err != nil {
		return nil, err
	}
	return cart, nil
}

func removeMatching(items []domain.CartItem, key domain.ItemKey) []domain.CartItem {
	out := items[:0]
	for _, item := range items {
		if item.Key() != key {
			out = append(out, item)
		}
	}
	return out
}
