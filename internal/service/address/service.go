package address

import (
	"context"
	"strings"

	"tapto-backend/internal/domain"
	addrrepo "tapto-backend/internal/repository/address"
)

// Service manages the per-user address book. Every operation is scoped to
// the owning user; a foreign address behaves as if it did not exist.
type Service struct {
	repo addrrepo.Repository
}

func New(repo addrrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Input carries the writable address fields.
type Input struct {
	FullName  string `json:"fullName"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state,omitempty"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
	IsDefault bool   `json:"isDefault"`
}

func (in Input) validate() error {
	for _, field := range []struct {
		name, value string
	}{
		{"fullName", in.FullName},
		{"phone", in.Phone},
		{"street", in.Street},
		{"city", in.City},
		{"zipCode", in.ZipCode},
		{"country", in.Country},
	} {
		if strings.TrimSpace(field.value) == "" {
			return domain.Invalid(field.name + " is required")
		}
	}
	return nil
}

// Create adds an address. Setting it default clears any previous default.
func (s *Service) Create(ctx context.Context, userID string, in Input) (*domain.Address, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, domain.Address{
		UserID:    userID,
		FullName:  in.FullName,
		Phone:     in.Phone,
		Street:    in.Street,
		City:      in.City,
		State:     in.State,
		ZipCode:   in.ZipCode,
		Country:   in.Country,
		IsDefault: in.IsDefault,
	})
}

// Update rewrites the address in place, keeping its id and owner.
func (s *Service) Update(ctx context.Context, id, userID string, in Input) (*domain.Address, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	current.FullName = in.FullName
	current.Phone = in.Phone
	current.Street = in.Street
	current.City = in.City
	current.State = in.State
	current.ZipCode = in.ZipCode
	current.Country = in.Country
	current.IsDefault = in.IsDefault
	return s.repo.Update(ctx, *current)
}

// Get returns one address owned by the user.
func (s *Service) Get(ctx context.Context, id, userID string) (*domain.Address, error) {
	return s.repo.GetByID(ctx, id, userID)
}

// List returns the user's addresses, default first.
func (s *Service) List(ctx context.Context, userID string) ([]domain.Address, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Delete removes the address.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	return s.repo.Delete(ctx, id, userID)
}

// SetDefault makes the address the user's single default.
func (s *Service) SetDefault(ctx context.Context, id, userID string) (*domain.Address, error) {
	return s.repo.SetDefault(ctx, id, userID)
}
