package driver

import (
	"context"
	"strings"

	"tapto-backend/internal/domain"
	driverrepo "tapto-backend/internal/repository/driver"
)

// Service manages the courier directory used by driver assignment.
type Service struct {
	repo driverrepo.Repository
}

func New(repo driverrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Input carries the writable driver fields.
type Input struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	VehicleNumber string `json:"vehicleNumber"`
	IsActive      *bool  `json:"isActive,omitempty"`
	AvatarURL     string `json:"avatarUrl,omitempty"`
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Invalid("name is required")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return domain.Invalid("phone is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		return domain.Invalid("email is required")
	}
	if strings.TrimSpace(in.VehicleNumber) == "" {
		return domain.Invalid("vehicle number is required")
	}
	return nil
}

// Create adds a driver. Duplicate phone or email surfaces as
// domain.ErrAlreadyExists. New drivers are active unless told otherwise.
func (s *Service) Create(ctx context.Context, in Input) (*domain.DeliveryDriver, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return s.repo.Create(ctx, domain.DeliveryDriver{
		Name:          strings.TrimSpace(in.Name),
		Phone:         strings.TrimSpace(in.Phone),
		Email:         strings.TrimSpace(strings.ToLower(in.Email)),
		VehicleNumber: strings.TrimSpace(in.VehicleNumber),
		IsActive:      active,
		AvatarURL:     in.AvatarURL,
	})
}

// Update rewrites the driver's writable fields.
func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.DeliveryDriver, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	current.Name = strings.TrimSpace(in.Name)
	current.Phone = strings.TrimSpace(in.Phone)
	current.Email = strings.TrimSpace(strings.ToLower(in.Email))
	current.VehicleNumber = strings.TrimSpace(in.VehicleNumber)
	if in.IsActive != nil {
		current.IsActive = *in.IsActive
	}
	current.AvatarURL = in.AvatarURL
	return s.repo.Update(ctx, *current)
}

// Get returns one driver.
func (s *Service) Get(ctx context.Context, id string) (*domain.DeliveryDriver, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns the whole directory.
func (s *Service) List(ctx context.Context) ([]domain.DeliveryDriver, error) {
	return s.repo.List(ctx)
}

// Delete removes a driver from the directory. Orders that already carry the
// driver's snapshot keep it.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
