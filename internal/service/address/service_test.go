package address

import (
	"context"
	"errors"
	"testing"

	"tapto-backend/internal/domain"
)

type stubRepo struct {
	created *domain.Address
	byID    *domain.Address
	idErr   error
	updated *domain.Address
}

func (s *stubRepo) Create(_ context.Context, a domain.Address) (*domain.Address, error) {
	a.ID = "addr-1"
	s.created = &a
	return &a, nil
}

func (s *stubRepo) GetByID(_ context.Context, _, _ string) (*domain.Address, error) {
	return s.byID, s.idErr
}

func (s *stubRepo) ListByUser(_ context.Context, _ string) ([]domain.Address, error) {
	return nil, nil
}

func (s *stubRepo) Update(_ context.Context, a domain.Address) (*domain.Address, error) {
	s.updated = &a
	return &a, nil
}

func (s *stubRepo) Delete(_ context.Context, _, _ string) error { return nil }

func (s *stubRepo) SetDefault(_ context.Context, _, _ string) (*domain.Address, error) {
	return s.byID, s.idErr
}

func validInput() Input {
	return Input{
		FullName: "Sita Sharma",
		Phone:    "+977 9800000000",
		Street:   "Boudha Road 12",
		City:     "Kathmandu",
		ZipCode:  "44600",
		Country:  "Nepal",
	}
}

func TestCreateBindsOwner(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	addr, err := svc.Create(context.Background(), "user-1", validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if addr.UserID != "user-1" {
		t.Fatalf("expected owner bound, got %q", addr.UserID)
	}
}

func TestCreateRejectsBlankFields(t *testing.T) {
	svc := New(&stubRepo{})

	in := validInput()
	in.City = "   "
	if _, err := svc.Create(context.Background(), "user-1", in); err == nil {
		t.Fatal("expected validation error for blank city")
	}
}

func TestUpdateForeignAddress(t *testing.T) {
	repo := &stubRepo{idErr: domain.ErrNotFound}
	svc := New(repo)

	if _, err := svc.Update(context.Background(), "addr-1", "intruder", validInput()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign address, got %v", err)
	}
}

func TestUpdateKeepsIdentity(t *testing.T) {
	repo := &stubRepo{byID: &domain.Address{ID: "addr-1", UserID: "user-1", FullName: "Old"}}
	svc := New(repo)

	addr, err := svc.Update(context.Background(), "addr-1", "user-1", validInput())
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if addr.ID != "addr-1" || addr.UserID != "user-1" {
		t.Fatalf("expected identity preserved, got %+v", addr)
	}
	if addr.FullName != "Sita Sharma" {
		t.Fatalf("expected fields rewritten, got %+v", addr)
	}
}
