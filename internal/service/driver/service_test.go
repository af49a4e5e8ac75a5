package driver

import (
	"context"
	"testing"

	"tapto-backend/internal/domain"
)

type stubRepo struct {
	drivers []domain.DeliveryDriver
	byID    *domain.DeliveryDriver
	idErr   error
	created *domain.DeliveryDriver
	updated *domain.DeliveryDriver
}

func (s *stubRepo) Create(_ context.Context, d domain.DeliveryDriver) (*domain.DeliveryDriver, error) {
	d.ID = "drv-1"
	s.created = &d
	return &d, nil
}

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.DeliveryDriver, error) {
	return s.byID, s.idErr
}

func (s *stubRepo) List(_ context.Context) ([]domain.DeliveryDriver, error) {
	return s.drivers, nil
}

func (s *stubRepo) Update(_ context.Context, d domain.DeliveryDriver) (*domain.DeliveryDriver, error) {
	s.updated = &d
	return &d, nil
}

func (s *stubRepo) Delete(_ context.Context, _ string) error { return nil }

func TestCreateNormalizesAndDefaultsActive(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	d, err := svc.Create(context.Background(), Input{
		Name:          " Amit Sharma ",
		Phone:         "+977 9841000001",
		Email:         "Amit.Sharma@TapTo.example",
		VehicleNumber: "BA 2 PA 1234",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.Email != "amit.sharma@tapto.example" {
		t.Fatalf("expected lowercased email, got %q", d.Email)
	}
	if d.Name != "Amit Sharma" {
		t.Fatalf("expected trimmed name, got %q", d.Name)
	}
	if !d.IsActive {
		t.Fatal("expected new driver active by default")
	}
}

func TestCreateRejectsBlankFields(t *testing.T) {
	svc := New(&stubRepo{})

	if _, err := svc.Create(context.Background(), Input{
		Name: "Sita Gurung", Phone: "+977 9841000002", Email: "sita@tapto.example",
	}); err == nil {
		t.Fatal("expected validation error for missing vehicle number")
	}
}

func TestUpdateKeepsActiveWhenOmitted(t *testing.T) {
	repo := &stubRepo{byID: &domain.DeliveryDriver{
		ID: "drv-1", Name: "Ramesh Thapa", Phone: "+977 9841000003",
		Email: "ramesh@tapto.example", VehicleNumber: "BA 3 PA 9999", IsActive: false,
	}}
	svc := New(repo)

	d, err := svc.Update(context.Background(), "drv-1", Input{
		Name: "Ramesh Thapa", Phone: "+977 9841000003",
		Email: "ramesh@tapto.example", VehicleNumber: "BA 3 PA 9999",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if d.IsActive {
		t.Fatal("expected active flag untouched when omitted")
	}
}

func TestUpdateUnknownDriver(t *testing.T) {
	svc := New(&stubRepo{idErr: domain.ErrNotFound})

	if _, err := svc.Update(context.Background(), "missing", Input{
		Name: "Priya Singh", Phone: "+977 9841000004",
		Email: "priya@tapto.example", VehicleNumber: "BA 4 PA 5555",
	}); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListReturnsDirectory(t *testing.T) {
	repo := &stubRepo{drivers: []domain.DeliveryDriver{
		{ID: "drv-1", Name: "Manoj Yadav"},
		{ID: "drv-2", Name: "Bikash Shrestha"},
	}}
	svc := New(repo)

	drivers, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(drivers) != 2 {
		t.Fatalf("expected 2 drivers, got %d", len(drivers))
	}
}
