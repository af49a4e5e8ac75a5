package product

import (
	"context"
	"testing"

	"tapto-backend/internal/domain"
	productrepo "tapto-backend/internal/repository/product"
)

type stubRepo struct {
	lastFilter productrepo.ListFilter
	products   []domain.Product
	total      int
	created    *domain.Product
	byID       *domain.Product
	idErr      error
}

func (s *stubRepo) List(_ context.Context, f productrepo.ListFilter) ([]domain.Product, int, error) {
	s.lastFilter = f
	return s.products, s.total, nil
}

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.Product, error) {
	return s.byID, s.idErr
}

func (s *stubRepo) Categories(_ context.Context) ([]string, error) {
	return nil, nil
}

func (s *stubRepo) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	p.ID = "p-1"
	s.created = &p
	return &p, nil
}

func (s *stubRepo) Update(_ context.Context, p domain.Product) (*domain.Product, error) {
	return &p, nil
}

func (s *stubRepo) Delete(_ context.Context, _ string) error { return nil }

func TestListClampsPaging(t *testing.T) {
	repo := &stubRepo{total: 5}
	svc := New(repo)

	page, err := svc.List(context.Background(), ListInput{Page: -3, Limit: 10000})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Page != 1 || page.Limit != defaultPageSize {
		t.Fatalf("expected clamped paging, got page=%d limit=%d", page.Page, page.Limit)
	}
	if repo.lastFilter.Offset != 0 {
		t.Fatalf("expected offset 0, got %d", repo.lastFilter.Offset)
	}
}

func TestListOffsetFromPage(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	if _, err := svc.List(context.Background(), ListInput{Page: 3, Limit: 10}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if repo.lastFilter.Limit != 10 || repo.lastFilter.Offset != 20 {
		t.Fatalf("expected limit 10 offset 20, got %+v", repo.lastFilter)
	}
}

func TestCreateDefaultsActive(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	p, err := svc.Create(context.Background(), "admin-1", Input{
		Name: "Tee", Category: "clothing", Price: 19.99, Stock: 10,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !p.IsActive {
		t.Fatal("expected new product active by default")
	}
	if p.CreatedBy != "admin-1" {
		t.Fatalf("expected creator recorded, got %q", p.CreatedBy)
	}
}

func TestCreateRejectsNegativePrice(t *testing.T) {
	svc := New(&stubRepo{})

	if _, err := svc.Create(context.Background(), "admin-1", Input{
		Name: "Tee", Category: "clothing", Price: -1,
	}); err == nil {
		t.Fatal("expected validation error for negative price")
	}
}
