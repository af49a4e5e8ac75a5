package product

import (
	"context"
	"strings"

	"tapto-backend/internal/domain"
	productrepo "tapto-backend/internal/repository/product"
)

const defaultPageSize = 20

// Service exposes the public catalog and its admin CRUD.
type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// ListInput is the public listing query.
type ListInput struct {
	Category string
	Search   string
	MinPrice *float64
	MaxPrice *float64
	Page     int
	Limit    int
}

// Page is one page of catalog results.
type Page struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}

// List returns a filtered, paginated slice of the catalog.
func (s *Service) List(ctx context.Context, in ListInput) (*Page, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 || limit > 100 {
		limit = defaultPageSize
	}

	products, total, err := s.repo.List(ctx, productrepo.ListFilter{
		Category: in.Category,
		Search:   strings.TrimSpace(in.Search),
		MinPrice: in.MinPrice,
		MaxPrice: in.MaxPrice,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}
	return &Page{Products: products, Total: total, Page: page, Limit: limit}, nil
}

// Get returns one product by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Categories returns the distinct category names in the catalog.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

// Input carries the admin-writable product fields.
type Input struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Images      []string `json:"images,omitempty"`
	Category    string   `json:"category"`
	Stock       int      `json:"stock"`
	IsActive    *bool    `json:"isActive,omitempty"`
	Discount    float64  `json:"discount,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	Colors      []string `json:"colors,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Invalid("name is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return domain.Invalid("category is required")
	}
	if in.Price < 0 {
		return domain.Invalid("price must not be negative")
	}
	if in.Stock < 0 {
		return domain.Invalid("stock must not be negative")
	}
	return nil
}

// Create adds a catalog entry. New products are active unless told otherwise.
func (s *Service) Create(ctx context.Context, createdBy string, in Input) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return s.repo.Create(ctx, domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Images:      in.Images,
		Category:    in.Category,
		Stock:       in.Stock,
		IsActive:    active,
		Discount:    in.Discount,
		Sizes:       in.Sizes,
		Colors:      in.Colors,
		Tags:        in.Tags,
		CreatedBy:   createdBy,
	})
}

// Update rewrites the product's writable fields.
func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	current.Name = strings.TrimSpace(in.Name)
	current.Description = in.Description
	current.Price = in.Price
	current.Images = in.Images
	current.Category = in.Category
	current.Stock = in.Stock
	if in.IsActive != nil {
		current.IsActive = *in.IsActive
	}
	current.Discount = in.Discount
	current.Sizes = in.Sizes
	current.Colors = in.Colors
	current.Tags = in.Tags
	return s.repo.Update(ctx, *current)
}

// Delete removes a catalog entry.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
