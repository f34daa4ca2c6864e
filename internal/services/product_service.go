package services

import (
	"context"

	"github.com/aswin1661/looms-petals/domain"
)

// ProductService wraps catalog data access with the defaulting rules the
// admin dashboard relies on.
type ProductService struct {
	repo domain.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(repo domain.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// ListPublic returns active products, newest first, optionally narrowed by
// category or the featured flag.
func (s *ProductService) ListPublic(ctx context.Context, category string, featured bool) ([]*domain.Product, error) {
	return s.repo.List(ctx, domain.ProductFilter{
		Category:   category,
		Featured:   featured,
		ActiveOnly: true,
	})
}

// Get returns a single product by id.
func (s *ProductService) Get(ctx context.Context, id uint) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// Create inserts a new product, filling the dashboard's defaults.
func (s *ProductService) Create(ctx context.Context, p *domain.Product) error {
	if p.Status == "" {
		p.Status = "normal"
	}
	if p.Type == "" {
		p.Type = "clothing"
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Sizes == nil {
		p.Sizes = []string{}
	}
	if p.Colors == nil {
		p.Colors = []string{}
	}
	return s.repo.Create(ctx, p)
}

// Update replaces an existing product's fields.
func (s *ProductService) Update(ctx context.Context, p *domain.Product) error {
	return s.repo.Update(ctx, p)
}

// Deactivate soft-deletes a product: it disappears from public listings
// but its row survives for existing references.
func (s *ProductService) Deactivate(ctx context.Context, id uint) error {
	return s.repo.Deactivate(ctx, id)
}
