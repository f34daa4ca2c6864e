package mocks

import (
	"context"

	"github.com/aswin1661/looms-petals/domain"
)

// MockProductRepository implements domain.ProductRepository for testing
type MockProductRepository struct {
	CreateFunc     func(ctx context.Context, p *domain.Product) error
	UpdateFunc     func(ctx context.Context, p *domain.Product) error
	FindByIDFunc   func(ctx context.Context, id uint) (*domain.Product, error)
	ListFunc       func(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	DeactivateFunc func(ctx context.Context, id uint) error
}

// NewMockProductRepository creates a new MockProductRepository with default behaviors
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{}
}

func (m *MockProductRepository) Create(ctx context.Context, p *domain.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	p.ID = 1
	return nil
}

func (m *MockProductRepository) Update(ctx context.Context, p *domain.Product) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p)
	}
	return nil
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return &domain.Product{ID: id, Name: "Handloom Tee", Price: 499, Category: "tees", Stock: 10, IsActive: true}, nil
}

func (m *MockProductRepository) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *MockProductRepository) Deactivate(ctx context.Context, id uint) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, id)
	}
	return nil
}
