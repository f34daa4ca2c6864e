package mocks

import (
	"context"
	"sync"

	"github.com/aswin1661/looms-petals/internal/cart"
)

// MockCartStore implements cart.Store in memory for testing
type MockCartStore struct {
	LoadFunc func(ctx context.Context, sessionToken string) (cart.Cart, error)
	SaveFunc func(ctx context.Context, sessionToken string, c cart.Cart) error
	DropFunc func(ctx context.Context, sessionToken string) error

	mu    sync.Mutex
	carts map[string]cart.Cart
}

// NewMockCartStore creates a new MockCartStore with default behaviors
func NewMockCartStore() *MockCartStore {
	return &MockCartStore{carts: make(map[string]cart.Cart)}
}

func (m *MockCartStore) Load(ctx context.Context, sessionToken string) (cart.Cart, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, sessionToken)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.carts[sessionToken], nil
}

func (m *MockCartStore) Save(ctx context.Context, sessionToken string, c cart.Cart) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, sessionToken, c)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[sessionToken] = c
	return nil
}

func (m *MockCartStore) Drop(ctx context.Context, sessionToken string) error {
	if m.DropFunc != nil {
		return m.DropFunc(ctx, sessionToken)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionToken)
	return nil
}
