package mocks

import (
	"context"
	"time"

	"github.com/aswin1661/looms-petals/domain"
)

// MockSessionRepository implements domain.SessionRepository for testing
type MockSessionRepository struct {
	CreateFunc               func(ctx context.Context, session *domain.Session) error
	FindByTokenFunc          func(ctx context.Context, token string) (*domain.Session, error)
	DeleteByTokenFunc        func(ctx context.Context, token string) error
	DeleteForUserFunc        func(ctx context.Context, userID uint) error
	PruneToNewestFunc        func(ctx context.Context, userID uint, keep int) (int64, error)
	DeleteExpiredForUserFunc func(ctx context.Context, userID uint, now time.Time) error
}

// NewMockSessionRepository creates a new MockSessionRepository with default behaviors
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{}
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	session.ID = 1
	return nil
}

func (m *MockSessionRepository) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, token)
	}
	return nil, domain.ErrSessionInvalid
}

func (m *MockSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	if m.DeleteByTokenFunc != nil {
		return m.DeleteByTokenFunc(ctx, token)
	}
	return nil
}

func (m *MockSessionRepository) DeleteForUser(ctx context.Context, userID uint) error {
	if m.DeleteForUserFunc != nil {
		return m.DeleteForUserFunc(ctx, userID)
	}
	return nil
}

func (m *MockSessionRepository) PruneToNewest(ctx context.Context, userID uint, keep int) (int64, error) {
	if m.PruneToNewestFunc != nil {
		return m.PruneToNewestFunc(ctx, userID, keep)
	}
	return 0, nil
}

func (m *MockSessionRepository) DeleteExpiredForUser(ctx context.Context, userID uint, now time.Time) error {
	if m.DeleteExpiredForUserFunc != nil {
		return m.DeleteExpiredForUserFunc(ctx, userID, now)
	}
	return nil
}
