package mocks

import (
	"context"
	"time"

	"github.com/aswin1661/looms-petals/domain"
)

// MockSessionService implements domain.SessionService for testing
type MockSessionService struct {
	CreateUserSessionFunc     func(ctx context.Context, userID uint) (*domain.Session, error)
	ValidateUserSessionFunc   func(ctx context.Context, token string) (*domain.User, error)
	RevokeUserSessionFunc     func(ctx context.Context, token string) error
	RevokeAllUserSessionsFunc func(ctx context.Context, userID uint) error
	CreateAdminSessionFunc    func(ctx context.Context, userID uint) (*domain.Session, error)
	ValidateAdminSessionFunc  func(ctx context.Context, token string) (*domain.User, error)
	RevokeAdminSessionFunc    func(ctx context.Context, token string) error
}

// NewMockSessionService creates a new MockSessionService with default behaviors
func NewMockSessionService() *MockSessionService {
	return &MockSessionService{}
}

func mockSession(userID uint, ttl time.Duration) *domain.Session {
	now := time.Now().UTC()
	return &domain.Session{
		ID:        1,
		UserID:    userID,
		Token:     "mock_session_token",
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func (m *MockSessionService) CreateUserSession(ctx context.Context, userID uint) (*domain.Session, error) {
	if m.CreateUserSessionFunc != nil {
		return m.CreateUserSessionFunc(ctx, userID)
	}
	return mockSession(userID, domain.UserSessionLifetime), nil
}

func (m *MockSessionService) ValidateUserSession(ctx context.Context, token string) (*domain.User, error) {
	if m.ValidateUserSessionFunc != nil {
		return m.ValidateUserSessionFunc(ctx, token)
	}
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}
	return &domain.User{ID: 1, Email: "user@example.com", Role: "user", IsVerified: true}, nil
}

func (m *MockSessionService) RevokeUserSession(ctx context.Context, token string) error {
	if m.RevokeUserSessionFunc != nil {
		return m.RevokeUserSessionFunc(ctx, token)
	}
	return nil
}

func (m *MockSessionService) RevokeAllUserSessions(ctx context.Context, userID uint) error {
	if m.RevokeAllUserSessionsFunc != nil {
		return m.RevokeAllUserSessionsFunc(ctx, userID)
	}
	return nil
}

func (m *MockSessionService) CreateAdminSession(ctx context.Context, userID uint) (*domain.Session, error) {
	if m.CreateAdminSessionFunc != nil {
		return m.CreateAdminSessionFunc(ctx, userID)
	}
	return mockSession(userID, domain.AdminSessionLifetime), nil
}

func (m *MockSessionService) ValidateAdminSession(ctx context.Context, token string) (*domain.User, error) {
	if m.ValidateAdminSessionFunc != nil {
		return m.ValidateAdminSessionFunc(ctx, token)
	}
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}
	return &domain.User{ID: 1, Email: "admin@example.com", Role: "admin", IsVerified: true}, nil
}

func (m *MockSessionService) RevokeAdminSession(ctx context.Context, token string) error {
	if m.RevokeAdminSessionFunc != nil {
		return m.RevokeAdminSessionFunc(ctx, token)
	}
	return nil
}
