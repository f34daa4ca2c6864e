package mocks

import (
	"context"
	"time"

	"github.com/aswin1661/looms-petals/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	RegisterFunc       func(ctx context.Context, email, password, name, otp string) (*domain.User, *domain.Session, error)
	LoginFunc          func(ctx context.Context, email, password string) (*domain.User, *domain.Session, error)
	AdminLoginFunc     func(ctx context.Context, email, password string) (*domain.User, *domain.Session, error)
	UpdateProfileFunc  func(ctx context.Context, userID uint, name, phone *string) (*domain.User, error)
	ForgotPasswordFunc func(ctx context.Context, email string) error
	ResetPasswordFunc  func(ctx context.Context, email, otp, newPassword string) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Register(ctx context.Context, email, password, name, otp string) (*domain.User, *domain.Session, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, password, name, otp)
	}
	user := &domain.User{ID: 1, Email: email, Name: name, Role: "user", IsVerified: true, CreatedAt: time.Now()}
	return user, mockSession(user.ID, domain.UserSessionLifetime), nil
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.User, *domain.Session, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	user := &domain.User{ID: 1, Email: email, Role: "user", IsVerified: true}
	return user, mockSession(user.ID, domain.UserSessionLifetime), nil
}

func (m *MockAuthService) AdminLogin(ctx context.Context, email, password string) (*domain.User, *domain.Session, error) {
	if m.AdminLoginFunc != nil {
		return m.AdminLoginFunc(ctx, email, password)
	}
	user := &domain.User{ID: 1, Email: email, Role: "admin", IsVerified: true}
	return user, mockSession(user.ID, domain.AdminSessionLifetime), nil
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, userID uint, name, phone *string) (*domain.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, name, phone)
	}
	return &domain.User{ID: userID, Email: "user@example.com", Role: "user", IsVerified: true}, nil
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	return nil
}

func (m *MockAuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, email, otp, newPassword)
	}
	return nil
}
