package mocks

import (
	"context"
	"time"

	"github.com/aswin1661/looms-petals/domain"
)

// MockOTPService implements domain.OTPService for testing
type MockOTPService struct {
	IssueFunc                  func(ctx context.Context, email string) error
	IssueResetFunc             func(ctx context.Context, email, name string) error
	VerifyFunc                 func(ctx context.Context, email, code string) error
	ConsumeForRegistrationFunc func(ctx context.Context, email, code string) error
	ConsumeForResetFunc        func(ctx context.Context, email, code string) (*domain.OtpVerification, error)
	MarkUsedFunc               func(ctx context.Context, id uint) error
	PurgeEmailFunc             func(ctx context.Context, email string) error
	CleanupFunc                func(ctx context.Context, maxAge time.Duration) (int64, error)
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

func (m *MockOTPService) Issue(ctx context.Context, email string) error {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, email)
	}
	return nil
}

func (m *MockOTPService) IssueReset(ctx context.Context, email, name string) error {
	if m.IssueResetFunc != nil {
		return m.IssueResetFunc(ctx, email, name)
	}
	return nil
}

func (m *MockOTPService) Verify(ctx context.Context, email, code string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, email, code)
	}
	return nil
}

func (m *MockOTPService) ConsumeForRegistration(ctx context.Context, email, code string) error {
	if m.ConsumeForRegistrationFunc != nil {
		return m.ConsumeForRegistrationFunc(ctx, email, code)
	}
	return nil
}

func (m *MockOTPService) ConsumeForReset(ctx context.Context, email, code string) (*domain.OtpVerification, error) {
	if m.ConsumeForResetFunc != nil {
		return m.ConsumeForResetFunc(ctx, email, code)
	}
	return &domain.OtpVerification{ID: 1, Email: email, Code: code, CreatedAt: time.Now()}, nil
}

func (m *MockOTPService) MarkUsed(ctx context.Context, id uint) error {
	if m.MarkUsedFunc != nil {
		return m.MarkUsedFunc(ctx, id)
	}
	return nil
}

func (m *MockOTPService) PurgeEmail(ctx context.Context, email string) error {
	if m.PurgeEmailFunc != nil {
		return m.PurgeEmailFunc(ctx, email)
	}
	return nil
}

func (m *MockOTPService) Cleanup(ctx context.Context, maxAge time.Duration) (int64, error) {
	if m.CleanupFunc != nil {
		return m.CleanupFunc(ctx, maxAge)
	}
	return 0, nil
}
