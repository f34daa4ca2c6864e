package mocks

import (
	"context"
	"time"

	"github.com/aswin1661/looms-petals/domain"
)

// MockOTPRepository implements domain.OTPRepository for testing
type MockOTPRepository struct {
	CreateFunc         func(ctx context.Context, otp *domain.OtpVerification) error
	FindLatestFunc     func(ctx context.Context, email, code string) (*domain.OtpVerification, error)
	FindLatestUsedFunc func(ctx context.Context, email, code string) (*domain.OtpVerification, error)
	MarkUsedFunc       func(ctx context.Context, id uint) error
	DeleteByIDFunc     func(ctx context.Context, id uint) error
	DeleteByEmailFunc  func(ctx context.Context, email string) error
	DeleteOlderFunc    func(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewMockOTPRepository creates a new MockOTPRepository with default behaviors
func NewMockOTPRepository() *MockOTPRepository {
	return &MockOTPRepository{}
}

func (m *MockOTPRepository) Create(ctx context.Context, otp *domain.OtpVerification) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, otp)
	}
	otp.ID = 1
	return nil
}

func (m *MockOTPRepository) FindLatest(ctx context.Context, email, code string) (*domain.OtpVerification, error) {
	if m.FindLatestFunc != nil {
		return m.FindLatestFunc(ctx, email, code)
	}
	return nil, domain.ErrOTPInvalid
}

func (m *MockOTPRepository) FindLatestUsed(ctx context.Context, email, code string) (*domain.OtpVerification, error) {
	if m.FindLatestUsedFunc != nil {
		return m.FindLatestUsedFunc(ctx, email, code)
	}
	return nil, domain.ErrOTPInvalid
}

func (m *MockOTPRepository) MarkUsed(ctx context.Context, id uint) error {
	if m.MarkUsedFunc != nil {
		return m.MarkUsedFunc(ctx, id)
	}
	return nil
}

func (m *MockOTPRepository) DeleteByID(ctx context.Context, id uint) error {
	if m.DeleteByIDFunc != nil {
		return m.DeleteByIDFunc(ctx, id)
	}
	return nil
}

func (m *MockOTPRepository) DeleteByEmail(ctx context.Context, email string) error {
	if m.DeleteByEmailFunc != nil {
		return m.DeleteByEmailFunc(ctx, email)
	}
	return nil
}

func (m *MockOTPRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteOlderFunc != nil {
		return m.DeleteOlderFunc(ctx, cutoff)
	}
	return 0, nil
}
