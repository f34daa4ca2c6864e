package mocks

import (
	"context"
	"sync"
)

// SentMail records one SendOTP call.
type SentMail struct {
	To      string
	Code    string
	Purpose string
}

// MockMailer implements domain.Mailer for testing. Deliveries are recorded
// so tests can assert on what was sent.
type MockMailer struct {
	SendOTPFunc func(ctx context.Context, to, code, purpose string) error

	mu   sync.Mutex
	sent []SentMail
}

// NewMockMailer creates a new MockMailer with default behaviors
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) SendOTP(ctx context.Context, to, code, purpose string) error {
	m.mu.Lock()
	m.sent = append(m.sent, SentMail{To: to, Code: code, Purpose: purpose})
	m.mu.Unlock()

	if m.SendOTPFunc != nil {
		return m.SendOTPFunc(ctx, to, code, purpose)
	}
	return nil
}

// Sent returns a copy of the recorded deliveries.
func (m *MockMailer) Sent() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMail, len(m.sent))
	copy(out, m.sent)
	return out
}
