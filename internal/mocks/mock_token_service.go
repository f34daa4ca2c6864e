package mocks

import "fmt"

// MockTokenService implements domain.TokenService for testing. The default
// behavior mints a distinct token per call.
type MockTokenService struct {
	GenerateFunc func() (string, error)

	calls int
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) Generate() (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.calls++
	return fmt.Sprintf("mock_token_%d", m.calls), nil
}
