package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/aswin1661/looms-petals/domain"
)

// tokenBytes is the entropy behind every session token. 32 random bytes,
// hex-encoded to a 64-character string.
const tokenBytes = 32

// TokenServiceImpl implements domain.TokenService with opaque random tokens.
// Tokens carry no claims; they are pure lookup keys into a session table.
type TokenServiceImpl struct{}

// NewTokenService creates a new token service
func NewTokenService() domain.TokenService {
	return &TokenServiceImpl{}
}

// Generate implements domain.TokenService
func (s *TokenServiceImpl) Generate() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
