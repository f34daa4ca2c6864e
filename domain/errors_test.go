package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedMsg string
	}{
		{"ErrInvalidEmail", ErrInvalidEmail, "invalid email format"},
		{"ErrWeakPassword", ErrWeakPassword, "password must be at least 8 characters"},
		{"ErrEmailTaken", ErrEmailTaken, "email already registered"},
		{"ErrUserNotFound", ErrUserNotFound, "user not found"},
		{"ErrInvalidCredentials", ErrInvalidCredentials, "invalid email or password"},
		{"ErrUnauthenticated", ErrUnauthenticated, "not authenticated"},
		{"ErrOTPInvalid", ErrOTPInvalid, "invalid otp"},
		{"ErrOTPExpired", ErrOTPExpired, "otp has expired"},
		{"ErrOTPAlreadyUsed", ErrOTPAlreadyUsed, "otp has already been used"},
		{"ErrOTPSessionExpired", ErrOTPSessionExpired, "otp verification expired"},
		{"ErrSessionInvalid", ErrSessionInvalid, "invalid session"},
		{"ErrSessionExpired", ErrSessionExpired, "session expired"},
		{"ErrNotAdmin", ErrNotAdmin, "unauthorized access"},
		{"ErrProductNotFound", ErrProductNotFound, "product not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("error should not be nil")
			}
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("expected error message %q, got %q", tt.expectedMsg, tt.err.Error())
			}
		})
	}
}

func TestSentinelErrorsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("looking up otp: %w", ErrOTPInvalid)
	if !errors.Is(wrapped, ErrOTPInvalid) {
		t.Error("wrapped error should match its sentinel")
	}
	if errors.Is(wrapped, ErrOTPExpired) {
		t.Error("wrapped error should not match a different sentinel")
	}
}

func TestCredentialErrorsIndistinguishable(t *testing.T) {
	// Unknown-user and wrong-password failures must present identically so
	// error messages cannot be used for account enumeration.
	if ErrInvalidCredentials.Error() == ErrUserNotFound.Error() {
		t.Error("credential and not-found errors should be distinct sentinels internally")
	}
}
