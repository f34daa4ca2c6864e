package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestUserProfileNeverCarriesPasswordHash(t *testing.T) {
	u := &User{
		ID:           7,
		Email:        "shopper@example.com",
		Name:         "Shopper",
		Phone:        "5550100",
		PasswordHash: "$2a$10$secret",
		Role:         RoleUser,
		IsVerified:   true,
		CreatedAt:    time.Now().UTC(),
	}

	raw, err := json.Marshal(u.Profile())
	if err != nil {
		t.Fatalf("marshal profile: %v", err)
	}
	if strings.Contains(string(raw), "secret") {
		t.Fatalf("serialized profile leaked password hash: %s", raw)
	}
	if !strings.Contains(string(raw), `"email":"shopper@example.com"`) {
		t.Errorf("profile missing email: %s", raw)
	}
}

func TestUserIsAdmin(t *testing.T) {
	if (&User{Role: RoleUser}).IsAdmin() {
		t.Error("user role should not be admin")
	}
	if !(&User{Role: RoleAdmin}).IsAdmin() {
		t.Error("admin role should be admin")
	}
}

func TestOtpWindows(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	otp := &OtpVerification{
		CreatedAt: now,
		ExpiresAt: now.Add(OTPLifetime),
	}

	if otp.Expired(now.Add(9 * time.Minute)) {
		t.Error("otp should be live inside its lifetime")
	}
	if !otp.Expired(now.Add(10*time.Minute + time.Second)) {
		t.Error("otp should be expired past its lifetime")
	}

	if !otp.WithinCompletionWindow(now.Add(30 * time.Minute)) {
		t.Error("completion window is inclusive of the 30 minute mark")
	}
	if otp.WithinCompletionWindow(now.Add(31 * time.Minute)) {
		t.Error("completion window must close at 31 minutes")
	}
}

func TestSessionExpiry(t *testing.T) {
	now := time.Now().UTC()
	s := &Session{ExpiresAt: now}
	if !s.Expired(now) {
		t.Error("session expiring exactly now is no longer valid")
	}
	if s.Expired(now.Add(-time.Second)) {
		t.Error("session should be valid before expiry")
	}
}
