package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aswin1661/looms-petals/domain"
)

func seedOTP(t *testing.T, repo domain.OTPRepository, email, code string, createdAt time.Time, used bool) *domain.OtpVerification {
	t.Helper()
	otp := &domain.OtpVerification{
		Email:     email,
		Code:      code,
		IsUsed:    used,
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(10 * time.Minute),
	}
	if err := repo.Create(context.Background(), otp); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if used {
		if err := repo.MarkUsed(context.Background(), otp.ID); err != nil {
			t.Fatalf("mark used failed: %v", err)
		}
	}
	return otp
}

func TestOTPRepositoryImpl_FindLatest(t *testing.T) {
	repo := NewOTPRepository(newTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	older := seedOTP(t, repo, "user@example.com", "111111", now.Add(-5*time.Minute), false)
	newer := seedOTP(t, repo, "user@example.com", "111111", now, false)

	found, err := repo.FindLatest(ctx, "user@example.com", "111111")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.ID != newer.ID {
		t.Errorf("expected newest row %d, got %d", newer.ID, found.ID)
	}
	_ = older

	if _, err := repo.FindLatest(ctx, "user@example.com", "999999"); !errors.Is(err, domain.ErrOTPInvalid) {
		t.Errorf("expected ErrOTPInvalid for wrong code, got %v", err)
	}
	if _, err := repo.FindLatest(ctx, "other@example.com", "111111"); !errors.Is(err, domain.ErrOTPInvalid) {
		t.Errorf("expected ErrOTPInvalid for wrong email, got %v", err)
	}
}

func TestOTPRepositoryImpl_FindLatestUsed(t *testing.T) {
	repo := NewOTPRepository(newTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	seedOTP(t, repo, "user@example.com", "222222", now, false)

	if _, err := repo.FindLatestUsed(ctx, "user@example.com", "222222"); !errors.Is(err, domain.ErrOTPInvalid) {
		t.Fatalf("unused row must not match, got %v", err)
	}

	used := seedOTP(t, repo, "user@example.com", "333333", now, true)
	found, err := repo.FindLatestUsed(ctx, "user@example.com", "333333")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.ID != used.ID || !found.IsUsed {
		t.Errorf("unexpected row: %+v", found)
	}
}

func TestOTPRepositoryImpl_DeleteByEmail(t *testing.T) {
	repo := NewOTPRepository(newTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	seedOTP(t, repo, "user@example.com", "111111", now.Add(-time.Minute), false)
	seedOTP(t, repo, "user@example.com", "222222", now, true)
	kept := seedOTP(t, repo, "other@example.com", "333333", now, false)

	if err := repo.DeleteByEmail(ctx, "USER@example.com"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := repo.FindLatest(ctx, "user@example.com", "111111"); !errors.Is(err, domain.ErrOTPInvalid) {
		t.Error("rows for the email must be gone")
	}
	if _, err := repo.FindLatest(ctx, "other@example.com", "333333"); err != nil {
		t.Errorf("other addresses must be untouched: %v", err)
	}
	_ = kept
}

func TestOTPRepositoryImpl_DeleteOlderThan(t *testing.T) {
	repo := NewOTPRepository(newTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	seedOTP(t, repo, "a@example.com", "111111", now.Add(-2*time.Hour), true)
	seedOTP(t, repo, "b@example.com", "222222", now.Add(-90*time.Minute), false)
	recent := seedOTP(t, repo, "c@example.com", "333333", now.Add(-5*time.Minute), false)

	deleted, err := repo.DeleteOlderThan(ctx, now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 deletions, got %d", deleted)
	}

	if _, err := repo.FindLatest(ctx, "c@example.com", "333333"); err != nil {
		t.Errorf("recent row must survive: %v", err)
	}
	_ = recent
}
