package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"time"

	"context"

	"github.com/rs/zerolog"

	"github.com/aswin1661/looms-petals/domain"
	"github.com/aswin1661/looms-petals/internal/metrics"
)

// emailPattern is the basic local@domain.tld shape check applied before any
// OTP is issued.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// OTPServiceImpl implements domain.OTPService over the otp_verifications
// table.
type OTPServiceImpl struct {
	otpRepo  domain.OTPRepository
	userRepo domain.UserRepository
	mailer   domain.Mailer
	config   OTPConfig
	logger   zerolog.Logger
}

type OTPConfig struct {
	// TTL is the hard expiry stamped into each new row.
	TTL time.Duration
	// CompletionWindow bounds how long after creation a verified code can
	// still finalize a registration or reset.
	CompletionWindow time.Duration
	// CleanupAge is the default threshold for the cleanup sweep.
	CleanupAge time.Duration
}

// NewOTPService creates a new OTP service
func NewOTPService(otpRepo domain.OTPRepository, userRepo domain.UserRepository, mailer domain.Mailer, config OTPConfig, logger zerolog.Logger) domain.OTPService {
	return &OTPServiceImpl{
		otpRepo:  otpRepo,
		userRepo: userRepo,
		mailer:   mailer,
		config:   config,
		logger:   logger,
	}
}

// Issue implements domain.OTPService for the registration flow. An address
// that already owns an account is rejected before any code is written.
func (s *OTPServiceImpl) Issue(ctx context.Context, email string) error {
	if !emailPattern.MatchString(email) {
		return domain.ErrInvalidEmail
	}

	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return domain.ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("failed to check existing user: %w", err)
	}

	if err := s.issue(ctx, email, domain.MailPurposeVerify); err != nil {
		return err
	}
	metrics.OTPIssuedTotal.WithLabelValues("register").Inc()
	return nil
}

// IssueReset implements domain.OTPService for the forgot-password flow.
// Account existence is the caller's concern; this method only writes and
// mails the code.
func (s *OTPServiceImpl) IssueReset(ctx context.Context, email, name string) error {
	if !emailPattern.MatchString(email) {
		return domain.ErrInvalidEmail
	}
	if err := s.issue(ctx, email, domain.MailPurposeReset); err != nil {
		return err
	}
	metrics.OTPIssuedTotal.WithLabelValues("reset").Inc()
	return nil
}

// issue applies clean-slate semantics: every prior row for the email is
// deleted before the new one is inserted, so no two valid codes coexist.
func (s *OTPServiceImpl) issue(ctx context.Context, email, purpose string) error {
	if err := s.otpRepo.DeleteByEmail(ctx, email); err != nil {
		return fmt.Errorf("failed to clear previous otps: %w", err)
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}

	now := time.Now().UTC()
	otp := &domain.OtpVerification{
		Email:     email,
		Code:      code,
		IsUsed:    false,
		ExpiresAt: now.Add(s.config.TTL),
		CreatedAt: now,
	}
	if err := s.otpRepo.Create(ctx, otp); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	// Delivery is best effort: the row persists even when the provider is
	// down, and the mailer logs the code when no API key is configured.
	if err := s.mailer.SendOTP(ctx, email, code, purpose); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("otp mail delivery failed")
	}
	return nil
}

// Verify implements domain.OTPService. An expired row is deleted as a side
// effect of discovering it; a successful verification marks the row used
// but keeps it, because registration re-validates against the same record.
func (s *OTPServiceImpl) Verify(ctx context.Context, email, code string) error {
	otp, err := s.otpRepo.FindLatest(ctx, email, code)
	if err != nil {
		if errors.Is(err, domain.ErrOTPInvalid) {
			metrics.OTPVerifiedTotal.WithLabelValues("invalid").Inc()
		}
		return err
	}

	now := time.Now().UTC()
	if otp.Expired(now) {
		if err := s.otpRepo.DeleteByID(ctx, otp.ID); err != nil {
			s.logger.Error().Err(err).Uint("otp_id", otp.ID).Msg("failed to delete expired otp")
		}
		metrics.OTPVerifiedTotal.WithLabelValues("expired").Inc()
		return domain.ErrOTPExpired
	}

	if otp.IsUsed {
		metrics.OTPVerifiedTotal.WithLabelValues("used").Inc()
		return domain.ErrOTPAlreadyUsed
	}

	if err := s.otpRepo.MarkUsed(ctx, otp.ID); err != nil {
		return fmt.Errorf("failed to mark otp used: %w", err)
	}
	metrics.OTPVerifiedTotal.WithLabelValues("success").Inc()
	return nil
}

// ConsumeForRegistration implements domain.OTPService. Registration is the
// second phase of a two-phase consumption: Verify marked the row used, and
// this re-check demands the same row still be inside the completion window.
func (s *OTPServiceImpl) ConsumeForRegistration(ctx context.Context, email, code string) error {
	otp, err := s.otpRepo.FindLatestUsed(ctx, email, code)
	if err != nil {
		return err
	}
	if !otp.WithinCompletionWindow(time.Now().UTC()) {
		return domain.ErrOTPSessionExpired
	}
	return nil
}

// ConsumeForReset implements domain.OTPService. The reset flow checks age
// against the completion window directly and does not require a prior
// Verify call.
func (s *OTPServiceImpl) ConsumeForReset(ctx context.Context, email, code string) (*domain.OtpVerification, error) {
	otp, err := s.otpRepo.FindLatest(ctx, email, code)
	if err != nil {
		return nil, err
	}
	if !otp.WithinCompletionWindow(time.Now().UTC()) {
		if err := s.otpRepo.DeleteByID(ctx, otp.ID); err != nil {
			s.logger.Error().Err(err).Uint("otp_id", otp.ID).Msg("failed to delete stale otp")
		}
		return nil, domain.ErrOTPExpired
	}
	return otp, nil
}

// MarkUsed implements domain.OTPService
func (s *OTPServiceImpl) MarkUsed(ctx context.Context, id uint) error {
	return s.otpRepo.MarkUsed(ctx, id)
}

// PurgeEmail implements domain.OTPService
func (s *OTPServiceImpl) PurgeEmail(ctx context.Context, email string) error {
	return s.otpRepo.DeleteByEmail(ctx, email)
}

// Cleanup implements domain.OTPService. Safe to run concurrently with
// issuance and verification: deletes are filtered by age alone.
func (s *OTPServiceImpl) Cleanup(ctx context.Context, maxAge time.Duration) (int64, error) {
	if maxAge <= 0 {
		maxAge = s.config.CleanupAge
	}
	deleted, err := s.otpRepo.DeleteOlderThan(ctx, time.Now().UTC().Add(-maxAge))
	if err != nil {
		return 0, fmt.Errorf("failed to clean up otps: %w", err)
	}
	metrics.OTPCleanupDeletedTotal.Add(float64(deleted))
	return deleted, nil
}

// generateCode picks a uniformly random code in [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
