package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aswin1661/looms-petals/domain"
	"github.com/aswin1661/looms-petals/internal/metrics"
)

const minPasswordLength = 8

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	otpSvc      domain.OTPService
	sessionSvc  domain.SessionService
	logger      zerolog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	otpSvc domain.OTPService,
	sessionSvc domain.SessionService,
	logger zerolog.Logger,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		otpSvc:      otpSvc,
		sessionSvc:  sessionSvc,
		logger:      logger,
	}
}

// Register implements domain.AuthService. The OTP must already have passed
// Verify: registration re-validates the used row against the completion
// window before any account is created.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password, name, otp string) (*domain.User, *domain.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if err := s.otpSvc.ConsumeForRegistration(ctx, email, otp); err != nil {
		return nil, nil, err
	}

	if !emailPattern.MatchString(email) {
		return nil, nil, domain.ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return nil, nil, domain.ErrWeakPassword
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Role:         domain.RoleUser,
		// Email control was just proven through the OTP flow.
		IsVerified: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	session, err := s.sessionSvc.CreateUserSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	// Consumed: every OTP row for the address goes away.
	if err := s.otpSvc.PurgeEmail(ctx, email); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("post-registration otp purge failed")
	}

	metrics.RegistrationsTotal.Inc()
	return user, session, nil
}

// Login implements domain.AuthService. Unknown address and wrong password
// fail with the same error so responses cannot be used to enumerate
// accounts.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.User, *domain.Session, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("user", "invalid_credentials").Inc()
			return nil, nil, domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("user", "error").Inc()
		return nil, nil, err
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		metrics.LoginsTotal.WithLabelValues("user", "invalid_credentials").Inc()
		return nil, nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Error().Err(err).Uint("user_id", user.ID).Msg("failed to update last login")
	} else {
		user.LastLogin = &now
	}

	session, err := s.sessionSvc.CreateUserSession(ctx, user.ID)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("user", "error").Inc()
		return nil, nil, err
	}

	metrics.LoginsTotal.WithLabelValues("user", "success").Inc()
	return user, session, nil
}

// AdminLogin implements domain.AuthService. Only accounts already carrying
// the admin role may enter; a non-admin account fails exactly like a wrong
// password.
func (s *AuthServiceImpl) AdminLogin(ctx context.Context, email, password string) (*domain.User, *domain.Session, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("admin", "invalid_credentials").Inc()
			return nil, nil, domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("admin", "error").Inc()
		return nil, nil, err
	}

	if !user.IsAdmin() || !s.passwordSvc.Verify(user.PasswordHash, password) {
		metrics.LoginsTotal.WithLabelValues("admin", "invalid_credentials").Inc()
		return nil, nil, domain.ErrInvalidCredentials
	}

	session, err := s.sessionSvc.CreateAdminSession(ctx, user.ID)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("admin", "error").Inc()
		return nil, nil, err
	}

	metrics.LoginsTotal.WithLabelValues("admin", "success").Inc()
	return user, session, nil
}

// UpdateProfile implements domain.AuthService
func (s *AuthServiceImpl) UpdateProfile(ctx context.Context, userID uint, name, phone *string) (*domain.User, error) {
	return s.userRepo.UpdateProfile(ctx, userID, name, phone)
}

// ForgotPassword implements domain.AuthService. When the address is
// unknown the call still succeeds, so the response never reveals whether
// an account exists.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}
	return s.otpSvc.IssueReset(ctx, user.Email, user.Name)
}

// ResetPassword implements domain.AuthService. A successful reset revokes
// every storefront session the user holds.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return domain.ErrWeakPassword
	}

	record, err := s.otpSvc.ConsumeForReset(ctx, email, otp)
	if err != nil {
		return err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.otpSvc.MarkUsed(ctx, record.ID); err != nil {
		s.logger.Error().Err(err).Uint("otp_id", record.ID).Msg("failed to mark reset otp used")
	}

	if err := s.sessionSvc.RevokeAllUserSessions(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	s.logger.Info().Str("email", user.Email).Msg("password reset completed")
	return nil
}
