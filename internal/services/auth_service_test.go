package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aswin1661/looms-petals/domain"
	"github.com/aswin1661/looms-petals/internal/mocks"
)

func newTestAuthService(userRepo *mocks.MockUserRepository, passwordSvc *mocks.MockPasswordService, otpSvc *mocks.MockOTPService, sessionSvc *mocks.MockSessionService) domain.AuthService {
	return NewAuthService(userRepo, passwordSvc, otpSvc, sessionSvc, zerolog.Nop())
}

func TestAuthServiceImpl_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		userName      string
		otp           string
		setupMocks    func(*mocks.MockUserRepository, *mocks.MockOTPService)
		expectedError error
		validateUser  func(t *testing.T, user *domain.User)
	}{
		{
			name:     "successful registration",
			email:    "New.User@Example.com",
			password: "securepassword",
			userName: "  Priya  ",
			otp:      "123456",
			setupMocks: func(userRepo *mocks.MockUserRepository, otpSvc *mocks.MockOTPService) {
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return nil, domain.ErrUserNotFound
				}
			},
			validateUser: func(t *testing.T, user *domain.User) {
				if user.Email != "new.user@example.com" {
					t.Errorf("email not folded to lowercase: %s", user.Email)
				}
				if user.Name != "Priya" {
					t.Errorf("name not trimmed: %q", user.Name)
				}
				if user.Role != domain.RoleUser {
					t.Errorf("expected role user, got %s", user.Role)
				}
				if !user.IsVerified {
					t.Error("registered user must be verified")
				}
				if user.PasswordHash != "hashed_securepassword" {
					t.Errorf("unexpected hash %s", user.PasswordHash)
				}
			},
		},
		{
			name:     "unverified otp rejected",
			email:    "user@example.com",
			password: "securepassword",
			userName: "Priya",
			otp:      "123456",
			setupMocks: func(userRepo *mocks.MockUserRepository, otpSvc *mocks.MockOTPService) {
				otpSvc.ConsumeForRegistrationFunc = func(ctx context.Context, email, code string) error {
					return domain.ErrOTPInvalid
				}
			},
			expectedError: domain.ErrOTPInvalid,
		},
		{
			name:     "stale otp session rejected",
			email:    "user@example.com",
			password: "securepassword",
			userName: "Priya",
			otp:      "123456",
			setupMocks: func(userRepo *mocks.MockUserRepository, otpSvc *mocks.MockOTPService) {
				otpSvc.ConsumeForRegistrationFunc = func(ctx context.Context, email, code string) error {
					return domain.ErrOTPSessionExpired
				}
			},
			expectedError: domain.ErrOTPSessionExpired,
		},
		{
			name:          "short password rejected",
			email:         "user@example.com",
			password:      "short",
			userName:      "Priya",
			otp:           "123456",
			setupMocks:    func(*mocks.MockUserRepository, *mocks.MockOTPService) {},
			expectedError: domain.ErrWeakPassword,
		},
		{
			name:     "duplicate email rejected",
			email:    "taken@example.com",
			password: "securepassword",
			userName: "Priya",
			otp:      "123456",
			setupMocks: func(userRepo *mocks.MockUserRepository, otpSvc *mocks.MockOTPService) {
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return &domain.User{ID: 2, Email: email}, nil
				}
			},
			expectedError: domain.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			otpSvc := mocks.NewMockOTPService()
			sessionSvc := mocks.NewMockSessionService()
			tt.setupMocks(userRepo, otpSvc)

			svc := newTestAuthService(userRepo, mocks.NewMockPasswordService(), otpSvc, sessionSvc)
			user, session, err := svc.Register(context.Background(), tt.email, tt.password, tt.userName, tt.otp)

			if !errors.Is(err, tt.expectedError) {
				t.Fatalf("expected error %v, got %v", tt.expectedError, err)
			}
			if tt.expectedError != nil {
				if user != nil || session != nil {
					t.Error("expected nil user and session on failure")
				}
				return
			}
			if session == nil {
				t.Fatal("expected a session on success")
			}
			tt.validateUser(t, user)
		})
	}
}

func TestAuthServiceImpl_Register_PurgesOTPs(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return nil, domain.ErrUserNotFound
	}

	otpSvc := mocks.NewMockOTPService()
	var purged string
	otpSvc.PurgeEmailFunc = func(ctx context.Context, email string) error {
		purged = email
		return nil
	}

	svc := newTestAuthService(userRepo, mocks.NewMockPasswordService(), otpSvc, mocks.NewMockSessionService())
	if _, _, err := svc.Register(context.Background(), "user@example.com", "securepassword", "Priya", "123456"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if purged != "user@example.com" {
		t.Errorf("otps not purged after registration, got %q", purged)
	}
}

func TestAuthServiceImpl_Login(t *testing.T) {
	tests := []struct {
		name          string
		password      string
		setupMocks    func(*mocks.MockUserRepository, *mocks.MockPasswordService)
		expectedError error
	}{
		{
			name:     "successful login",
			password: "correctpassword",
			setupMocks: func(userRepo *mocks.MockUserRepository, passwordSvc *mocks.MockPasswordService) {
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return &domain.User{ID: 1, Email: email, PasswordHash: "hashed_correctpassword", Role: "user"}, nil
				}
			},
		},
		{
			name:     "unknown email",
			password: "whatever",
			setupMocks: func(userRepo *mocks.MockUserRepository, passwordSvc *mocks.MockPasswordService) {
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return nil, domain.ErrUserNotFound
				}
			},
			expectedError: domain.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			password: "wrongpassword",
			setupMocks: func(userRepo *mocks.MockUserRepository, passwordSvc *mocks.MockPasswordService) {
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return &domain.User{ID: 1, Email: email, PasswordHash: "hashed_correctpassword", Role: "user"}, nil
				}
			},
			expectedError: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			passwordSvc := mocks.NewMockPasswordService()
			tt.setupMocks(userRepo, passwordSvc)

			svc := newTestAuthService(userRepo, passwordSvc, mocks.NewMockOTPService(), mocks.NewMockSessionService())
			user, session, err := svc.Login(context.Background(), "user@example.com", tt.password)

			if !errors.Is(err, tt.expectedError) {
				t.Fatalf("expected error %v, got %v", tt.expectedError, err)
			}
			if tt.expectedError == nil && (user == nil || session == nil) {
				t.Fatal("expected user and session on success")
			}
		})
	}
}

// Unknown address and wrong password must be indistinguishable to a caller.
func TestAuthServiceImpl_Login_UniformCredentialError(t *testing.T) {
	unknownRepo := mocks.NewMockUserRepository()
	unknownRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return nil, domain.ErrUserNotFound
	}
	knownRepo := mocks.NewMockUserRepository()
	knownRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return &domain.User{ID: 1, Email: email, PasswordHash: "hashed_rightpassword"}, nil
	}

	svcUnknown := newTestAuthService(unknownRepo, mocks.NewMockPasswordService(), mocks.NewMockOTPService(), mocks.NewMockSessionService())
	svcKnown := newTestAuthService(knownRepo, mocks.NewMockPasswordService(), mocks.NewMockOTPService(), mocks.NewMockSessionService())

	_, _, errUnknown := svcUnknown.Login(context.Background(), "nobody@example.com", "guess")
	_, _, errKnown := svcKnown.Login(context.Background(), "user@example.com", "guess")

	if errUnknown == nil || errKnown == nil {
		t.Fatal("both logins must fail")
	}
	if errUnknown.Error() != errKnown.Error() {
		t.Errorf("error messages differ: %q vs %q", errUnknown, errKnown)
	}
}

func TestAuthServiceImpl_Login_TouchFailureIsBestEffort(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return &domain.User{ID: 1, Email: email, PasswordHash: "hashed_pw12345678"}, nil
	}
	userRepo.TouchLastLoginFunc = func(ctx context.Context, id uint, at time.Time) error {
		return errors.New("db timeout")
	}

	svc := newTestAuthService(userRepo, mocks.NewMockPasswordService(), mocks.NewMockOTPService(), mocks.NewMockSessionService())
	user, _, err := svc.Login(context.Background(), "user@example.com", "pw12345678")
	if err != nil {
		t.Fatalf("touch failure must not fail login: %v", err)
	}
	if user.LastLogin != nil {
		t.Error("last login must stay unset when the touch fails")
	}
}

func TestAuthServiceImpl_AdminLogin(t *testing.T) {
	tests := []struct {
		name          string
		role          string
		password      string
		expectedError error
	}{
		{name: "admin account accepted", role: "admin", password: "adminpassword"},
		{name: "regular account rejected", role: "user", password: "adminpassword", expectedError: domain.ErrInvalidCredentials},
		{name: "wrong password rejected", role: "admin", password: "wrongpassword", expectedError: domain.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
				return &domain.User{ID: 1, Email: email, PasswordHash: "hashed_adminpassword", Role: tt.role}, nil
			}

			var adminSessionMade bool
			sessionSvc := mocks.NewMockSessionService()
			sessionSvc.CreateAdminSessionFunc = func(ctx context.Context, userID uint) (*domain.Session, error) {
				adminSessionMade = true
				now := time.Now().UTC()
				return &domain.Session{ID: 1, UserID: userID, Token: "t", CreatedAt: now, ExpiresAt: now.Add(domain.AdminSessionLifetime)}, nil
			}

			svc := newTestAuthService(userRepo, mocks.NewMockPasswordService(), mocks.NewMockOTPService(), sessionSvc)
			_, _, err := svc.AdminLogin(context.Background(), "admin@example.com", tt.password)

			if !errors.Is(err, tt.expectedError) {
				t.Fatalf("expected error %v, got %v", tt.expectedError, err)
			}
			if (tt.expectedError == nil) != adminSessionMade {
				t.Errorf("admin session created = %v", adminSessionMade)
			}
		})
	}
}

func TestAuthServiceImpl_ForgotPassword(t *testing.T) {
	t.Run("unknown email succeeds silently", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		}

		otpSvc := mocks.NewMockOTPService()
		otpSvc.IssueResetFunc = func(ctx context.Context, email, name string) error {
			t.Error("no otp may be issued for an unknown address")
			return nil
		}

		svc := newTestAuthService(userRepo, mocks.NewMockPasswordService(), otpSvc, mocks.NewMockSessionService())
		if err := svc.ForgotPassword(context.Background(), "nobody@example.com"); err != nil {
			t.Fatalf("unknown email must not error: %v", err)
		}
	})

	t.Run("known email issues reset otp", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: 1, Email: email, Name: "Priya"}, nil
		}

		otpSvc := mocks.NewMockOTPService()
		var issued bool
		otpSvc.IssueResetFunc = func(ctx context.Context, email, name string) error {
			issued = true
			return nil
		}

		svc := newTestAuthService(userRepo, mocks.NewMockPasswordService(), otpSvc, mocks.NewMockSessionService())
		if err := svc.ForgotPassword(context.Background(), "user@example.com"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !issued {
			t.Error("reset otp was not issued")
		}
	})
}

func TestAuthServiceImpl_ResetPassword(t *testing.T) {
	t.Run("successful reset revokes all sessions", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: 5, Email: email, PasswordHash: "hashed_oldpassword"}, nil
		}

		var newHash string
		userRepo.UpdatePasswordFunc = func(ctx context.Context, id uint, passwordHash string) error {
			newHash = passwordHash
			return nil
		}

		var revokedUser uint
		sessionSvc := mocks.NewMockSessionService()
		sessionSvc.RevokeAllUserSessionsFunc = func(ctx context.Context, userID uint) error {
			revokedUser = userID
			return nil
		}

		svc := newTestAuthService(userRepo, mocks.NewMockPasswordService(), mocks.NewMockOTPService(), sessionSvc)
		if err := svc.ResetPassword(context.Background(), "user@example.com", "123456", "brandnewpassword"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if newHash != "hashed_brandnewpassword" {
			t.Errorf("password not rehashed: %s", newHash)
		}
		if revokedUser != 5 {
			t.Errorf("sessions not revoked for user 5, got %d", revokedUser)
		}
	})

	t.Run("weak password rejected before otp lookup", func(t *testing.T) {
		otpSvc := mocks.NewMockOTPService()
		otpSvc.ConsumeForResetFunc = func(ctx context.Context, email, code string) (*domain.OtpVerification, error) {
			t.Error("otp must not be consumed for a weak password")
			return nil, domain.ErrOTPInvalid
		}

		svc := newTestAuthService(mocks.NewMockUserRepository(), mocks.NewMockPasswordService(), otpSvc, mocks.NewMockSessionService())
		err := svc.ResetPassword(context.Background(), "user@example.com", "123456", "short")
		if !errors.Is(err, domain.ErrWeakPassword) {
			t.Fatalf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("invalid otp rejected", func(t *testing.T) {
		otpSvc := mocks.NewMockOTPService()
		otpSvc.ConsumeForResetFunc = func(ctx context.Context, email, code string) (*domain.OtpVerification, error) {
			return nil, domain.ErrOTPInvalid
		}

		svc := newTestAuthService(mocks.NewMockUserRepository(), mocks.NewMockPasswordService(), otpSvc, mocks.NewMockSessionService())
		err := svc.ResetPassword(context.Background(), "user@example.com", "000000", "brandnewpassword")
		if !errors.Is(err, domain.ErrOTPInvalid) {
			t.Fatalf("expected ErrOTPInvalid, got %v", err)
		}
	})
}
