package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations. Email lookups are
// case-insensitive; implementations fold the key to lowercase.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	UpdateProfile(ctx context.Context, id uint, name, phone *string) (*User, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	TouchLastLogin(ctx context.Context, id uint, at time.Time) error
}

// OTPRepository defines access to the otp_verifications table.
type OTPRepository interface {
	Create(ctx context.Context, otp *OtpVerification) error
	// FindLatest returns the most recently created row matching the
	// email/code pair, or ErrOTPInvalid when none exists.
	FindLatest(ctx context.Context, email, code string) (*OtpVerification, error)
	// FindLatestUsed is FindLatest restricted to rows already marked used.
	FindLatestUsed(ctx context.Context, email, code string) (*OtpVerification, error)
	MarkUsed(ctx context.Context, id uint) error
	DeleteByID(ctx context.Context, id uint) error
	DeleteByEmail(ctx context.Context, email string) error
	// DeleteOlderThan removes every row created before the cutoff,
	// irrespective of use state, and reports how many went away.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// SessionRepository defines access to one session namespace. The storefront
// and admin namespaces are separate tables behind separate instances.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByToken(ctx context.Context, token string) (*Session, error)
	// DeleteByToken is idempotent: deleting an absent token is not an error.
	DeleteByToken(ctx context.Context, token string) error
	DeleteForUser(ctx context.Context, userID uint) error
	// PruneToNewest keeps the `keep` most recently created sessions for the
	// user and deletes the rest.
	PruneToNewest(ctx context.Context, userID uint, keep int) (int64, error)
	DeleteExpiredForUser(ctx context.Context, userID uint, now time.Time) error
}

// ProductRepository defines catalog data access.
type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*Product, error)
	// Deactivate soft-deletes a product by clearing its active flag.
	Deactivate(ctx context.Context, id uint) error
}

// PasswordService defines password hashing operations.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService mints opaque session tokens.
type TokenService interface {
	Generate() (string, error)
}

// Mailer delivers one-time codes. Purposes distinguish the signup and
// password-reset templates.
type Mailer interface {
	SendOTP(ctx context.Context, to, code, purpose string) error
}

// Mail purposes.
const (
	MailPurposeVerify = "verify"
	MailPurposeReset  = "reset"
)

// OTPService defines the one-time-password lifecycle.
type OTPService interface {
	// Issue sends a registration OTP; fails with ErrEmailTaken when an
	// account already owns the address.
	Issue(ctx context.Context, email string) error
	// IssueReset sends a password-reset OTP without the taken check. The
	// caller is responsible for not revealing whether the account exists.
	IssueReset(ctx context.Context, email, name string) error
	Verify(ctx context.Context, email, code string) error
	// ConsumeForRegistration re-validates a previously verified code within
	// the completion window.
	ConsumeForRegistration(ctx context.Context, email, code string) error
	// ConsumeForReset validates a code for password reset by age alone.
	ConsumeForReset(ctx context.Context, email, code string) (*OtpVerification, error)
	MarkUsed(ctx context.Context, id uint) error
	PurgeEmail(ctx context.Context, email string) error
	Cleanup(ctx context.Context, maxAge time.Duration) (int64, error)
}

// SessionService manages both session namespaces.
type SessionService interface {
	CreateUserSession(ctx context.Context, userID uint) (*Session, error)
	ValidateUserSession(ctx context.Context, token string) (*User, error)
	RevokeUserSession(ctx context.Context, token string) error
	RevokeAllUserSessions(ctx context.Context, userID uint) error

	CreateAdminSession(ctx context.Context, userID uint) (*Session, error)
	ValidateAdminSession(ctx context.Context, token string) (*User, error)
	RevokeAdminSession(ctx context.Context, token string) error
}

// AuthService defines credential verification and the flows built on it.
type AuthService interface {
	Register(ctx context.Context, email, password, name, otp string) (*User, *Session, error)
	Login(ctx context.Context, email, password string) (*User, *Session, error)
	AdminLogin(ctx context.Context, email, password string) (*User, *Session, error)
	UpdateProfile(ctx context.Context, userID uint, name, phone *string) (*User, error)
	// ForgotPassword never reveals whether the account exists.
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
}
