package domain

import "time"

// Roles assignable to a user account. There is exactly one privileged role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Lifecycle windows for OTP and session records.
const (
	// OTPLifetime is the hard expiry applied at verification time.
	OTPLifetime = 10 * time.Minute
	// OTPCompletionWindow is the grace period in which a verified OTP may
	// still complete a registration or password reset. It is measured from
	// the record's creation, independently of OTPLifetime, and is more
	// generous so a user can finish a multi-step form.
	OTPCompletionWindow = 30 * time.Minute
	// OTPCleanupAge is the default age beyond which the cleanup sweep
	// deletes OTP rows regardless of use state.
	OTPCleanupAge = time.Hour

	// UserSessionLifetime is how long a storefront session stays valid.
	UserSessionLifetime = 30 * 24 * time.Hour
	// AdminSessionLifetime is the shorter lifetime of dashboard sessions.
	AdminSessionLifetime = 24 * time.Hour
	// MaxSessionsPerUser caps how many storefront sessions a single user
	// may hold; older ones are pruned at login time.
	MaxSessionsPerUser = 5
)

// User is an account record. PasswordHash must never cross an external
// boundary; callers serialize PublicProfile instead.
type User struct {
	ID           uint
	Email        string
	Name         string
	Phone        string
	PasswordHash string
	Role         string
	IsVerified   bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the account carries the admin role flag.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// PublicProfile is the one canonical user shape returned by every
// authenticated endpoint.
type PublicProfile struct {
	ID         uint      `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// Profile strips the user down to its public shape.
func (u *User) Profile() *PublicProfile {
	return &PublicProfile{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Phone:      u.Phone,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}

// OtpVerification is an ephemeral proof-of-email record. Multiple historical
// rows may exist per email; issuance deletes prior rows first so at most one
// is active at a time.
type OtpVerification struct {
	ID        uint
	Email     string
	Code      string
	IsUsed    bool
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the hard expiry has passed at the given instant.
func (o *OtpVerification) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// WithinCompletionWindow reports whether the record is still fresh enough to
// finalize a registration or reset.
func (o *OtpVerification) WithinCompletionWindow(now time.Time) bool {
	return now.Sub(o.CreatedAt) <= OTPCompletionWindow
}

// Session is an opaque bearer credential persisted server-side. The same
// shape backs both the storefront and admin namespaces; the two live in
// disjoint tables and their tokens are never interchangeable.
type Session struct {
	ID        uint
	UserID    uint
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session lifetime has elapsed.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Product is a catalog item managed through the admin dashboard.
type Product struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	DiscountPrice *float64  `json:"discount_price"`
	Category      string    `json:"category"`
	Subcategory   string    `json:"subcategory"`
	Brand         string    `json:"brand"`
	ImageURL      string    `json:"image_url"`
	Images        []string  `json:"images"`
	Stock         int       `json:"stock"`
	Sizes         []string  `json:"sizes"`
	Colors        []string  `json:"colors"`
	Status        string    `json:"status"`
	Type          string    `json:"type"`
	IsFeatured    bool      `json:"is_featured"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Category string
	Featured bool
	// ActiveOnly hides soft-deleted items; public listings always set it.
	ActiveOnly bool
}
