package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/aswin1661/looms-petals/domain"
	"github.com/aswin1661/looms-petals/internal/http/cookies"
	"github.com/aswin1661/looms-petals/internal/http/middleware"
)

// AuthHandlers handles the storefront authentication endpoints.
type AuthHandlers struct {
	authSvc    domain.AuthService
	otpSvc     domain.OTPService
	sessionSvc domain.SessionService
	ck         cookies.Writer
	logger     zerolog.Logger
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, otpSvc domain.OTPService, sessionSvc domain.SessionService, ck cookies.Writer, logger zerolog.Logger) *AuthHandlers {
	return &AuthHandlers{
		authSvc:    authSvc,
		otpSvc:     otpSvc,
		sessionSvc: sessionSvc,
		ck:         ck,
		logger:     logger,
	}
}

// SendOTPRequest represents an OTP issuance request
type SendOTPRequest struct {
	Email string `json:"email" binding:"required"`
}

// VerifyOTPRequest represents an OTP verification request
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required"`
	Otp   string `json:"otp" binding:"required"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Otp      string `json:"otp" binding:"required"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents a profile update; nil fields are left
// untouched.
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// ForgotPasswordRequest represents a password-reset initiation
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ResetPasswordRequest represents a password-reset completion
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	Otp         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// SendOTP handles POST /auth/send-otp
func (h *AuthHandlers) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is required"})
		return
	}

	if err := h.otpSvc.Issue(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid email format"})
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email already registered"})
		default:
			h.logger.Error().Err(err).Msg("send otp failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send OTP"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent to your email"})
}

// VerifyOTP handles POST /auth/verify-otp
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and OTP are required"})
		return
	}

	if err := h.otpSvc.Verify(c.Request.Context(), req.Email, req.Otp); err != nil {
		switch {
		case errors.Is(err, domain.ErrOTPInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid OTP"})
		case errors.Is(err, domain.ErrOTPExpired):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "OTP has expired. Please request a new one."})
		case errors.Is(err, domain.ErrOTPAlreadyUsed):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "OTP has already been used"})
		default:
			h.logger.Error().Err(err).Msg("verify otp failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP verified successfully"})
}

// Register handles POST /auth/register
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All fields including OTP are required"})
		return
	}

	user, session, err := h.authSvc.Register(c.Request.Context(), req.Email, req.Password, req.Name, req.Otp)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOTPInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid or unverified OTP. Please verify OTP first."})
		case errors.Is(err, domain.ErrOTPSessionExpired):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "OTP verification expired. Please start again."})
		case errors.Is(err, domain.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid email format"})
		case errors.Is(err, domain.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Password must be at least 8 characters"})
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email already registered"})
		default:
			h.logger.Error().Err(err).Msg("registration failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create account"})
		}
		return
	}

	h.ck.SetUser(c, session.Token)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user.Profile(),
		"message": "Account created successfully",
	})
}

// Login handles POST /auth/login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and password are required"})
		return
	}

	user, session, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
			return
		}
		h.logger.Error().Err(err).Msg("login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	h.ck.SetUser(c, session.Token)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user.Profile(),
		"message": "Login successful",
	})
}

// Logout handles POST /auth/logout. It works with or without a live
// session: the row is deleted when present and the cookie always cleared.
func (h *AuthHandlers) Logout(c *gin.Context) {
	token := cookies.Token(c, cookies.UserCookie)
	if err := h.sessionSvc.RevokeUserSession(c.Request.Context(), token); err != nil {
		h.logger.Error().Err(err).Msg("logout failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	h.ck.ClearUser(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

// Me handles GET /auth/me (behind RequireUser)
func (h *AuthHandlers) Me(c *gin.Context) {
	user, ok := middleware.ContextUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user.Profile()})
}

// UpdateProfile handles PUT /auth/profile (behind RequireUser)
func (h *AuthHandlers) UpdateProfile(c *gin.Context) {
	user, ok := middleware.ContextUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	updated, err := h.authSvc.UpdateProfile(c.Request.Context(), user.ID, req.Name, req.Phone)
	if err != nil {
		h.logger.Error().Err(err).Uint("user_id", user.ID).Msg("profile update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    updated.Profile(),
		"message": "Profile updated successfully",
	})
}

// ForgotPassword handles POST /auth/forgot-password. The response is
// identical whether or not the account exists.
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is required"})
		return
	}

	if err := h.authSvc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.logger.Error().Err(err).Msg("forgot password failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "If an account exists with this email, you will receive a password reset OTP.",
	})
}

// ResetPassword handles POST /auth/reset-password
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email, OTP, and new password are required"})
		return
	}

	if err := h.authSvc.ResetPassword(c.Request.Context(), req.Email, req.Otp, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, domain.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Password must be at least 8 characters long"})
		case errors.Is(err, domain.ErrOTPInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid or expired OTP"})
		case errors.Is(err, domain.ErrOTPExpired):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "OTP has expired. Please request a new one."})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		default:
			h.logger.Error().Err(err).Msg("password reset failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password reset successful. Please login with your new password.",
	})
}

// CleanupOTPs handles POST /auth/cleanup-otps, intended for a periodic
// external scheduler.
func (h *AuthHandlers) CleanupOTPs(c *gin.Context) {
	deleted, err := h.otpSvc.Cleanup(c.Request.Context(), 0)
	if err != nil {
		h.logger.Error().Err(err).Msg("otp cleanup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to clean up OTPs"})
		return
	}

	h.logger.Info().Int64("deleted", deleted).Msg("otp cleanup completed")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Old OTPs cleaned up successfully"})
}
