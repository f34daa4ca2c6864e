package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/aswin1661/looms-petals/domain"
	"github.com/aswin1661/looms-petals/internal/http/cookies"
)

// AdminHandlers handles the admin authentication endpoints. Unlike the
// customer endpoints these talk to the session service directly so that
// cookie clearing stays precise per failure mode.
type AdminHandlers struct {
	authSvc    domain.AuthService
	sessionSvc domain.SessionService
	ck         cookies.Writer
	logger     zerolog.Logger
}

func NewAdminHandlers(authSvc domain.AuthService, sessionSvc domain.SessionService, ck cookies.Writer, logger zerolog.Logger) *AdminHandlers {
	return &AdminHandlers{
		authSvc:    authSvc,
		sessionSvc: sessionSvc,
		ck:         ck,
		logger:     logger,
	}
}

// AdminLoginRequest represents an admin login request
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /admin/auth
func (h *AdminHandlers) Login(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and password are required"})
		return
	}

	user, session, err := h.authSvc.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
			return
		}
		h.logger.Error().Err(err).Msg("admin login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	h.ck.SetAdmin(c, session.Token)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"user":      user.Profile(),
			"expiresAt": session.ExpiresAt,
		},
		"message": "Login successful",
	})
}

// Check handles GET /admin/auth. It validates the admin cookie and
// reports the authenticated admin, clearing the cookie on any failure.
func (h *AdminHandlers) Check(c *gin.Context) {
	token := cookies.Token(c, cookies.AdminCookie)

	user, err := h.sessionSvc.ValidateAdminSession(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		case errors.Is(err, domain.ErrSessionInvalid), errors.Is(err, domain.ErrSessionExpired), errors.Is(err, domain.ErrUserNotFound):
			h.ck.ClearAdmin(c)
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired session"})
		case errors.Is(err, domain.ErrNotAdmin):
			h.ck.ClearAdmin(c)
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Unauthorized access"})
		default:
			h.logger.Error().Err(err).Msg("admin session check failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"user": user.Profile()},
	})
}

// Logout handles DELETE /admin/auth
func (h *AdminHandlers) Logout(c *gin.Context) {
	token := cookies.Token(c, cookies.AdminCookie)
	if err := h.sessionSvc.RevokeAdminSession(c.Request.Context(), token); err != nil {
		h.logger.Error().Err(err).Msg("admin logout failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	h.ck.ClearAdmin(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logout successful"})
}
