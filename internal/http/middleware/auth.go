package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aswin1661/looms-petals/domain"
	"github.com/aswin1661/looms-petals/internal/http/cookies"
)

// Context keys set by the auth middleware.
const (
	CtxUser         = "user"
	CtxSessionToken = "session_token"
)

// AuthMW guards routes behind one of the two session namespaces.
type AuthMW struct {
	sessionSvc domain.SessionService
	ck         cookies.Writer
}

// NewAuthMW creates the session middleware.
func NewAuthMW(sessionSvc domain.SessionService, ck cookies.Writer) *AuthMW {
	return &AuthMW{sessionSvc: sessionSvc, ck: ck}
}

// RequireUser validates the storefront session cookie and stores the user
// and token in the request context. Stale cookies are cleared as they are
// discovered.
func (m *AuthMW) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookies.Token(c, cookies.UserCookie)

		user, err := m.sessionSvc.ValidateUserSession(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrUnauthenticated):
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
			case errors.Is(err, domain.ErrSessionInvalid):
				m.ck.ClearUser(c)
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid session"})
			case errors.Is(err, domain.ErrSessionExpired):
				m.ck.ClearUser(c)
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Session expired"})
			case errors.Is(err, domain.ErrUserNotFound):
				m.ck.ClearUser(c)
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			}
			c.Abort()
			return
		}

		c.Set(CtxUser, user)
		c.Set(CtxSessionToken, token)
		c.Next()
	}
}

// RequireAdmin validates the dashboard session cookie, re-checking the
// role flag on every request.
func (m *AuthMW) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookies.Token(c, cookies.AdminCookie)

		user, err := m.sessionSvc.ValidateAdminSession(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrUnauthenticated):
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
			case errors.Is(err, domain.ErrSessionInvalid), errors.Is(err, domain.ErrSessionExpired):
				m.ck.ClearAdmin(c)
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired session"})
			case errors.Is(err, domain.ErrUserNotFound):
				m.ck.ClearAdmin(c)
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not found"})
			case errors.Is(err, domain.ErrNotAdmin):
				m.ck.ClearAdmin(c)
				c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Unauthorized access"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			}
			c.Abort()
			return
		}

		c.Set(CtxUser, user)
		c.Set(CtxSessionToken, token)
		c.Next()
	}
}

// ContextUser returns the authenticated user placed by RequireUser or
// RequireAdmin.
func ContextUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}

// ContextSessionToken returns the validated session token.
func ContextSessionToken(c *gin.Context) string {
	return c.GetString(CtxSessionToken)
}
