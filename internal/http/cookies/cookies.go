// Package cookies centralizes the two session cookies so handlers and
// middleware agree on names and attributes.
package cookies

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Cookie names for the two session namespaces.
const (
	UserCookie  = "session_token"
	AdminCookie = "admin_token"
)

// Writer stamps session cookies with the storefront's attributes: both are
// HTTP-only and path "/", the storefront cookie is lax, the dashboard
// cookie strict.
type Writer struct {
	// Secure marks cookies secure; enabled in production.
	Secure   bool
	UserTTL  time.Duration
	AdminTTL time.Duration
}

// Token reads a session cookie, returning "" when absent.
func Token(c *gin.Context, name string) string {
	v, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return v
}

// SetUser places the storefront session cookie.
func (w Writer) SetUser(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(UserCookie, token, int(w.UserTTL.Seconds()), "/", "", w.Secure, true)
}

// ClearUser expires the storefront session cookie.
func (w Writer) ClearUser(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(UserCookie, "", -1, "/", "", w.Secure, true)
}

// SetAdmin places the dashboard session cookie.
func (w Writer) SetAdmin(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AdminCookie, token, int(w.AdminTTL.Seconds()), "/", "", w.Secure, true)
}

// ClearAdmin expires the dashboard session cookie.
func (w Writer) ClearAdmin(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AdminCookie, "", -1, "/", "", w.Secure, true)
}
