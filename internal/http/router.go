package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/aswin1661/looms-petals/internal/http/handlers"
	"github.com/aswin1661/looms-petals/internal/http/middleware"
)

// BuildRouter assembles the gin engine and all route groups.
func BuildRouter(
	ah *handlers.AuthHandlers,
	adh *handlers.AdminHandlers,
	ph *handlers.ProductHandlers,
	ch *handlers.CartHandlers,
	authmw *middleware.AuthMW,
	logger zerolog.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/auth")
	auth.POST("/send-otp", ah.SendOTP)
	auth.POST("/verify-otp", ah.VerifyOTP)
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/logout", ah.Logout)
	auth.POST("/forgot-password", ah.ForgotPassword)
	auth.POST("/reset-password", ah.ResetPassword)
	auth.POST("/cleanup-otps", ah.CleanupOTPs)

	me := r.Group("/auth").Use(authmw.RequireUser())
	me.GET("/me", ah.Me)
	me.PUT("/profile", ah.UpdateProfile)

	r.GET("/products", ph.List)
	r.GET("/products/:id", ph.Get)

	cart := r.Group("/cart").Use(authmw.RequireUser())
	cart.GET("", ch.Get)
	cart.DELETE("", ch.Clear)
	cart.POST("/items", ch.AddItem)
	cart.PUT("/items", ch.UpdateItem)
	cart.DELETE("/items", ch.RemoveItem)

	r.POST("/admin/auth", adh.Login)
	r.GET("/admin/auth", adh.Check)
	r.DELETE("/admin/auth", adh.Logout)

	adm := r.Group("/admin").Use(authmw.RequireAdmin())
	adm.POST("/products", ph.Create)
	adm.PUT("/products/:id", ph.Update)
	adm.DELETE("/products/:id", ph.Delete)

	return r
}
