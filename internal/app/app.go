package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/aswin1661/looms-petals/internal/config"
	httpx "github.com/aswin1661/looms-petals/internal/http"
	"github.com/aswin1661/looms-petals/internal/http/cookies"
	"github.com/aswin1661/looms-petals/internal/http/handlers"
	"github.com/aswin1661/looms-petals/internal/http/middleware"
	"github.com/aswin1661/looms-petals/internal/infrastructure/auth"
	"github.com/aswin1661/looms-petals/internal/infrastructure/database"
	"github.com/aswin1661/looms-petals/internal/infrastructure/notifications"
	"github.com/aswin1661/looms-petals/internal/infrastructure/repositories"
	"github.com/aswin1661/looms-petals/internal/services"
)

// Run wires the whole service together and blocks serving HTTP.
func Run(cfg *config.Config, logger zerolog.Logger) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	rdb, err := database.NewRedis(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("failed to reach redis: %w", err)
	}

	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewTokenService()
	mailer := notifications.NewResendMailer(cfg.ResendAPIKey, cfg.MailFrom, logger)

	userRepo := repositories.NewUserRepository(gdb)
	otpRepo := repositories.NewOTPRepository(gdb)
	userSessions := repositories.NewUserSessionRepository(gdb)
	adminSessions := repositories.NewAdminSessionRepository(gdb)
	productRepo := repositories.NewProductRepository(gdb)
	cartStore := repositories.NewRedisCartStore(rdb.Client, cfg.UserSessionTTL)

	otpSvc := services.NewOTPService(otpRepo, userRepo, mailer, services.OTPConfig{
		TTL:              cfg.OTPTTL,
		CompletionWindow: cfg.OTPCompletionWindow,
		CleanupAge:       cfg.OTPCleanupAge,
	}, logger)
	sessionSvc := services.NewSessionService(userRepo, userSessions, adminSessions, tokenSvc, services.SessionConfig{
		UserTTL:    cfg.UserSessionTTL,
		AdminTTL:   cfg.AdminSessionTTL,
		MaxPerUser: cfg.MaxSessions,
	}, logger)
	authSvc := services.NewAuthService(userRepo, passwordSvc, otpSvc, sessionSvc, logger)
	productSvc := services.NewProductService(productRepo)

	ck := cookies.Writer{
		Secure:   cfg.Production(),
		UserTTL:  cfg.UserSessionTTL,
		AdminTTL: cfg.AdminSessionTTL,
	}

	authH := handlers.NewAuthHandlers(authSvc, otpSvc, sessionSvc, ck, logger)
	adminH := handlers.NewAdminHandlers(authSvc, sessionSvc, ck, logger)
	productH := handlers.NewProductHandlers(productSvc, logger)
	cartH := handlers.NewCartHandlers(cartStore, productSvc, logger)

	authMW := middleware.NewAuthMW(sessionSvc, ck)

	r := httpx.BuildRouter(authH, adminH, productH, cartH, authMW, logger)

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Msg("listening")
	return http.ListenAndServe(addr, r)
}
