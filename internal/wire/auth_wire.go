package wire

import (
	"amana-travel/internal/adaptor"
	"amana-travel/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	userHandler *adaptor.UserHandler,
	sessions middleware.SessionResolver,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/auth/register", authHandler.Register)
	r.Post("/api/auth/login", authHandler.Login)
	r.Post("/api/auth/forgot-password", authHandler.ForgotPassword)
	r.Post("/api/auth/verify-reset-token", authHandler.VerifyResetToken)
	r.Post("/api/auth/reset-password", authHandler.ResetPassword)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(sessions, log))

		r.Post("/api/auth/logout", authHandler.Logout)
		r.Get("/api/auth/me", userHandler.GetProfile)
		r.Get("/api/user/profile", userHandler.GetProfile)
	})
}
