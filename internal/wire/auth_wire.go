package wire

import (
	"driver-auth/internal/adaptor"
	"driver-auth/internal/data/entity"
	"driver-auth/internal/data/repository"
	"driver-auth/pkg/middleware"
	"driver-auth/pkg/security"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	signer security.TokenSigner,
	log *zap.Logger,
) {
	r.Route("/api/v1/auth", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Post("/register-driver", authHandler.RegisterDriver)
		r.Get("/verify-email", authHandler.VerifyEmail)
		r.Post("/login", authHandler.Login)

		// ==================== PROTECTED ROUTES ====================
		r.With(middleware.Authenticate(signer, repo.User, log)).
			Get("/profile", authHandler.Profile)

		r.With(
			middleware.Authenticate(signer, repo.User, log),
			middleware.RequireRoles(log, entity.RoleAdmin),
		).Get("/admin-only", authHandler.AdminOnly)
	})
}
