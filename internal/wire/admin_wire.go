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

// wireAdmin configures admin routes, gated by authentication AND role
func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	repo *repository.Repository,
	signer security.TokenSigner,
	log *zap.Logger,
) {
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(middleware.Authenticate(signer, repo.User, log))
		r.Use(middleware.RequireRoles(log, entity.RoleAdmin))

		r.Get("/dashboard", adminHandler.Dashboard)
		r.Get("/users", adminHandler.Users)
	})
}
