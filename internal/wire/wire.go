// internal/wire/wire.go
package wire

import (
	"net/http"
	"time"

	"driver-auth/internal/adaptor"
	"driver-auth/internal/data/repository"
	"driver-auth/internal/usecase"
	"driver-auth/pkg/mailer"
	"driver-auth/pkg/middleware"
	"driver-auth/pkg/security"
	"driver-auth/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	// External capabilities behind narrow interfaces
	hasher := security.NewBcryptHasher(security.BcryptCost)
	signer := security.NewJWTSigner(config.JWT.Secret, time.Duration(config.JWT.ExpiryHours)*time.Hour)
	mail := mailer.NewLogMailer(logger)

	// Initialize services and handlers
	service := usecase.NewService(repo, config, hasher, signer, mail, logger)
	handler := adaptor.NewHandler(service, logger)

	// Setup router
	router := setupRouter(handler, repo, signer, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	signer security.TokenSigner,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, repo, signer, logger)
	wireAdmin(r, handler.Admin, repo, signer, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
