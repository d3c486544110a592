package middleware

import (
	"net/http"
	"strings"

	"driver-auth/internal/data/entity"
	"driver-auth/internal/data/repository"
	"driver-auth/internal/usecase"
	"driver-auth/pkg/security"
	"driver-auth/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Authenticate resolves the acting identity from a bearer token. The
// account status is re-checked against the database on every request,
// so a previously issued token stops working the moment an account is
// no longer approved.
func Authenticate(signer security.TokenSigner, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			// Verify signature and expiry
			claims, err := signer.Verify(parts[1])
			if err != nil {
				logger.Warn("Invalid or expired token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				logger.Warn("Token subject is not a valid user ID", zap.String("sub", claims.UserID))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			// Re-check the account on every request
			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Failed to load user for token",
					zap.Error(err), zap.String("user_id", userID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if user == nil || user.Status != entity.StatusApproved {
				logger.Warn("Token for missing or unapproved account",
					zap.String("user_id", userID.String()))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, user.Email, string(user.Role))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles restricts a route to the given roles. Must run after
// Authenticate.
func RequireRoles(logger *zap.Logger, roles ...entity.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := utils.GetRoleFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if !usecase.Authorize(entity.UserRole(role), roles...) {
				logger.Warn("Role check failed",
					zap.String("role", role),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Insufficient role")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
