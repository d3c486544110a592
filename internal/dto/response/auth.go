package response

import (
	"time"

	"driver-auth/internal/data/entity"
)

type RegisterDriverResponse struct {
	UserID string `json:"user_id"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type UserResponse struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	Phone         string            `json:"phone"`
	Role          entity.UserRole   `json:"role"`
	Status        entity.UserStatus `json:"status"`
	EmailVerified bool              `json:"email_verified"`
	CreatedAt     time.Time         `json:"created_at"`
}

// IdentityResponse is the claims view of the acting user, built from
// the request context on protected routes.
type IdentityResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Helper converter
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:            user.ID.String(),
		Name:          user.Name,
		Email:         user.Email,
		Phone:         user.Phone,
		Role:          user.Role,
		Status:        user.Status,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
	}
}
