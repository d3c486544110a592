package adaptor

import (
	"driver-auth/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth  *AuthHandler
	Admin *AdminHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:  NewAuthHandler(service.Auth, service.User, log),
		Admin: NewAdminHandler(service.User, log),
	}
}
