package usecase

import (
	"driver-auth/internal/data/repository"
	"driver-auth/pkg/mailer"
	"driver-auth/pkg/security"
	"driver-auth/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth AuthService
	User UserService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	hasher security.Hasher,
	signer security.TokenSigner,
	mail mailer.Mailer,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth: NewAuthService(repo, config, hasher, signer, mail, log),
		User: NewUserService(repo.User, log),
	}
}
