package repository

import (
	"driver-auth/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User UserRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User: NewUserRepository(db, log),
	}
}
