package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"driver-auth/internal/data/entity"
	"driver-auth/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrDuplicateKey marks a unique-constraint violation on insert. The
// service pre-checks email/phone uniqueness, but two concurrent
// registrations can both pass the check; the database constraint is
// the backstop and surfaces here.
var ErrDuplicateKey = errors.New("duplicate key")

const uniqueViolationCode = "23505"

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*entity.User, error)
	FindByVerificationToken(ctx context.Context, token string) (*entity.User, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *entity.User) error
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log,
	}
}

const userColumns = `id, name, email, phone, password_hash, role, status,
	       email_verified, email_verification_token,
	       email_verification_token_expires_at,
	       created_at, updated_at, deleted_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.Role,
		&user.Status,
		&user.EmailVerified,
		&user.EmailVerificationToken,
		&user.EmailVerificationTokenExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user record into the database
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, phone, password_hash, role, status,
		                  email_verified, email_verification_token,
		                  email_verification_token_expires_at,
		                  created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.Role,
		user.Status,
		user.EmailVerified,
		user.EmailVerificationToken,
		user.EmailVerificationTokenExpiresAt,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			ur.log.Warn("Duplicate user insert",
				zap.String("email", user.Email),
				zap.String("constraint", pgErr.ConstraintName),
			)
			return fmt.Errorf("create user %s: %w", user.Email, ErrDuplicateKey)
		}

		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`

	user, err := scanUser(ur.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1 AND deleted_at IS NULL
	`

	user, err := scanUser(ur.db.QueryRow(ctx, query, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

// FindByEmailOrPhone returns any user matching either identity
// attribute; used for the duplicate pre-check on registration.
func (ur *userRepository) FindByEmailOrPhone(ctx context.Context, email, phone string) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE (email = $1 OR phone = $2) AND deleted_at IS NULL
		LIMIT 1
	`

	user, err := scanUser(ur.db.QueryRow(ctx, query, email, phone))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by email or phone",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email or phone: %w", err)
	}

	return user, nil
}

func (ur *userRepository) FindByVerificationToken(ctx context.Context, token string) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email_verification_token = $1 AND deleted_at IS NULL
	`

	user, err := scanUser(ur.db.QueryRow(ctx, query, token))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by verification token", zap.Error(err))
		return nil, fmt.Errorf("find user by verification token: %w", err)
	}

	return user, nil
}

// FindAll retrieves paginated list of users
func (ur *userRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := ur.db.Query(ctx, query, limit, offset)
	if err != nil {
		ur.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all users limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		ur.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users rows: %w", err)
	}

	return users, nil
}

func (ur *userRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`

	var count int64
	err := ur.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		ur.log.Error("Database error counting users", zap.Error(err))
		return 0, fmt.Errorf("count all users: %w", err)
	}

	return count, nil
}

func (ur *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, phone = $4, password_hash = $5,
		    role = $6, status = $7, email_verified = $8,
		    email_verification_token = $9,
		    email_verification_token_expires_at = $10,
		    updated_at = $11
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.Role,
		user.Status,
		user.EmailVerified,
		user.EmailVerificationToken,
		user.EmailVerificationTokenExpiresAt,
		user.UpdatedAt,
	)

	if err != nil {
		ur.log.Error("Failed to update user",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return fmt.Errorf("update user %s: %w", user.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found or already deleted", user.ID.String())
	}

	return nil
}

// MarkEmailVerified performs the verification transition in a single
// statement: approve the account, flag the email verified and clear
// the token fields so the same token can never authenticate twice.
func (ur *userRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE users
		SET status = $2, email_verified = true,
		    email_verification_token = NULL,
		    email_verification_token_expires_at = NULL,
		    updated_at = $3
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := ur.db.Exec(ctx, query, id, entity.StatusApproved, time.Now())
	if err != nil {
		ur.log.Error("Failed to mark email verified",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return fmt.Errorf("mark email verified %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found or already deleted", id.String())
	}

	return nil
}
