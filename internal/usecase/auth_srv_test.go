package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"driver-auth/internal/data/entity"
	"driver-auth/internal/data/repository"
	"driver-auth/internal/dto/request"
	"driver-auth/internal/usecase"
	"driver-auth/pkg/mailer"
	"driver-auth/pkg/security"
	"driver-auth/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryUserRepo is an in-memory UserRepository used to exercise the
// lifecycle rules without a database.
type memoryUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (m *memoryUserRepo) Create(ctx context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email || u.Phone == user.Phone {
			return repository.ErrDuplicateKey
		}
	}

	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memoryUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memoryUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memoryUserRepo) FindByEmailOrPhone(ctx context.Context, email, phone string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email || u.Phone == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memoryUserRepo) FindByVerificationToken(ctx context.Context, token string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.EmailVerificationToken != nil && *u.EmailVerificationToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memoryUserRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var users []*entity.User
	for _, u := range m.users {
		cp := *u
		users = append(users, &cp)
	}
	return users, nil
}

func (m *memoryUserRepo) CountAll(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return int64(len(m.users)), nil
}

func (m *memoryUserRepo) Update(ctx context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memoryUserRepo) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id.String())
	}

	u.Status = entity.StatusApproved
	u.EmailVerified = true
	u.EmailVerificationToken = nil
	u.EmailVerificationTokenExpiresAt = nil
	u.UpdatedAt = time.Now()
	return nil
}

// issuedToken returns the pending verification token for an email.
func (m *memoryUserRepo) issuedToken(t *testing.T, email string) string {
	t.Helper()

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			require.NotNil(t, u.EmailVerificationToken)
			return *u.EmailVerificationToken
		}
	}

	t.Fatalf("no user for email %s", email)
	return ""
}

func (m *memoryUserRepo) expireToken(email string, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			u.EmailVerificationTokenExpiresAt = &at
		}
	}
}

func newTestAuthService(repo *memoryUserRepo) (usecase.AuthService, security.TokenSigner) {
	log := zap.NewNop()
	config := &utils.Config{
		Verification: utils.VerificationConfig{TokenTTLHours: 24},
	}
	signer := security.NewJWTSigner("test-signing-key", time.Hour)

	svc := usecase.NewAuthService(
		&repository.Repository{User: repo},
		config,
		security.NewBcryptHasher(4),
		signer,
		mailer.NewLogMailer(log),
		log,
	)

	return svc, signer
}

func registerDriver(t *testing.T, svc usecase.AuthService, email, phone string) string {
	t.Helper()

	resp, err := svc.RegisterDriver(context.Background(), &request.RegisterDriverRequest{
		Name:     "Ana",
		Email:    email,
		Phone:    phone,
		Password: "Abcdef12",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.UserID)

	return resp.UserID
}

func TestRegisterDriverDuplicate(t *testing.T) {
	repo := newMemoryUserRepo()
	svc, _ := newTestAuthService(repo)

	registerDriver(t, svc, "a@x.com", "+551199999999")

	tests := []struct {
		name  string
		email string
		phone string
	}{
		{
			name:  "Same email different phone",
			email: "a@x.com",
			phone: "+551188888888",
		},
		{
			name:  "Same phone different email",
			email: "b@x.com",
			phone: "+551199999999",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RegisterDriver(context.Background(), &request.RegisterDriverRequest{
				Name:     "Ana",
				Email:    tt.email,
				Phone:    tt.phone,
				Password: "Abcdef12",
			})
			assert.ErrorIs(t, err, usecase.ErrDuplicateAccount)
		})
	}
}

func TestRegisterDriverStoresHashedPassword(t *testing.T) {
	repo := newMemoryUserRepo()
	svc, _ := newTestAuthService(repo)

	userID := registerDriver(t, svc, "a@x.com", "+551199999999")

	user, err := repo.FindByID(context.Background(), uuid.MustParse(userID))
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, entity.RoleDriver, user.Role)
	assert.Equal(t, entity.StatusPendingVerification, user.Status)
	assert.False(t, user.EmailVerified)
	assert.NotEqual(t, "Abcdef12", user.PasswordHash)
	require.NotNil(t, user.EmailVerificationToken)
	assert.Len(t, *user.EmailVerificationToken, 64)
	require.NotNil(t, user.EmailVerificationTokenExpiresAt)
	assert.True(t, user.EmailVerificationTokenExpiresAt.After(time.Now()))
}

func TestLoginBeforeVerification(t *testing.T) {
	repo := newMemoryUserRepo()
	svc, _ := newTestAuthService(repo)

	registerDriver(t, svc, "a@x.com", "+551199999999")

	// Correct password, but the account is still pending
	_, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "a@x.com",
		Password: "Abcdef12",
	})
	assert.ErrorIs(t, err, usecase.ErrAccountNotApproved)
}

func TestVerifyEmail(t *testing.T) {
	t.Run("Unknown token", func(t *testing.T) {
		repo := newMemoryUserRepo()
		svc, _ := newTestAuthService(repo)

		err := svc.VerifyEmail(context.Background(), "never-issued")
		assert.ErrorIs(t, err, usecase.ErrInvalidToken)
	})

	t.Run("Expired token", func(t *testing.T) {
		repo := newMemoryUserRepo()
		svc, _ := newTestAuthService(repo)

		registerDriver(t, svc, "a@x.com", "+551199999999")
		repo.expireToken("a@x.com", time.Now().Add(-time.Minute))

		err := svc.VerifyEmail(context.Background(), repo.issuedToken(t, "a@x.com"))
		assert.ErrorIs(t, err, usecase.ErrExpiredToken)
	})

	t.Run("Token is single use", func(t *testing.T) {
		repo := newMemoryUserRepo()
		svc, _ := newTestAuthService(repo)

		registerDriver(t, svc, "a@x.com", "+551199999999")
		token := repo.issuedToken(t, "a@x.com")

		require.NoError(t, svc.VerifyEmail(context.Background(), token))

		// Replaying the consumed token must not verify anything
		err := svc.VerifyEmail(context.Background(), token)
		assert.ErrorIs(t, err, usecase.ErrInvalidToken)
	})
}

func TestLoginAfterVerification(t *testing.T) {
	repo := newMemoryUserRepo()
	svc, signer := newTestAuthService(repo)

	userID := registerDriver(t, svc, "a@x.com", "+551199999999")
	require.NoError(t, svc.VerifyEmail(context.Background(), repo.issuedToken(t, "a@x.com")))

	t.Run("Correct credentials", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), &request.LoginRequest{
			Email:    "a@x.com",
			Password: "Abcdef12",
		})
		require.NoError(t, err)

		claims, err := signer.Verify(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "a@x.com", claims.Email)
		assert.Equal(t, string(entity.RoleDriver), claims.Role)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &request.LoginRequest{
			Email:    "a@x.com",
			Password: "Wrongpass1",
		})
		assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
	})

	t.Run("Unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &request.LoginRequest{
			Email:    "nobody@x.com",
			Password: "Abcdef12",
		})
		assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
	})
}
