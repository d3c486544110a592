package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"driver-auth/internal/data/entity"
	"driver-auth/internal/data/repository"
	"driver-auth/internal/dto/request"
	"driver-auth/internal/dto/response"
	"driver-auth/pkg/mailer"
	"driver-auth/pkg/security"
	"driver-auth/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	RegisterDriver(ctx context.Context, req *request.RegisterDriverRequest) (*response.RegisterDriverResponse, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	hasher security.Hasher
	signer security.TokenSigner
	mail   mailer.Mailer
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	hasher security.Hasher,
	signer security.TokenSigner,
	mail mailer.Mailer,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		hasher: hasher,
		signer: signer,
		mail:   mail,
		log:    log,
	}
}

func (s *authService) RegisterDriver(ctx context.Context, req *request.RegisterDriverRequest) (*response.RegisterDriverResponse, error) {
	// 1. Check email or phone already registered
	existing, err := s.repo.User.FindByEmailOrPhone(ctx, req.Email, req.Phone)
	if err != nil {
		s.log.Error("Failed to check existing user", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to check existing user")
	}
	if existing != nil {
		return nil, ErrDuplicateAccount
	}

	// 2. Hash password
	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	// 3. Generate verification token, valid 24h
	token, err := utils.GenerateVerificationToken()
	if err != nil {
		s.log.Error("Failed to generate verification token", zap.Error(err))
		return nil, fmt.Errorf("failed to generate verification token")
	}
	expiresAt := time.Now().Add(time.Duration(s.config.Verification.TokenTTLHours) * time.Hour)

	// 4. Create user entity
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:                            req.Name,
		Email:                           req.Email,
		Phone:                           req.Phone,
		PasswordHash:                    passwordHash,
		Role:                            entity.RoleDriver,
		Status:                          entity.StatusPendingVerification,
		EmailVerified:                   false,
		EmailVerificationToken:          &token,
		EmailVerificationTokenExpiresAt: &expiresAt,
	}

	// 5. Save user
	if err := s.repo.User.Create(ctx, user); err != nil {
		// The pre-check is not transactional; a concurrent insert can
		// still hit the unique constraint.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateAccount
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to create account")
	}

	// 6. Send verification email (async, failure must not fail registration)
	go s.sendVerificationEmail(user.Email, token)

	s.log.Info("Driver registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return &response.RegisterDriverResponse{UserID: user.ID.String()}, nil
}

func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	// 1. Find user holding the token
	user, err := s.repo.User.FindByVerificationToken(ctx, token)
	if err != nil {
		s.log.Error("Failed to find user by verification token", zap.Error(err))
		return fmt.Errorf("failed to verify email")
	}
	if user == nil {
		return ErrInvalidToken
	}

	// 2. Check expiry
	if user.EmailVerificationTokenExpiresAt != nil && user.EmailVerificationTokenExpiresAt.Before(time.Now()) {
		return ErrExpiredToken
	}

	// 3. Approve account and clear token in one update
	if err := s.repo.User.MarkEmailVerified(ctx, user.ID); err != nil {
		s.log.Error("Failed to mark email verified", zap.Error(err), zap.String("user_id", user.ID.String()))
		return fmt.Errorf("failed to verify email")
	}

	s.log.Info("Email verified",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	// 1. Find user by email
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		s.log.Warn("Login attempt for unknown email", zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}

	// 2. Status gates login regardless of credential correctness
	if user.Status != entity.StatusApproved {
		s.log.Warn("Login attempt on unapproved account",
			zap.String("user_id", user.ID.String()),
			zap.String("status", string(user.Status)))
		return nil, ErrAccountNotApproved
	}

	// 3. Check password
	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	// 4. Issue access token
	accessToken, err := s.signer.Issue(security.Claims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		s.log.Error("Failed to sign access token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to issue token")
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return &response.LoginResponse{AccessToken: accessToken}, nil
}

func (s *authService) sendVerificationEmail(email, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.mail.SendVerificationEmail(ctx, email, token); err != nil {
		s.log.Error("Failed to send verification email", zap.Error(err), zap.String("email", email))
	}
}
