package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"driver-auth/internal/dto/request"
	"driver-auth/internal/dto/response"
	"driver-auth/internal/usecase"
	"driver-auth/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	auth usecase.AuthService
	user usecase.UserService
	log  *zap.Logger
}

func NewAuthHandler(auth usecase.AuthService, user usecase.UserService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth: auth,
		user: user,
		log:  log,
	}
}

// RegisterDriver handles POST /api/v1/auth/register-driver
func (h *AuthHandler) RegisterDriver(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterDriverRequest

	// Decode request body
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	// Call service
	resp, err := h.auth.RegisterDriver(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "register driver")
		return
	}

	utils.ResponseCreated(w, "Driver registered successfully. Check your email to activate the account.", resp)
}

// VerifyEmail handles GET /api/v1/auth/verify-email?token=
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		utils.ResponseBadRequest(w, "Missing token parameter", nil)
		return
	}

	if err := h.auth.VerifyEmail(r.Context(), token); err != nil {
		h.handleServiceError(w, err, "verify email")
		return
	}

	utils.ResponseSuccess(w, "Email verified successfully. Your account has been activated.", nil)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", resp)
}

// Profile handles GET /api/v1/auth/profile
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	// Set by Authenticate middleware
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	profile, err := h.user.GetProfile(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved successfully", profile)
}

// AdminOnly handles GET /api/v1/auth/admin-only
func (h *AuthHandler) AdminOnly(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "This route is for administrators only", identityFromContext(r))
}

// handleServiceError maps service errors to HTTP responses
func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrDuplicateAccount):
		h.log.Warn(operation+" failed - duplicate account", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidToken),
		errors.Is(err, usecase.ErrExpiredToken):
		h.log.Warn(operation+" failed - bad verification token", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrAccountNotApproved):
		h.log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrUserNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// identityFromContext builds the claims view set by Authenticate
func identityFromContext(r *http.Request) *response.IdentityResponse {
	identity := &response.IdentityResponse{}

	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		identity.UserID = userID.String()
	}
	if email, ok := utils.GetEmailFromContext(r.Context()); ok {
		identity.Email = email
	}
	if role, ok := utils.GetRoleFromContext(r.Context()); ok {
		identity.Role = role
	}

	return identity
}
