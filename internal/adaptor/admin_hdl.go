package adaptor

import (
	"net/http"
	"time"

	"driver-auth/internal/dto/request"
	"driver-auth/internal/usecase"
	"driver-auth/pkg/utils"

	"go.uber.org/zap"
)

type AdminHandler struct {
	user usecase.UserService
	log  *zap.Logger
}

func NewAdminHandler(user usecase.UserService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		user: user,
		log:  log,
	}
}

// Dashboard handles GET /api/v1/admin/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Welcome to the admin dashboard", map[string]any{
		"user":      identityFromContext(r),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Users handles GET /api/v1/admin/users?page=1&per_page=10
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	users, err := h.user.GetAllUsers(r.Context(), req)
	if err != nil {
		h.log.Error("Failed to list users", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved successfully", users)
}
