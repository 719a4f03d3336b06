package api

import (
	"log/slog"
	"net/http"

	"github.com/BetulAktoprak/task-management-system/internal/api/shared"
	"github.com/BetulAktoprak/task-management-system/internal/domain"
	"github.com/BetulAktoprak/task-management-system/internal/platform/logger"
	"github.com/BetulAktoprak/task-management-system/internal/service"
)

// UserHandler serves /users.
type UserHandler struct {
	users  service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}
	return &UserHandler{
		users:  users,
		logger: logger.With(slog.String("component", "user_handler")),
	}
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list users")
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, users)
}

// Roles handles GET /users/roles: the role names an admin can assign, in
// name order.
func (h *UserHandler) Roles(w http.ResponseWriter, r *http.Request) {
	roles := domain.Roles()
	resp := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		resp = append(resp, RoleResponse{Name: role})
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Me handles GET /users/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := handleIdentity(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetUser(r.Context(), identity.UserID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get user")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// ChangeRole handles PUT /users/{id}/role. The new role takes effect at the
// user's next login.
func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id")
	if !ok {
		return
	}
	var req ChangeRoleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.ChangeRole(r.Context(), id, req.Role)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to change role")
		return
	}

	logger.FromContext(r.Context()).Info("user role changed",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(user.Role)))
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}
