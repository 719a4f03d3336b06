package api

import (
	"fmt"
	"time"

	"github.com/BetulAktoprak/task-management-system/internal/domain"
	"github.com/BetulAktoprak/task-management-system/internal/service/auth"
)

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by both authentication endpoints.
type AuthResponse struct {
	AccessToken string      `json:"accessToken"`
	Expiration  time.Time   `json:"expiration"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	UserID      int64       `json:"userId"`
	Role        domain.Role `json:"role"`
}

func credentialToResponse(c *auth.Credential) AuthResponse {
	return AuthResponse{
		AccessToken: c.Token,
		Expiration:  c.ExpiresAt,
		Email:       c.Email,
		Name:        c.DisplayName,
		UserID:      c.UserID,
		Role:        c.Role,
	}
}

// ProjectRequest is the body of POST /projects and PUT /projects/{id}.
type ProjectRequest struct {
	Name        string  `json:"name"        validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// CreateTaskRequest is the body of POST /tasks.
type CreateTaskRequest struct {
	Title          string            `json:"title"          validate:"required,max=200"`
	Description    *string           `json:"description"    validate:"omitempty,max=4000"`
	Status         domain.TaskStatus `json:"status"         validate:"gte=0,lte=2"`
	ProjectID      int64             `json:"projectId"      validate:"required,gt=0"`
	AssignedUserID *int64            `json:"assignedUserId" validate:"omitempty,gt=0"`
}

// UpdateTaskRequest is the body of PUT /tasks/{id}.
type UpdateTaskRequest struct {
	Title       string            `json:"title"       validate:"required,max=200"`
	Description *string           `json:"description" validate:"omitempty,max=4000"`
	Status      domain.TaskStatus `json:"status"      validate:"gte=0,lte=2"`
}

// AssignTaskRequest is the body of PUT /tasks/{id}/assign. A null
// assignedUserId unassigns the task.
type AssignTaskRequest struct {
	AssignedUserID *int64 `json:"assignedUserId" validate:"omitempty,gt=0"`
}

// ChangeRoleRequest is the body of PUT /users/{id}/role.
type ChangeRoleRequest struct {
	Role domain.Role `json:"role"`
}

// Validate checks the role name against the known roles.
func (r ChangeRoleRequest) Validate() error {
	if !r.Role.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidRole, r.Role)
	}
	return nil
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Sessions int    `json:"sessions"`
}

// RoleResponse is one entry of GET /users/roles.
type RoleResponse struct {
	Name domain.Role `json:"name"`
}
