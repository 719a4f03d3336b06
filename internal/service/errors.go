package service

import (
	"errors"
	"fmt"

	"github.com/BetulAktoprak/task-management-system/internal/domain"
)

// Service errors. Callers use errors.Is; the API layer maps them to status
// codes.
var (
	// ErrInvalidCredentials is returned by Login for an unknown email or a
	// wrong password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnknownProject is returned when a task references a project that
	// does not exist. It is a validation error, not a lookup miss.
	ErrUnknownProject = fmt.Errorf("%w: project does not exist", domain.ErrValidation)

	// ErrUnknownAssignee is returned when a task is assigned to a user that
	// does not exist.
	ErrUnknownAssignee = fmt.Errorf("%w: assignee does not exist", domain.ErrValidation)
)
