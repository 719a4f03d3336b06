package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrEmptyProjectName is returned when a project has no name.
var ErrEmptyProjectName = errors.New("project name cannot be empty")

// Project groups tasks. CreatorName and TaskCount are read-side projections
// filled by the store.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedBy   int64     `json:"createdBy"`
	CreatorName string    `json:"creatorName,omitempty"`
	TaskCount   int       `json:"taskCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewProject creates a project owned by createdBy.
func NewProject(name string, description *string, createdBy int64) (*Project, error) {
	now := time.Now().UTC()
	p := &Project{
		Name:        strings.TrimSpace(name),
		Description: description,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the project's fields.
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyProjectName)
	}
	if p.CreatedBy <= 0 {
		return fmt.Errorf("%w: creator: %w", ErrValidation, ErrInvalidID)
	}
	return nil
}
