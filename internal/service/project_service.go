package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/BetulAktoprak/task-management-system/internal/domain"
	"github.com/BetulAktoprak/task-management-system/internal/store"
)

// ProjectService provides project operations.
type ProjectService interface {
	// ListProjects returns every project, newest first.
	ListProjects(ctx context.Context) ([]domain.Project, error)

	// GetProject retrieves one project with its creator name and task count.
	// Returns store.ErrProjectNotFound if the project does not exist.
	GetProject(ctx context.Context, id int64) (*domain.Project, error)

	// CreateProject saves a project owned by createdBy.
	// Returns domain.ErrValidation if the name is empty or createdBy is not
	// a valid ID.
	CreateProject(ctx context.Context, createdBy int64, name string, description *string) (*domain.Project, error)

	// UpdateProject replaces a project's name and description.
	// Returns domain.ErrValidation if the name is empty and
	// store.ErrProjectNotFound if the project does not exist.
	UpdateProject(ctx context.Context, id int64, name string, description *string) (*domain.Project, error)
}

// ProjectServiceImpl implements ProjectService.
type ProjectServiceImpl struct {
	projectStore store.ProjectStore
	logger       *slog.Logger
}

var _ ProjectService = (*ProjectServiceImpl)(nil)

// NewProjectService creates a ProjectService.
func NewProjectService(projectStore store.ProjectStore, logger *slog.Logger) *ProjectServiceImpl {
	return &ProjectServiceImpl{
		projectStore: projectStore,
		logger:       logger.With("component", "project_service"),
	}
}

// ListProjects returns every project, newest first.
func (s *ProjectServiceImpl) ListProjects(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.projectStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list projects", "error", err)
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject retrieves one project.
func (s *ProjectServiceImpl) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	project, err := s.projectStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve project: %w", err)
	}
	return project, nil
}

// CreateProject saves a new project and returns it re-read from the store.
func (s *ProjectServiceImpl) CreateProject(
	ctx context.Context,
	createdBy int64,
	name string,
	description *string,
) (*domain.Project, error) {
	project, err := domain.NewProject(name, description, createdBy)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	if err := s.projectStore.Create(ctx, project); err != nil {
		s.logger.Error("failed to save project", "error", err, "created_by", createdBy)
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("project created", "project_id", project.ID, "created_by", createdBy)
	return s.GetProject(ctx, project.ID)
}

// UpdateProject replaces a project's name and description.
func (s *ProjectServiceImpl) UpdateProject(
	ctx context.Context,
	id int64,
	name string,
	description *string,
) (*domain.Project, error) {
	project, err := s.projectStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve project for update: %w", err)
	}

	project.Name = strings.TrimSpace(name)
	project.Description = description
	project.UpdatedAt = time.Now().UTC()
	if err := project.Validate(); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	if err := s.projectStore.Update(ctx, project); err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to update project", "error", err, "project_id", id)
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.logger.Info("project updated", "project_id", id)
	return s.GetProject(ctx, id)
}
