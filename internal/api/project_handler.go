package api

import (
	"log/slog"
	"net/http"

	"github.com/BetulAktoprak/task-management-system/internal/api/shared"
	"github.com/BetulAktoprak/task-management-system/internal/domain"
	"github.com/BetulAktoprak/task-management-system/internal/platform/logger"
	"github.com/BetulAktoprak/task-management-system/internal/service"
)

// ProjectHandler serves /projects.
type ProjectHandler struct {
	projects service.ProjectService
	logger   *slog.Logger
}

// NewProjectHandler creates a ProjectHandler.
func NewProjectHandler(projects service.ProjectService, logger *slog.Logger) *ProjectHandler {
	if logger == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("logger cannot be nil for ProjectHandler")
	}
	return &ProjectHandler{
		projects: projects,
		logger:   logger.With(slog.String("component", "project_handler")),
	}
}

// List handles GET /projects.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.ListProjects(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list projects")
		return
	}
	if projects == nil {
		projects = []domain.Project{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, projects)
}

// Get handles GET /projects/{id}.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id")
	if !ok {
		return
	}

	project, err := h.projects.GetProject(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get project")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, project)
}

// Create handles POST /projects. The caller becomes the project's creator.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := handleIdentity(w, r)
	if !ok {
		return
	}
	var req ProjectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	project, err := h.projects.CreateProject(r.Context(), identity.UserID, req.Name, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create project")
		return
	}

	logger.FromContext(r.Context()).Info("project created",
		slog.Int64("project_id", project.ID),
		slog.Int64("user_id", identity.UserID))
	shared.RespondWithJSON(w, r, http.StatusCreated, project)
}

// Update handles PUT /projects/{id}.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id")
	if !ok {
		return
	}
	var req ProjectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	project, err := h.projects.UpdateProject(r.Context(), id, req.Name, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update project")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, project)
}
