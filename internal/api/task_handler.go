package api

import (
	"log/slog"
	"net/http"

	"github.com/BetulAktoprak/task-management-system/internal/api/shared"
	"github.com/BetulAktoprak/task-management-system/internal/domain"
	"github.com/BetulAktoprak/task-management-system/internal/platform/logger"
	"github.com/BetulAktoprak/task-management-system/internal/service"
)

// TaskHandler serves /tasks. Mutations publish notifications inside the
// service, so handlers only translate HTTP.
type TaskHandler struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a TaskHandler.
func NewTaskHandler(tasks service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}
	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

func respondSnapshots(w http.ResponseWriter, r *http.Request, tasks []domain.TaskSnapshot) {
	if tasks == nil {
		tasks = []domain.TaskSnapshot{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// List handles GET /tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListTasks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}
	respondSnapshots(w, r, tasks)
}

// ListByProject handles GET /tasks/project/{projectId}.
func (h *TaskHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := handlePathID(w, r, "projectId")
	if !ok {
		return
	}

	tasks, err := h.tasks.ListProjectTasks(r.Context(), projectID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}
	respondSnapshots(w, r, tasks)
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.tasks.GetTask(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), service.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		ProjectID:      req.ProjectID,
		AssignedUserID: req.AssignedUserID,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	logger.FromContext(r.Context()).Info("task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("project_id", task.ProjectID))
	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// Update handles PUT /tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.tasks.UpdateTask(r.Context(), id, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Assign handles PUT /tasks/{id}/assign.
func (h *TaskHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id")
	if !ok {
		return
	}
	var req AssignTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.tasks.AssignTask(r.Context(), id, req.AssignedUserID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to assign task")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}
