package api

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/plankhq/plank-api/internal/api/shared"
	"github.com/plankhq/plank-api/internal/domain"
	"github.com/plankhq/plank-api/internal/service"
)

// TaskOperations is the slice of the task service the task endpoints use.
type TaskOperations interface {
	CreateTask(ctx context.Context, actorID, columnID uuid.UUID, title string, priority domain.TaskPriority) (*domain.Task, error)
	UpdateTask(ctx context.Context, actorID, taskID uuid.UUID, patch service.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, actorID, taskID uuid.UUID) error
}

// TaskHandler handles task-level HTTP requests.
type TaskHandler struct {
	tasks     TaskOperations
	validator *validator.Validate
}

// NewTaskHandler creates a TaskHandler backed by the given task service.
func NewTaskHandler(tasks TaskOperations) *TaskHandler {
	return &TaskHandler{
		tasks:     tasks,
		validator: validator.New(),
	}
}

// CreateTask handles POST /api/columns/{columnID}/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, columnID, ok := requireUserAndPathID(w, r, "columnID")
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), userID, columnID, req.Title, req.Priority)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// UpdateTask handles PATCH /api/tasks/{taskID}. Absent fields stay untouched.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireUserAndPathID(w, r, "taskID")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	task, err := h.tasks.UpdateTask(r.Context(), userID, taskID, service.TaskPatch{
		Title:    req.Title,
		Content:  req.Content,
		Priority: req.Priority,
		ColumnID: req.ColumnID,
		Position: req.Position,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/{taskID}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireUserAndPathID(w, r, "taskID")
	if !ok {
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), userID, taskID); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
