package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/service"
)

// TaskHandler handles the /tasks endpoints. Every route requires an
// authenticated username in the request context.
type TaskHandler struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks service.TaskService, logger *slog.Logger) *TaskHandler {
	if tasks == nil {
		panic("task service cannot be nil for TaskHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// Recent handles GET /tasks/recent.
func (h *TaskHandler) Recent(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUsername(w, r)
	if !ok {
		return
	}
	tasks, err := h.tasks.Recent(r.Context(), username)
	if err != nil {
		handleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toTaskResponses(tasks))
}

// List handles GET /tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUsername(w, r)
	if !ok {
		return
	}
	page, size, ok := pageParams(w, r)
	if !ok {
		return
	}
	result, err := h.tasks.List(r.Context(), username, page, size)
	if err != nil {
		handleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toTaskPageResponse(result))
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUsername(w, r)
	if !ok {
		return
	}
	id, ok := pathTaskID(w, r)
	if !ok {
		return
	}
	task, err := h.tasks.Get(r.Context(), username, id)
	if err != nil {
		handleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toTaskResponse(task))
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUsername(w, r)
	if !ok {
		return
	}
	req, ok := decodeTaskRequest(w, r)
	if !ok {
		return
	}

	task, err := h.tasks.Create(r.Context(), username, service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		handleAPIError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Debug("task created", slog.String("task_id", task.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, toTaskResponse(task))
}

// Update handles PUT /tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUsername(w, r)
	if !ok {
		return
	}
	id, ok := pathTaskID(w, r)
	if !ok {
		return
	}
	req, ok := decodeTaskRequest(w, r)
	if !ok {
		return
	}

	task, err := h.tasks.Update(r.Context(), username, id, service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		handleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toTaskResponse(task))
}

// Complete handles PUT /tasks/{id}/complete.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.tasks.MarkCompleted)
}

// Pending handles PUT /tasks/{id}/pending.
func (h *TaskHandler) Pending(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.tasks.MarkPending)
}

type statusChange func(ctx context.Context, username string, id uuid.UUID) (*domain.Task, error)

func (h *TaskHandler) setStatus(w http.ResponseWriter, r *http.Request, change statusChange) {
	username, ok := requireUsername(w, r)
	if !ok {
		return
	}
	id, ok := pathTaskID(w, r)
	if !ok {
		return
	}
	task, err := change(r.Context(), username, id)
	if err != nil {
		handleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toTaskResponse(task))
}

// Delete handles DELETE /tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUsername(w, r)
	if !ok {
		return
	}
	id, ok := pathTaskID(w, r)
	if !ok {
		return
	}
	if err := h.tasks.Delete(r.Context(), username, id); err != nil {
		handleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search handles GET /tasks/search.
func (h *TaskHandler) Search(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUsername(w, r)
	if !ok {
		return
	}
	page, size, ok := pageParams(w, r)
	if !ok {
		return
	}
	result, err := h.tasks.Search(r.Context(), username, r.URL.Query().Get("q"), page, size)
	if err != nil {
		handleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toTaskPageResponse(result))
}

// Stats handles GET /tasks/stats.
func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUsername(w, r)
	if !ok {
		return
	}
	stats, err := h.tasks.Stats(r.Context(), username)
	if err != nil {
		handleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, StatsResponse{
		Total:      stats.Total,
		Completed:  stats.Completed,
		Incomplete: stats.Incomplete,
	})
}

func decodeTaskRequest(w http.ResponseWriter, r *http.Request) (TaskRequest, bool) {
	var req TaskRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequest, err)
		return req, false
	}
	if err := shared.ValidateRequest(req); err != nil {
		handleAPIError(w, r, err)
		return req, false
	}
	return req, true
}
