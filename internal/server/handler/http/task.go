package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"contactdesk/internal/middleware"
	"contactdesk/internal/models"
)

// dueDateLayout is the calendar-day format used for task due dates on the
// wire.
const dueDateLayout = "2006-01-02"

// TaskService defines the task operations required by the TaskHandler.
type TaskService interface {
	Create(ctx context.Context, userID uuid.UUID, taskID, name, description string, status models.TaskStatus, dueDate *time.Time, projectID string, assigneeID *uuid.UUID) (*models.Task, error)
	Update(ctx context.Context, userID uuid.UUID, taskID, name, description string, status models.TaskStatus, dueDate *time.Time, projectID string, assigneeID *uuid.UUID, archived bool) (*models.Task, error)
	Get(ctx context.Context, userID uuid.UUID, taskID string) (*models.Task, error)
	List(ctx context.Context, userID uuid.UUID, projectID string) ([]*models.Task, error)
	Delete(ctx context.Context, userID uuid.UUID, taskID string) error
}

// TaskHandler handles HTTP requests for the task collection.
type TaskHandler struct {
	TaskService TaskService
	Log         *zap.Logger
}

// TaskRequest represents the JSON payload for creating or replacing a task.
// DueDate is a calendar day in 2006-01-02 form; AssigneeID is a user uuid.
// Both are optional.
type TaskRequest struct {
	TaskID      string `json:"taskId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	DueDate     string `json:"dueDate,omitempty"`
	ProjectID   string `json:"projectId,omitempty"`
	AssigneeID  string `json:"assigneeId,omitempty"`
	Archived    bool   `json:"archived"`
}

type taskResponse struct {
	TaskID      string    `json:"taskId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	DueDate     string    `json:"dueDate,omitempty"`
	ProjectID   string    `json:"projectId,omitempty"`
	AssigneeID  string    `json:"assigneeId,omitempty"`
	Archived    bool      `json:"archived"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func renderTask(t *models.Task) taskResponse {
	resp := taskResponse{
		TaskID:      t.TaskID,
		Name:        t.Name,
		Description: t.Description,
		Status:      string(t.Status),
		ProjectID:   t.ProjectID,
		Archived:    t.Archived,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.DueDate != nil {
		resp.DueDate = t.DueDate.Format(dueDateLayout)
	}
	if t.AssigneeID != nil {
		resp.AssigneeID = t.AssigneeID.String()
	}
	return resp
}

// parseTaskFields converts wire fields to domain values. Malformed dates,
// statuses, and uuids are reported as field-level validation failures.
func parseTaskFields(req TaskRequest) (models.TaskStatus, *time.Time, *uuid.UUID, error) {
	status, err := models.ParseTaskStatus(req.Status)
	if err != nil {
		return "", nil, nil, err
	}
	var dueDate *time.Time
	if req.DueDate != "" {
		d, err := time.Parse(dueDateLayout, req.DueDate)
		if err != nil {
			return "", nil, nil, &models.ValidationError{Field: "dueDate", Reason: "must be a date in 2006-01-02 form"}
		}
		dueDate = &d
	}
	var assigneeID *uuid.UUID
	if req.AssigneeID != "" {
		id, err := uuid.Parse(req.AssigneeID)
		if err != nil {
			return "", nil, nil, &models.ValidationError{Field: "assigneeId", Reason: "must be a uuid"}
		}
		assigneeID = &id
	}
	return status, dueDate, assigneeID, nil
}

// Create handles POST /api/v1/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}
	status, dueDate, assigneeID, err := parseTaskFields(req)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	t, err := h.TaskService.Create(r.Context(), userID, req.TaskID, req.Name, req.Description, status, dueDate, req.ProjectID, assigneeID)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, renderTask(t))
}

// List handles GET /api/v1/tasks. An optional project_id query parameter
// narrows the listing to one project.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	tasks, err := h.TaskService.List(r.Context(), userID, r.URL.Query().Get("project_id"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, renderTask(t))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/v1/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	t, err := h.TaskService.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, renderTask(t))
}

// Update handles PUT /api/v1/tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}
	status, dueDate, assigneeID, err := parseTaskFields(req)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	t, err := h.TaskService.Update(r.Context(), userID, chi.URLParam(r, "id"), req.Name, req.Description, status, dueDate, req.ProjectID, assigneeID, req.Archived)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, renderTask(t))
}

// Delete handles DELETE /api/v1/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if err := h.TaskService.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
