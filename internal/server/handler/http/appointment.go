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

// AppointmentService defines the appointment operations required by the
// AppointmentHandler.
type AppointmentService interface {
	Create(ctx context.Context, userID uuid.UUID, appointmentID string, date time.Time, description, projectID, taskID string) (*models.Appointment, error)
	Update(ctx context.Context, userID uuid.UUID, appointmentID string, date time.Time, description, projectID, taskID string, archived bool) (*models.Appointment, error)
	Get(ctx context.Context, userID uuid.UUID, appointmentID string) (*models.Appointment, error)
	List(ctx context.Context, userID uuid.UUID, projectID string) ([]*models.Appointment, error)
	Delete(ctx context.Context, userID uuid.UUID, appointmentID string) error
}

// AppointmentHandler handles HTTP requests for the appointment collection.
type AppointmentHandler struct {
	AppointmentService AppointmentService
	Log                *zap.Logger
}

// AppointmentRequest represents the JSON payload for creating or replacing
// an appointment. Date is an RFC 3339 timestamp.
type AppointmentRequest struct {
	AppointmentID string    `json:"appointmentId"`
	Date          time.Time `json:"date"`
	Description   string    `json:"description"`
	ProjectID     string    `json:"projectId,omitempty"`
	TaskID        string    `json:"taskId,omitempty"`
	Archived      bool      `json:"archived"`
}

type appointmentResponse struct {
	AppointmentID string    `json:"appointmentId"`
	Date          time.Time `json:"date"`
	Description   string    `json:"description"`
	ProjectID     string    `json:"projectId,omitempty"`
	TaskID        string    `json:"taskId,omitempty"`
	Archived      bool      `json:"archived"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func renderAppointment(a *models.Appointment) appointmentResponse {
	return appointmentResponse{
		AppointmentID: a.AppointmentID,
		Date:          a.Date,
		Description:   a.Description,
		ProjectID:     a.ProjectID,
		TaskID:        a.TaskID,
		Archived:      a.Archived,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// Create handles POST /api/v1/appointments.
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	var req AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}
	a, err := h.AppointmentService.Create(r.Context(), userID, req.AppointmentID, req.Date, req.Description, req.ProjectID, req.TaskID)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, renderAppointment(a))
}

// List handles GET /api/v1/appointments. An optional project_id query
// parameter narrows the listing to one project.
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	appointments, err := h.AppointmentService.List(r.Context(), userID, r.URL.Query().Get("project_id"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	out := make([]appointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, renderAppointment(a))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/v1/appointments/{id}.
func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	a, err := h.AppointmentService.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, renderAppointment(a))
}

// Update handles PUT /api/v1/appointments/{id}.
func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	var req AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}
	a, err := h.AppointmentService.Update(r.Context(), userID, chi.URLParam(r, "id"), req.Date, req.Description, req.ProjectID, req.TaskID, req.Archived)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, renderAppointment(a))
}

// Delete handles DELETE /api/v1/appointments/{id}.
func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if err := h.AppointmentService.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
