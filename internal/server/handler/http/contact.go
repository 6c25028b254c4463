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

// ContactService defines the contact operations required by the
// ContactHandler.
type ContactService interface {
	Create(ctx context.Context, userID uuid.UUID, contactID, firstName, lastName, phone, address string) (*models.Contact, error)
	Update(ctx context.Context, userID uuid.UUID, contactID, firstName, lastName, phone, address string, archived bool) (*models.Contact, error)
	Get(ctx context.Context, userID uuid.UUID, contactID string) (*models.Contact, error)
	List(ctx context.Context, userID uuid.UUID) ([]*models.Contact, error)
	Delete(ctx context.Context, userID uuid.UUID, contactID string) error
}

// ContactHandler handles HTTP requests for the contact collection.
type ContactHandler struct {
	ContactService ContactService
	Log            *zap.Logger
}

// ContactRequest represents the JSON payload for creating or replacing a
// contact.
type ContactRequest struct {
	ContactID string `json:"contactId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Archived  bool   `json:"archived"`
}

type contactResponse struct {
	ContactID string    `json:"contactId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func renderContact(c *models.Contact) contactResponse {
	return contactResponse{
		ContactID: c.ContactID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
		Address:   c.Address,
		Archived:  c.Archived,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// Create handles POST /api/v1/contacts.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}
	c, err := h.ContactService.Create(r.Context(), userID, req.ContactID, req.FirstName, req.LastName, req.Phone, req.Address)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, renderContact(c))
}

// List handles GET /api/v1/contacts.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	contacts, err := h.ContactService.List(r.Context(), userID)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	out := make([]contactResponse, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, renderContact(c))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/v1/contacts/{id}.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	c, err := h.ContactService.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, renderContact(c))
}

// Update handles PUT /api/v1/contacts/{id}. The body replaces every
// mutable field; an invalid body leaves the stored contact untouched.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}
	c, err := h.ContactService.Update(r.Context(), userID, chi.URLParam(r, "id"), req.FirstName, req.LastName, req.Phone, req.Address, req.Archived)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, renderContact(c))
}

// Delete handles DELETE /api/v1/contacts/{id}.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if err := h.ContactService.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
