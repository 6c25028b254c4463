package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"contactdesk/internal/models"
)

// AppointmentRepository defines the persistence operations required by the
// appointment service.
type AppointmentRepository interface {
	Create(ctx context.Context, userID uuid.UUID, a *models.Appointment) error
	Update(ctx context.Context, userID uuid.UUID, a *models.Appointment) error
	FindByID(ctx context.Context, userID uuid.UUID, appointmentID string) (*models.Appointment, error)
	FindAll(ctx context.Context, userID uuid.UUID) ([]*models.Appointment, error)
	FindByProjectID(ctx context.Context, userID uuid.UUID, projectID string) ([]*models.Appointment, error)
	DeleteByID(ctx context.Context, userID uuid.UUID, appointmentID string) error
}

// AppointmentService implements appointment lifecycle operations. The
// past-date rule is enforced by the entity at creation and update;
// appointments loaded from the repository are reconstituted without it.
type AppointmentService struct {
	repo AppointmentRepository
}

// NewAppointmentService constructs an AppointmentService using the provided
// repository.
func NewAppointmentService(repo AppointmentRepository) *AppointmentService {
	return &AppointmentService{repo: repo}
}

// Create validates and stores a new appointment for the user.
func (s *AppointmentService) Create(ctx context.Context, userID uuid.UUID, appointmentID string, date time.Time, description, projectID, taskID string) (*models.Appointment, error) {
	a, err := models.NewAppointment(appointmentID, date, description)
	if err != nil {
		return nil, err
	}
	a.ProjectID = strings.TrimSpace(projectID)
	a.TaskID = strings.TrimSpace(taskID)
	if err := s.repo.Create(ctx, userID, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update atomically replaces the mutable fields of an existing appointment.
// Validation failures leave the stored appointment unchanged.
func (s *AppointmentService) Update(ctx context.Context, userID uuid.UUID, appointmentID string, date time.Time, description, projectID, taskID string, archived bool) (*models.Appointment, error) {
	a, err := s.repo.FindByID(ctx, userID, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := a.Update(date, description, projectID, taskID, archived); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, userID, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Get fetches one appointment by id for the user.
func (s *AppointmentService) Get(ctx context.Context, userID uuid.UUID, appointmentID string) (*models.Appointment, error) {
	return s.repo.FindByID(ctx, userID, appointmentID)
}

// List fetches the user's appointments, optionally filtered by project.
func (s *AppointmentService) List(ctx context.Context, userID uuid.UUID, projectID string) ([]*models.Appointment, error) {
	if projectID != "" {
		return s.repo.FindByProjectID(ctx, userID, projectID)
	}
	return s.repo.FindAll(ctx, userID)
}

// Delete removes one appointment by id for the user.
func (s *AppointmentService) Delete(ctx context.Context, userID uuid.UUID, appointmentID string) error {
	return s.repo.DeleteByID(ctx, userID, appointmentID)
}
