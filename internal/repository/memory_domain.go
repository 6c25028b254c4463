package repository

import (
	"context"

	"github.com/google/uuid"

	"contactdesk/internal/models"
)

// NewMemoryContactRepository returns an in-memory contact store keyed by
// contact id.
func NewMemoryContactRepository() *MemoryStore[models.Contact] {
	return NewMemoryStore(
		func(c *models.Contact) string { return c.ContactID },
		(*models.Contact).Copy,
	)
}

// NewMemoryProjectRepository returns an in-memory project store keyed by
// project id.
func NewMemoryProjectRepository() *MemoryStore[models.Project] {
	return NewMemoryStore(
		func(p *models.Project) string { return p.ProjectID },
		(*models.Project).Copy,
	)
}

// MemoryTaskRepository is the in-memory task store, extended with the
// project filter the task service needs.
type MemoryTaskRepository struct {
	*MemoryStore[models.Task]
}

// NewMemoryTaskRepository returns an in-memory task store keyed by task id.
func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{
		MemoryStore: NewMemoryStore(
			func(t *models.Task) string { return t.TaskID },
			(*models.Task).Copy,
		),
	}
}

// FindByProjectID fetches the user's tasks linked to the given project.
func (r *MemoryTaskRepository) FindByProjectID(ctx context.Context, userID uuid.UUID, projectID string) ([]*models.Task, error) {
	return r.FindMatching(ctx, userID, func(t *models.Task) bool {
		return t.ProjectID == projectID
	})
}

// MemoryAppointmentRepository is the in-memory appointment store, extended
// with the project filter the appointment service needs.
type MemoryAppointmentRepository struct {
	*MemoryStore[models.Appointment]
}

// NewMemoryAppointmentRepository returns an in-memory appointment store
// keyed by appointment id.
func NewMemoryAppointmentRepository() *MemoryAppointmentRepository {
	return &MemoryAppointmentRepository{
		MemoryStore: NewMemoryStore(
			func(a *models.Appointment) string { return a.AppointmentID },
			(*models.Appointment).Copy,
		),
	}
}

// FindByProjectID fetches the user's appointments linked to the given
// project.
func (r *MemoryAppointmentRepository) FindByProjectID(ctx context.Context, userID uuid.UUID, projectID string) ([]*models.Appointment, error) {
	return r.FindMatching(ctx, userID, func(a *models.Appointment) bool {
		return a.ProjectID == projectID
	})
}
