package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"contactdesk/internal/models"
)

// TaskRepository defines the persistence operations required by the task
// service.
type TaskRepository interface {
	Create(ctx context.Context, userID uuid.UUID, t *models.Task) error
	Update(ctx context.Context, userID uuid.UUID, t *models.Task) error
	FindByID(ctx context.Context, userID uuid.UUID, taskID string) (*models.Task, error)
	FindAll(ctx context.Context, userID uuid.UUID) ([]*models.Task, error)
	FindByProjectID(ctx context.Context, userID uuid.UUID, projectID string) ([]*models.Task, error)
	DeleteByID(ctx context.Context, userID uuid.UUID, taskID string) error
}

// TaskService implements task lifecycle operations. The "due date must not
// be in the past" rule lives here, with an injectable clock, so that
// reconstituted tasks loaded by the repository are exempt.
type TaskService struct {
	repo TaskRepository
	now  func() time.Time
}

// NewTaskService constructs a TaskService using the provided repository and
// the system clock.
func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{repo: repo, now: time.Now}
}

// WithClock overrides the service clock. Test hook.
func (s *TaskService) WithClock(now func() time.Time) *TaskService {
	s.now = now
	return s
}

// Create validates and stores a new task for the user. The due date, when
// present, must not be before today.
func (s *TaskService) Create(ctx context.Context, userID uuid.UUID, taskID, name, description string, status models.TaskStatus, dueDate *time.Time, projectID string, assigneeID *uuid.UUID) (*models.Task, error) {
	if err := s.checkDueDate(dueDate); err != nil {
		return nil, err
	}
	t, err := models.NewTask(taskID, name, description, status, dueDate)
	if err != nil {
		return nil, err
	}
	t.ProjectID = strings.TrimSpace(projectID)
	t.AssigneeID = assigneeID
	if err := s.repo.Create(ctx, userID, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Update atomically replaces the mutable fields of an existing task.
// Validation failures, including a past due date, leave the stored task
// unchanged.
func (s *TaskService) Update(ctx context.Context, userID uuid.UUID, taskID, name, description string, status models.TaskStatus, dueDate *time.Time, projectID string, assigneeID *uuid.UUID, archived bool) (*models.Task, error) {
	if err := s.checkDueDate(dueDate); err != nil {
		return nil, err
	}
	t, err := s.repo.FindByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if err := t.Update(name, description, status, dueDate, projectID, assigneeID, archived); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, userID, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Get fetches one task by id for the user.
func (s *TaskService) Get(ctx context.Context, userID uuid.UUID, taskID string) (*models.Task, error) {
	return s.repo.FindByID(ctx, userID, taskID)
}

// List fetches the user's tasks, optionally filtered by project.
func (s *TaskService) List(ctx context.Context, userID uuid.UUID, projectID string) ([]*models.Task, error) {
	if projectID != "" {
		return s.repo.FindByProjectID(ctx, userID, projectID)
	}
	return s.repo.FindAll(ctx, userID)
}

// Delete removes one task by id for the user.
func (s *TaskService) Delete(ctx context.Context, userID uuid.UUID, taskID string) error {
	return s.repo.DeleteByID(ctx, userID, taskID)
}

// checkDueDate rejects due dates before today. Day granularity: a due date
// of today is acceptable.
func (s *TaskService) checkDueDate(dueDate *time.Time) error {
	if dueDate == nil {
		return nil
	}
	today := s.now().UTC().Truncate(24 * time.Hour)
	if dueDate.UTC().Truncate(24 * time.Hour).Before(today) {
		return &models.ValidationError{Field: "dueDate", Reason: "must not be in the past"}
	}
	return nil
}
