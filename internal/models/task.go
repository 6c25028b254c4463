package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus enumerates the allowed task states.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// ParseTaskStatus validates a status string. The empty string defaults to
// todo, mirroring creation with no explicit status.
func ParseTaskStatus(value string) (TaskStatus, error) {
	switch TaskStatus(value) {
	case "":
		return TaskStatusTodo, nil
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return TaskStatus(value), nil
	default:
		return "", invalid("status", "must be one of todo, in_progress, done")
	}
}

// Task is a unit of work owned by a single user.
//
// Constraints: TaskID 1-10 chars (immutable after construction), Name 1-20
// chars, Description 1-50 chars, Status a valid TaskStatus (defaults to
// todo). DueDate is optional; the "not before today" rule is enforced by the
// service at creation and update, not here, so reconstituted tasks may carry
// past due dates. ProjectID and AssigneeID are optional links.
type Task struct {
	TaskID      string
	Name        string
	Description string
	Status      TaskStatus
	DueDate     *time.Time
	ProjectID   string
	AssigneeID  *uuid.UUID
	Archived    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTask validates every field and returns a new task with fresh timestamps.
func NewTask(taskID, name, description string, status TaskStatus, dueDate *time.Time) (*Task, error) {
	id, err := validateTrimmedLength(taskID, "taskId", idMaxLength)
	if err != nil {
		return nil, err
	}

	t := &Task{TaskID: id}
	if err := t.apply(name, description, status, dueDate, "", nil); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return t, nil
}

// ReconstituteTask rebuilds a task from persisted data. Length and status
// constraints still apply; the due date is accepted as-is because existing
// tasks naturally become overdue over time.
func ReconstituteTask(taskID, name, description string, status TaskStatus, dueDate *time.Time, projectID string, assigneeID *uuid.UUID, archived bool, createdAt, updatedAt time.Time) (*Task, error) {
	id, err := validateTrimmedLength(taskID, "taskId", idMaxLength)
	if err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, invalid("createdAt", "must not be null")
	}
	if updatedAt.IsZero() {
		return nil, invalid("updatedAt", "must not be null")
	}

	t := &Task{TaskID: id}
	if err := t.apply(name, description, status, dueDate, projectID, assigneeID); err != nil {
		return nil, err
	}
	t.Archived = archived
	t.CreatedAt = createdAt
	t.UpdatedAt = updatedAt
	return t, nil
}

// Update replaces the mutable fields atomically: all values are validated
// before any assignment, so an invalid update leaves the task unchanged.
func (t *Task) Update(name, description string, status TaskStatus, dueDate *time.Time, projectID string, assigneeID *uuid.UUID, archived bool) error {
	if err := t.apply(name, description, status, dueDate, projectID, assigneeID); err != nil {
		return err
	}
	t.Archived = archived
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (t *Task) apply(name, description string, status TaskStatus, dueDate *time.Time, projectID string, assigneeID *uuid.UUID) error {
	validName, err := validateTrimmedLength(name, "name", nameMaxLength)
	if err != nil {
		return err
	}
	validDesc, err := validateTrimmedLength(description, "description", descriptionMaxLength)
	if err != nil {
		return err
	}
	validStatus, err := ParseTaskStatus(string(status))
	if err != nil {
		return err
	}

	t.Name = validName
	t.Description = validDesc
	t.Status = validStatus
	if dueDate != nil {
		d := dateOnly(*dueDate)
		t.DueDate = &d
	} else {
		t.DueDate = nil
	}
	t.ProjectID = trimOptional(projectID)
	t.AssigneeID = assigneeID
	return nil
}

// Overdue reports whether the task has a due date before today. Tasks
// without a due date are never overdue.
func (t *Task) Overdue() bool {
	if t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(dateOnly(time.Now()))
}

// Copy returns an independent clone of the task, including its optional
// due date and assignee.
func (t *Task) Copy() *Task {
	clone := *t
	if t.DueDate != nil {
		d := *t.DueDate
		clone.DueDate = &d
	}
	if t.AssigneeID != nil {
		a := *t.AssigneeID
		clone.AssigneeID = &a
	}
	return &clone
}
