package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"contactdesk/internal/models"
)

// PostgresTaskRepository implements task persistence against a PostgreSQL
// database.
type PostgresTaskRepository struct {
	DB *sql.DB
}

// NewPostgresTaskRepository creates a new PostgresTaskRepository with the
// given database connection.
func NewPostgresTaskRepository(db *sql.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{DB: db}
}

// ExistsByID checks whether a task with the given business id exists for the
// user.
func (r *PostgresTaskRepository) ExistsByID(ctx context.Context, userID uuid.UUID, taskID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM tasks WHERE user_id = $1 AND task_id = $2)`,
		userID, taskID,
	).Scan(&exists)
	return exists, err
}

// Create inserts a new task for the user.
func (r *PostgresTaskRepository) Create(ctx context.Context, userID uuid.UUID, t *models.Task) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO tasks (id, user_id, task_id, name, description, status, due_date, project_id, assignee_id, archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, uuid.New(), userID, t.TaskID, t.Name, t.Description, string(t.Status),
		nullableTime(t.DueDate), nullableString(t.ProjectID), nullableUUID(t.AssigneeID),
		t.Archived, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert task: %w", translateError(err))
	}
	return nil
}

// Update overwrites the mutable fields of an existing task.
func (r *PostgresTaskRepository) Update(ctx context.Context, userID uuid.UUID, t *models.Task) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE tasks
		   SET name = $1, description = $2, status = $3, due_date = $4, project_id = $5, assignee_id = $6, archived = $7, updated_at = $8
		 WHERE user_id = $9 AND task_id = $10
	`, t.Name, t.Description, string(t.Status), nullableTime(t.DueDate),
		nullableString(t.ProjectID), nullableUUID(t.AssigneeID), t.Archived, t.UpdatedAt,
		userID, t.TaskID)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByID fetches a single task by business id for the user.
func (r *PostgresTaskRepository) FindByID(ctx context.Context, userID uuid.UUID, taskID string) (*models.Task, error) {
	row := r.DB.QueryRowContext(ctx, taskSelect+` WHERE user_id = $1 AND task_id = $2`, userID, taskID)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	return t, nil
}

// FindAll fetches all tasks belonging to the user.
func (r *PostgresTaskRepository) FindAll(ctx context.Context, userID uuid.UUID) ([]*models.Task, error) {
	return r.queryTasks(ctx, taskSelect+` WHERE user_id = $1 ORDER BY task_id`, userID)
}

// FindByProjectID fetches the user's tasks linked to the given project.
// Filtering happens in the database, not in memory.
func (r *PostgresTaskRepository) FindByProjectID(ctx context.Context, userID uuid.UUID, projectID string) ([]*models.Task, error) {
	return r.queryTasks(ctx, taskSelect+` WHERE user_id = $1 AND project_id = $2 ORDER BY task_id`, userID, projectID)
}

// DeleteByID removes a task by business id for the user.
func (r *PostgresTaskRepository) DeleteByID(ctx context.Context, userID uuid.UUID, taskID string) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM tasks WHERE user_id = $1 AND task_id = $2`,
		userID, taskID,
	)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

const taskSelect = `
	SELECT task_id, name, description, status, due_date, project_id, assignee_id, archived, created_at, updated_at
	  FROM tasks`

func (r *PostgresTaskRepository) queryTasks(ctx context.Context, query string, args ...any) ([]*models.Task, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// scanTask reconstitutes a task from a row. Past due dates are accepted
// because the past-date rule applies only at creation.
func scanTask(row rowScanner) (*models.Task, error) {
	var (
		taskID, name, description, status string
		dueDate                           sql.NullTime
		projectID, assigneeID             sql.NullString
		archived                          bool
		createdAt, updatedAt              sql.NullTime
	)
	if err := row.Scan(&taskID, &name, &description, &status, &dueDate, &projectID, &assigneeID, &archived, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var due *time.Time
	if dueDate.Valid {
		d := dueDate.Time
		due = &d
	}
	var assignee *uuid.UUID
	if assigneeID.Valid {
		id, err := uuid.Parse(assigneeID.String)
		if err != nil {
			return nil, fmt.Errorf("parse assignee id: %w", err)
		}
		assignee = &id
	}

	return models.ReconstituteTask(taskID, name, description, models.TaskStatus(status), due,
		projectID.String, assignee, archived, createdAt.Time, updatedAt.Time)
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableUUID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return *id
}
