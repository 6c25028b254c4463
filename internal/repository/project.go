package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"contactdesk/internal/models"
)

// PostgresProjectRepository implements project persistence against a
// PostgreSQL database.
type PostgresProjectRepository struct {
	DB *sql.DB
}

// NewPostgresProjectRepository creates a new PostgresProjectRepository with
// the given database connection.
func NewPostgresProjectRepository(db *sql.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{DB: db}
}

// ExistsByID checks whether a project with the given business id exists for
// the user.
func (r *PostgresProjectRepository) ExistsByID(ctx context.Context, userID uuid.UUID, projectID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM projects WHERE user_id = $1 AND project_id = $2)`,
		userID, projectID,
	).Scan(&exists)
	return exists, err
}

// Create inserts a new project for the user.
func (r *PostgresProjectRepository) Create(ctx context.Context, userID uuid.UUID, p *models.Project) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO projects (id, user_id, project_id, name, description, archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, uuid.New(), userID, p.ProjectID, p.Name, p.Description, p.Archived, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert project: %w", translateError(err))
	}
	return nil
}

// Update overwrites the mutable fields of an existing project.
func (r *PostgresProjectRepository) Update(ctx context.Context, userID uuid.UUID, p *models.Project) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE projects
		   SET name = $1, description = $2, archived = $3, updated_at = $4
		 WHERE user_id = $5 AND project_id = $6
	`, p.Name, p.Description, p.Archived, p.UpdatedAt, userID, p.ProjectID)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByID fetches a single project by business id for the user.
func (r *PostgresProjectRepository) FindByID(ctx context.Context, userID uuid.UUID, projectID string) (*models.Project, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT project_id, name, description, archived, created_at, updated_at
		  FROM projects WHERE user_id = $1 AND project_id = $2
	`, userID, projectID)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	return p, nil
}

// FindAll fetches all projects belonging to the user.
func (r *PostgresProjectRepository) FindAll(ctx context.Context, userID uuid.UUID) ([]*models.Project, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT project_id, name, description, archived, created_at, updated_at
		  FROM projects WHERE user_id = $1 ORDER BY project_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// DeleteByID removes a project by business id for the user.
func (r *PostgresProjectRepository) DeleteByID(ctx context.Context, userID uuid.UUID, projectID string) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM projects WHERE user_id = $1 AND project_id = $2`,
		userID, projectID,
	)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProject(row rowScanner) (*models.Project, error) {
	var (
		projectID, name, description string
		archived                     bool
		createdAt, updatedAt         sql.NullTime
	)
	if err := row.Scan(&projectID, &name, &description, &archived, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return models.ReconstituteProject(projectID, name, description, archived, createdAt.Time, updatedAt.Time)
}
