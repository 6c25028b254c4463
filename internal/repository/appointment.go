package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"contactdesk/internal/models"
)

// PostgresAppointmentRepository implements appointment persistence against a
// PostgreSQL database.
type PostgresAppointmentRepository struct {
	DB *sql.DB
}

// NewPostgresAppointmentRepository creates a new PostgresAppointmentRepository
// with the given database connection.
func NewPostgresAppointmentRepository(db *sql.DB) *PostgresAppointmentRepository {
	return &PostgresAppointmentRepository{DB: db}
}

// ExistsByID checks whether an appointment with the given business id exists
// for the user.
func (r *PostgresAppointmentRepository) ExistsByID(ctx context.Context, userID uuid.UUID, appointmentID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM appointments WHERE user_id = $1 AND appointment_id = $2)`,
		userID, appointmentID,
	).Scan(&exists)
	return exists, err
}

// Create inserts a new appointment for the user.
func (r *PostgresAppointmentRepository) Create(ctx context.Context, userID uuid.UUID, a *models.Appointment) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO appointments (id, user_id, appointment_id, appointment_date, description, project_id, task_id, archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, uuid.New(), userID, a.AppointmentID, a.Date, a.Description,
		nullableString(a.ProjectID), nullableString(a.TaskID), a.Archived, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", translateError(err))
	}
	return nil
}

// Update overwrites the mutable fields of an existing appointment.
func (r *PostgresAppointmentRepository) Update(ctx context.Context, userID uuid.UUID, a *models.Appointment) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE appointments
		   SET appointment_date = $1, description = $2, project_id = $3, task_id = $4, archived = $5, updated_at = $6
		 WHERE user_id = $7 AND appointment_id = $8
	`, a.Date, a.Description, nullableString(a.ProjectID), nullableString(a.TaskID), a.Archived, a.UpdatedAt,
		userID, a.AppointmentID)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByID fetches a single appointment by business id for the user.
func (r *PostgresAppointmentRepository) FindByID(ctx context.Context, userID uuid.UUID, appointmentID string) (*models.Appointment, error) {
	row := r.DB.QueryRowContext(ctx, appointmentSelect+` WHERE user_id = $1 AND appointment_id = $2`, userID, appointmentID)
	a, err := scanAppointment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	return a, nil
}

// FindAll fetches all appointments belonging to the user.
func (r *PostgresAppointmentRepository) FindAll(ctx context.Context, userID uuid.UUID) ([]*models.Appointment, error) {
	return r.queryAppointments(ctx, appointmentSelect+` WHERE user_id = $1 ORDER BY appointment_date`, userID)
}

// FindByProjectID fetches the user's appointments linked to the given
// project.
func (r *PostgresAppointmentRepository) FindByProjectID(ctx context.Context, userID uuid.UUID, projectID string) ([]*models.Appointment, error) {
	return r.queryAppointments(ctx, appointmentSelect+` WHERE user_id = $1 AND project_id = $2 ORDER BY appointment_date`, userID, projectID)
}

// DeleteByID removes an appointment by business id for the user.
func (r *PostgresAppointmentRepository) DeleteByID(ctx context.Context, userID uuid.UUID, appointmentID string) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM appointments WHERE user_id = $1 AND appointment_id = $2`,
		userID, appointmentID,
	)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

const appointmentSelect = `
	SELECT appointment_id, appointment_date, description, project_id, task_id, archived, created_at, updated_at
	  FROM appointments`

func (r *PostgresAppointmentRepository) queryAppointments(ctx context.Context, query string, args ...any) ([]*models.Appointment, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var appointments []*models.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}

// scanAppointment reconstitutes an appointment from a row. Past dates are
// accepted because the past-date rule applies only at creation and update.
func scanAppointment(row rowScanner) (*models.Appointment, error) {
	var (
		appointmentID, description string
		date                       sql.NullTime
		projectID, taskID          sql.NullString
		archived                   bool
		createdAt, updatedAt       sql.NullTime
	)
	if err := row.Scan(&appointmentID, &date, &description, &projectID, &taskID, &archived, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return models.ReconstituteAppointment(appointmentID, date.Time, description,
		projectID.String, taskID.String, archived, createdAt.Time, updatedAt.Time)
}
