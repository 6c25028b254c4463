package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"contactdesk/internal/models"
)

// PostgresContactRepository implements contact persistence against a
// PostgreSQL database.
type PostgresContactRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresContactRepository creates a new PostgresContactRepository with
// the given database connection.
func NewPostgresContactRepository(db *sql.DB) *PostgresContactRepository {
	return &PostgresContactRepository{DB: db}
}

// ExistsByID checks whether a contact with the given business id exists for
// the user.
func (r *PostgresContactRepository) ExistsByID(ctx context.Context, userID uuid.UUID, contactID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM contacts WHERE user_id = $1 AND contact_id = $2)`,
		userID, contactID,
	).Scan(&exists)
	return exists, err
}

// Create inserts a new contact for the user. Returns ErrDuplicate when the
// per-user business key is already taken.
func (r *PostgresContactRepository) Create(ctx context.Context, userID uuid.UUID, c *models.Contact) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO contacts (id, user_id, contact_id, first_name, last_name, phone, address, archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, uuid.New(), userID, c.ContactID, c.FirstName, c.LastName, c.Phone, c.Address, c.Archived, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert contact: %w", translateError(err))
	}
	return nil
}

// Update overwrites the mutable fields of an existing contact. Returns
// ErrNotFound when the user has no contact with that id.
func (r *PostgresContactRepository) Update(ctx context.Context, userID uuid.UUID, c *models.Contact) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE contacts
		   SET first_name = $1, last_name = $2, phone = $3, address = $4, archived = $5, updated_at = $6
		 WHERE user_id = $7 AND contact_id = $8
	`, c.FirstName, c.LastName, c.Phone, c.Address, c.Archived, c.UpdatedAt, userID, c.ContactID)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByID fetches a single contact by business id for the user.
func (r *PostgresContactRepository) FindByID(ctx context.Context, userID uuid.UUID, contactID string) (*models.Contact, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT contact_id, first_name, last_name, phone, address, archived, created_at, updated_at
		  FROM contacts WHERE user_id = $1 AND contact_id = $2
	`, userID, contactID)
	c, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find contact: %w", err)
	}
	return c, nil
}

// FindAll fetches all contacts belonging to the user.
func (r *PostgresContactRepository) FindAll(ctx context.Context, userID uuid.UUID) ([]*models.Contact, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT contact_id, first_name, last_name, phone, address, archived, created_at, updated_at
		  FROM contacts WHERE user_id = $1 ORDER BY contact_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*models.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// DeleteByID removes a contact by business id for the user. Returns
// ErrNotFound when nothing was deleted, which makes a second delete of the
// same id observable to callers.
func (r *PostgresContactRepository) DeleteByID(ctx context.Context, userID uuid.UUID, contactID string) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM contacts WHERE user_id = $1 AND contact_id = $2`,
		userID, contactID,
	)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanContact reconstitutes a contact from a row, preserving stored
// timestamps and skipping creation-only rules.
func scanContact(row rowScanner) (*models.Contact, error) {
	var (
		contactID, firstName, lastName, phone, address string
		archived                                       bool
		createdAt, updatedAt                           sql.NullTime
	)
	if err := row.Scan(&contactID, &firstName, &lastName, &phone, &address, &archived, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return models.ReconstituteContact(contactID, firstName, lastName, phone, address, archived, createdAt.Time, updatedAt.Time)
}
