package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"contactdesk/internal/models"
)

func setupContactMock(t *testing.T) (*PostgresContactRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresContactRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func testContact(t *testing.T) *models.Contact {
	t.Helper()
	c, err := models.NewContact("c1", "Anna", "Smith", "0123456789", "1 Main St")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestContactExistsByID(t *testing.T) {
	repo, mock, cleanup := setupContactMock(t)
	defer cleanup()

	userID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM contacts WHERE user_id = $1 AND contact_id = $2)`)).
		WithArgs(userID, "c1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByID(context.Background(), userID, "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected contact to exist")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestContactCreate_Success(t *testing.T) {
	repo, mock, cleanup := setupContactMock(t)
	defer cleanup()

	userID := uuid.New()
	c := testContact(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO contacts`)).
		WithArgs(sqlmock.AnyArg(), userID, c.ContactID, c.FirstName, c.LastName, c.Phone, c.Address, c.Archived, c.CreatedAt, c.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), userID, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestContactCreate_DuplicateBusinessKey(t *testing.T) {
	repo, mock, cleanup := setupContactMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO contacts`)).
		WillReturnError(&pq.Error{Code: uniqueViolation})

	err := repo.Create(context.Background(), uuid.New(), testContact(t))
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestContactFindByID_ScopedToUser(t *testing.T) {
	repo, mock, cleanup := setupContactMock(t)
	defer cleanup()

	userID := uuid.New()
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"contact_id", "first_name", "last_name", "phone", "address", "archived", "created_at", "updated_at"}).
		AddRow("c1", "Anna", "Smith", "0123456789", "1 Main St", false, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM contacts WHERE user_id = $1 AND contact_id = $2`)).
		WithArgs(userID, "c1").
		WillReturnRows(rows)

	c, err := repo.FindByID(context.Background(), userID, "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ContactID != "c1" || c.FirstName != "Anna" {
		t.Errorf("unexpected contact: %+v", c)
	}
	if !c.CreatedAt.Equal(now) {
		t.Errorf("expected stored timestamps to be preserved, got %v", c.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestContactFindByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupContactMock(t)
	defer cleanup()

	userID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM contacts WHERE user_id = $1 AND contact_id = $2`)).
		WithArgs(userID, "ghost").
		WillReturnRows(sqlmock.NewRows([]string{"contact_id", "first_name", "last_name", "phone", "address", "archived", "created_at", "updated_at"}))

	_, err := repo.FindByID(context.Background(), userID, "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestContactUpdate_NotFoundWhenNoRowsAffected(t *testing.T) {
	repo, mock, cleanup := setupContactMock(t)
	defer cleanup()

	// Zero rows affected means the id belongs to no row for this user,
	// including rows owned by someone else.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE contacts`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), uuid.New(), testContact(t))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestContactDeleteByID_SecondDeleteNotFound(t *testing.T) {
	repo, mock, cleanup := setupContactMock(t)
	defer cleanup()

	userID := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM contacts WHERE user_id = $1 AND contact_id = $2`)).
		WithArgs(userID, "c1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM contacts WHERE user_id = $1 AND contact_id = $2`)).
		WithArgs(userID, "c1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteByID(context.Background(), userID, "c1"); err != nil {
		t.Fatalf("unexpected error on first delete: %v", err)
	}
	err := repo.DeleteByID(context.Background(), userID, "c1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestContactFindAll(t *testing.T) {
	repo, mock, cleanup := setupContactMock(t)
	defer cleanup()

	userID := uuid.New()
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"contact_id", "first_name", "last_name", "phone", "address", "archived", "created_at", "updated_at"}).
		AddRow("c1", "Anna", "Smith", "0123456789", "1 Main St", false, now, now).
		AddRow("c2", "Bob", "Jones", "9876543210", "2 Side St", true, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM contacts WHERE user_id = $1 ORDER BY contact_id`)).
		WithArgs(userID).
		WillReturnRows(rows)

	contacts, err := repo.FindAll(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contacts) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(contacts))
	}
	if !contacts[1].Archived {
		t.Error("expected archived flag to be preserved")
	}
}
