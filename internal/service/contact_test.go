package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"contactdesk/internal/models"
	"contactdesk/internal/repository"
	"contactdesk/internal/service"
)

type mockContactRepo struct {
	CreateFunc     func(ctx context.Context, userID uuid.UUID, c *models.Contact) error
	UpdateFunc     func(ctx context.Context, userID uuid.UUID, c *models.Contact) error
	FindByIDFunc   func(ctx context.Context, userID uuid.UUID, contactID string) (*models.Contact, error)
	FindAllFunc    func(ctx context.Context, userID uuid.UUID) ([]*models.Contact, error)
	DeleteByIDFunc func(ctx context.Context, userID uuid.UUID, contactID string) error
}

func (m *mockContactRepo) Create(ctx context.Context, userID uuid.UUID, c *models.Contact) error {
	return m.CreateFunc(ctx, userID, c)
}
func (m *mockContactRepo) Update(ctx context.Context, userID uuid.UUID, c *models.Contact) error {
	return m.UpdateFunc(ctx, userID, c)
}
func (m *mockContactRepo) FindByID(ctx context.Context, userID uuid.UUID, contactID string) (*models.Contact, error) {
	return m.FindByIDFunc(ctx, userID, contactID)
}
func (m *mockContactRepo) FindAll(ctx context.Context, userID uuid.UUID) ([]*models.Contact, error) {
	return m.FindAllFunc(ctx, userID)
}
func (m *mockContactRepo) DeleteByID(ctx context.Context, userID uuid.UUID, contactID string) error {
	return m.DeleteByIDFunc(ctx, userID, contactID)
}

func TestContactCreate_Success(t *testing.T) {
	userID := uuid.New()
	var stored *models.Contact
	repo := &mockContactRepo{
		CreateFunc: func(ctx context.Context, gotUser uuid.UUID, c *models.Contact) error {
			if gotUser != userID {
				t.Errorf("Create userID = %v; want %v", gotUser, userID)
			}
			stored = c
			return nil
		},
	}
	svc := service.NewContactService(repo)
	c, err := svc.Create(context.Background(), userID, "c1", "Ada", "Lovelace", "5551234567", "12 Crescent")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if stored == nil {
		t.Fatal("expected Create to reach the repository")
	}
	if c.FirstName != "Ada" || c.Phone != "5551234567" {
		t.Errorf("created contact = %+v", c)
	}
}

func TestContactCreate_ValidationStopsBeforeRepo(t *testing.T) {
	repo := &mockContactRepo{
		CreateFunc: func(context.Context, uuid.UUID, *models.Contact) error {
			t.Fatal("repository must not be reached for invalid input")
			return nil
		},
	}
	svc := service.NewContactService(repo)
	_, err := svc.Create(context.Background(), uuid.New(), "c1", "Ada", "Lovelace", "555", "12 Crescent")
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Create error = %v; want *models.ValidationError", err)
	}
	if verr.Field != "phone" {
		t.Errorf("field = %q; want phone", verr.Field)
	}
}

func TestContactCreate_DuplicatePassthrough(t *testing.T) {
	repo := &mockContactRepo{
		CreateFunc: func(context.Context, uuid.UUID, *models.Contact) error {
			return repository.ErrDuplicate
		},
	}
	svc := service.NewContactService(repo)
	_, err := svc.Create(context.Background(), uuid.New(), "c1", "Ada", "Lovelace", "5551234567", "12 Crescent")
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("Create error = %v; want ErrDuplicate", err)
	}
}

func TestContactUpdate_InvalidLeavesEntityAlone(t *testing.T) {
	userID := uuid.New()
	existing, err := models.NewContact("c1", "Ada", "Lovelace", "5551234567", "12 Crescent")
	if err != nil {
		t.Fatalf("NewContact: %v", err)
	}
	repo := &mockContactRepo{
		FindByIDFunc: func(context.Context, uuid.UUID, string) (*models.Contact, error) {
			return existing, nil
		},
		UpdateFunc: func(context.Context, uuid.UUID, *models.Contact) error {
			t.Fatal("repository Update must not be reached for invalid input")
			return nil
		},
	}
	svc := service.NewContactService(repo)
	_, err = svc.Update(context.Background(), userID, "c1", "Grace", "Hopper", "bad-phone", "1 Navy Yard", false)
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Update error = %v; want *models.ValidationError", err)
	}
	if existing.FirstName != "Ada" || existing.Phone != "5551234567" {
		t.Errorf("entity mutated by failed update: %+v", existing)
	}
}

func TestContactUpdate_NotFoundPassthrough(t *testing.T) {
	repo := &mockContactRepo{
		FindByIDFunc: func(context.Context, uuid.UUID, string) (*models.Contact, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := service.NewContactService(repo)
	_, err := svc.Update(context.Background(), uuid.New(), "nope", "Ada", "Lovelace", "5551234567", "12 Crescent", false)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("Update error = %v; want ErrNotFound", err)
	}
}

func TestContactDelete_Passthrough(t *testing.T) {
	userID := uuid.New()
	called := false
	repo := &mockContactRepo{
		DeleteByIDFunc: func(ctx context.Context, gotUser uuid.UUID, contactID string) error {
			called = true
			if gotUser != userID || contactID != "c9" {
				t.Errorf("DeleteByID args = %v, %q; want %v, c9", gotUser, contactID, userID)
			}
			return nil
		},
	}
	svc := service.NewContactService(repo)
	if err := svc.Delete(context.Background(), userID, "c9"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if !called {
		t.Fatal("expected DeleteByID to be called")
	}
}
