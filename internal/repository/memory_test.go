package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"contactdesk/internal/models"
)

func TestMemoryStore_CreateAndFind(t *testing.T) {
	store := NewMemoryTaskRepository()
	userID := uuid.New()

	task, err := models.NewTask("t1", "task", "desc", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Create(context.Background(), userID, task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.FindByID(context.Background(), userID, "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "task" {
		t.Errorf("unexpected task: %+v", got)
	}
}

func TestMemoryStore_DuplicateCreateRejected(t *testing.T) {
	store := NewMemoryContactRepository()
	userID := uuid.New()

	c, err := models.NewContact("c1", "Anna", "Smith", "0123456789", "1 Main St")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Create(context.Background(), userID, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Create(context.Background(), userID, c); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestMemoryStore_PerUserIsolation(t *testing.T) {
	store := NewMemoryContactRepository()
	userA := uuid.New()
	userB := uuid.New()

	c, err := models.NewContact("c1", "Anna", "Smith", "0123456789", "1 Main St")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Create(context.Background(), userA, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// User B sees nothing and cannot delete A's entry.
	if _, err := store.FindByID(context.Background(), userB, "c1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for other user, got %v", err)
	}
	if err := store.DeleteByID(context.Background(), userB, "c1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for other user's delete, got %v", err)
	}
	if _, err := store.FindByID(context.Background(), userA, "c1"); err != nil {
		t.Errorf("owner's entry must survive: %v", err)
	}
}

func TestMemoryStore_ReadsAreDefensiveCopies(t *testing.T) {
	store := NewMemoryProjectRepository()
	userID := uuid.New()

	p, err := models.NewProject("p1", "name", "desc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Create(context.Background(), userID, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.FindByID(context.Background(), userID, "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got.Name = "mutated"

	again, err := store.FindByID(context.Background(), userID, "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.Name != "name" {
		t.Error("mutating a returned entity must not affect the store")
	}
}

func TestMemoryStore_SecondDeleteNotFound(t *testing.T) {
	store := NewMemoryProjectRepository()
	userID := uuid.New()

	p, err := models.NewProject("p1", "name", "desc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Create(context.Background(), userID, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.DeleteByID(context.Background(), userID, "p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.DeleteByID(context.Background(), userID, "p1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestMemoryTaskRepository_FindByProjectID(t *testing.T) {
	store := NewMemoryTaskRepository()
	userID := uuid.New()

	for _, spec := range []struct{ id, project string }{
		{"t1", "p1"}, {"t2", "p1"}, {"t3", "p2"},
	} {
		task, err := models.NewTask(spec.id, "task "+spec.id, "desc", "", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := task.Update(task.Name, task.Description, task.Status, nil, spec.project, nil, false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := store.Create(context.Background(), userID, task); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	tasks, err := store.FindByProjectID(context.Background(), userID, "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("expected 2 tasks in p1, got %d", len(tasks))
	}
}
