package http_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"contactdesk/internal/models"
	handler "contactdesk/internal/server/handler/http"
)

// fakeTaskService records calls and returns preconfigured results.
type fakeTaskService struct {
	task  *models.Task
	tasks []*models.Task
	err   error

	receivedDueDate   *time.Time
	receivedProjectID string
}

func (f *fakeTaskService) Create(ctx context.Context, userID uuid.UUID, taskID, name, description string, status models.TaskStatus, dueDate *time.Time, projectID string, assigneeID *uuid.UUID) (*models.Task, error) {
	f.receivedDueDate = dueDate
	f.receivedProjectID = projectID
	return f.task, f.err
}

func (f *fakeTaskService) Update(ctx context.Context, userID uuid.UUID, taskID, name, description string, status models.TaskStatus, dueDate *time.Time, projectID string, assigneeID *uuid.UUID, archived bool) (*models.Task, error) {
	f.receivedDueDate = dueDate
	f.receivedProjectID = projectID
	return f.task, f.err
}

func (f *fakeTaskService) Get(ctx context.Context, userID uuid.UUID, taskID string) (*models.Task, error) {
	return f.task, f.err
}

func (f *fakeTaskService) List(ctx context.Context, userID uuid.UUID, projectID string) ([]*models.Task, error) {
	f.receivedProjectID = projectID
	return f.tasks, f.err
}

func (f *fakeTaskService) Delete(ctx context.Context, userID uuid.UUID, taskID string) error {
	return f.err
}

func validTask(t *testing.T) *models.Task {
	t.Helper()
	task, err := models.NewTask("t1", "write report", "quarterly numbers", models.TaskStatusTodo, nil)
	if err != nil {
		t.Fatalf("NewTask: %v", err)
	}
	return task
}

func TestTaskHandler_CreateParsesDueDate(t *testing.T) {
	fake := &fakeTaskService{task: validTask(t)}
	h := &handler.TaskHandler{TaskService: fake, Log: zap.NewNop()}

	body := `{"taskId":"t1","name":"write report","description":"quarterly numbers","dueDate":"2031-04-02","projectId":"p1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	h.Create(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}
	if fake.receivedDueDate == nil {
		t.Fatal("due date not forwarded")
	}
	want := time.Date(2031, 4, 2, 0, 0, 0, 0, time.UTC)
	if !fake.receivedDueDate.Equal(want) {
		t.Errorf("dueDate = %v; want %v", fake.receivedDueDate, want)
	}
	if fake.receivedProjectID != "p1" {
		t.Errorf("projectID = %q; want p1", fake.receivedProjectID)
	}
}

func TestTaskHandler_CreateBadFields(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedSubstr string
	}{
		{
			name:           "malformed due date",
			body:           `{"taskId":"t1","name":"n","description":"d","dueDate":"04/02/2031"}`,
			expectedSubstr: "dueDate",
		},
		{
			name:           "bad assignee",
			body:           `{"taskId":"t1","name":"n","description":"d","assigneeId":"not-a-uuid"}`,
			expectedSubstr: "assigneeId",
		},
		{
			name:           "unknown status",
			body:           `{"taskId":"t1","name":"n","description":"d","status":"paused"}`,
			expectedSubstr: "status",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTaskService{task: validTask(t)}
			h := &handler.TaskHandler{TaskService: fake, Log: zap.NewNop()}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			h.Create(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d; want %d", w.Code, http.StatusBadRequest)
			}
			if !strings.Contains(w.Body.String(), tt.expectedSubstr) {
				t.Errorf("body = %q; want substring %q", w.Body.String(), tt.expectedSubstr)
			}
		})
	}
}

func TestTaskHandler_ListProjectFilter(t *testing.T) {
	fake := &fakeTaskService{tasks: []*models.Task{validTask(t)}}
	h := &handler.TaskHandler{TaskService: fake, Log: zap.NewNop()}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks?project_id=p7", nil)
	w := httptest.NewRecorder()
	h.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}
	if fake.receivedProjectID != "p7" {
		t.Errorf("projectID = %q; want p7", fake.receivedProjectID)
	}
}
