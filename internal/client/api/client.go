// Package api provides a typed HTTP client for the contactdesk server.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// APIError carries the server's message for a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Client talks to a contactdesk server. Authenticate with Register or
// Login before calling the collection methods; the access token is attached
// to every subsequent request.
type Client struct {
	BaseURL string
	HTTP    *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Session mirrors the server's auth responses.
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Email        string `json:"email,omitempty"`
	Name         string `json:"name,omitempty"`
}

// Contact mirrors the server's contact representation.
type Contact struct {
	ContactID string `json:"contactId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Archived  bool   `json:"archived"`
}

// Task mirrors the server's task representation.
type Task struct {
	TaskID      string `json:"taskId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	ProjectID   string `json:"projectId,omitempty"`
	Archived    bool   `json:"archived"`
}

func (c *Client) do(method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequest(method, c.BaseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.mu.Lock()
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}
	c.mu.Unlock()

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		return &APIError{Status: resp.StatusCode, Message: msg.Message}
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) setSession(s Session) {
	c.mu.Lock()
	c.accessToken = s.AccessToken
	c.refreshToken = s.RefreshToken
	c.mu.Unlock()
}

// Register creates an account and stores the opened session's tokens.
func (c *Client) Register(email, password, name string) (Session, error) {
	var s Session
	err := c.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email": email, "password": password, "name": name,
	}, &s)
	if err != nil {
		return Session{}, err
	}
	c.setSession(s)
	return s, nil
}

// Login authenticates and stores the session's tokens.
func (c *Client) Login(email, password string) (Session, error) {
	var s Session
	err := c.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": password,
	}, &s)
	if err != nil {
		return Session{}, err
	}
	c.setSession(s)
	return s, nil
}

// Refresh redeems the stored refresh token for a fresh pair.
func (c *Client) Refresh() error {
	c.mu.Lock()
	token := c.refreshToken
	c.mu.Unlock()

	var s Session
	err := c.do(http.MethodPost, "/api/auth/refresh", map[string]string{
		"refreshToken": token,
	}, &s)
	if err != nil {
		return err
	}
	c.setSession(s)
	return nil
}

func (c *Client) CreateContact(contact Contact) (Contact, error) {
	var out Contact
	err := c.do(http.MethodPost, "/api/v1/contacts", contact, &out)
	return out, err
}

func (c *Client) ListContacts() ([]Contact, error) {
	var out []Contact
	err := c.do(http.MethodGet, "/api/v1/contacts", nil, &out)
	return out, err
}

func (c *Client) GetContact(id string) (Contact, error) {
	var out Contact
	err := c.do(http.MethodGet, "/api/v1/contacts/"+id, nil, &out)
	return out, err
}

func (c *Client) UpdateContact(id string, contact Contact) (Contact, error) {
	var out Contact
	err := c.do(http.MethodPut, "/api/v1/contacts/"+id, contact, &out)
	return out, err
}

func (c *Client) DeleteContact(id string) error {
	return c.do(http.MethodDelete, "/api/v1/contacts/"+id, nil, nil)
}

func (c *Client) CreateTask(task Task) (Task, error) {
	var out Task
	err := c.do(http.MethodPost, "/api/v1/tasks", task, &out)
	return out, err
}

// ListTasks fetches tasks, optionally narrowed to one project.
func (c *Client) ListTasks(projectID string) ([]Task, error) {
	path := "/api/v1/tasks"
	if projectID != "" {
		path += "?project_id=" + url.QueryEscape(projectID)
	}
	var out []Task
	err := c.do(http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) DeleteTask(id string) error {
	return c.do(http.MethodDelete, "/api/v1/tasks/"+id, nil, nil)
}
