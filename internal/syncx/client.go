package syncx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/arizal132/todo-app/internal/models"
	"github.com/google/uuid"
)

// DefaultRequestTimeout bounds every API call; a timed-out call is treated as
// a transient transport failure.
const DefaultRequestTimeout = 10 * time.Second

// APIError is a failure classified by the server (carried in the envelope).
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// NetworkError is a client-observed transport failure: connection refused,
// timeout, malformed response. Never produced by a server classification.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsUnauthorized reports whether err is a server 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is a server 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsValidation reports whether err is a server 400.
func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest
}

// IsTransient reports whether err is a transport failure eligible for retry.
func IsTransient(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// CreatePayload is the body of a create request.
type CreatePayload struct {
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Completed   *bool            `json:"completed,omitempty"`
	Priority    *models.Priority `json:"priority,omitempty"`
	Category    *string          `json:"category,omitempty"`
}

// UpdatePatch is the explicit optional-field structure for partial updates.
// Nil fields are left unchanged by the server.
type UpdatePatch struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Completed   *bool            `json:"completed,omitempty"`
	Priority    *models.Priority `json:"priority,omitempty"`
	Category    *string          `json:"category,omitempty"`
}

// Client is a typed HTTP client for the todo API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates an API client. token may be empty for single-tenant
// deployments.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: DefaultRequestTimeout},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// List fetches all todos, newest first.
func (c *Client) List(ctx context.Context) ([]models.Todo, error) {
	var todos []models.Todo
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// Create persists a new todo and returns the server entity with its
// generated id and timestamps.
func (c *Client) Create(ctx context.Context, payload CreatePayload) (*models.Todo, error) {
	todo := &models.Todo{}
	if err := c.do(ctx, http.MethodPost, "/todos", payload, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Get fetches a single todo by id.
func (c *Client) Get(ctx context.Context, id uuid.UUID) (*models.Todo, error) {
	todo := &models.Todo{}
	if err := c.do(ctx, http.MethodGet, "/todos/"+id.String(), nil, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Update applies a partial update and returns the authoritative entity.
func (c *Client) Update(ctx context.Context, id uuid.UUID, patch UpdatePatch) (*models.Todo, error) {
	todo := &models.Todo{}
	if err := c.do(ctx, http.MethodPut, "/todos/"+id.String(), patch, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Delete removes a todo by id.
func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+id.String(), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &NetworkError{Err: fmt.Errorf("malformed response: %w", err)}
	}

	if resp.StatusCode >= 400 || !env.Success {
		message := env.Error
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &NetworkError{Err: fmt.Errorf("malformed response data: %w", err)}
		}
	}

	return nil
}
