package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/arizal132/todo-app/internal/database"
	"github.com/arizal132/todo-app/internal/models"
	"github.com/arizal132/todo-app/internal/request"
	"github.com/arizal132/todo-app/internal/validation"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	// MaxTitleLength bounds stored titles; the UI enforces a tighter limit
	MaxTitleLength = 500
	// MaxDescriptionLength bounds stored descriptions
	MaxDescriptionLength = 5000
)

// TodoHandler handles todo-related requests
type TodoHandler struct {
	store       database.TodoStore
	authEnabled bool
	logger      *zap.Logger
}

// NewTodoHandler creates a new todo handler. When authEnabled is true every
// operation is scoped to the authenticated principal's todos.
func NewTodoHandler(store database.TodoStore, authEnabled bool, logger *zap.Logger) *TodoHandler {
	return &TodoHandler{store: store, authEnabled: authEnabled, logger: logger}
}

// RegisterRoutes registers todo routes on the given router.
// The router should already have the /todos prefix.
func (h *TodoHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListTodos).Methods("GET")
	r.HandleFunc("", h.CreateTodo).Methods("POST")
	r.HandleFunc("/{id}", h.GetTodo).Methods("GET")
	r.HandleFunc("/{id}", h.UpdateTodo).Methods("PUT")
	r.HandleFunc("/{id}", h.DeleteTodo).Methods("DELETE")
}

// CreateTodoRequest represents a create todo request. Any client-supplied
// owner is ignored: ownership comes from the resolved principal only.
type CreateTodoRequest struct {
	Title       string           `json:"title" validate:"required,max=500"`
	Description string           `json:"description,omitempty" validate:"max=5000"`
	Completed   *bool            `json:"completed,omitempty"`
	Priority    *models.Priority `json:"priority,omitempty" validate:"omitempty,priority"`
	Category    *string          `json:"category,omitempty"`
}

// UpdateTodoRequest represents a partial update. Only supplied fields change;
// id, created_at and owner_id are never mutable.
type UpdateTodoRequest struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Completed   *bool            `json:"completed,omitempty"`
	Priority    *models.Priority `json:"priority,omitempty"`
	Category    *string          `json:"category,omitempty"`
}

// owner returns the owner scope for store operations: the authenticated
// principal's id when auth is enabled, nil otherwise. The bool result is
// false when auth is enabled but no principal was resolved.
func (h *TodoHandler) owner(r *http.Request) (*uuid.UUID, bool) {
	if !h.authEnabled {
		return nil, true
	}
	principal := request.PrincipalFromContext(r)
	if principal == nil {
		return nil, false
	}
	id := principal.ID
	return &id, true
}

// ListTodos lists all todos visible to the caller, newest first
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	todos, err := h.store.List(r.Context(), owner)
	if err != nil {
		h.logger.Error("failed_to_list_todos", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Failed to retrieve todos")
		return
	}

	respondJSON(w, http.StatusOK, todos)
}

// CreateTodo creates a new todo
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if maxBytesErr := (*http.MaxBytesError)(nil); errors.As(err, &maxBytesErr) {
			respondJSONError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return
		}
		respondJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validation.Validate.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			respondJSONError(w, http.StatusBadRequest, fmt.Sprintf("Validation failed: %s", validationErrors[0].Error()))
			return
		}
		respondJSONError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	title := validation.SanitizeText(req.Title)
	if title == "" {
		respondJSONError(w, http.StatusBadRequest, "Title is required and cannot be empty")
		return
	}

	todo := &models.Todo{
		OwnerID:     owner,
		Title:       title,
		Description: validation.SanitizeText(req.Description),
		Priority:    models.PriorityMedium,
		Category:    models.DefaultCategory,
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}
	if req.Priority != nil {
		todo.Priority = *req.Priority
	}
	if req.Category != nil {
		if category := validation.SanitizeText(*req.Category); category != "" {
			todo.Category = category
		}
	}

	if err := h.store.Create(r.Context(), todo); err != nil {
		h.logger.Error("failed_to_create_todo", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Failed to create todo")
		return
	}

	respondJSON(w, http.StatusCreated, todo)
}

// GetTodo retrieves a todo by id
func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid todo id")
		return
	}

	todo, err := h.store.GetByID(r.Context(), id, owner)
	if err != nil {
		h.respondStoreError(w, err, "failed_to_get_todo")
		return
	}

	respondJSON(w, http.StatusOK, todo)
}

// UpdateTodo applies a partial update to an existing todo. updated_at is
// refreshed on every successful call regardless of which fields were supplied.
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid todo id")
		return
	}

	todo, err := h.store.GetByID(r.Context(), id, owner)
	if err != nil {
		h.respondStoreError(w, err, "failed_to_get_todo")
		return
	}

	var req UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if maxBytesErr := (*http.MaxBytesError)(nil); errors.As(err, &maxBytesErr) {
			respondJSONError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return
		}
		respondJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title != nil {
		title := validation.SanitizeText(*req.Title)
		if title == "" {
			respondJSONError(w, http.StatusBadRequest, "Title cannot be empty")
			return
		}
		if len(title) > MaxTitleLength {
			respondJSONError(w, http.StatusBadRequest, fmt.Sprintf("Title exceeds maximum length of %d characters", MaxTitleLength))
			return
		}
		todo.Title = title
	}
	if req.Description != nil {
		description := validation.SanitizeText(*req.Description)
		if len(description) > MaxDescriptionLength {
			respondJSONError(w, http.StatusBadRequest, fmt.Sprintf("Description exceeds maximum length of %d characters", MaxDescriptionLength))
			return
		}
		todo.Description = description
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}
	if req.Priority != nil {
		if err := validation.ValidatePriority(string(*req.Priority)); err != nil {
			respondJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		todo.Priority = *req.Priority
	}
	if req.Category != nil {
		if category := validation.SanitizeText(*req.Category); category != "" {
			todo.Category = category
		} else {
			todo.Category = models.DefaultCategory
		}
	}

	if err := h.store.Update(r.Context(), todo, owner); err != nil {
		h.respondStoreError(w, err, "failed_to_update_todo")
		return
	}

	respondJSON(w, http.StatusOK, todo)
}

// DeleteTodo deletes a todo
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid todo id")
		return
	}

	if err := h.store.Delete(r.Context(), id, owner); err != nil {
		h.respondStoreError(w, err, "failed_to_delete_todo")
		return
	}

	respondJSON(w, http.StatusOK, struct{}{})
}

func (h *TodoHandler) respondStoreError(w http.ResponseWriter, err error, event string) {
	if errors.Is(err, database.ErrNotFound) {
		respondJSONError(w, http.StatusNotFound, "Todo not found")
		return
	}
	h.logger.Error(event, zap.Error(err))
	respondJSONError(w, http.StatusInternalServerError, "Internal Server Error")
}
