package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/arizal132/todo-app/internal/models"
	"github.com/google/uuid"
)

// MemoryStore is an in-memory TodoStore for single-tenant deployments and
// tests. All operations copy on the way in and out so callers can never
// mutate stored state directly.
type MemoryStore struct {
	mu          sync.RWMutex
	todos       map[uuid.UUID]*models.Todo
	lastCreated time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{todos: make(map[uuid.UUID]*models.Todo)}
}

// Create inserts a new todo, assigning id and timestamps.
func (m *MemoryStore) Create(ctx context.Context, todo *models.Todo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if todo.ID == uuid.Nil {
		todo.ID = uuid.New()
	}

	// Creation times strictly increase so created_at ordering is total
	now := time.Now()
	if !now.After(m.lastCreated) {
		now = m.lastCreated.Add(time.Microsecond)
	}
	m.lastCreated = now

	todo.CreatedAt = now
	todo.UpdatedAt = now
	m.todos[todo.ID] = todo.Clone()

	return nil
}

// GetByID retrieves a todo by id, scoped to owner when owner is non-nil
func (m *MemoryStore) GetByID(ctx context.Context, id uuid.UUID, owner *uuid.UUID) (*models.Todo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	todo, ok := m.todos[id]
	if !ok || !visibleTo(todo, owner) {
		return nil, ErrNotFound
	}

	return todo.Clone(), nil
}

// List retrieves all todos visible to the owner, newest first
func (m *MemoryStore) List(ctx context.Context, owner *uuid.UUID) ([]*models.Todo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	todos := []*models.Todo{}
	for _, todo := range m.todos {
		if visibleTo(todo, owner) {
			todos = append(todos, todo.Clone())
		}
	}

	sort.Slice(todos, func(i, j int) bool {
		return todos[i].CreatedAt.After(todos[j].CreatedAt)
	})

	return todos, nil
}

// Update persists mutable fields of an existing todo. id, owner_id and
// created_at never change; updated_at strictly advances.
func (m *MemoryStore) Update(ctx context.Context, todo *models.Todo, owner *uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.todos[todo.ID]
	if !ok || !visibleTo(existing, owner) {
		return ErrNotFound
	}

	existing.Title = todo.Title
	existing.Description = todo.Description
	existing.Completed = todo.Completed
	existing.Priority = todo.Priority
	existing.Category = todo.Category
	existing.UpdatedAt = nextUpdateTime(existing.UpdatedAt)

	*todo = *existing.Clone()

	return nil
}

// Delete removes a todo, scoped to owner when owner is non-nil
func (m *MemoryStore) Delete(ctx context.Context, id uuid.UUID, owner *uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	todo, ok := m.todos[id]
	if !ok || !visibleTo(todo, owner) {
		return ErrNotFound
	}

	delete(m.todos, id)
	return nil
}

// Len reports the number of stored todos across all owners.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.todos)
}

func visibleTo(todo *models.Todo, owner *uuid.UUID) bool {
	if owner == nil {
		return true
	}
	return todo.OwnerID != nil && *todo.OwnerID == *owner
}
