package database

import (
	"context"
	"errors"
	"time"

	"github.com/arizal132/todo-app/internal/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no todo matches the given id and owner scope.
// Ownership mismatch and nonexistence are deliberately indistinguishable so
// that callers cannot probe for other users' data.
var ErrNotFound = errors.New("todo not found")

// TodoStore defines the minimal query contract over the todo collection.
// The owner argument scopes the operation to a single principal; nil means
// unscoped (single-tenant deployments).
type TodoStore interface {
	List(ctx context.Context, owner *uuid.UUID) ([]*models.Todo, error)
	GetByID(ctx context.Context, id uuid.UUID, owner *uuid.UUID) (*models.Todo, error)
	Create(ctx context.Context, todo *models.Todo) error
	Update(ctx context.Context, todo *models.Todo, owner *uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID, owner *uuid.UUID) error
}

// Ensure concrete types implement the interface
var (
	_ TodoStore = (*TodoRepository)(nil)
	_ TodoStore = (*MemoryStore)(nil)
)

// nextUpdateTime returns the new updated_at for a mutation. Every successful
// update must strictly advance updated_at even on coarse clocks.
func nextUpdateTime(prev time.Time) time.Time {
	now := time.Now()
	if !now.After(prev) {
		return prev.Add(time.Microsecond)
	}
	return now
}
