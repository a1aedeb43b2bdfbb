package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/arizal132/todo-app/internal/models"
	"github.com/google/uuid"
)

// TodoRepository handles todo database operations
type TodoRepository struct {
	db *DB
}

// NewTodoRepository creates a new todo repository
func NewTodoRepository(db *DB) *TodoRepository {
	return &TodoRepository{db: db}
}

const todoColumns = "id, owner_id, title, description, completed, priority, category, created_at, updated_at"

// Create inserts a new todo. The store assigns the id and both timestamps.
func (r *TodoRepository) Create(ctx context.Context, todo *models.Todo) error {
	if todo.ID == uuid.Nil {
		todo.ID = uuid.New()
	}

	query := `
		INSERT INTO todos (id, owner_id, title, description, completed, priority, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		todo.ID,
		todo.OwnerID,
		todo.Title,
		todo.Description,
		todo.Completed,
		todo.Priority,
		todo.Category,
		now,
		now,
	).Scan(&todo.CreatedAt, &todo.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}

	return nil
}

// GetByID retrieves a todo by id, scoped to owner when owner is non-nil
func (r *TodoRepository) GetByID(ctx context.Context, id uuid.UUID, owner *uuid.UUID) (*models.Todo, error) {
	query := fmt.Sprintf(`SELECT %s FROM todos WHERE id = $1`, todoColumns)
	args := []any{id}

	if owner != nil {
		query += " AND owner_id = $2"
		args = append(args, *owner)
	}

	todo := &models.Todo{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&todo.ID,
		&todo.OwnerID,
		&todo.Title,
		&todo.Description,
		&todo.Completed,
		&todo.Priority,
		&todo.Category,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	return todo, nil
}

// List retrieves all todos visible to the owner, newest first
func (r *TodoRepository) List(ctx context.Context, owner *uuid.UUID) ([]*models.Todo, error) {
	query := fmt.Sprintf(`SELECT %s FROM todos`, todoColumns)
	args := []any{}

	if owner != nil {
		query += " WHERE owner_id = $1"
		args = append(args, *owner)
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}
	defer rows.Close()

	todos := []*models.Todo{}
	for rows.Next() {
		todo := &models.Todo{}
		err := rows.Scan(
			&todo.ID,
			&todo.OwnerID,
			&todo.Title,
			&todo.Description,
			&todo.Completed,
			&todo.Priority,
			&todo.Category,
			&todo.CreatedAt,
			&todo.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todos: %w", err)
	}

	return todos, nil
}

// Update persists mutable fields of an existing todo, scoped to owner when
// owner is non-nil. updated_at strictly advances on every call.
func (r *TodoRepository) Update(ctx context.Context, todo *models.Todo, owner *uuid.UUID) error {
	query := `
		UPDATE todos
		SET title = $2, description = $3, completed = $4, priority = $5, category = $6, updated_at = $7
		WHERE id = $1
	`
	args := []any{
		todo.ID,
		todo.Title,
		todo.Description,
		todo.Completed,
		todo.Priority,
		todo.Category,
		nextUpdateTime(todo.UpdatedAt),
	}

	if owner != nil {
		query += " AND owner_id = $8"
		args = append(args, *owner)
	}

	query += " RETURNING updated_at"

	err := r.db.QueryRowContext(ctx, query, args...).Scan(&todo.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}

	return nil
}

// Delete removes a todo, scoped to owner when owner is non-nil
func (r *TodoRepository) Delete(ctx context.Context, id uuid.UUID, owner *uuid.UUID) error {
	query := `DELETE FROM todos WHERE id = $1`
	args := []any{id}

	if owner != nil {
		query += " AND owner_id = $2"
		args = append(args, *owner)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
