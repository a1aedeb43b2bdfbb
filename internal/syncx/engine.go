package syncx

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/arizal132/todo-app/internal/models"
	"github.com/google/uuid"
)

// ErrNotInState is returned when a mutation targets an id the engine does not
// currently hold.
var ErrNotInState = errors.New("todo not present in local state")

const (
	defaultRetryAttempts = 3
	defaultRetryDelay    = 500 * time.Millisecond
)

// Entry is a todo in the engine's local state. Optimistic entries have been
// applied locally but not yet confirmed by the server.
type Entry struct {
	Todo       models.Todo
	Optimistic bool
}

// Stats are derived counts over the local state, recomputed after every
// state change.
type Stats struct {
	Total     int
	Completed int
	Pending   int
}

// Option configures an Engine.
type Option func(*Engine)

// WithRetry overrides the refresh retry policy: attempts tries with a
// linearly increasing delay (attempt × delay) between them.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(e *Engine) {
		if attempts > 0 {
			e.retryAttempts = attempts
		}
		if delay >= 0 {
			e.retryDelay = delay
		}
	}
}

// WithLogoutHandler installs the session-teardown hook invoked when the
// server rejects the engine's credentials.
func WithLogoutHandler(fn func()) Option {
	return func(e *Engine) { e.onLogout = fn }
}

// Engine maintains a local reflection of the server's todo collection. All
// mutations are optimistic: applied locally first, then either committed with
// the server's authoritative entity or rolled back exactly.
type Engine struct {
	client *Client

	mu      sync.Mutex
	entries []Entry
	stats   Stats

	retryAttempts int
	retryDelay    time.Duration
	onLogout      func()
}

// NewEngine creates an engine over the given API client.
func NewEngine(client *Client, opts ...Option) *Engine {
	e := &Engine{
		client:        client,
		retryAttempts: defaultRetryAttempts,
		retryDelay:    defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// All returns a copy of the local list in its current order (newest first).
func (e *Engine) All() []models.Todo {
	e.mu.Lock()
	defer e.mu.Unlock()

	todos := make([]models.Todo, len(e.entries))
	for i, entry := range e.entries {
		todos[i] = entry.Todo
	}
	return todos
}

// Stats returns the derived counts over the local state.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// Filter returns the todos matching pred, preserving list order.
func (e *Engine) Filter(pred func(models.Todo) bool) []models.Todo {
	e.mu.Lock()
	defer e.mu.Unlock()

	matched := []models.Todo{}
	for _, entry := range e.entries {
		if pred(entry.Todo) {
			matched = append(matched, entry.Todo)
		}
	}
	return matched
}

// Completed returns the completed todos.
func (e *Engine) Completed() []models.Todo {
	return e.Filter(func(t models.Todo) bool { return t.Completed })
}

// Pending returns the not-yet-completed todos.
func (e *Engine) Pending() []models.Todo {
	return e.Filter(func(t models.Todo) bool { return !t.Completed })
}

// ByCategory returns the todos in the given category.
func (e *Engine) ByCategory(category string) []models.Todo {
	return e.Filter(func(t models.Todo) bool { return t.Category == category })
}

// ByPriority returns the todos with the given priority.
func (e *Engine) ByPriority(priority models.Priority) []models.Todo {
	return e.Filter(func(t models.Todo) bool { return t.Priority == priority })
}

// Refresh replaces the local list with the server's collection. Transport
// failures are retried with linearly increasing backoff; after exhausting
// retries the engine falls back to an empty list rather than keeping stale
// state. An authorization failure triggers session teardown instead of retry.
func (e *Engine) Refresh(ctx context.Context) error {
	var lastErr error

	for attempt := 1; attempt <= e.retryAttempts; attempt++ {
		todos, err := e.client.List(ctx)
		if err == nil {
			e.replaceAll(todos)
			return nil
		}

		if IsUnauthorized(err) {
			e.replaceAll(nil)
			e.noteAuthFailure(err)
			return err
		}

		lastErr = err
		if !IsTransient(err) {
			break
		}

		if attempt < e.retryAttempts {
			select {
			case <-ctx.Done():
				e.replaceAll(nil)
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * e.retryDelay):
			}
		}
	}

	e.replaceAll(nil)
	return lastErr
}

// Create applies an optimistic placeholder immediately, then persists the
// todo. On success the placeholder is replaced in place by the server entity;
// on failure it is removed, leaving state exactly as before the call.
func (e *Engine) Create(ctx context.Context, payload CreatePayload) (*models.Todo, error) {
	placeholder := e.placeholder(payload)

	e.mu.Lock()
	e.entries = append([]Entry{{Todo: placeholder, Optimistic: true}}, e.entries...)
	e.recomputeLocked()
	e.mu.Unlock()

	created, err := e.client.Create(ctx, payload)

	e.mu.Lock()
	idx := e.indexOfLocked(placeholder.ID)
	if err != nil {
		if idx >= 0 {
			e.entries = append(e.entries[:idx], e.entries[idx+1:]...)
		}
		e.recomputeLocked()
		e.mu.Unlock()
		e.noteAuthFailure(err)
		return nil, err
	}

	if idx >= 0 {
		e.entries[idx] = Entry{Todo: *created}
	}
	e.recomputeLocked()
	e.mu.Unlock()
	return created, nil
}

// Update applies the patch optimistically, then persists it. On success the
// optimistic entry is replaced by the authoritative entity; on failure the
// list is rolled back to its pre-update snapshot exactly.
func (e *Engine) Update(ctx context.Context, id uuid.UUID, patch UpdatePatch) (*models.Todo, error) {
	e.mu.Lock()
	idx := e.indexOfLocked(id)
	if idx < 0 {
		e.mu.Unlock()
		return nil, ErrNotInState
	}

	snapshot := e.snapshotLocked()
	speculative := applyPatch(e.entries[idx].Todo, patch)
	e.entries[idx] = Entry{Todo: speculative, Optimistic: true}
	e.recomputeLocked()
	e.mu.Unlock()

	updated, err := e.client.Update(ctx, id, patch)

	e.mu.Lock()
	if err != nil {
		e.entries = snapshot
		e.recomputeLocked()
		e.mu.Unlock()
		e.noteAuthFailure(err)
		return nil, err
	}

	if idx := e.indexOfLocked(id); idx >= 0 {
		e.entries[idx] = Entry{Todo: *updated}
	}
	e.recomputeLocked()
	e.mu.Unlock()
	return updated, nil
}

// Delete removes the todo locally, then deletes it on the server. On failure
// the entity is restored and the list re-sorted by creation time descending.
func (e *Engine) Delete(ctx context.Context, id uuid.UUID) error {
	e.mu.Lock()
	idx := e.indexOfLocked(id)
	if idx < 0 {
		e.mu.Unlock()
		return ErrNotInState
	}

	removed := e.entries[idx]
	e.entries = append(e.entries[:idx], e.entries[idx+1:]...)
	e.recomputeLocked()
	e.mu.Unlock()

	err := e.client.Delete(ctx, id)
	if err == nil {
		return nil
	}

	e.mu.Lock()
	e.entries = append(e.entries, removed)
	sort.SliceStable(e.entries, func(i, j int) bool {
		return e.entries[i].Todo.CreatedAt.After(e.entries[j].Todo.CreatedAt)
	})
	e.recomputeLocked()
	e.mu.Unlock()

	e.noteAuthFailure(err)
	return err
}

// ToggleComplete flips the completed flag of the given todo.
func (e *Engine) ToggleComplete(ctx context.Context, id uuid.UUID) (*models.Todo, error) {
	e.mu.Lock()
	idx := e.indexOfLocked(id)
	if idx < 0 {
		e.mu.Unlock()
		return nil, ErrNotInState
	}
	completed := !e.entries[idx].Todo.Completed
	e.mu.Unlock()

	return e.Update(ctx, id, UpdatePatch{Completed: &completed})
}

// noteAuthFailure invokes the logout hook when the server rejected the
// engine's credentials. Every operation that observes a 401 tears the session
// down, not just Refresh. Must not be called with the state lock held.
func (e *Engine) noteAuthFailure(err error) {
	if IsUnauthorized(err) && e.onLogout != nil {
		e.onLogout()
	}
}

// placeholder synthesizes the temporary local entity for an optimistic create.
func (e *Engine) placeholder(payload CreatePayload) models.Todo {
	now := time.Now()
	todo := models.Todo{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(payload.Title),
		Description: strings.TrimSpace(payload.Description),
		Priority:    models.PriorityMedium,
		Category:    models.DefaultCategory,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if payload.Completed != nil {
		todo.Completed = *payload.Completed
	}
	if payload.Priority != nil {
		todo.Priority = *payload.Priority
	}
	if payload.Category != nil && strings.TrimSpace(*payload.Category) != "" {
		todo.Category = strings.TrimSpace(*payload.Category)
	}
	return todo
}

// applyPatch computes the optimistic post-update view of a todo.
func applyPatch(todo models.Todo, patch UpdatePatch) models.Todo {
	if patch.Title != nil {
		todo.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		todo.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Completed != nil {
		todo.Completed = *patch.Completed
	}
	if patch.Priority != nil {
		todo.Priority = *patch.Priority
	}
	if patch.Category != nil {
		todo.Category = strings.TrimSpace(*patch.Category)
	}
	todo.UpdatedAt = time.Now()
	return todo
}

func (e *Engine) replaceAll(todos []models.Todo) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entries := make([]Entry, len(todos))
	for i, todo := range todos {
		entries[i] = Entry{Todo: todo}
	}
	e.entries = entries
	e.recomputeLocked()
}

func (e *Engine) snapshotLocked() []Entry {
	snapshot := make([]Entry, len(e.entries))
	copy(snapshot, e.entries)
	return snapshot
}

func (e *Engine) indexOfLocked(id uuid.UUID) int {
	for i, entry := range e.entries {
		if entry.Todo.ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) recomputeLocked() {
	stats := Stats{Total: len(e.entries)}
	for _, entry := range e.entries {
		if entry.Todo.Completed {
			stats.Completed++
		} else {
			stats.Pending++
		}
	}
	e.stats = stats
}
