package syncx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arizal132/todo-app/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, data any, errMsg string) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(map[string]any{
		"success": errMsg == "",
		"data":    data,
		"error":   errMsg,
	})
	require.NoError(t, err)
}

func sampleTodo(title string) models.Todo {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return models.Todo{
		ID:        uuid.New(),
		Title:     title,
		Priority:  models.PriorityMedium,
		Category:  models.DefaultCategory,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestClientList(t *testing.T) {
	want := []models.Todo{sampleTodo("first"), sampleTodo("second")}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/todos", r.URL.Path)
		writeEnvelope(t, w, http.StatusOK, want, "")
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, "").List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, want[0].ID, got[0].ID)
	assert.Equal(t, want[1].Title, got[1].Title)
}

func TestClientCreate(t *testing.T) {
	want := sampleTodo("created")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload CreatePayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "created", payload.Title)

		writeEnvelope(t, w, http.StatusCreated, want, "")
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, "").Create(context.Background(), CreatePayload{Title: "created"})
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(t, w, http.StatusOK, []models.Todo{}, "")
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "sekrit").List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer sekrit", gotAuth)

	_, err = NewClient(srv.URL, "").List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClientErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		errMsg     string
		assertKind func(*testing.T, error)
	}{
		{
			name:   "validation failure",
			status: http.StatusBadRequest,
			errMsg: "Title is required",
			assertKind: func(t *testing.T, err error) {
				assert.True(t, IsValidation(err))
				assert.False(t, IsTransient(err))
			},
		},
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			errMsg: "Unauthorized",
			assertKind: func(t *testing.T, err error) {
				assert.True(t, IsUnauthorized(err))
				assert.False(t, IsTransient(err))
			},
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			errMsg: "Todo not found",
			assertKind: func(t *testing.T, err error) {
				assert.True(t, IsNotFound(err))
			},
		},
		{
			name:   "server failure is not transient",
			status: http.StatusInternalServerError,
			errMsg: "Internal server error",
			assertKind: func(t *testing.T, err error) {
				assert.False(t, IsTransient(err))
				assert.False(t, IsUnauthorized(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(t, w, tt.status, nil, tt.errMsg)
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, "").List(context.Background())
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.errMsg, apiErr.Message)
			tt.assertKind(t, err)
		})
	}
}

func TestClientFailureEnvelopeWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"success":false}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").List(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusText(http.StatusTeapot), apiErr.Message)
}

func TestClientNetworkFailures(t *testing.T) {
	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		_, err := NewClient(srv.URL, "").List(context.Background())
		require.Error(t, err)
		assert.True(t, IsTransient(err))
	})

	t.Run("malformed response body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, "").List(context.Background())
		require.Error(t, err)
		assert.True(t, IsTransient(err))
		assert.False(t, IsUnauthorized(err))
	})
}

func TestClientDelete(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/todos/"+id.String(), r.URL.Path)
		writeEnvelope(t, w, http.StatusOK, struct{}{}, "")
	}))
	defer srv.Close()

	require.NoError(t, NewClient(srv.URL, "").Delete(context.Background(), id))
}
