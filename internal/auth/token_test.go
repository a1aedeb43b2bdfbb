package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arizal132/todo-app/internal/models"
	"github.com/google/uuid"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	resolver := NewResolver("secret")
	principal := &models.Principal{ID: uuid.New(), Email: "user@example.com"}

	token, err := resolver.Issue(principal, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	got, err := resolver.Verify(token)
	if err != nil {
		t.Fatalf("Failed to verify token: %v", err)
	}
	if got.ID != principal.ID {
		t.Errorf("Expected principal id %s, got %s", principal.ID, got.ID)
	}
	if got.Email != principal.Email {
		t.Errorf("Expected email %q, got %q", principal.Email, got.Email)
	}
}

func TestVerifyRejections(t *testing.T) {
	t.Parallel()

	resolver := NewResolver("secret")
	principal := &models.Principal{ID: uuid.New()}

	expired, err := resolver.Issue(principal, -time.Minute)
	if err != nil {
		t.Fatalf("Failed to issue expired token: %v", err)
	}
	foreign, err := NewResolver("other-secret").Issue(principal, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue foreign token: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"empty", ""},
		{"expired", expired},
		{"wrong signing secret", foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := resolver.Verify(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestResolveCredentialSources(t *testing.T) {
	t.Parallel()

	resolver := NewResolver("secret")
	headerPrincipal := &models.Principal{ID: uuid.New()}
	cookiePrincipal := &models.Principal{ID: uuid.New()}

	headerToken, err := resolver.Issue(headerPrincipal, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	cookieToken, err := resolver.Issue(cookiePrincipal, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	tests := []struct {
		name    string
		build   func(*http.Request)
		want    uuid.UUID
		wantErr error
	}{
		{
			name:  "bearer header",
			build: func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+headerToken) },
			want:  headerPrincipal.ID,
		},
		{
			name:  "bearer scheme is case-insensitive",
			build: func(r *http.Request) { r.Header.Set("Authorization", "bearer "+headerToken) },
			want:  headerPrincipal.ID,
		},
		{
			name:  "token cookie",
			build: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: TokenCookieName, Value: cookieToken}) },
			want:  cookiePrincipal.ID,
		},
		{
			name: "header takes precedence over cookie",
			build: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+headerToken)
				r.AddCookie(&http.Cookie{Name: TokenCookieName, Value: cookieToken})
			},
			want: headerPrincipal.ID,
		},
		{
			name:    "no credentials",
			build:   func(r *http.Request) {},
			wantErr: ErrNoCredentials,
		},
		{
			name:    "malformed header token",
			build:   func(r *http.Request) { r.Header.Set("Authorization", "Bearer junk") },
			wantErr: ErrInvalidToken,
		},
		{
			name: "invalid header is not rescued by a valid cookie",
			build: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer junk")
				r.AddCookie(&http.Cookie{Name: TokenCookieName, Value: cookieToken})
			},
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.build(req)

			principal, err := resolver.Resolve(req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if principal.ID != tt.want {
				t.Errorf("Expected principal %s, got %s", tt.want, principal.ID)
			}
		})
	}
}
