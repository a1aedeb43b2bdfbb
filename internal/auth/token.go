package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/arizal132/todo-app/internal/models"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// TokenCookieName is the cookie checked when no Authorization header is present
const TokenCookieName = "token"

var (
	// ErrNoCredentials is returned when the request carries neither a bearer
	// token nor a token cookie.
	ErrNoCredentials = errors.New("no credentials supplied")
	// ErrInvalidToken is returned when a supplied token fails verification.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Resolver verifies request credentials and resolves them to a principal.
// Tokens are HS256 JWTs whose subject is the principal id.
type Resolver struct {
	secret []byte
}

// NewResolver creates a resolver with the given signing secret
func NewResolver(secret string) *Resolver {
	return &Resolver{secret: []byte(secret)}
}

// Resolve extracts credentials from the request and returns the authenticated
// principal. The Authorization header is checked first, then the token cookie.
func (r *Resolver) Resolve(req *http.Request) (*models.Principal, error) {
	if authHeader := req.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return nil, ErrInvalidToken
		}
		return r.Verify(parts[1])
	}

	if cookie, err := req.Cookie(TokenCookieName); err == nil && cookie.Value != "" {
		return r.Verify(cookie.Value)
	}

	return nil, ErrNoCredentials
}

// Verify validates a raw token string and returns its principal
func (r *Resolver) Verify(raw string) (*models.Principal, error) {
	tok, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.HS256, r.secret),
		jwt.WithValidate(true),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	id, err := uuid.Parse(tok.Subject())
	if err != nil {
		return nil, ErrInvalidToken
	}

	principal := &models.Principal{ID: id}
	if email, ok := tok.Get("email"); ok {
		if s, ok := email.(string); ok {
			principal.Email = s
		}
	}

	return principal, nil
}

// Issue signs a token for the given principal. Token issuance beyond this
// (refresh, revocation, external providers) is out of scope; this exists so
// the auth mode is usable from the CLI and testable end to end.
func (r *Resolver) Issue(principal *models.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	builder := jwt.NewBuilder().
		Subject(principal.ID.String()).
		IssuedAt(now).
		Expiration(now.Add(ttl))

	if principal.Email != "" {
		builder = builder.Claim("email", principal.Email)
	}

	tok, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("failed to build token: %w", err)
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, r.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return string(signed), nil
}
