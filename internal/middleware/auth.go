package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/arizal132/todo-app/internal/auth"
	"github.com/arizal132/todo-app/internal/request"
	"go.uber.org/zap"
)

// Auth creates authentication middleware that resolves request credentials
// (bearer header first, then token cookie) to a principal. Requests without a
// valid principal are rejected with 401.
func Auth(resolver *auth.Resolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := resolver.Resolve(r)
			if err != nil {
				logger.Debug("auth_rejected",
					zap.String("reason", err.Error()),
					zap.String("path", r.URL.Path),
				)
				respondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := request.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]any{
		"success": false,
		"error":   message,
	}

	_ = json.NewEncoder(w).Encode(response)
}
