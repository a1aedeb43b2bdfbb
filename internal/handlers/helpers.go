package handlers

import (
	"encoding/json"
	"net/http"
	"unicode/utf8"
)

// maxErrorMessageLength caps error messages so internal detail never leaks
// wholesale.
const maxErrorMessageLength = 200

// envelope is the uniform response wrapper used by every endpoint.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// respondJSON sends a success envelope
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// truncateMessage caps s at limit bytes, backing off to a rune boundary so
// multibyte text is never cut mid-sequence.
func truncateMessage(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// respondJSONError sends a failure envelope with a sanitized message
func respondJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	message = truncateMessage(message, maxErrorMessageLength)

	if err := json.NewEncoder(w).Encode(envelope{Success: false, Error: message}); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
