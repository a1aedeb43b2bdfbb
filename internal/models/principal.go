package models

import "github.com/google/uuid"

// Principal is the authenticated identity resolved from a request's credentials.
type Principal struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email,omitempty"`
}
