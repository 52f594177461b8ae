package models

import "time"

// Strategy represents a named trading strategy in the registry. Trades are
// attributed to a strategy by name or by a notes-text match.
type Strategy struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
