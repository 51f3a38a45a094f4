package roomiev1

import "time"

type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type ListActivityRequest struct {
	// Limit defaults to 50 and is capped at 200.
	Limit int `json:"limit,omitempty"`
}

type ListActivityResponse struct {
	Notifications []Notification `json:"notifications"`
}

// MarkActivityReadRequest marks the listed notifications read, or all when IDs is empty.
type MarkActivityReadRequest struct {
	IDs []string `json:"ids,omitempty"`
}

type MarkActivityReadResponse struct {
	Updated int64 `json:"updated"`
}
