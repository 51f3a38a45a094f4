package roomiev1

import "time"

type Roommate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url"`
	JoinedAt  time.Time `json:"joined_at"`
}

type ListRoommatesRequest struct{}

type ListRoommatesResponse struct {
	Roommates []Roommate `json:"roommates"`
}

type GetRoommateRequest struct {
	RoommateID string `json:"roommate_id"`
}

type GetRoommateResponse struct {
	Roommate Roommate `json:"roommate"`
}

// UpsertProfileRequest sets the caller's own roster entry.
type UpsertProfileRequest struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type UpsertProfileResponse struct {
	Roommate Roommate `json:"roommate"`
}
