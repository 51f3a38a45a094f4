package models

import "time"

// Roommate is a household member.
// ID is the stable identifier issued by the external identity provider.
type Roommate struct {
	ID        string
	Name      string
	AvatarURL string
	JoinedAt  time.Time
}
