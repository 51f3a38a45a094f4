// Package roster resolves roommate IDs to display names and avatars.
package roster

import (
	"hash/fnv"
	"strings"

	"github.com/mmynk/roomieboard/internal/auth"
	"github.com/mmynk/roomieboard/internal/models"
)

// DefaultAvatar is shown for roommates without an avatar.
const DefaultAvatar = "👤"

// AvatarEmojis are assigned to new roommates who did not pick an avatar.
var AvatarEmojis = []string{
	"🐱", "🐶", "🦊", "🐻", "🐼", "🐨", "🐯", "🦁", "🐸", "🐷",
	"🐵", "🦔", "🐰", "🐹", "🐭", "🐺", "🦝", "🦓", "🦄", "🐴",
}

// AvatarFor picks a stable avatar from AvatarEmojis for a roommate ID.
func AvatarFor(roommateID string) string {
	h := fnv.New32a()
	h.Write([]byte(roommateID))
	return AvatarEmojis[h.Sum32()%uint32(len(AvatarEmojis))]
}

// Directory looks up roommates as seen by one caller.
type Directory struct {
	byID   map[string]models.Roommate
	caller auth.Identity
}

// NewDirectory builds a directory over the roster. caller may be the zero
// Identity when no one is signed in.
func NewDirectory(roommates []models.Roommate, caller auth.Identity) *Directory {
	byID := make(map[string]models.Roommate, len(roommates))
	for _, r := range roommates {
		byID[r.ID] = r
	}
	return &Directory{byID: byID, caller: caller}
}

// Name returns the display name for a roommate ID.
//
// The caller's own ID resolves to the name in their token, then their email's
// local part, then "You". Other IDs resolve to the roster name. IDs missing
// from the roster render as "Roommate" when they look like a UUID (a member
// whose profile has not been created yet) and "Unknown" otherwise.
func (d *Directory) Name(roommateID string) string {
	if d.caller.RoommateID != "" && roommateID == d.caller.RoommateID {
		if d.caller.Name != "" {
			return d.caller.Name
		}
		if local, _, _ := strings.Cut(d.caller.Email, "@"); local != "" {
			return local
		}
		return "You"
	}
	if r, ok := d.byID[roommateID]; ok {
		return r.Name
	}
	if len(roommateID) == 36 && strings.Contains(roommateID, "-") {
		return "Roommate"
	}
	return "Unknown"
}

// Avatar returns the roommate's avatar or DefaultAvatar.
func (d *Directory) Avatar(roommateID string) string {
	if r, ok := d.byID[roommateID]; ok && r.AvatarURL != "" {
		return r.AvatarURL
	}
	return DefaultAvatar
}

// Lookup returns the roster entry for a roommate ID.
func (d *Directory) Lookup(roommateID string) (models.Roommate, bool) {
	r, ok := d.byID[roommateID]
	return r, ok
}
