package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/roomieboard/internal/config"
	"github.com/mmynk/roomieboard/internal/models"
	"github.com/mmynk/roomieboard/internal/roster"
	"github.com/mmynk/roomieboard/internal/server"
)

// RosterFile is the seed file layout:
//
//	roommates:
//	  - id: 0b6f...
//	    name: Alice
//	    avatar: "🐱"
type RosterFile struct {
	Roommates []RosterEntry `yaml:"roommates"`
}

type RosterEntry struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Avatar string `yaml:"avatar"`
}

// ParseRoster decodes and validates a seed file. Entries without an avatar
// get the one derived from their ID.
func ParseRoster(r io.Reader) ([]models.Roommate, error) {
	var file RosterFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode roster: %w", err)
	}

	seen := make(map[string]bool, len(file.Roommates))
	roommates := make([]models.Roommate, 0, len(file.Roommates))
	for i, e := range file.Roommates {
		id := strings.TrimSpace(e.ID)
		name := strings.TrimSpace(e.Name)
		if id == "" {
			return nil, fmt.Errorf("roommate %d: id is required", i+1)
		}
		if name == "" {
			return nil, fmt.Errorf("roommate %s: name is required", id)
		}
		if seen[id] {
			return nil, fmt.Errorf("roommate %s: duplicate id", id)
		}
		seen[id] = true

		avatar := strings.TrimSpace(e.Avatar)
		if avatar == "" {
			avatar = roster.AvatarFor(id)
		}
		roommates = append(roommates, models.Roommate{ID: id, Name: name, AvatarURL: avatar})
	}
	return roommates, nil
}

func runSeed(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: seed needs exactly one roster file", ErrUsage)
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", fs.Arg(0), err)
	}
	defer f.Close()

	roommates, err := ParseRoster(f)
	if err != nil {
		return err
	}

	store, err := server.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	for i := range roommates {
		if err := store.UpsertRoommate(ctx, &roommates[i]); err != nil {
			return fmt.Errorf("failed to seed %s: %w", roommates[i].ID, err)
		}
		fmt.Fprintf(out, "%s %s (%s)\n", roommates[i].AvatarURL, roommates[i].Name, roommates[i].ID)
	}
	fmt.Fprintf(out, "seeded %d roommates\n", len(roommates))
	return nil
}
