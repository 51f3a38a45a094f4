// Package service implements the roomie.v1 Connect services.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/roomieboard/internal/auth"
	"github.com/mmynk/roomieboard/internal/middleware"
	"github.com/mmynk/roomieboard/internal/models"
	"github.com/mmynk/roomieboard/internal/roster"
	"github.com/mmynk/roomieboard/internal/storage"
)

var errAuthRequired = errors.New("authentication required")

// requireIdentity returns the authenticated caller or an Unauthenticated error.
func requireIdentity(ctx context.Context) (auth.Identity, error) {
	id, ok := middleware.GetIdentity(ctx)
	if !ok || id.RoommateID == "" {
		return auth.Identity{}, connect.NewError(connect.CodeUnauthenticated, errAuthRequired)
	}
	return id, nil
}

// storeError maps a storage error to a Connect error.
func storeError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

// directory loads the roster as seen by the caller. A roster failure
// degrades to fallback names instead of failing the call.
func directory(ctx context.Context, store storage.RosterStore, caller auth.Identity) *roster.Directory {
	roommates, err := store.ListRoommates(ctx)
	if err != nil {
		slog.Warn("Failed to load roster for display names", "error", err)
		roommates = nil
	}
	return roster.NewDirectory(roommates, caller)
}

func invalidArgument(format string, args ...any) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

func roommateIDs(roommates []models.Roommate) []string {
	ids := make([]string, len(roommates))
	for i, r := range roommates {
		ids[i] = r.ID
	}
	return ids
}
