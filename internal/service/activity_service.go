package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/roomieboard/internal/storage"
	"github.com/mmynk/roomieboard/pkg/roomiev1"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

// ActivityService implements roomie.v1.ActivityService.
type ActivityService struct {
	store storage.ActivityStore
}

func NewActivityService(store storage.ActivityStore) *ActivityService {
	return &ActivityService{store: store}
}

// ListActivity returns the newest feed entries.
func (s *ActivityService) ListActivity(ctx context.Context, req *connect.Request[roomiev1.ListActivityRequest]) (*connect.Response[roomiev1.ListActivityResponse], error) {
	if _, err := requireIdentity(ctx); err != nil {
		return nil, err
	}

	limit := req.Msg.Limit
	switch {
	case limit < 0:
		return nil, invalidArgument("limit must not be negative")
	case limit == 0:
		limit = defaultActivityLimit
	case limit > maxActivityLimit:
		limit = maxActivityLimit
	}

	notifications, err := s.store.ListNotifications(ctx, limit)
	if err != nil {
		slog.Error("ListActivity failed", "error", err)
		return nil, storeError(err)
	}

	out := make([]roomiev1.Notification, len(notifications))
	for i, n := range notifications {
		out[i] = toAPINotification(n)
	}
	return connect.NewResponse(&roomiev1.ListActivityResponse{Notifications: out}), nil
}

// MarkActivityRead marks feed entries read.
func (s *ActivityService) MarkActivityRead(ctx context.Context, req *connect.Request[roomiev1.MarkActivityReadRequest]) (*connect.Response[roomiev1.MarkActivityReadResponse], error) {
	if _, err := requireIdentity(ctx); err != nil {
		return nil, err
	}

	updated, err := s.store.MarkNotificationsRead(ctx, req.Msg.IDs)
	if err != nil {
		slog.Error("MarkActivityRead failed", "error", err)
		return nil, storeError(err)
	}
	return connect.NewResponse(&roomiev1.MarkActivityReadResponse{Updated: updated}), nil
}
