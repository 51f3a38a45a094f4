package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/roomieboard/internal/activity"
	"github.com/mmynk/roomieboard/internal/models"
	"github.com/mmynk/roomieboard/internal/roster"
	"github.com/mmynk/roomieboard/internal/storage"
	"github.com/mmynk/roomieboard/pkg/roomiev1"
)

// RosterService implements roomie.v1.RosterService.
type RosterService struct {
	store    storage.Store
	recorder *activity.Recorder
}

func NewRosterService(store storage.Store, recorder *activity.Recorder) *RosterService {
	return &RosterService{store: store, recorder: recorder}
}

// ListRoommates returns the household in join order.
func (s *RosterService) ListRoommates(ctx context.Context, req *connect.Request[roomiev1.ListRoommatesRequest]) (*connect.Response[roomiev1.ListRoommatesResponse], error) {
	if _, err := requireIdentity(ctx); err != nil {
		return nil, err
	}

	roommates, err := s.store.ListRoommates(ctx)
	if err != nil {
		slog.Error("ListRoommates failed", "error", err)
		return nil, storeError(err)
	}

	out := make([]roomiev1.Roommate, len(roommates))
	for i, r := range roommates {
		out[i] = toAPIRoommate(r)
	}
	return connect.NewResponse(&roomiev1.ListRoommatesResponse{Roommates: out}), nil
}

func (s *RosterService) GetRoommate(ctx context.Context, req *connect.Request[roomiev1.GetRoommateRequest]) (*connect.Response[roomiev1.GetRoommateResponse], error) {
	if _, err := requireIdentity(ctx); err != nil {
		return nil, err
	}

	r, err := s.store.GetRoommate(ctx, req.Msg.RoommateID)
	if err != nil {
		slog.Error("GetRoommate failed", "roommate_id", req.Msg.RoommateID, "error", err)
		return nil, storeError(err)
	}
	return connect.NewResponse(&roomiev1.GetRoommateResponse{Roommate: toAPIRoommate(*r)}), nil
}

// UpsertProfile creates or updates the caller's roster entry. A missing name
// falls back to the caller's display name and a missing avatar keeps the
// current one or picks an emoji.
func (s *RosterService) UpsertProfile(ctx context.Context, req *connect.Request[roomiev1.UpsertProfileRequest]) (*connect.Response[roomiev1.UpsertProfileResponse], error) {
	caller, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetRoommate(ctx, caller.RoommateID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		slog.Error("UpsertProfile failed to get roommate", "roommate_id", caller.RoommateID, "error", err)
		return nil, storeError(err)
	}
	isNew := existing == nil

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" && !isNew {
		name = existing.Name
	}
	if name == "" {
		name = roster.NewDirectory(nil, caller).Name(caller.RoommateID)
	}

	avatar := strings.TrimSpace(req.Msg.AvatarURL)
	if avatar == "" && !isNew {
		avatar = existing.AvatarURL
	}
	if avatar == "" {
		avatar = roster.AvatarFor(caller.RoommateID)
	}

	r := &models.Roommate{ID: caller.RoommateID, Name: name, AvatarURL: avatar}
	if err := s.store.UpsertRoommate(ctx, r); err != nil {
		slog.Error("UpsertProfile failed", "roommate_id", caller.RoommateID, "error", err)
		return nil, storeError(err)
	}

	if isNew {
		slog.Info("Roommate joined", "roommate_id", r.ID, "name", r.Name)
		if _, err := s.recorder.Record(ctx, activity.Joined(*r), models.NotificationRoommate); err != nil {
			slog.Error("Failed to record roommate activity", "roommate_id", r.ID, "error", err)
		}
	}

	return connect.NewResponse(&roomiev1.UpsertProfileResponse{Roommate: toAPIRoommate(*r)}), nil
}
