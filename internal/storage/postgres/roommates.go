package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mmynk/roomieboard/internal/models"
	"github.com/mmynk/roomieboard/internal/storage"
)

// UpsertRoommate inserts a roommate or updates their profile fields.
func (s *PostgresStore) UpsertRoommate(ctx context.Context, roommate *models.Roommate) error {
	if roommate.JoinedAt.IsZero() {
		roommate.JoinedAt = time.Now().UTC()
	}

	err := s.pool.QueryRow(ctx, `
		INSERT INTO roommates (id, name, avatar_url, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, avatar_url = EXCLUDED.avatar_url
		RETURNING joined_at`,
		roommate.ID, roommate.Name, roommate.AvatarURL, roommate.JoinedAt,
	).Scan(&roommate.JoinedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert roommate: %w", err)
	}
	roommate.JoinedAt = roommate.JoinedAt.UTC()
	return nil
}

// GetRoommate retrieves a roommate by ID.
func (s *PostgresStore) GetRoommate(ctx context.Context, roommateID string) (*models.Roommate, error) {
	roommate := &models.Roommate{}
	err := s.pool.QueryRow(ctx,
		"SELECT id, name, avatar_url, joined_at FROM roommates WHERE id = $1",
		roommateID,
	).Scan(&roommate.ID, &roommate.Name, &roommate.AvatarURL, &roommate.JoinedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("roommate %s: %w", roommateID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get roommate: %w", err)
	}
	roommate.JoinedAt = roommate.JoinedAt.UTC()
	return roommate, nil
}

// ListRoommates returns the household roster in joining order.
func (s *PostgresStore) ListRoommates(ctx context.Context) ([]models.Roommate, error) {
	rows, err := s.pool.Query(ctx, "SELECT id, name, avatar_url, joined_at FROM roommates ORDER BY joined_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list roommates: %w", err)
	}
	defer rows.Close()

	roommates := []models.Roommate{}
	for rows.Next() {
		var r models.Roommate
		if err := rows.Scan(&r.ID, &r.Name, &r.AvatarURL, &r.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan roommate: %w", err)
		}
		r.JoinedAt = r.JoinedAt.UTC()
		roommates = append(roommates, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roommates: %w", err)
	}
	return roommates, nil
}
