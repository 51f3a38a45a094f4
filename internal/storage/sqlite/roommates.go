package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/roomieboard/internal/models"
	"github.com/mmynk/roomieboard/internal/storage"
)

// UpsertRoommate inserts a roommate or updates their profile fields.
// On update, roommate.JoinedAt is refreshed from the stored row.
func (s *SQLiteStore) UpsertRoommate(ctx context.Context, roommate *models.Roommate) error {
	if roommate.JoinedAt.IsZero() {
		roommate.JoinedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO roommates (id, name, avatar_url, joined_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name, avatar_url = excluded.avatar_url
		RETURNING joined_at
	`

	var joinedAt int64
	err := s.db.QueryRowContext(ctx, query,
		roommate.ID,
		roommate.Name,
		roommate.AvatarURL,
		roommate.JoinedAt.UnixMilli(),
	).Scan(&joinedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert roommate: %w", err)
	}

	roommate.JoinedAt = time.UnixMilli(joinedAt).UTC()
	return nil
}

// GetRoommate retrieves a roommate by ID.
func (s *SQLiteStore) GetRoommate(ctx context.Context, roommateID string) (*models.Roommate, error) {
	query := `
		SELECT id, name, avatar_url, joined_at
		FROM roommates
		WHERE id = ?
	`

	roommate, err := scanRoommate(s.db.QueryRowContext(ctx, query, roommateID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("roommate %s: %w", roommateID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get roommate: %w", err)
	}
	return roommate, nil
}

// ListRoommates returns the household roster in joining order.
func (s *SQLiteStore) ListRoommates(ctx context.Context) ([]models.Roommate, error) {
	query := `
		SELECT id, name, avatar_url, joined_at
		FROM roommates
		ORDER BY joined_at, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list roommates: %w", err)
	}
	defer rows.Close()

	roommates := []models.Roommate{}
	for rows.Next() {
		roommate, err := scanRoommate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan roommate: %w", err)
		}
		roommates = append(roommates, *roommate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roommates: %w", err)
	}
	return roommates, nil
}

func scanRoommate(row rowScanner) (*models.Roommate, error) {
	roommate := &models.Roommate{}
	var joinedAt int64
	if err := row.Scan(&roommate.ID, &roommate.Name, &roommate.AvatarURL, &joinedAt); err != nil {
		return nil, err
	}
	roommate.JoinedAt = time.UnixMilli(joinedAt).UTC()
	return roommate, nil
}
