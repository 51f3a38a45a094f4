package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/roomieboard/internal/models"
)

// AddNotification persists a new activity feed entry.
func (s *PostgresStore) AddNotification(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx,
		"INSERT INTO notifications (id, message, type, read, created_at) VALUES ($1, $2, $3, $4, $5)",
		n.ID, n.Message, string(n.Type), n.Read, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// ListNotifications returns up to limit notifications, newest first.
func (s *PostgresStore) ListNotifications(ctx context.Context, limit int) ([]models.Notification, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, message, type, read, created_at FROM notifications ORDER BY created_at DESC, seq DESC LIMIT $1",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var (
			n    models.Notification
			kind string
		)
		if err := rows.Scan(&n.ID, &n.Message, &kind, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Type = models.NotificationType(kind)
		n.CreatedAt = n.CreatedAt.UTC()
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}
	return notifications, nil
}

// MarkNotificationsRead marks the given notifications read, or every unread
// notification when ids is empty.
func (s *PostgresStore) MarkNotificationsRead(ctx context.Context, ids []string) (int64, error) {
	query := "UPDATE notifications SET read = TRUE WHERE NOT read"
	var args []any
	if len(ids) > 0 {
		query += " AND id = ANY($1)"
		args = append(args, ids)
	}

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return tag.RowsAffected(), nil
}
