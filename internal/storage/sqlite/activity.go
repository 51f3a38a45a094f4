package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/roomieboard/internal/models"
)

// AddNotification persists a new activity feed entry.
func (s *SQLiteStore) AddNotification(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notifications (id, message, type, read, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.Message, string(n.Type), n.Read, n.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// ListNotifications returns up to limit notifications, newest first.
func (s *SQLiteStore) ListNotifications(ctx context.Context, limit int) ([]models.Notification, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, message, type, read, created_at
		 FROM notifications ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var (
			n         models.Notification
			kind      string
			createdAt int64
		)
		if err := rows.Scan(&n.ID, &n.Message, &kind, &n.Read, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Type = models.NotificationType(kind)
		n.CreatedAt = time.UnixMilli(createdAt).UTC()
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}
	return notifications, nil
}

// MarkNotificationsRead marks the given notifications read, or every unread
// notification when ids is empty.
func (s *SQLiteStore) MarkNotificationsRead(ctx context.Context, ids []string) (int64, error) {
	query := "UPDATE notifications SET read = 1 WHERE read = 0"
	if len(ids) > 0 {
		query += " AND id IN (" + placeholders(len(ids)) + ")"
	}

	res, err := s.db.ExecContext(ctx, query, toArgs(ids)...)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count updated notifications: %w", err)
	}
	return n, nil
}
