// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/roomieboard/internal/models"
)

// ErrNotFound is returned (wrapped) when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// BillFilter narrows ListBills.
type BillFilter struct {
	// OnlyUnsettled drops settled bills from the result.
	OnlyUnsettled bool
}

// BillStore is the household's bill collection.
type BillStore interface {
	// CreateBill persists a new bill.
	// bill.ID and bill.CreatedAt are populated by the store when empty.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// GetBill retrieves a bill, its split and its comments.
	GetBill(ctx context.Context, billID string) (*models.Bill, error)

	// ListBills returns bills newest first.
	ListBills(ctx context.Context, filter BillFilter) ([]models.Bill, error)

	// ToggleBillSettled flips the settled flag and returns the new value.
	ToggleBillSettled(ctx context.Context, billID string) (bool, error)

	// AddBillComment appends a comment to a bill.
	// comment.ID and comment.CreatedAt are populated by the store when empty.
	AddBillComment(ctx context.Context, billID string, comment *models.Comment) error

	// DeleteBill removes a bill with its split and comments.
	DeleteBill(ctx context.Context, billID string) error
}

// RosterStore holds household members.
type RosterStore interface {
	// UpsertRoommate inserts a roommate or updates name and avatar.
	// JoinedAt is kept from the first insert.
	UpsertRoommate(ctx context.Context, roommate *models.Roommate) error
	GetRoommate(ctx context.Context, roommateID string) (*models.Roommate, error)
	ListRoommates(ctx context.Context) ([]models.Roommate, error)
}

// ActivityStore holds the household activity feed.
type ActivityStore interface {
	AddNotification(ctx context.Context, n *models.Notification) error
	// ListNotifications returns up to limit notifications, newest first.
	ListNotifications(ctx context.Context, limit int) ([]models.Notification, error)
	// MarkNotificationsRead marks the given notifications read, or all of
	// them when ids is empty, and returns how many changed.
	MarkNotificationsRead(ctx context.Context, ids []string) (int64, error)
}

// Store defines the interface for all storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	BillStore
	RosterStore
	ActivityStore

	// Close releases any resources held by the store.
	Close() error
}
