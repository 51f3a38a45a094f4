package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/roomieboard/internal/models"
	"github.com/mmynk/roomieboard/internal/storage"
)

// newTestStore connects to ROOMIE_TEST_DATABASE_URL and starts from empty tables.
func newTestStore(t *testing.T) *PostgresStore {
	t.Helper()
	url := os.Getenv("ROOMIE_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("ROOMIE_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	store, err := New(ctx, url)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if _, err := store.pool.Exec(ctx, "TRUNCATE bills, bill_split_members, bill_comments, roommates, notifications"); err != nil {
		t.Fatalf("Failed to reset tables: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPostgresStore_BillLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	bill := &models.Bill{
		Description: "Groceries",
		TotalAmount: decimal.RequireFromString("90.00"),
		PaidBy:      "alice",
		Split:       models.NewSplitEvenly("alice", "bob", "carol"),
	}
	if err := store.CreateBill(ctx, bill); err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}

	got, err := store.GetBill(ctx, bill.ID)
	if err != nil {
		t.Fatalf("GetBill failed: %v", err)
	}
	if !got.TotalAmount.Equal(bill.TotalAmount) {
		t.Errorf("TotalAmount = %s, want %s", got.TotalAmount, bill.TotalAmount)
	}
	if even, ok := got.Split.(models.SplitEvenly); !ok || len(even.Members) != 3 {
		t.Errorf("unexpected split: %#v", got.Split)
	}

	if err := store.AddBillComment(ctx, bill.ID, &models.Comment{AuthorID: "bob", Text: "paid you back?"}); err != nil {
		t.Fatalf("AddBillComment failed: %v", err)
	}
	settled, err := store.ToggleBillSettled(ctx, bill.ID)
	if err != nil || !settled {
		t.Fatalf("ToggleBillSettled = %v, %v; want true", settled, err)
	}

	unsettled, err := store.ListBills(ctx, storage.BillFilter{OnlyUnsettled: true})
	if err != nil {
		t.Fatalf("ListBills failed: %v", err)
	}
	if len(unsettled) != 0 {
		t.Errorf("expected no unsettled bills, got %d", len(unsettled))
	}

	if err := store.DeleteBill(ctx, bill.ID); err != nil {
		t.Fatalf("DeleteBill failed: %v", err)
	}
	if _, err := store.GetBill(ctx, bill.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresStore_RosterAndActivity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.UpsertRoommate(ctx, &models.Roommate{ID: "alice", Name: "Alice"}); err != nil {
		t.Fatalf("UpsertRoommate failed: %v", err)
	}
	roster, err := store.ListRoommates(ctx)
	if err != nil || len(roster) != 1 {
		t.Fatalf("ListRoommates = %v, %v", roster, err)
	}

	if err := store.AddNotification(ctx, &models.Notification{Message: "hello", Type: models.NotificationBill}); err != nil {
		t.Fatalf("AddNotification failed: %v", err)
	}
	n, err := store.MarkNotificationsRead(ctx, nil)
	if err != nil || n != 1 {
		t.Fatalf("MarkNotificationsRead = %d, %v; want 1", n, err)
	}
}
