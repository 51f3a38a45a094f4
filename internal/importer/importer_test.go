package importer

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/roomieboard/internal/ledger"
	"github.com/mmynk/roomieboard/internal/models"
	"github.com/mmynk/roomieboard/internal/storage"
	"github.com/mmynk/roomieboard/internal/storage/sqlite"
)

const legacyJSON = `{
  "roommates": [],
  "chores": [{"id": "c1", "description": "Trash", "assignedTo": "bob"}],
  "bills": [
    {
      "id": "lq1",
      "description": "Groceries",
      "totalAmount": 90,
      "paidBy": "alice",
      "splitBetween": ["bob", "carol", "alice"],
      "comments": [{"id": "k1", "authorId": "bob", "text": "thanks!", "timestamp": "2024-03-02T10:00:00.000Z"}],
      "createdAt": "2024-03-01T09:30:00.000Z",
      "dueDate": "2024-03-10"
    },
    {
      "id": "lq2",
      "description": "Concert",
      "totalAmount": 45.5,
      "paidBy": "carol",
      "fullOwedBy": "bob",
      "comments": [],
      "createdAt": "2024-03-03T09:30:00.000Z",
      "isSettled": true
    },
    {
      "id": "lq3",
      "description": "Broken",
      "totalAmount": 10,
      "paidBy": "bob",
      "splitBetween": [],
      "comments": [],
      "createdAt": "2024-03-04T09:30:00.000Z"
    }
  ],
  "notifications": [
    {"id": "n2", "message": "Carol added bill: Concert - $45.50 owed by Bob", "timestamp": "2024-03-03T09:30:00.000Z", "type": "bill", "read": false},
    {"id": "n1", "message": "Bob completed chore: Trash", "timestamp": "2024-03-02T09:30:00.000Z", "type": "chore", "read": true}
  ],
  "currentUser": null
}`

func TestConvertBill(t *testing.T) {
	yes := true
	tests := []struct {
		name      string
		in        LegacyBill
		wantSplit models.Split
		wantWarn  bool
		wantSkip  bool
	}{
		{
			name:      "split including payer",
			in:        LegacyBill{ID: "a", TotalAmount: decimal.NewFromInt(30), PaidBy: "alice", SplitBetween: []string{"alice", "bob"}},
			wantSplit: models.SplitEvenly{Members: []string{"alice", "bob"}},
		},
		{
			name:      "split without payer",
			in:        LegacyBill{ID: "b", TotalAmount: decimal.NewFromInt(30), PaidBy: "alice", SplitBetween: []string{"bob", "carol"}},
			wantSplit: models.SplitEvenly{Members: []string{"alice", "bob", "carol"}},
			wantWarn:  true,
		},
		{
			name:      "full owed",
			in:        LegacyBill{ID: "c", TotalAmount: decimal.NewFromInt(30), PaidBy: "alice", FullOwedBy: "bob", IsSettled: &yes},
			wantSplit: models.FullyOwedBy{Debtor: "bob"},
		},
		{
			name:      "full owed wins over split",
			in:        LegacyBill{ID: "d", TotalAmount: decimal.NewFromInt(30), PaidBy: "alice", FullOwedBy: "bob", SplitBetween: []string{"alice", "carol"}},
			wantSplit: models.FullyOwedBy{Debtor: "bob"},
			wantWarn:  true,
		},
		{
			name:      "full owed by payer falls back to split",
			in:        LegacyBill{ID: "e", TotalAmount: decimal.NewFromInt(30), PaidBy: "alice", FullOwedBy: "alice", SplitBetween: []string{"alice", "bob"}},
			wantSplit: models.SplitEvenly{Members: []string{"alice", "bob"}},
		},
		{
			name:      "neither mode",
			in:        LegacyBill{ID: "f", TotalAmount: decimal.NewFromInt(30), PaidBy: "alice"},
			wantSplit: nil,
		},
		{
			name:     "empty split",
			in:       LegacyBill{ID: "g", TotalAmount: decimal.NewFromInt(30), PaidBy: "alice", SplitBetween: []string{}},
			wantSkip: true,
		},
		{
			name:     "zero amount",
			in:       LegacyBill{ID: "h", PaidBy: "alice", FullOwedBy: "bob"},
			wantSkip: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bill, warnings, err := ConvertBill(tt.in)
			if tt.wantSkip {
				if !errors.Is(err, ErrSkipBill) {
					t.Fatalf("expected ErrSkipBill, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ConvertBill failed: %v", err)
			}
			if (len(warnings) > 0) != tt.wantWarn {
				t.Errorf("warnings = %v, wantWarn %v", warnings, tt.wantWarn)
			}
			if !sameSplit(bill.Split, tt.wantSplit) {
				t.Errorf("split = %#v, want %#v", bill.Split, tt.wantSplit)
			}
			if bill.IsSettled != (tt.in.IsSettled != nil && *tt.in.IsSettled) {
				t.Errorf("is_settled = %v", bill.IsSettled)
			}
		})
	}
}

func sameSplit(a, b models.Split) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case models.FullyOwedBy:
		y, ok := b.(models.FullyOwedBy)
		return ok && x == y
	case models.SplitEvenly:
		y, ok := b.(models.SplitEvenly)
		if !ok || len(x.Members) != len(y.Members) {
			return false
		}
		for i := range x.Members {
			if x.Members[i] != y.Members[i] {
				return false
			}
		}
		return true
	}
	return false
}

// Converted bills that need no normalization evaluate exactly as before.
func TestConvertBill_PreservesEvaluation(t *testing.T) {
	lb := LegacyBill{ID: "x", TotalAmount: decimal.NewFromInt(90), PaidBy: "alice", FullOwedBy: "alice", SplitBetween: []string{"alice", "bob", "carol"}}
	bill, _, err := ConvertBill(lb)
	if err != nil {
		t.Fatalf("ConvertBill failed: %v", err)
	}
	want := map[string]string{"alice": "-60", "bob": "30", "carol": "30", "dave": "0"}
	for id, w := range want {
		if got := ledger.Evaluate(bill, id); !got.Equal(decimal.RequireFromString(w)) {
			t.Errorf("Evaluate(%s) = %s, want %s", id, got, w)
		}
	}
}

func TestImport(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "import-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()
	defer os.Remove(tmpFile.Name())

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	doc, err := ParseDocument(strings.NewReader(legacyJSON))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}

	ctx := context.Background()
	res, err := New(store).Import(ctx, doc)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if res.BillsImported != 2 || res.BillsSkipped != 1 || res.NotificationsImported != 1 {
		t.Errorf("result = %+v", res)
	}

	groceries, err := store.GetBill(ctx, "lq1")
	if err != nil {
		t.Fatalf("GetBill failed: %v", err)
	}
	if groceries.IsSettled {
		t.Error("missing isSettled should import as open")
	}
	if groceries.DueDate == nil || groceries.DueDate.Format(models.DateLayout) != "2024-03-10" {
		t.Errorf("due date = %v", groceries.DueDate)
	}
	if len(groceries.Comments) != 1 || groceries.Comments[0].Text != "thanks!" {
		t.Errorf("comments = %+v", groceries.Comments)
	}
	if got := ledger.Evaluate(*groceries, "bob"); !got.Equal(decimal.NewFromInt(30)) {
		t.Errorf("bob owes %s, want 30", got)
	}

	concert, err := store.GetBill(ctx, "lq2")
	if err != nil {
		t.Fatalf("GetBill failed: %v", err)
	}
	if !concert.IsSettled || !concert.TotalAmount.Equal(decimal.RequireFromString("45.5")) {
		t.Errorf("concert = %+v", concert)
	}

	if _, err := store.GetBill(ctx, "lq3"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("empty-split bill should be skipped, got %v", err)
	}

	// Importing again changes nothing.
	again, err := New(store).Import(ctx, doc)
	if err != nil {
		t.Fatalf("second Import failed: %v", err)
	}
	if again.BillsImported != 0 || again.NotificationsImported != 0 {
		t.Errorf("second import = %+v", again)
	}
}
