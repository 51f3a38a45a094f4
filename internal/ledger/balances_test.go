package ledger

import (
	"testing"

	"github.com/mmynk/roomieboard/internal/models"
)

func TestHouseholdBalances(t *testing.T) {
	settled := fullBill("500", "dave", "alice")
	settled.IsSettled = true

	bills := []models.Bill{
		splitBill("90", "alice", "alice", "bob", "carol"),
		fullBill("60", "bob", "carol"),
		settled,
	}

	balances := HouseholdBalances(bills, []string{"alice", "erin"})

	want := map[string]string{
		"alice": "-60",
		"bob":   "-30",
		"carol": "90",
		"erin":  "0",
	}
	if len(balances) != len(want) {
		t.Fatalf("expected %d balances, got %d: %+v", len(want), len(balances), balances)
	}
	for i, b := range balances {
		if i > 0 && balances[i-1].RoommateID >= b.RoommateID {
			t.Errorf("balances not sorted by roommate: %+v", balances)
		}
		if !b.Outstanding.Equal(amount(want[b.RoommateID])) {
			t.Errorf("%s outstanding = %s, want %s", b.RoommateID, b.Outstanding, want[b.RoommateID])
		}
	}
}

func TestSuggestTransfers(t *testing.T) {
	tests := []struct {
		name     string
		balances []RoommateBalance
		want     []Transfer
	}{
		{
			name: "one debtor pays two creditors",
			balances: []RoommateBalance{
				{RoommateID: "alice", Outstanding: amount("-60")},
				{RoommateID: "bob", Outstanding: amount("-30")},
				{RoommateID: "carol", Outstanding: amount("90")},
			},
			want: []Transfer{
				{From: "carol", To: "alice", Amount: amount("60")},
				{From: "carol", To: "bob", Amount: amount("30")},
			},
		},
		{
			name: "division noise is ignored",
			balances: []RoommateBalance{
				{RoommateID: "alice", Outstanding: amount("-66.6666666666666667")},
				{RoommateID: "bob", Outstanding: amount("33.3333333333333333")},
				{RoommateID: "carol", Outstanding: amount("33.3333333333333333")},
			},
			want: []Transfer{
				{From: "bob", To: "alice", Amount: amount("33.33")},
				{From: "carol", To: "alice", Amount: amount("33.33")},
			},
		},
		{
			name: "everyone settled",
			balances: []RoommateBalance{
				{RoommateID: "alice", Outstanding: amount("0")},
				{RoommateID: "bob", Outstanding: amount("0.001")},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestTransfers(tt.balances)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d transfers, got %d: %+v", len(tt.want), len(got), got)
			}
			for i := range got {
				if got[i].From != tt.want[i].From || got[i].To != tt.want[i].To || !got[i].Amount.Equal(tt.want[i].Amount) {
					t.Errorf("transfer %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
