package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/roomieboard/internal/models"
)

// cent is the smallest amount worth settling; anything below is division noise.
var cent = decimal.New(1, -2)

// RoommateBalance is one roommate's outstanding position across all unsettled bills.
type RoommateBalance struct {
	RoommateID  string
	Outstanding decimal.Decimal // Positive = owes money, Negative = is owed money
}

// Transfer is a suggested payment that clears debts between two roommates.
type Transfer struct {
	From   string // Roommate who owes
	To     string // Roommate who is owed
	Amount decimal.Decimal
}

// HouseholdBalances computes the outstanding balance of every roommate in
// roommateIDs plus anyone else with a stake in an unsettled bill.
// The result is sorted by roommate ID.
func HouseholdBalances(bills []models.Bill, roommateIDs []string) []RoommateBalance {
	seen := make(map[string]bool)
	var ids []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, id := range roommateIDs {
		add(id)
	}
	for i := range bills {
		if bills[i].IsSettled {
			continue
		}
		for _, id := range bills[i].Participants() {
			add(id)
		}
	}
	sort.Strings(ids)

	balances := make([]RoommateBalance, 0, len(ids))
	for _, id := range ids {
		balances = append(balances, RoommateBalance{
			RoommateID:  id,
			Outstanding: Outstanding(bills, id),
		})
	}
	return balances
}

// SuggestTransfers matches roommates who owe with roommates who are owed,
// largest amounts first, to settle the household in few payments.
// Amounts below one cent are ignored.
func SuggestTransfers(balances []RoommateBalance) []Transfer {
	var debtors, creditors []RoommateBalance
	for _, b := range balances {
		switch {
		case b.Outstanding.GreaterThanOrEqual(cent):
			debtors = append(debtors, b)
		case b.Outstanding.Neg().GreaterThanOrEqual(cent):
			creditors = append(creditors, RoommateBalance{RoommateID: b.RoommateID, Outstanding: b.Outstanding.Neg()})
		}
	}
	byAmount := func(list []RoommateBalance) {
		sort.SliceStable(list, func(i, j int) bool {
			if c := list[i].Outstanding.Cmp(list[j].Outstanding); c != 0 {
				return c > 0
			}
			return list[i].RoommateID < list[j].RoommateID
		})
	}
	byAmount(debtors)
	byAmount(creditors)

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := decimal.Min(debtors[i].Outstanding, creditors[j].Outstanding)
		if amount.GreaterThanOrEqual(cent) {
			transfers = append(transfers, Transfer{
				From:   debtors[i].RoommateID,
				To:     creditors[j].RoommateID,
				Amount: amount.Round(2),
			})
		}

		debtors[i].Outstanding = debtors[i].Outstanding.Sub(amount)
		creditors[j].Outstanding = creditors[j].Outstanding.Sub(amount)

		if debtors[i].Outstanding.LessThan(cent) {
			i++
		}
		if creditors[j].Outstanding.LessThan(cent) {
			j++
		}
	}
	return transfers
}
