// Package ledger computes each roommate's signed position on household bills.
//
// Sign convention: a positive amount means the roommate owes money, a
// negative amount means the roommate is owed money, zero means no stake.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/roomieboard/internal/models"
)

// Evaluate returns roommateID's signed position on a single bill.
//
// Precedence:
//  1. the payer is owed the full amount when someone else owes it all, or
//     everyone else's share of an even split, and nothing otherwise
//  2. the full debtor owes the full amount
//  3. a split member owes an even share
//  4. anyone else has no stake
//
// An even split with no members divides by zero and panics; callers must
// never build one.
func Evaluate(bill models.Bill, roommateID string) decimal.Decimal {
	if roommateID == bill.PaidBy {
		if full, ok := bill.Split.(models.FullyOwedBy); ok && full.Debtor != roommateID {
			return bill.TotalAmount.Neg()
		}
		if even, ok := bill.Split.(models.SplitEvenly); ok {
			share := evenShare(bill.TotalAmount, even)
			return bill.TotalAmount.Sub(share).Neg()
		}
		return decimal.Zero
	}

	switch s := bill.Split.(type) {
	case models.FullyOwedBy:
		if s.Debtor == roommateID {
			return bill.TotalAmount
		}
	case models.SplitEvenly:
		if s.Contains(roommateID) {
			return evenShare(bill.TotalAmount, s)
		}
	}
	return decimal.Zero
}

// Outstanding sums roommateID's position over every unsettled bill.
func Outstanding(bills []models.Bill, roommateID string) decimal.Decimal {
	total := decimal.Zero
	for _, bill := range bills {
		if bill.IsSettled {
			continue
		}
		total = total.Add(Evaluate(bill, roommateID))
	}
	return total
}

func evenShare(total decimal.Decimal, s models.SplitEvenly) decimal.Decimal {
	return total.Div(decimal.NewFromInt(int64(len(s.Members))))
}
