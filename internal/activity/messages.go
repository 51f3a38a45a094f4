package activity

import (
	"fmt"

	"github.com/mmynk/roomieboard/internal/models"
	"github.com/mmynk/roomieboard/internal/money"
	"github.com/mmynk/roomieboard/internal/roster"
)

// BillAdded describes a newly created bill.
func BillAdded(dir *roster.Directory, f *money.Formatter, bill models.Bill) string {
	head := fmt.Sprintf("%s added bill: %s - %s", dir.Name(bill.PaidBy), bill.Description, f.Format(bill.TotalAmount))
	switch s := bill.Split.(type) {
	case models.SplitEvenly:
		return fmt.Sprintf("%s split among %d people", head, len(s.Members))
	case models.FullyOwedBy:
		return fmt.Sprintf("%s owed by %s", head, dir.Name(s.Debtor))
	default:
		return head
	}
}

// BillToggled describes a settle or reopen. bill carries the new state.
func BillToggled(dir *roster.Directory, bill models.Bill) string {
	verb := "reopened"
	if bill.IsSettled {
		verb = "settled"
	}
	return fmt.Sprintf("%s %s bill: %s", dir.Name(bill.PaidBy), verb, bill.Description)
}

// BillDeleted describes a removed bill.
func BillDeleted(dir *roster.Directory, bill models.Bill) string {
	return fmt.Sprintf("%s deleted bill: %s", dir.Name(bill.PaidBy), bill.Description)
}

// Commented describes a new comment on a bill.
func Commented(dir *roster.Directory, authorID string, bill models.Bill) string {
	return fmt.Sprintf("%s commented on bill: %s", dir.Name(authorID), bill.Description)
}

// Joined describes a roommate creating their profile.
func Joined(r models.Roommate) string {
	return fmt.Sprintf("%s joined the household", r.Name)
}
