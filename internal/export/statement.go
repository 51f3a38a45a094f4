// Package export renders the household ledger as XLSX and a roommate's
// balance statement as PDF.
package export

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/roomieboard/internal/ledger"
	"github.com/mmynk/roomieboard/internal/models"
	"github.com/mmynk/roomieboard/internal/roster"
)

// StatementLine is one unsettled bill on a statement.
type StatementLine struct {
	Date        time.Time
	Description string
	PaidBy      string
	DueDate     *time.Time
	Amount      decimal.Decimal
}

// Statement is a roommate's outstanding position at a point in time.
type Statement struct {
	RoommateID  string
	Name        string
	GeneratedAt time.Time
	Outstanding decimal.Decimal
	Lines       []StatementLine
}

// NewStatement collects the unsettled bills in which roommateID has a stake.
func NewStatement(bills []models.Bill, roommateID string, dir *roster.Directory, now time.Time) Statement {
	stmt := Statement{
		RoommateID:  roommateID,
		Name:        dir.Name(roommateID),
		GeneratedAt: now,
		Outstanding: ledger.Outstanding(bills, roommateID),
	}
	for _, bill := range bills {
		if bill.IsSettled {
			continue
		}
		amount := ledger.Evaluate(bill, roommateID)
		if amount.IsZero() {
			continue
		}
		stmt.Lines = append(stmt.Lines, StatementLine{
			Date:        bill.CreatedAt,
			Description: bill.Description,
			PaidBy:      dir.Name(bill.PaidBy),
			DueDate:     bill.DueDate,
			Amount:      amount,
		})
	}
	return stmt
}
