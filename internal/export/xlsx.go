package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mmynk/roomieboard/internal/ledger"
	"github.com/mmynk/roomieboard/internal/models"
	"github.com/mmynk/roomieboard/internal/money"
	"github.com/mmynk/roomieboard/internal/roster"
)

const (
	billsSheet    = "bills"
	balancesSheet = "balances"
)

var billHeaders = []string{"Created", "Description", "Paid by", "Total", "Split", "Due", "Settled"}

// BuildLedgerXLSX renders every bill with each roommate's position on it,
// plus a sheet of outstanding balances.
func BuildLedgerXLSX(bills []models.Bill, roommateIDs []string, dir *roster.Directory, f *money.Formatter) ([]byte, error) {
	balances := ledger.HouseholdBalances(bills, roommateIDs)
	ids := make([]string, len(balances))
	for i, b := range balances {
		ids[i] = b.RoommateID
	}

	x := excelize.NewFile()
	defer x.Close()
	x.SetSheetName("Sheet1", billsSheet)
	if _, err := x.NewSheet(balancesSheet); err != nil {
		return nil, fmt.Errorf("failed to add balances sheet: %w", err)
	}

	header := make([]any, 0, len(billHeaders)+len(ids))
	for _, h := range billHeaders {
		header = append(header, h)
	}
	for _, id := range ids {
		header = append(header, dir.Name(id))
	}
	if err := x.SetSheetRow(billsSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, bill := range bills {
		row := make([]any, 0, len(header))
		due := ""
		if bill.DueDate != nil {
			due = bill.DueDate.Format(models.DateLayout)
		}
		row = append(row,
			bill.CreatedAt.Format(models.DateLayout),
			bill.Description,
			dir.Name(bill.PaidBy),
			f.Round(bill.TotalAmount).InexactFloat64(),
			describeSplit(bill, dir),
			due,
			bill.IsSettled,
		)
		for _, id := range ids {
			row = append(row, f.Round(ledger.Evaluate(bill, id)).InexactFloat64())
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := x.SetSheetRow(billsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write bill row: %w", err)
		}
	}

	_ = x.SetCellValue(balancesSheet, "A1", "Roommate")
	_ = x.SetCellValue(balancesSheet, "B1", "Outstanding ("+f.Code()+")")
	_ = x.SetCellValue(balancesSheet, "C1", "Summary")
	for i, b := range balances {
		row := i + 2
		name := dir.Name(b.RoommateID)
		_ = x.SetCellValue(balancesSheet, fmt.Sprintf("A%d", row), name)
		_ = x.SetCellValue(balancesSheet, fmt.Sprintf("B%d", row), f.Round(b.Outstanding).InexactFloat64())
		_ = x.SetCellValue(balancesSheet, fmt.Sprintf("C%d", row), f.DescribeFor(name, b.Outstanding))
	}

	var buf bytes.Buffer
	if err := x.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func describeSplit(bill models.Bill, dir *roster.Directory) string {
	switch s := bill.Split.(type) {
	case models.SplitEvenly:
		return fmt.Sprintf("split %d ways", len(s.Members))
	case models.FullyOwedBy:
		return "owed by " + dir.Name(s.Debtor)
	default:
		return ""
	}
}
