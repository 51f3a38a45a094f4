package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/mmynk/roomieboard/internal/models"
	"github.com/mmynk/roomieboard/internal/money"
)

// BuildStatementPDF renders a statement as a one-table PDF.
func BuildStatementPDF(stmt Statement, f *money.Formatter) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Roomie Board Statement")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Roommate: %s", stmt.Name)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", stmt.GeneratedAt.Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Currency: %s", f.Code()))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, tr(f.Describe(stmt.Outstanding)))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(28, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(72, 6, "Description", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Paid by", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Due", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Amount", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	if len(stmt.Lines) == 0 {
		pdf.CellFormat(190, 6, "No open bills", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}
	for _, line := range stmt.Lines {
		due := ""
		if line.DueDate != nil {
			due = line.DueDate.Format(models.DateLayout)
		}
		pdf.CellFormat(28, 6, line.Date.Format(models.DateLayout), "1", 0, "C", false, 0, "")
		pdf.CellFormat(72, 6, tr(truncate(line.Description, 40)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, tr(truncate(line.PaidBy, 18)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, due, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, tr(f.Format(line.Amount)), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 8)
	pdf.Cell(0, 5, "Positive amounts are owed by you; negative amounts are owed to you.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render statement pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
