package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/mmynk/roomieboard/internal/models"
	"github.com/mmynk/roomieboard/internal/storage"
)

// ErrSkipBill marks a legacy bill that cannot be represented.
var ErrSkipBill = errors.New("bill skipped")

// Result summarizes an import run.
type Result struct {
	BillsImported         int
	BillsSkipped          int
	NotificationsImported int
	Warnings              []string
}

func (r *Result) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, msg)
	slog.Warn("Import warning", "detail", msg)
}

// ConvertBill maps a legacy bill onto the ledger model. The returned
// warnings describe changes to how the bill evaluates.
//
// A debtor other than the payer makes the bill fully owed. Otherwise a
// member list makes it an even split, with the payer added when missing.
// Otherwise it carries no split. An empty member list cannot be evaluated
// and is rejected with ErrSkipBill.
func ConvertBill(lb LegacyBill) (models.Bill, []string, error) {
	var warnings []string

	if lb.PaidBy == "" {
		return models.Bill{}, nil, fmt.Errorf("%w: %s has no payer", ErrSkipBill, lb.ID)
	}
	if !lb.TotalAmount.IsPositive() {
		return models.Bill{}, nil, fmt.Errorf("%w: %s has non-positive amount %s", ErrSkipBill, lb.ID, lb.TotalAmount)
	}

	bill := models.Bill{
		ID:          lb.ID,
		Description: strings.TrimSpace(lb.Description),
		TotalAmount: lb.TotalAmount,
		PaidBy:      lb.PaidBy,
		IsSettled:   lb.IsSettled != nil && *lb.IsSettled,
	}

	switch {
	case lb.FullOwedBy != "" && lb.FullOwedBy != lb.PaidBy:
		bill.Split = models.FullyOwedBy{Debtor: lb.FullOwedBy}
		if len(lb.SplitBetween) > 0 {
			warnings = append(warnings, fmt.Sprintf("bill %s: has both fullOwedBy and splitBetween; kept fullOwedBy", lb.ID))
		}
	case lb.SplitBetween != nil:
		if len(lb.SplitBetween) == 0 {
			return models.Bill{}, nil, fmt.Errorf("%w: %s has an empty splitBetween", ErrSkipBill, lb.ID)
		}
		split := models.NewSplitEvenly(lb.PaidBy, lb.SplitBetween...)
		if len(split.Members) != len(lb.SplitBetween) {
			warnings = append(warnings, fmt.Sprintf("bill %s: split members normalized from %d to %d (payer added, duplicates removed)",
				lb.ID, len(lb.SplitBetween), len(split.Members)))
		}
		bill.Split = split
	}

	created, err := parseTimestamp(lb.CreatedAt)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("bill %s: bad createdAt %q, using import time", lb.ID, lb.CreatedAt))
	}
	bill.CreatedAt = created

	due, err := parseDueDate(lb.DueDate)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("bill %s: bad dueDate %q, dropped", lb.ID, lb.DueDate))
	}
	bill.DueDate = due

	for _, lc := range lb.Comments {
		ts, err := parseTimestamp(lc.Timestamp)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("bill %s: bad comment timestamp %q", lb.ID, lc.Timestamp))
		}
		bill.Comments = append(bill.Comments, models.Comment{
			ID:        lc.ID,
			AuthorID:  lc.AuthorID,
			Text:      lc.Text,
			CreatedAt: ts,
		})
	}

	return bill, warnings, nil
}

// Importer writes legacy documents into a store.
type Importer struct {
	store storage.Store
}

func New(store storage.Store) *Importer {
	return &Importer{store: store}
}

// Import stores every convertible bill and the bill and roommate
// notifications. Records whose ID already exists are left untouched, so a
// document can be imported more than once.
func (im *Importer) Import(ctx context.Context, doc *Document) (*Result, error) {
	res := &Result{}

	for _, lb := range doc.Bills {
		if lb.ID != "" {
			_, err := im.store.GetBill(ctx, lb.ID)
			if err == nil {
				res.BillsSkipped++
				res.warn("bill %s: already imported", lb.ID)
				continue
			}
			if !errors.Is(err, storage.ErrNotFound) {
				return res, fmt.Errorf("failed to check bill %s: %w", lb.ID, err)
			}
		}

		bill, warnings, err := ConvertBill(lb)
		if err != nil {
			res.BillsSkipped++
			res.warn("%v", err)
			continue
		}
		for _, w := range warnings {
			res.warn("%s", w)
		}

		if err := im.store.CreateBill(ctx, &bill); err != nil {
			return res, fmt.Errorf("failed to import bill %s: %w", lb.ID, err)
		}
		res.BillsImported++
	}

	existing, err := im.store.ListNotifications(ctx, math.MaxInt32)
	if err != nil {
		return res, fmt.Errorf("failed to list notifications: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, n := range existing {
		seen[n.ID] = true
	}

	// Oldest first so the feed keeps its order.
	for i := len(doc.Notifications) - 1; i >= 0; i-- {
		ln := doc.Notifications[i]
		kind := models.NotificationType(ln.Type)
		if kind != models.NotificationBill && kind != models.NotificationRoommate {
			continue
		}
		if ln.ID != "" && seen[ln.ID] {
			continue
		}
		ts, err := parseTimestamp(ln.Timestamp)
		if err != nil {
			res.warn("notification %s: bad timestamp %q", ln.ID, ln.Timestamp)
		}
		n := &models.Notification{
			ID:        ln.ID,
			Message:   ln.Message,
			Type:      kind,
			Read:      ln.Read,
			CreatedAt: ts,
		}
		if err := im.store.AddNotification(ctx, n); err != nil {
			return res, fmt.Errorf("failed to import notification %s: %w", ln.ID, err)
		}
		res.NotificationsImported++
	}

	slog.Info("Legacy import finished",
		"bills_imported", res.BillsImported,
		"bills_skipped", res.BillsSkipped,
		"notifications_imported", res.NotificationsImported,
		"warnings", len(res.Warnings),
	)
	return res, nil
}
