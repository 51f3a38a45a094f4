package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire and storage format for calendar dates (due dates).
const DateLayout = "2006-01-02"

// SplitMode names the two ways a bill can be shared.
type SplitMode string

const (
	// SplitModeEven shares the total evenly between a set of roommates.
	SplitModeEven SplitMode = "split"
	// SplitModeFull makes a single roommate owe the whole total.
	SplitModeFull SplitMode = "full"
)

// Split describes how a bill's total is shared.
// The only implementations are SplitEvenly and FullyOwedBy.
type Split interface {
	Mode() SplitMode
	isSplit()
}

// SplitEvenly shares the total evenly between Members.
// Members is a set: order is irrelevant and it never holds duplicates when
// built with NewSplitEvenly.
type SplitEvenly struct {
	Members []string
}

// NewSplitEvenly builds an even split between payer and members.
// The payer always carries a share, so it is added to the set when missing.
// Empty IDs and duplicates are dropped and the result is sorted.
func NewSplitEvenly(payer string, members ...string) SplitEvenly {
	seen := make(map[string]bool, len(members)+1)
	set := make([]string, 0, len(members)+1)
	for _, id := range append([]string{payer}, members...) {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		set = append(set, id)
	}
	sort.Strings(set)
	return SplitEvenly{Members: set}
}

func (SplitEvenly) Mode() SplitMode { return SplitModeEven }
func (SplitEvenly) isSplit()        {}

// Contains reports whether roommateID shares this bill.
func (s SplitEvenly) Contains(roommateID string) bool {
	for _, m := range s.Members {
		if m == roommateID {
			return true
		}
	}
	return false
}

// FullyOwedBy makes Debtor owe the whole total to the payer.
type FullyOwedBy struct {
	Debtor string
}

func (FullyOwedBy) Mode() SplitMode { return SplitModeFull }
func (FullyOwedBy) isSplit()        {}

// Bill represents one shared household expense.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// Description is the free-text label shown on the bill card.
	Description string

	// TotalAmount is the positive amount fronted by the payer.
	// It never changes after creation.
	TotalAmount decimal.Decimal

	// PaidBy is the roommate who fronted the money.
	PaidBy string

	// Split is either SplitEvenly or FullyOwedBy.
	// It is nil only for legacy records that carried neither mode.
	Split Split

	// IsSettled marks the bill as resolved. Settled bills are excluded from
	// outstanding balances.
	IsSettled bool

	// DueDate is an optional calendar date (time part is zero, UTC).
	DueDate *time.Time

	// Comments are kept in the order they were added.
	Comments []Comment

	// CreatedAt is when the bill was created.
	CreatedAt time.Time
}

// Participants returns every roommate with a stake in the bill: the payer
// followed by the split members or the full debtor.
func (b *Bill) Participants() []string {
	ids := []string{b.PaidBy}
	switch s := b.Split.(type) {
	case SplitEvenly:
		for _, m := range s.Members {
			if m != b.PaidBy {
				ids = append(ids, m)
			}
		}
	case FullyOwedBy:
		if s.Debtor != b.PaidBy {
			ids = append(ids, s.Debtor)
		}
	}
	return ids
}

// IsParticipant reports whether roommateID paid or shares the bill.
func (b *Bill) IsParticipant(roommateID string) bool {
	for _, id := range b.Participants() {
		if id == roommateID {
			return true
		}
	}
	return false
}

// IsOverdue reports whether an unsettled bill's due date lies before the day of now.
func (b *Bill) IsOverdue(now time.Time) bool {
	if b.IsSettled || b.DueDate == nil {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return b.DueDate.Before(today)
}

// Comment is a discussion entry attached to a bill.
type Comment struct {
	ID        string
	AuthorID  string
	Text      string
	CreatedAt time.Time
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
