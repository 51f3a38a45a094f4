package service

import (
	"time"

	"github.com/mmynk/roomieboard/internal/ledger"
	"github.com/mmynk/roomieboard/internal/models"
	"github.com/mmynk/roomieboard/internal/roster"
	"github.com/mmynk/roomieboard/pkg/roomiev1"
)

// toAPIBill converts a bill for the caller, including the caller's position
// and the overdue flag as of now.
func toAPIBill(bill models.Bill, callerID string, dir *roster.Directory, now time.Time) roomiev1.Bill {
	out := roomiev1.Bill{
		ID:          bill.ID,
		Description: bill.Description,
		TotalAmount: bill.TotalAmount,
		PaidBy:      bill.PaidBy,
		IsSettled:   bill.IsSettled,
		IsOverdue:   bill.IsOverdue(now),
		Comments:    make([]roomiev1.Comment, len(bill.Comments)),
		CreatedAt:   bill.CreatedAt,
		YourAmount:  ledger.Evaluate(bill, callerID),
	}
	switch s := bill.Split.(type) {
	case models.SplitEvenly:
		out.SplitType = roomiev1.SplitTypeSplit
		out.SplitBetween = s.Members
	case models.FullyOwedBy:
		out.SplitType = roomiev1.SplitTypeFull
		out.FullOwedBy = s.Debtor
	}
	if bill.DueDate != nil {
		out.DueDate = bill.DueDate.Format(models.DateLayout)
	}
	for i, c := range bill.Comments {
		out.Comments[i] = toAPIComment(c, dir)
	}
	return out
}

func toAPIComment(c models.Comment, dir *roster.Directory) roomiev1.Comment {
	return roomiev1.Comment{
		ID:        c.ID,
		AuthorID:  c.AuthorID,
		Author:    dir.Name(c.AuthorID),
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}

func toAPIRoommate(r models.Roommate) roomiev1.Roommate {
	return roomiev1.Roommate{
		ID:        r.ID,
		Name:      r.Name,
		AvatarURL: r.AvatarURL,
		JoinedAt:  r.JoinedAt,
	}
}

func toAPINotification(n models.Notification) roomiev1.Notification {
	return roomiev1.Notification{
		ID:        n.ID,
		Message:   n.Message,
		Type:      string(n.Type),
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
