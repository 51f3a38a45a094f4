package roomiev1

import (
	"time"

	"github.com/shopspring/decimal"
)

// Split types accepted by CreateBill.
const (
	SplitTypeSplit = "split"
	SplitTypeFull  = "full"
)

type Comment struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type Bill struct {
	ID           string          `json:"id"`
	Description  string          `json:"description"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PaidBy       string          `json:"paid_by"`
	SplitType    string          `json:"split_type,omitempty"`
	SplitBetween []string        `json:"split_between,omitempty"`
	FullOwedBy   string          `json:"full_owed_by,omitempty"`
	IsSettled    bool            `json:"is_settled"`
	IsOverdue    bool            `json:"is_overdue"`
	DueDate      string          `json:"due_date,omitempty"`
	Comments     []Comment       `json:"comments"`
	CreatedAt    time.Time       `json:"created_at"`
	// YourAmount is the caller's signed position on this bill:
	// positive = the caller owes, negative = the caller is owed.
	YourAmount decimal.Decimal `json:"your_amount"`
}

type CreateBillRequest struct {
	Description string          `json:"description"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	DueDate     string          `json:"due_date,omitempty"`
	SplitType   string          `json:"split_type"`
	// SplitWith lists the other roommates sharing a "split" bill.
	// The caller is always included.
	SplitWith  []string `json:"split_with,omitempty"`
	FullOwedBy string   `json:"full_owed_by,omitempty"`
}

type CreateBillResponse struct {
	Bill Bill `json:"bill"`
}

type GetBillRequest struct {
	BillID string `json:"bill_id"`
}

type GetBillResponse struct {
	Bill Bill `json:"bill"`
}

type ListBillsRequest struct {
	OnlyUnsettled bool `json:"only_unsettled,omitempty"`
}

type ListBillsResponse struct {
	Bills []Bill `json:"bills"`
}

type ToggleSettledRequest struct {
	BillID string `json:"bill_id"`
}

type ToggleSettledResponse struct {
	BillID    string `json:"bill_id"`
	IsSettled bool   `json:"is_settled"`
}

type DeleteBillRequest struct {
	BillID string `json:"bill_id"`
}

type DeleteBillResponse struct{}

type AddCommentRequest struct {
	BillID string `json:"bill_id"`
	Text   string `json:"text"`
}

type AddCommentResponse struct {
	Comment Comment `json:"comment"`
}

type GetBalanceRequest struct{}

type BillAmount struct {
	BillID      string          `json:"bill_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type GetBalanceResponse struct {
	// Outstanding is the sum of the caller's position over unsettled bills.
	Outstanding decimal.Decimal `json:"outstanding"`
	// Summary is the display headline, e.g. "You Owe $30.00".
	Summary string       `json:"summary"`
	Bills   []BillAmount `json:"bills"`
}

type GetHouseholdBalancesRequest struct{}

type RoommateBalance struct {
	RoommateID  string          `json:"roommate_id"`
	Name        string          `json:"name"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Summary     string          `json:"summary"`
}

type Transfer struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Amount    decimal.Decimal `json:"amount"`
	Formatted string          `json:"formatted"`
}

type GetHouseholdBalancesResponse struct {
	Balances  []RoommateBalance `json:"balances"`
	Transfers []Transfer        `json:"transfers"`
}
