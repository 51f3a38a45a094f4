package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/roomieboard/pkg/roomiev1"
)

func createSplitBill(t *testing.T, c testClients, payer, description, total string, with ...string) roomiev1.Bill {
	t.Helper()
	resp, err := c.bills.CreateBill(context.Background(), as(payer, &roomiev1.CreateBillRequest{
		Description: description,
		TotalAmount: amount(total),
		SplitType:   roomiev1.SplitTypeSplit,
		SplitWith:   with,
	}))
	if err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}
	return resp.Msg.Bill
}

func createFullBill(t *testing.T, c testClients, payer, description, total, debtor string) roomiev1.Bill {
	t.Helper()
	resp, err := c.bills.CreateBill(context.Background(), as(payer, &roomiev1.CreateBillRequest{
		Description: description,
		TotalAmount: amount(total),
		SplitType:   roomiev1.SplitTypeFull,
		FullOwedBy:  debtor,
	}))
	if err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}
	return resp.Msg.Bill
}

func TestCreateBill_Split(t *testing.T) {
	c := setupTestServer(t)
	seedRoster(t, c, "alice", "bob", "carol")

	bill := createSplitBill(t, c, "alice", "  Groceries ", "90", "bob", "carol", "bob")

	if bill.ID == "" {
		t.Fatal("expected bill ID")
	}
	if bill.Description != "Groceries" {
		t.Errorf("description = %q", bill.Description)
	}
	if bill.PaidBy != "alice" || bill.SplitType != roomiev1.SplitTypeSplit {
		t.Errorf("paid_by/split_type = %q/%q", bill.PaidBy, bill.SplitType)
	}
	want := []string{"alice", "bob", "carol"}
	if len(bill.SplitBetween) != len(want) {
		t.Fatalf("split_between = %v, want %v", bill.SplitBetween, want)
	}
	for i := range want {
		if bill.SplitBetween[i] != want[i] {
			t.Errorf("split_between = %v, want %v", bill.SplitBetween, want)
		}
	}
	if !bill.YourAmount.Equal(amount("-60")) {
		t.Errorf("your_amount = %s, want -60", bill.YourAmount)
	}
	if bill.IsSettled || bill.IsOverdue {
		t.Errorf("new bill should be open and not overdue: %+v", bill)
	}
}

func TestCreateBill_FullOwed(t *testing.T) {
	c := setupTestServer(t)
	seedRoster(t, c, "alice", "bob")

	bill := createFullBill(t, c, "alice", "Concert ticket", "45", "bob")
	if bill.SplitType != roomiev1.SplitTypeFull || bill.FullOwedBy != "bob" {
		t.Errorf("split = %q %q", bill.SplitType, bill.FullOwedBy)
	}
	if !bill.YourAmount.Equal(amount("-45")) {
		t.Errorf("your_amount = %s, want -45", bill.YourAmount)
	}

	resp, err := c.bills.GetBill(context.Background(), as("bob", &roomiev1.GetBillRequest{BillID: bill.ID}))
	if err != nil {
		t.Fatalf("GetBill failed: %v", err)
	}
	if !resp.Msg.Bill.YourAmount.Equal(amount("45")) {
		t.Errorf("bob's amount = %s, want 45", resp.Msg.Bill.YourAmount)
	}
}

func TestCreateBill_Validation(t *testing.T) {
	c := setupTestServer(t)

	tests := []struct {
		name string
		req  roomiev1.CreateBillRequest
	}{
		{"empty description", roomiev1.CreateBillRequest{Description: "  ", TotalAmount: amount("10"), SplitType: "split", SplitWith: []string{"bob"}}},
		{"zero amount", roomiev1.CreateBillRequest{Description: "x", TotalAmount: amount("0"), SplitType: "split", SplitWith: []string{"bob"}}},
		{"negative amount", roomiev1.CreateBillRequest{Description: "x", TotalAmount: amount("-5"), SplitType: "split", SplitWith: []string{"bob"}}},
		{"split with nobody", roomiev1.CreateBillRequest{Description: "x", TotalAmount: amount("10"), SplitType: "split"}},
		{"split with only self", roomiev1.CreateBillRequest{Description: "x", TotalAmount: amount("10"), SplitType: "split", SplitWith: []string{"alice", ""}}},
		{"full without debtor", roomiev1.CreateBillRequest{Description: "x", TotalAmount: amount("10"), SplitType: "full"}},
		{"full owed by payer", roomiev1.CreateBillRequest{Description: "x", TotalAmount: amount("10"), SplitType: "full", FullOwedBy: "alice"}},
		{"unknown split type", roomiev1.CreateBillRequest{Description: "x", TotalAmount: amount("10"), SplitType: "ratio"}},
		{"bad due date", roomiev1.CreateBillRequest{Description: "x", TotalAmount: amount("10"), SplitType: "full", FullOwedBy: "bob", DueDate: "03/01/2024"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := c.bills.CreateBill(context.Background(), as("alice", &req))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}
}

func TestCreateBill_Unauthenticated(t *testing.T) {
	c := setupTestServer(t)

	_, err := c.bills.CreateBill(context.Background(), connect.NewRequest(&roomiev1.CreateBillRequest{
		Description: "Rent",
		TotalAmount: amount("100"),
		SplitType:   roomiev1.SplitTypeFull,
		FullOwedBy:  "bob",
	}))
	assertCode(t, err, connect.CodeUnauthenticated)
}

func TestGetBill_NotFound(t *testing.T) {
	c := setupTestServer(t)

	_, err := c.bills.GetBill(context.Background(), as("alice", &roomiev1.GetBillRequest{BillID: "missing"}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestGetBill_Overdue(t *testing.T) {
	c := setupTestServer(t)

	resp, err := c.bills.CreateBill(context.Background(), as("alice", &roomiev1.CreateBillRequest{
		Description: "Internet",
		TotalAmount: amount("60"),
		DueDate:     "2000-01-01",
		SplitType:   roomiev1.SplitTypeSplit,
		SplitWith:   []string{"bob"},
	}))
	if err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}
	bill := resp.Msg.Bill
	if bill.DueDate != "2000-01-01" || !bill.IsOverdue {
		t.Errorf("due_date=%q overdue=%v", bill.DueDate, bill.IsOverdue)
	}

	if _, err := c.bills.ToggleSettled(context.Background(), as("bob", &roomiev1.ToggleSettledRequest{BillID: bill.ID})); err != nil {
		t.Fatalf("ToggleSettled failed: %v", err)
	}
	got, err := c.bills.GetBill(context.Background(), as("alice", &roomiev1.GetBillRequest{BillID: bill.ID}))
	if err != nil {
		t.Fatalf("GetBill failed: %v", err)
	}
	if got.Msg.Bill.IsOverdue {
		t.Error("settled bill should not be overdue")
	}
}

func TestListBills(t *testing.T) {
	c := setupTestServer(t)

	first := createSplitBill(t, c, "alice", "Rent", "1200", "bob")
	second := createFullBill(t, c, "bob", "Pizza", "20", "alice")

	if _, err := c.bills.ToggleSettled(context.Background(), as("alice", &roomiev1.ToggleSettledRequest{BillID: first.ID})); err != nil {
		t.Fatalf("ToggleSettled failed: %v", err)
	}

	all, err := c.bills.ListBills(context.Background(), as("alice", &roomiev1.ListBillsRequest{}))
	if err != nil {
		t.Fatalf("ListBills failed: %v", err)
	}
	if len(all.Msg.Bills) != 2 {
		t.Fatalf("expected 2 bills, got %d", len(all.Msg.Bills))
	}
	if all.Msg.Bills[0].ID != second.ID {
		t.Errorf("expected newest bill first")
	}

	open, err := c.bills.ListBills(context.Background(), as("alice", &roomiev1.ListBillsRequest{OnlyUnsettled: true}))
	if err != nil {
		t.Fatalf("ListBills failed: %v", err)
	}
	if len(open.Msg.Bills) != 1 || open.Msg.Bills[0].ID != second.ID {
		t.Errorf("unsettled bills = %+v", open.Msg.Bills)
	}
}

func TestToggleSettled(t *testing.T) {
	c := setupTestServer(t)
	bill := createSplitBill(t, c, "alice", "Water", "30", "bob", "carol")

	resp, err := c.bills.ToggleSettled(context.Background(), as("bob", &roomiev1.ToggleSettledRequest{BillID: bill.ID}))
	if err != nil {
		t.Fatalf("ToggleSettled failed: %v", err)
	}
	if !resp.Msg.IsSettled {
		t.Error("expected bill to be settled")
	}

	resp, err = c.bills.ToggleSettled(context.Background(), as("alice", &roomiev1.ToggleSettledRequest{BillID: bill.ID}))
	if err != nil {
		t.Fatalf("ToggleSettled failed: %v", err)
	}
	if resp.Msg.IsSettled {
		t.Error("expected bill to be reopened")
	}

	_, err = c.bills.ToggleSettled(context.Background(), as("dave", &roomiev1.ToggleSettledRequest{BillID: bill.ID}))
	assertCode(t, err, connect.CodePermissionDenied)

	_, err = c.bills.ToggleSettled(context.Background(), as("alice", &roomiev1.ToggleSettledRequest{BillID: "missing"}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestDeleteBill(t *testing.T) {
	c := setupTestServer(t)
	bill := createFullBill(t, c, "alice", "Taxi", "25", "bob")

	_, err := c.bills.DeleteBill(context.Background(), as("carol", &roomiev1.DeleteBillRequest{BillID: bill.ID}))
	assertCode(t, err, connect.CodePermissionDenied)

	if _, err := c.bills.DeleteBill(context.Background(), as("bob", &roomiev1.DeleteBillRequest{BillID: bill.ID})); err != nil {
		t.Fatalf("DeleteBill failed: %v", err)
	}

	_, err = c.bills.GetBill(context.Background(), as("alice", &roomiev1.GetBillRequest{BillID: bill.ID}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestAddComment(t *testing.T) {
	c := setupTestServer(t)
	seedRoster(t, c, "alice", "bob")
	bill := createSplitBill(t, c, "alice", "Electricity", "80", "bob")

	resp, err := c.bills.AddComment(context.Background(), as("bob", &roomiev1.AddCommentRequest{BillID: bill.ID, Text: " Paid half already "}))
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if resp.Msg.Comment.Text != "Paid half already" || resp.Msg.Comment.AuthorID != "bob" {
		t.Errorf("comment = %+v", resp.Msg.Comment)
	}

	if _, err := c.bills.AddComment(context.Background(), as("alice", &roomiev1.AddCommentRequest{BillID: bill.ID, Text: "Thanks"})); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	got, err := c.bills.GetBill(context.Background(), as("alice", &roomiev1.GetBillRequest{BillID: bill.ID}))
	if err != nil {
		t.Fatalf("GetBill failed: %v", err)
	}
	comments := got.Msg.Bill.Comments
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	if comments[0].Author != "Bob" || comments[1].Text != "Thanks" {
		t.Errorf("comments out of order or unnamed: %+v", comments)
	}

	_, err = c.bills.AddComment(context.Background(), as("bob", &roomiev1.AddCommentRequest{BillID: bill.ID, Text: "   "}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = c.bills.AddComment(context.Background(), as("bob", &roomiev1.AddCommentRequest{BillID: "missing", Text: "hi"}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestGetBalance(t *testing.T) {
	c := setupTestServer(t)
	bill := createSplitBill(t, c, "alice", "Groceries", "90", "bob", "carol")
	createFullBill(t, c, "carol", "Movie", "12.50", "bob")

	tests := []struct {
		roommate string
		want     string
		summary  string
	}{
		{"alice", "-60", "You're Owed $60.00"},
		{"bob", "42.5", "You Owe $42.50"},
		{"carol", "17.5", "You Owe $17.50"},
		{"dave", "0", "All settled up"},
	}
	for _, tt := range tests {
		t.Run(tt.roommate, func(t *testing.T) {
			resp, err := c.bills.GetBalance(context.Background(), as(tt.roommate, &roomiev1.GetBalanceRequest{}))
			if err != nil {
				t.Fatalf("GetBalance failed: %v", err)
			}
			if !resp.Msg.Outstanding.Equal(amount(tt.want)) {
				t.Errorf("outstanding = %s, want %s", resp.Msg.Outstanding, tt.want)
			}
			if resp.Msg.Summary != tt.summary {
				t.Errorf("summary = %q, want %q", resp.Msg.Summary, tt.summary)
			}
		})
	}

	// Settled bills drop out of the balance.
	if _, err := c.bills.ToggleSettled(context.Background(), as("alice", &roomiev1.ToggleSettledRequest{BillID: bill.ID})); err != nil {
		t.Fatalf("ToggleSettled failed: %v", err)
	}
	resp, err := c.bills.GetBalance(context.Background(), as("bob", &roomiev1.GetBalanceRequest{}))
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	if !resp.Msg.Outstanding.Equal(amount("12.5")) {
		t.Errorf("outstanding after settle = %s, want 12.5", resp.Msg.Outstanding)
	}
	if len(resp.Msg.Bills) != 1 || resp.Msg.Bills[0].Description != "Movie" {
		t.Errorf("bills = %+v", resp.Msg.Bills)
	}
}

func TestGetHouseholdBalances(t *testing.T) {
	c := setupTestServer(t)
	seedRoster(t, c, "alice", "bob", "carol")
	createSplitBill(t, c, "alice", "Groceries", "90", "bob", "carol")
	createFullBill(t, c, "carol", "Movie", "30", "bob")

	resp, err := c.bills.GetHouseholdBalances(context.Background(), as("carol", &roomiev1.GetHouseholdBalancesRequest{}))
	if err != nil {
		t.Fatalf("GetHouseholdBalances failed: %v", err)
	}

	want := map[string]string{"alice": "-60", "bob": "60", "carol": "0"}
	if len(resp.Msg.Balances) != len(want) {
		t.Fatalf("balances = %+v", resp.Msg.Balances)
	}
	for _, b := range resp.Msg.Balances {
		if !b.Outstanding.Equal(amount(want[b.RoommateID])) {
			t.Errorf("%s outstanding = %s, want %s", b.RoommateID, b.Outstanding, want[b.RoommateID])
		}
		if b.RoommateID == "bob" && b.Summary != "Bob owes $60.00" {
			t.Errorf("bob summary = %q", b.Summary)
		}
	}

	if len(resp.Msg.Transfers) != 1 {
		t.Fatalf("transfers = %+v", resp.Msg.Transfers)
	}
	tr := resp.Msg.Transfers[0]
	if tr.From != "bob" || tr.To != "alice" || !tr.Amount.Equal(amount("60")) || tr.Formatted != "$60.00" {
		t.Errorf("transfer = %+v", tr)
	}
}
