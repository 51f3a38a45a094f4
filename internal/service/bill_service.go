package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/roomieboard/internal/activity"
	"github.com/mmynk/roomieboard/internal/auth"
	"github.com/mmynk/roomieboard/internal/ledger"
	"github.com/mmynk/roomieboard/internal/metrics"
	"github.com/mmynk/roomieboard/internal/models"
	"github.com/mmynk/roomieboard/internal/money"
	"github.com/mmynk/roomieboard/internal/roster"
	"github.com/mmynk/roomieboard/internal/storage"
	"github.com/mmynk/roomieboard/pkg/roomiev1"
)

// BillService implements roomie.v1.BillService.
type BillService struct {
	store    storage.Store
	recorder *activity.Recorder
	money    *money.Formatter
	now      func() time.Time
}

// NewBillService creates a BillService. Bill mutations are recorded in the
// activity feed through recorder; amounts are rendered with formatter.
func NewBillService(store storage.Store, recorder *activity.Recorder, formatter *money.Formatter) *BillService {
	return &BillService{
		store:    store,
		recorder: recorder,
		money:    formatter,
		now:      time.Now,
	}
}

// record adds a bill entry to the activity feed. Failures are logged only:
// the bill change itself has already been stored.
func (s *BillService) record(ctx context.Context, message string) {
	if _, err := s.recorder.Record(ctx, message, models.NotificationBill); err != nil {
		slog.Error("Failed to record bill activity", "message", message, "error", err)
	}
}

// buildSplit validates the requested split mode and returns the split the
// caller is paying for.
func buildSplit(payer string, msg *roomiev1.CreateBillRequest) (models.Split, error) {
	switch msg.SplitType {
	case roomiev1.SplitTypeSplit:
		split := models.NewSplitEvenly(payer, msg.SplitWith...)
		if len(split.Members) < 2 {
			return nil, errors.New("split_with must name at least one other roommate")
		}
		return split, nil
	case roomiev1.SplitTypeFull:
		debtor := strings.TrimSpace(msg.FullOwedBy)
		if debtor == "" {
			return nil, errors.New("full_owed_by is required for a full bill")
		}
		if debtor == payer {
			return nil, errors.New("full_owed_by cannot be the payer")
		}
		return models.FullyOwedBy{Debtor: debtor}, nil
	default:
		return nil, errors.New(`split_type must be "split" or "full"`)
	}
}

// CreateBill creates a bill paid by the caller.
func (s *BillService) CreateBill(ctx context.Context, req *connect.Request[roomiev1.CreateBillRequest]) (*connect.Response[roomiev1.CreateBillResponse], error) {
	caller, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(req.Msg.Description)
	if description == "" {
		return nil, invalidArgument("description is required")
	}
	if !req.Msg.TotalAmount.IsPositive() {
		return nil, invalidArgument("total_amount must be positive")
	}

	split, err := buildSplit(caller.RoommateID, req.Msg)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	bill := &models.Bill{
		Description: description,
		TotalAmount: req.Msg.TotalAmount,
		PaidBy:      caller.RoommateID,
		Split:       split,
	}
	if req.Msg.DueDate != "" {
		due, err := models.ParseDate(req.Msg.DueDate)
		if err != nil {
			return nil, invalidArgument("due_date must be YYYY-MM-DD: %v", err)
		}
		bill.DueDate = &due
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateBill(ctx, bill); err != nil {
		slog.Error("CreateBill failed", "error", err)
		return nil, storeError(err)
	}
	metrics.IncBillEvent(metrics.BillCreated)
	slog.Info("Bill created",
		"bill_id", bill.ID,
		"paid_by", bill.PaidBy,
		"amount", bill.TotalAmount.String(),
		"split", bill.Split.Mode(),
	)

	dir := directory(ctx, s.store, caller)
	s.record(ctx, activity.BillAdded(dir, s.money, *bill))

	return connect.NewResponse(&roomiev1.CreateBillResponse{
		Bill: toAPIBill(*bill, caller.RoommateID, dir, s.now()),
	}), nil
}

// GetBill returns one bill. Every roommate can see every bill.
func (s *BillService) GetBill(ctx context.Context, req *connect.Request[roomiev1.GetBillRequest]) (*connect.Response[roomiev1.GetBillResponse], error) {
	caller, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	bill, err := s.store.GetBill(ctx, req.Msg.BillID)
	if err != nil {
		slog.Error("GetBill failed", "bill_id", req.Msg.BillID, "error", err)
		return nil, storeError(err)
	}

	dir := directory(ctx, s.store, caller)
	return connect.NewResponse(&roomiev1.GetBillResponse{
		Bill: toAPIBill(*bill, caller.RoommateID, dir, s.now()),
	}), nil
}

// ListBills returns the household's bills, newest first.
func (s *BillService) ListBills(ctx context.Context, req *connect.Request[roomiev1.ListBillsRequest]) (*connect.Response[roomiev1.ListBillsResponse], error) {
	caller, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	bills, err := s.store.ListBills(ctx, storage.BillFilter{OnlyUnsettled: req.Msg.OnlyUnsettled})
	if err != nil {
		slog.Error("ListBills failed", "error", err)
		return nil, storeError(err)
	}

	dir := directory(ctx, s.store, caller)
	now := s.now()
	out := make([]roomiev1.Bill, len(bills))
	for i, bill := range bills {
		out[i] = toAPIBill(bill, caller.RoommateID, dir, now)
	}
	return connect.NewResponse(&roomiev1.ListBillsResponse{Bills: out}), nil
}

// participantBill loads a bill and checks that the caller has a stake in it.
func (s *BillService) participantBill(ctx context.Context, caller auth.Identity, billID, action string) (*models.Bill, error) {
	bill, err := s.store.GetBill(ctx, billID)
	if err != nil {
		slog.Error(action+" failed to get bill", "bill_id", billID, "error", err)
		return nil, storeError(err)
	}
	if !bill.IsParticipant(caller.RoommateID) {
		return nil, connect.NewError(connect.CodePermissionDenied,
			errors.New("you must be a participant to "+strings.ToLower(action)+" this bill"))
	}
	return bill, nil
}

// ToggleSettled flips a bill between settled and open.
func (s *BillService) ToggleSettled(ctx context.Context, req *connect.Request[roomiev1.ToggleSettledRequest]) (*connect.Response[roomiev1.ToggleSettledResponse], error) {
	caller, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	bill, err := s.participantBill(ctx, caller, req.Msg.BillID, "Settle")
	if err != nil {
		return nil, err
	}

	settled, err := s.store.ToggleBillSettled(ctx, bill.ID)
	if err != nil {
		slog.Error("ToggleSettled failed", "bill_id", bill.ID, "error", err)
		return nil, storeError(err)
	}
	bill.IsSettled = settled
	if settled {
		metrics.IncBillEvent(metrics.BillSettled)
	} else {
		metrics.IncBillEvent(metrics.BillReopened)
	}
	slog.Info("Bill settlement toggled", "bill_id", bill.ID, "is_settled", settled, "by", caller.RoommateID)

	s.record(ctx, activity.BillToggled(directory(ctx, s.store, caller), *bill))

	return connect.NewResponse(&roomiev1.ToggleSettledResponse{
		BillID:    bill.ID,
		IsSettled: settled,
	}), nil
}

// DeleteBill removes a bill. Only participants may delete.
func (s *BillService) DeleteBill(ctx context.Context, req *connect.Request[roomiev1.DeleteBillRequest]) (*connect.Response[roomiev1.DeleteBillResponse], error) {
	caller, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	bill, err := s.participantBill(ctx, caller, req.Msg.BillID, "Delete")
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteBill(ctx, bill.ID); err != nil {
		slog.Error("DeleteBill failed", "bill_id", bill.ID, "error", err)
		return nil, storeError(err)
	}
	metrics.IncBillEvent(metrics.BillDeleted)
	slog.Info("Bill deleted", "bill_id", bill.ID, "by", caller.RoommateID)

	s.record(ctx, activity.BillDeleted(directory(ctx, s.store, caller), *bill))

	return connect.NewResponse(&roomiev1.DeleteBillResponse{}), nil
}

// AddComment appends the caller's comment to a bill.
func (s *BillService) AddComment(ctx context.Context, req *connect.Request[roomiev1.AddCommentRequest]) (*connect.Response[roomiev1.AddCommentResponse], error) {
	caller, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(req.Msg.Text)
	if text == "" {
		return nil, invalidArgument("comment text is required")
	}

	bill, err := s.store.GetBill(ctx, req.Msg.BillID)
	if err != nil {
		slog.Error("AddComment failed to get bill", "bill_id", req.Msg.BillID, "error", err)
		return nil, storeError(err)
	}

	comment := &models.Comment{AuthorID: caller.RoommateID, Text: text}
	if err := s.store.AddBillComment(ctx, bill.ID, comment); err != nil {
		slog.Error("AddComment failed", "bill_id", bill.ID, "error", err)
		return nil, storeError(err)
	}
	metrics.IncBillEvent(metrics.BillCommented)

	dir := directory(ctx, s.store, caller)
	s.record(ctx, activity.Commented(dir, caller.RoommateID, *bill))

	return connect.NewResponse(&roomiev1.AddCommentResponse{
		Comment: toAPIComment(*comment, dir),
	}), nil
}

// GetBalance returns the caller's outstanding balance over unsettled bills.
func (s *BillService) GetBalance(ctx context.Context, req *connect.Request[roomiev1.GetBalanceRequest]) (*connect.Response[roomiev1.GetBalanceResponse], error) {
	caller, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	bills, err := s.store.ListBills(ctx, storage.BillFilter{OnlyUnsettled: true})
	if err != nil {
		slog.Error("GetBalance failed", "error", err)
		return nil, storeError(err)
	}

	outstanding := ledger.Outstanding(bills, caller.RoommateID)
	resp := &roomiev1.GetBalanceResponse{
		Outstanding: outstanding,
		Summary:     s.money.Describe(outstanding),
		Bills:       []roomiev1.BillAmount{},
	}
	for _, bill := range bills {
		amount := ledger.Evaluate(bill, caller.RoommateID)
		if amount.IsZero() {
			continue
		}
		resp.Bills = append(resp.Bills, roomiev1.BillAmount{
			BillID:      bill.ID,
			Description: bill.Description,
			Amount:      amount,
		})
	}
	return connect.NewResponse(resp), nil
}

// GetHouseholdBalances returns every roommate's outstanding balance and the
// transfers that would settle them.
func (s *BillService) GetHouseholdBalances(ctx context.Context, req *connect.Request[roomiev1.GetHouseholdBalancesRequest]) (*connect.Response[roomiev1.GetHouseholdBalancesResponse], error) {
	caller, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	bills, err := s.store.ListBills(ctx, storage.BillFilter{OnlyUnsettled: true})
	if err != nil {
		slog.Error("GetHouseholdBalances failed to list bills", "error", err)
		return nil, storeError(err)
	}
	roommates, err := s.store.ListRoommates(ctx)
	if err != nil {
		slog.Error("GetHouseholdBalances failed to list roommates", "error", err)
		return nil, storeError(err)
	}
	// Names are shown from the household's point of view, not the caller's.
	dir := roster.NewDirectory(roommates, auth.Identity{})

	balances := ledger.HouseholdBalances(bills, roommateIDs(roommates))
	resp := &roomiev1.GetHouseholdBalancesResponse{
		Balances:  make([]roomiev1.RoommateBalance, len(balances)),
		Transfers: []roomiev1.Transfer{},
	}
	for i, b := range balances {
		name := dir.Name(b.RoommateID)
		resp.Balances[i] = roomiev1.RoommateBalance{
			RoommateID:  b.RoommateID,
			Name:        name,
			Outstanding: b.Outstanding,
			Summary:     s.money.DescribeFor(name, b.Outstanding),
		}
	}
	for _, t := range ledger.SuggestTransfers(balances) {
		resp.Transfers = append(resp.Transfers, roomiev1.Transfer{
			From:      t.From,
			To:        t.To,
			Amount:    t.Amount,
			Formatted: s.money.Format(t.Amount),
		})
	}
	slog.Debug("Household balances computed", "caller", caller.RoommateID, "roommates", len(balances))
	return connect.NewResponse(resp), nil
}
