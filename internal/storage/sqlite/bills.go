package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/roomieboard/internal/models"
	"github.com/mmynk/roomieboard/internal/storage"
)

const billColumns = "id, description, total_amount, paid_by, split_mode, full_owed_by, is_settled, due_date, created_at"

// billRow is a bills row before its split members and comments are attached.
type billRow struct {
	bill   models.Bill
	mode   sql.NullString
	debtor sql.NullString
}

type rowScanner interface {
	Scan(dest ...any) error
}

// CreateBill persists a new bill, its split members and any comments.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = time.Now().UTC()
	}

	mode, debtor, members := storage.SplitColumns(bill.Split)
	var dueDate sql.NullString
	if bill.DueDate != nil {
		dueDate = sql.NullString{String: bill.DueDate.Format(models.DateLayout), Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO bills ("+billColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		bill.ID, bill.Description, bill.TotalAmount.String(), bill.PaidBy,
		mode, debtor, bill.IsSettled, dueDate, bill.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	for _, id := range members {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO bill_split_members (bill_id, roommate_id) VALUES (?, ?)",
			bill.ID, id,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split member: %w", err)
		}
	}

	for i := range bill.Comments {
		if err := insertComment(ctx, tx, bill.ID, &bill.Comments[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetBill retrieves a bill by ID, including its split and comments.
func (s *SQLiteStore) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	row, err := scanBill(s.db.QueryRowContext(ctx,
		"SELECT "+billColumns+" FROM bills WHERE id = ?", billID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	bills, err := s.attachDetails(ctx, []*billRow{row})
	if err != nil {
		return nil, err
	}
	return &bills[0], nil
}

// ListBills returns bills newest first.
func (s *SQLiteStore) ListBills(ctx context.Context, filter storage.BillFilter) ([]models.Bill, error) {
	query := "SELECT " + billColumns + " FROM bills"
	if filter.OnlyUnsettled {
		query += " WHERE is_settled = 0"
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var billRows []*billRow
	for rows.Next() {
		row, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		billRows = append(billRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	rows.Close()

	return s.attachDetails(ctx, billRows)
}

// ToggleBillSettled flips the settled flag and returns the new value.
func (s *SQLiteStore) ToggleBillSettled(ctx context.Context, billID string) (bool, error) {
	var settled bool
	err := s.db.QueryRowContext(ctx,
		"UPDATE bills SET is_settled = CASE is_settled WHEN 0 THEN 1 ELSE 0 END WHERE id = ? RETURNING is_settled",
		billID,
	).Scan(&settled)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return false, fmt.Errorf("failed to toggle bill: %w", err)
	}
	return settled, nil
}

// AddBillComment appends a comment to an existing bill.
func (s *SQLiteStore) AddBillComment(ctx context.Context, billID string, comment *models.Comment) error {
	if err := s.billExists(ctx, billID); err != nil {
		return err
	}
	return insertComment(ctx, s.db, billID, comment)
}

// DeleteBill removes a bill by ID.
func (s *SQLiteStore) DeleteBill(ctx context.Context, billID string) error {
	if err := s.billExists(ctx, billID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM bill_split_members WHERE bill_id = ?",
		"DELETE FROM bill_comments WHERE bill_id = ?",
		"DELETE FROM bills WHERE id = ?",
	} {
		if _, err := tx.ExecContext(ctx, stmt, billID); err != nil {
			return fmt.Errorf("failed to delete bill: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) billExists(ctx context.Context, billID string) error {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM bills WHERE id = ?", billID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check bill existence: %w", err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertComment(ctx context.Context, db execer, billID string, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	_, err := db.ExecContext(ctx,
		"INSERT INTO bill_comments (id, bill_id, author_id, text, created_at) VALUES (?, ?, ?, ?, ?)",
		comment.ID, billID, comment.AuthorID, comment.Text, comment.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

func scanBill(row rowScanner) (*billRow, error) {
	var (
		r         billRow
		total     string
		dueDate   sql.NullString
		createdAt int64
	)
	if err := row.Scan(&r.bill.ID, &r.bill.Description, &total, &r.bill.PaidBy,
		&r.mode, &r.debtor, &r.bill.IsSettled, &dueDate, &createdAt); err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("bill %s has invalid amount %q: %w", r.bill.ID, total, err)
	}
	r.bill.TotalAmount = amount

	if dueDate.Valid {
		d, err := models.ParseDate(dueDate.String)
		if err != nil {
			return nil, fmt.Errorf("bill %s has invalid due date %q: %w", r.bill.ID, dueDate.String, err)
		}
		r.bill.DueDate = &d
	}
	r.bill.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &r, nil
}

// attachDetails loads split members and comments for the given rows with one
// query each and returns the completed bills in the same order.
func (s *SQLiteStore) attachDetails(ctx context.Context, billRows []*billRow) ([]models.Bill, error) {
	if len(billRows) == 0 {
		return []models.Bill{}, nil
	}

	ids := make([]string, len(billRows))
	for i, r := range billRows {
		ids[i] = r.bill.ID
	}
	in := placeholders(len(ids))

	members := make(map[string][]string)
	memberRows, err := s.db.QueryContext(ctx,
		"SELECT bill_id, roommate_id FROM bill_split_members WHERE bill_id IN ("+in+") ORDER BY roommate_id",
		toArgs(ids)...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get split members: %w", err)
	}
	for memberRows.Next() {
		var billID, roommateID string
		if err := memberRows.Scan(&billID, &roommateID); err != nil {
			memberRows.Close()
			return nil, fmt.Errorf("failed to scan split member: %w", err)
		}
		members[billID] = append(members[billID], roommateID)
	}
	memberRows.Close()
	if err := memberRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate split members: %w", err)
	}

	comments := make(map[string][]models.Comment)
	commentRows, err := s.db.QueryContext(ctx,
		"SELECT id, bill_id, author_id, text, created_at FROM bill_comments WHERE bill_id IN ("+in+") ORDER BY created_at, rowid",
		toArgs(ids)...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	for commentRows.Next() {
		var (
			c         models.Comment
			billID    string
			createdAt int64
		)
		if err := commentRows.Scan(&c.ID, &billID, &c.AuthorID, &c.Text, &createdAt); err != nil {
			commentRows.Close()
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		c.CreatedAt = time.UnixMilli(createdAt).UTC()
		comments[billID] = append(comments[billID], c)
	}
	commentRows.Close()
	if err := commentRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}

	bills := make([]models.Bill, len(billRows))
	for i, r := range billRows {
		bill := r.bill
		bill.Split = storage.BuildSplit(r.mode, r.debtor, members[bill.ID])
		bill.Comments = comments[bill.ID]
		bills[i] = bill
	}
	return bills, nil
}
