package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/mmynk/roomieboard/internal/models"
	"github.com/mmynk/roomieboard/internal/storage"
)

const billColumns = "id, description, total_amount::text, paid_by, split_mode, full_owed_by, is_settled, due_date, created_at"

type billRow struct {
	bill   models.Bill
	mode   sql.NullString
	debtor sql.NullString
}

// CreateBill persists a new bill, its split members and any comments.
func (s *PostgresStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = time.Now().UTC()
	}
	mode, debtor, members := storage.SplitColumns(bill.Split)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO bills (id, description, total_amount, paid_by, split_mode, full_owed_by, is_settled, due_date, created_at)
		 VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, $8, $9)`,
		bill.ID, bill.Description, bill.TotalAmount.String(), bill.PaidBy,
		mode, debtor, bill.IsSettled, bill.DueDate, bill.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	for _, id := range members {
		if _, err := tx.Exec(ctx,
			"INSERT INTO bill_split_members (bill_id, roommate_id) VALUES ($1, $2)",
			bill.ID, id,
		); err != nil {
			return fmt.Errorf("failed to insert split member: %w", err)
		}
	}

	for i := range bill.Comments {
		if err := insertComment(ctx, tx, bill.ID, &bill.Comments[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetBill retrieves a bill by ID, including its split and comments.
func (s *PostgresStore) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	row, err := scanBill(s.pool.QueryRow(ctx, "SELECT "+billColumns+" FROM bills WHERE id = $1", billID))
	if errors.Is(err, pgx.ErrNoRows) {
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
func (s *PostgresStore) ListBills(ctx context.Context, filter storage.BillFilter) ([]models.Bill, error) {
	query := "SELECT " + billColumns + " FROM bills"
	if filter.OnlyUnsettled {
		query += " WHERE NOT is_settled"
	}
	query += " ORDER BY created_at DESC, seq DESC"

	rows, err := s.pool.Query(ctx, query)
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
func (s *PostgresStore) ToggleBillSettled(ctx context.Context, billID string) (bool, error) {
	var settled bool
	err := s.pool.QueryRow(ctx,
		"UPDATE bills SET is_settled = NOT is_settled WHERE id = $1 RETURNING is_settled",
		billID,
	).Scan(&settled)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return false, fmt.Errorf("failed to toggle bill: %w", err)
	}
	return settled, nil
}

// AddBillComment appends a comment to an existing bill.
func (s *PostgresStore) AddBillComment(ctx context.Context, billID string, comment *models.Comment) error {
	if err := s.billExists(ctx, billID); err != nil {
		return err
	}
	return insertComment(ctx, s.pool, billID, comment)
}

// DeleteBill removes a bill; split members and comments cascade.
func (s *PostgresStore) DeleteBill(ctx context.Context, billID string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM bills WHERE id = $1", billID)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) billExists(ctx context.Context, billID string) error {
	var exists int
	err := s.pool.QueryRow(ctx, "SELECT 1 FROM bills WHERE id = $1", billID).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check bill existence: %w", err)
	}
	return nil
}

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func insertComment(ctx context.Context, db execer, billID string, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	_, err := db.Exec(ctx,
		"INSERT INTO bill_comments (id, bill_id, author_id, text, created_at) VALUES ($1, $2, $3, $4, $5)",
		comment.ID, billID, comment.AuthorID, comment.Text, comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

func scanBill(row pgx.Row) (*billRow, error) {
	var (
		r       billRow
		total   string
		dueDate *time.Time
	)
	if err := row.Scan(&r.bill.ID, &r.bill.Description, &total, &r.bill.PaidBy,
		&r.mode, &r.debtor, &r.bill.IsSettled, &dueDate, &r.bill.CreatedAt); err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("bill %s has invalid amount %q: %w", r.bill.ID, total, err)
	}
	r.bill.TotalAmount = amount
	if dueDate != nil {
		d := time.Date(dueDate.Year(), dueDate.Month(), dueDate.Day(), 0, 0, 0, 0, time.UTC)
		r.bill.DueDate = &d
	}
	r.bill.CreatedAt = r.bill.CreatedAt.UTC()
	return &r, nil
}

func (s *PostgresStore) attachDetails(ctx context.Context, billRows []*billRow) ([]models.Bill, error) {
	if len(billRows) == 0 {
		return []models.Bill{}, nil
	}
	ids := make([]string, len(billRows))
	for i, r := range billRows {
		ids[i] = r.bill.ID
	}

	members := make(map[string][]string)
	memberRows, err := s.pool.Query(ctx,
		"SELECT bill_id, roommate_id FROM bill_split_members WHERE bill_id = ANY($1) ORDER BY roommate_id",
		ids,
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
	commentRows, err := s.pool.Query(ctx,
		"SELECT id, bill_id, author_id, text, created_at FROM bill_comments WHERE bill_id = ANY($1) ORDER BY created_at, seq",
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	for commentRows.Next() {
		var (
			c      models.Comment
			billID string
		)
		if err := commentRows.Scan(&c.ID, &billID, &c.AuthorID, &c.Text, &c.CreatedAt); err != nil {
			commentRows.Close()
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		c.CreatedAt = c.CreatedAt.UTC()
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
