// Package importer loads the browser-storage document of the original
// single-page app ("roomie-board-data") into a store.
package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// Document is the subset of the legacy app state that maps onto the ledger.
// Chores, kitchen items and noise notes are ignored.
type Document struct {
	Bills         []LegacyBill         `json:"bills"`
	Notifications []LegacyNotification `json:"notifications"`
}

type LegacyBill struct {
	ID           string          `json:"id"`
	Description  string          `json:"description"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	PaidBy       string          `json:"paidBy"`
	SplitBetween []string        `json:"splitBetween"`
	FullOwedBy   string          `json:"fullOwedBy"`
	Comments     []LegacyComment `json:"comments"`
	CreatedAt    string          `json:"createdAt"`
	DueDate      string          `json:"dueDate"`
	IsSettled    *bool           `json:"isSettled"`
}

type LegacyComment struct {
	ID        string `json:"id"`
	AuthorID  string `json:"authorId"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

type LegacyNotification struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Read      bool   `json:"read"`
}

// ParseDocument decodes a legacy document.
func ParseDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode legacy document: %w", err)
	}
	return &doc, nil
}

// parseTimestamp accepts the ISO strings written by the browser.
func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// parseDueDate accepts a YYYY-MM-DD date or a full timestamp.
func parseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return &d, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil, err
	}
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &day, nil
}
