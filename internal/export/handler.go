package export

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mmynk/roomieboard/internal/auth"
	"github.com/mmynk/roomieboard/internal/metrics"
	"github.com/mmynk/roomieboard/internal/middleware"
	"github.com/mmynk/roomieboard/internal/money"
	"github.com/mmynk/roomieboard/internal/roster"
	"github.com/mmynk/roomieboard/internal/storage"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// Handler serves the export downloads. Routes must be wrapped with
// middleware.RequireAuthHTTP.
type Handler struct {
	store storage.Store
	money *money.Formatter
	now   func() time.Time
}

func NewHandler(store storage.Store, formatter *money.Formatter) *Handler {
	return &Handler{store: store, money: formatter, now: time.Now}
}

// BillsXLSX serves GET /export/bills.xlsx.
func (h *Handler) BillsXLSX(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	caller, ok := middleware.GetIdentity(r.Context())
	if !ok {
		http.Error(w, auth.ErrMissingToken.Error(), http.StatusUnauthorized)
		return
	}

	bills, err := h.store.ListBills(r.Context(), storage.BillFilter{})
	if err != nil {
		h.fail(w, "xlsx", start, "failed to list bills", err)
		return
	}
	roommates, err := h.store.ListRoommates(r.Context())
	if err != nil {
		h.fail(w, "xlsx", start, "failed to list roommates", err)
		return
	}
	ids := make([]string, len(roommates))
	for i, rm := range roommates {
		ids[i] = rm.ID
	}

	data, err := BuildLedgerXLSX(bills, ids, roster.NewDirectory(roommates, caller), h.money)
	if err != nil {
		h.fail(w, "xlsx", start, "failed to build xlsx", err)
		return
	}
	h.write(w, "xlsx", contentTypeXLSX, "roomie-bills.xlsx", data, start)
}

// StatementPDF serves GET /export/statement.pdf for the caller.
func (h *Handler) StatementPDF(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	caller, ok := middleware.GetIdentity(r.Context())
	if !ok {
		http.Error(w, auth.ErrMissingToken.Error(), http.StatusUnauthorized)
		return
	}

	bills, err := h.store.ListBills(r.Context(), storage.BillFilter{OnlyUnsettled: true})
	if err != nil {
		h.fail(w, "pdf", start, "failed to list bills", err)
		return
	}
	roommates, err := h.store.ListRoommates(r.Context())
	if err != nil {
		h.fail(w, "pdf", start, "failed to list roommates", err)
		return
	}

	stmt := NewStatement(bills, caller.RoommateID, roster.NewDirectory(roommates, caller), h.now())
	data, err := BuildStatementPDF(stmt, h.money)
	if err != nil {
		h.fail(w, "pdf", start, "failed to build pdf", err)
		return
	}
	h.write(w, "pdf", contentTypePDF, "roomie-statement.pdf", data, start)
}

func (h *Handler) write(w http.ResponseWriter, format, contentType, filename string, data []byte, start time.Time) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if _, err := w.Write(data); err != nil {
		slog.Warn("Export write failed", "format", format, "error", err)
	}
	metrics.ObserveExport(format, metrics.ResultSuccess, time.Since(start))
}

func (h *Handler) fail(w http.ResponseWriter, format string, start time.Time, msg string, err error) {
	slog.Error("Export failed", "format", format, "step", msg, "error", err)
	metrics.ObserveExport(format, metrics.ResultError, time.Since(start))
	http.Error(w, "export failed", http.StatusInternalServerError)
}
