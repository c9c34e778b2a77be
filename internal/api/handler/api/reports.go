package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/newthinker/tickr/internal/api/response"
	"github.com/newthinker/tickr/internal/core"
	"github.com/newthinker/tickr/internal/storage/archive"
)

const (
	DefaultReportLimit = 20
	MaxReportLimit     = 100
)

// ReportLister reads archived reports.
type ReportLister interface {
	Reports(ctx context.Context, symbol string, limit int) ([]archive.Record, error)
}

// ReportsHandler serves the report archive.
type ReportsHandler struct {
	reports ReportLister
}

// NewReportsHandler creates a new reports handler
func NewReportsHandler(r ReportLister) *ReportsHandler {
	return &ReportsHandler{reports: r}
}

// List handles GET /api/v1/symbols/{symbol}/reports
func (h *ReportsHandler) List(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(strings.TrimSpace(r.PathValue("symbol")))
	if symbol == "" || strings.Contains(symbol, "..") {
		response.Error(w, http.StatusBadRequest, core.ErrInvalidSymbol)
		return
	}

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrBadRequest, err))
		return
	}

	records, err := h.reports.Reports(r.Context(), symbol, limit)
	if err != nil {
		response.Error(w, statusFor(err), err)
		return
	}

	response.JSON(w, http.StatusOK, records)
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return DefaultReportLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("limit must be an integer: %q", raw)
	}
	if limit < 1 || limit > MaxReportLimit {
		return 0, fmt.Errorf("limit must be between 1 and %d, got %d", MaxReportLimit, limit)
	}
	return limit, nil
}
