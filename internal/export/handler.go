package export

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/salesboard/salesboard/internal/platform/httpx"
	"github.com/salesboard/salesboard/internal/reporting"
)

// ReportSource is the slice of the reporting service the exports need.
type ReportSource interface {
	OrdersVsTarget(ctx context.Context, f reporting.Filter) []reporting.OrderVsTarget
	ConversionRates(ctx context.Context, f reporting.Filter) []reporting.ConversionRate
	Salespeople(ctx context.Context) []reporting.Salesperson
	RevenueByMonth(ctx context.Context, f reporting.Filter) ([]reporting.MonthRevenue, error)
}

// Handler serves the CSV and XLSX downloads.
type Handler struct {
	source ReportSource
	logger *slog.Logger
}

// NewHandler constructs the export handler.
func NewHandler(source ReportSource, logger *slog.Logger) *Handler {
	return &Handler{source: source, logger: logger}
}

// MountRoutes registers the export endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/export.csv", h.handleCSV)
	r.Get("/export.xlsx", h.handleXLSX)
}

func parseFilter(r *http.Request) reporting.Filter {
	var f reporting.Filter
	if raw := r.URL.Query().Get("annee"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			f.Year = &year
		}
	}
	f.Salesperson = r.URL.Query().Get("commercial")
	return f
}

func exportFilename(ext string) string {
	return fmt.Sprintf("salesboard-%s.%s", time.Now().Format("2006-01-02"), ext)
}

func (h *Handler) handleCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter := parseFilter(r)

	months, err := h.source.RevenueByMonth(ctx, filter)
	if err != nil {
		h.logger.Error("export csv failed", "error", err)
		httpx.Error(w, http.StatusInternalServerError, "Erreur lors de la récupération des données")
		return
	}
	orders := h.source.OrdersVsTarget(ctx, filter)
	rates := h.source.ConversionRates(ctx, filter)
	directory := h.source.Salespeople(ctx)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+exportFilename("csv"))

	if err := WriteOrdersCSV(w, orders, directory); err != nil {
		h.logger.Error("export csv write failed", "error", err)
		return
	}
	fmt.Fprintln(w)
	if err := WriteConversionCSV(w, rates, directory); err != nil {
		h.logger.Error("export csv write failed", "error", err)
		return
	}
	fmt.Fprintln(w)
	if err := WriteMonthlyCSV(w, months); err != nil {
		h.logger.Error("export csv write failed", "error", err)
	}
}

func (h *Handler) handleXLSX(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter := parseFilter(r)

	months, err := h.source.RevenueByMonth(ctx, filter)
	if err != nil {
		h.logger.Error("export xlsx failed", "error", err)
		httpx.Error(w, http.StatusInternalServerError, "Erreur lors de la récupération des données")
		return
	}
	orders := h.source.OrdersVsTarget(ctx, filter)
	rates := h.source.ConversionRates(ctx, filter)
	directory := h.source.Salespeople(ctx)

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+exportFilename("xlsx"))

	if err := WriteWorkbook(w, orders, rates, months, directory); err != nil {
		h.logger.Error("export xlsx write failed", "error", err)
	}
}
