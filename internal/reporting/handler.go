package reporting

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/salesboard/salesboard/internal/platform/httpx"
)

// French error messages are part of the wire contract consumed by the
// existing dashboard front end.
const (
	errMsgData     = "Erreur lors de la récupération des données"
	errMsgReasons  = "Erreur lors de la récupération des motifs de commande"
	errMsgTopSales = "Erreur lors de la récupération des meilleures ventes"
	errMsgTiming   = "Erreur lors de la récupération des temps de conversion"
)

// Handler exposes one GET endpoint per report.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs the reporting HTTP handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// MountRoutes registers the report endpoints on the given router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/commandes", h.handleOrdersVsTarget)
	r.Get("/commerciaux", h.handleSalespeople)
	r.Get("/annees", h.handleYears)
	r.Get("/taux-conversion", h.handleConversionRates)
	r.Get("/ca-par-pays", h.handleRevenueByCountry)
	r.Get("/ca-par-mois", h.handleRevenueByMonth)
	r.Get("/motif-repartition", h.handleReasonBreakdown)
	r.Get("/prediction-ca", h.handleRevenuePrediction)
	r.Get("/top-sales", h.handleTopSales)
	r.Get("/funnel-data", h.handleFunnelBuckets)
	r.Get("/temps-ca-conversion", h.handleConversionTiming)
}

// parseFilter reads the two shared query parameters. An unparsable annee is
// not an error: the dimension is simply left unconstrained.
func parseFilter(r *http.Request) Filter {
	var f Filter
	if raw := r.URL.Query().Get("annee"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			f.Year = &year
		}
	}
	f.Salesperson = r.URL.Query().Get("commercial")
	return f
}

func (h *Handler) handleOrdersVsTarget(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.OrdersVsTarget(r.Context(), parseFilter(r)))
}

func (h *Handler) handleSalespeople(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.Salespeople(r.Context()))
}

func (h *Handler) handleYears(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.Years(r.Context()))
}

func (h *Handler) handleConversionRates(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.ConversionRates(r.Context(), parseFilter(r)))
}

func (h *Handler) handleRevenueByCountry(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.RevenueByCountry(r.Context(), parseFilter(r)))
}

func (h *Handler) handleRevenueByMonth(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.RevenueByMonth(r.Context(), parseFilter(r))
	if err != nil {
		h.logger.Error("revenue by month failed", "error", err)
		httpx.Error(w, http.StatusInternalServerError, errMsgData)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) handleReasonBreakdown(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ReasonBreakdown(r.Context(), parseFilter(r))
	if err != nil {
		h.logger.Error("reason breakdown failed", "error", err)
		httpx.Error(w, http.StatusInternalServerError, errMsgReasons)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) handleRevenuePrediction(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.RevenuePrediction(r.Context(), parseFilter(r)))
}

func (h *Handler) handleTopSales(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.TopSales(r.Context(), parseFilter(r))
	if err != nil {
		h.logger.Error("top sales failed", "error", err)
		httpx.Error(w, http.StatusInternalServerError, errMsgTopSales)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) handleFunnelBuckets(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.FunnelBuckets(r.Context(), parseFilter(r)))
}

func (h *Handler) handleConversionTiming(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ConversionTiming(r.Context(), parseFilter(r))
	if err != nil {
		h.logger.Error("conversion timing failed", "error", err)
		httpx.Error(w, http.StatusInternalServerError, errMsgTiming)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}
