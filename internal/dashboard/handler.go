// Package dashboard serves the server-rendered dashboard page: one request
// fans out to every report, reshapes the rows and renders HTML with inline
// SVG charts.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/salesboard/salesboard/internal/dashboard/svg"
	"github.com/salesboard/salesboard/internal/geo"
	"github.com/salesboard/salesboard/internal/reporting"
	"github.com/salesboard/salesboard/internal/reshape"
	"github.com/salesboard/salesboard/internal/view"
)

const requestTimeout = 5 * time.Second

// ReportService is the slice of the reporting service the dashboard needs.
// Degradable reports carry no error; strict ones do, and a strict failure
// fails the whole page.
type ReportService interface {
	OrdersVsTarget(ctx context.Context, f reporting.Filter) []reporting.OrderVsTarget
	Salespeople(ctx context.Context) []reporting.Salesperson
	Years(ctx context.Context) []int
	ConversionRates(ctx context.Context, f reporting.Filter) []reporting.ConversionRate
	RevenueByCountry(ctx context.Context, f reporting.Filter) []reporting.CountryRevenue
	RevenuePrediction(ctx context.Context, f reporting.Filter) reporting.RevenuePrediction
	FunnelBuckets(ctx context.Context, f reporting.Filter) []reporting.FunnelBucket
	RevenueByMonth(ctx context.Context, f reporting.Filter) ([]reporting.MonthRevenue, error)
	ReasonBreakdown(ctx context.Context, f reporting.Filter) ([]reporting.ReasonBreakdown, error)
	TopSales(ctx context.Context, f reporting.Filter) ([]reporting.TopSale, error)
	ConversionTiming(ctx context.Context, f reporting.Filter) ([]reporting.ConversionTiming, error)
}

// Handler renders the dashboard page.
type Handler struct {
	logger    *slog.Logger
	service   ReportService
	templates *view.Engine
	geo       *geo.Index
	printer   *message.Printer
}

// NewHandler constructs the dashboard handler.
func NewHandler(logger *slog.Logger, service ReportService, templates *view.Engine, geoIndex *geo.Index) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		templates: templates,
		geo:       geoIndex,
		printer:   message.NewPrinter(language.French),
	}
}

// MountRoutes registers the dashboard page route.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleDashboard)
}

type dashboardData struct {
	orders      []reporting.OrderVsTarget
	salespeople []reporting.Salesperson
	years       []int
	rates       []reporting.ConversionRate
	countries   []reporting.CountryRevenue
	prediction  reporting.RevenuePrediction
	funnel      []reporting.FunnelBucket
	months      []reporting.MonthRevenue
	reasons     []reporting.ReasonBreakdown
	topSales    []reporting.TopSale
	timing      []reporting.ConversionTiming
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

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	filter := parseFilter(r)
	data, err := h.loadDashboardData(ctx, filter)
	if err != nil {
		h.logger.Error("dashboard load failed", "error", err)
		http.Error(w, "Erreur lors de la récupération des données", http.StatusInternalServerError)
		return
	}

	vm, err := h.buildViewModel(filter, data)
	if err != nil {
		h.logger.Error("dashboard render prep failed", "error", err)
		http.Error(w, "Erreur lors de la préparation du tableau de bord", http.StatusInternalServerError)
		return
	}

	if err := h.templates.Render(w, "dashboard.html", view.TemplateData{
		Title:       "Tableau de bord commercial",
		CurrentPath: r.URL.Path,
		Data:        vm,
	}); err != nil {
		h.logger.Error("dashboard template failed", "error", err)
	}
}

// loadDashboardData fans out to every report concurrently. Only the strict
// reports can fail the group; the degradable ones surface at worst as empty
// sections.
func (h *Handler) loadDashboardData(ctx context.Context, filter reporting.Filter) (dashboardData, error) {
	var data dashboardData
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		data.orders = h.service.OrdersVsTarget(ctx, filter)
		return nil
	})
	g.Go(func() error {
		data.salespeople = h.service.Salespeople(ctx)
		return nil
	})
	g.Go(func() error {
		data.years = h.service.Years(ctx)
		return nil
	})
	g.Go(func() error {
		data.rates = h.service.ConversionRates(ctx, filter)
		return nil
	})
	g.Go(func() error {
		data.countries = h.service.RevenueByCountry(ctx, filter)
		return nil
	})
	g.Go(func() error {
		data.prediction = h.service.RevenuePrediction(ctx, filter)
		return nil
	})
	g.Go(func() error {
		data.funnel = h.service.FunnelBuckets(ctx, filter)
		return nil
	})
	g.Go(func() error {
		months, err := h.service.RevenueByMonth(ctx, filter)
		if err != nil {
			return err
		}
		data.months = months
		return nil
	})
	g.Go(func() error {
		reasons, err := h.service.ReasonBreakdown(ctx, filter)
		if err != nil {
			return err
		}
		data.reasons = reasons
		return nil
	})
	g.Go(func() error {
		sales, err := h.service.TopSales(ctx, filter)
		if err != nil {
			return err
		}
		data.topSales = sales
		return nil
	})
	g.Go(func() error {
		timing, err := h.service.ConversionTiming(ctx, filter)
		if err != nil {
			return err
		}
		data.timing = timing
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboardData{}, err
	}
	return data, nil
}

func (h *Handler) buildViewModel(filter reporting.Filter, data dashboardData) (ViewModel, error) {
	vm := ViewModel{
		SelectedSalesperson: filter.Salesperson,
		Years:               data.years,
		Salespeople:         data.salespeople,
		Reasons:             data.reasons,
		Prediction:          data.prediction,
		Funnel:              data.funnel,
		TopSales:            data.topSales,
	}
	if filter.Year != nil {
		vm.SelectedYear = strconv.Itoa(*filter.Year)
	}

	// one row per salesperson: rows are aggregated across years unless a
	// year filter already narrows them
	orders := data.orders
	if !filter.HasYear() {
		orders = reshape.AggregateByCommercial(orders)
	}
	var sumActual, sumTarget float64
	orderLabels := make([]string, 0, len(orders))
	actuals := make([]float64, 0, len(orders))
	targets := make([]float64, 0, len(orders))
	for _, row := range orders {
		name := reshape.ResolveName(row.SalespersonID, data.salespeople)
		vm.Orders = append(vm.Orders, OrderRow{
			Name:       name,
			Actual:     row.ActualRevenue,
			Target:     row.TargetRevenue,
			Attainment: reshape.AttainmentPercent(row.ActualRevenue, row.TargetRevenue),
		})
		orderLabels = append(orderLabels, name)
		actuals = append(actuals, row.ActualRevenue)
		targets = append(targets, row.TargetRevenue)
		sumActual += row.ActualRevenue
		sumTarget += row.TargetRevenue
	}
	if len(orders) > 0 {
		chart, err := svg.GroupedBars(0, 0, actuals, targets, orderLabels, svg.BarOpts{
			Title:        "CA réalisé vs objectif",
			SeriesALabel: "CA réalisé",
			SeriesBLabel: "Objectif",
		})
		if err != nil {
			return ViewModel{}, err
		}
		vm.OrdersChart = chart
	}

	vm.GlobalAttainment = reshape.AttainmentPercent(sumActual, sumTarget)
	attainmentGauge, err := svg.Gauge(0, 0, reshape.NeedlePosition(vm.GlobalAttainment/2), svg.GaugeOpts{
		Title: "Atteinte de l'objectif",
		Label: h.printer.Sprintf("%.0f %%", vm.GlobalAttainment),
	})
	if err != nil {
		return ViewModel{}, err
	}
	vm.AttainmentGauge = attainmentGauge

	vm.Conversion = reshape.SummarizeConversion(data.rates)
	conversionGauge, err := svg.Gauge(0, 0, reshape.NeedlePosition(vm.Conversion.Rate), svg.GaugeOpts{
		Title:    "Taux de conversion",
		ArcColor: "#16a34a",
		Label:    h.printer.Sprintf("%.1f %%", vm.Conversion.Rate),
	})
	if err != nil {
		return ViewModel{}, err
	}
	vm.ConversionGauge = conversionGauge

	months := reshape.BackfillMonths(data.months)
	values := make([]float64, len(months))
	monthLabels := make([]string, len(months))
	for i, row := range months {
		values[i] = row.Revenue
		monthLabels[i] = reshape.MonthName(row.Month)
	}
	deltas := reshape.MonthOverMonthDeltas(values)
	for i, row := range months {
		vm.Months = append(vm.Months, MonthRow{
			Name:    reshape.MonthName(row.Month),
			Revenue: row.Revenue,
			Delta:   deltas[i],
		})
	}
	monthlyChart, err := svg.MonthlyBars(0, 0, values, deltas, monthLabels, svg.BarOpts{Title: "CA par mois"})
	if err != nil {
		return ViewModel{}, err
	}
	vm.MonthlyChart = monthlyChart

	if len(data.funnel) > 0 {
		segments := make([]svg.FunnelSegment, 0, len(data.funnel))
		for _, bucket := range data.funnel {
			segments = append(segments, svg.FunnelSegment{
				Label:    bucket.Level,
				Value:    h.printer.Sprintf("%.0f €", bucket.WeightedRevenue),
				Sublabel: h.printer.Sprintf("%d devis", bucket.QuoteCount),
			})
		}
		funnelChart, err := svg.Funnel(0, 0, segments, svg.FunnelOpts{Title: "Funnel de prédiction"})
		if err != nil {
			return ViewModel{}, err
		}
		vm.FunnelChart = funnelChart
	}

	choropleth := h.geo.BuildChoropleth(data.countries)
	for _, row := range data.countries {
		numeric, ok := h.geo.NumericFor(row.Country)
		if !ok {
			continue
		}
		vm.Countries = append(vm.Countries, CountryRow{
			Name:      h.geo.FrenchName(row.Country),
			Code:      numeric,
			Revenue:   row.Revenue,
			Intensity: choropleth.Intensity(row.Revenue),
		})
	}

	for _, row := range data.timing {
		vm.Timing = append(vm.Timing, TimingRow{
			Name:        reshape.MonthName(row.Month),
			AvgDays:     row.AvgDays,
			AvgRevenueK: row.AvgRevenueK,
		})
	}

	return vm, nil
}
