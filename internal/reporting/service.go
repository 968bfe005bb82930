package reporting

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
)

// Repository defines the data-access contract for the report set.
type Repository interface {
	OrdersVsTarget(ctx context.Context, f Filter) ([]OrderVsTarget, error)
	Salespeople(ctx context.Context) ([]Salesperson, error)
	Years(ctx context.Context) ([]int, error)
	ConversionRates(ctx context.Context, f Filter) ([]ConversionRate, error)
	RevenueByCountry(ctx context.Context, f Filter) ([]CountryRevenue, error)
	RevenueByMonth(ctx context.Context, f Filter) ([]MonthRevenue, error)
	ReasonBreakdown(ctx context.Context, f Filter) ([]ReasonBreakdown, error)
	RevenuePrediction(ctx context.Context, f Filter) (RevenuePrediction, error)
	FunnelBuckets(ctx context.Context, f Filter) ([]FunnelBucket, error)
	TopSales(ctx context.Context, f Filter) ([]TopSale, error)
	ConversionTiming(ctx context.Context, f Filter) ([]ConversionTiming, error)
}

// Service executes the report set and applies the per-report failure policy.
// Reports fall in two groups, mirrored in the method signatures: the
// degradable ones never return an error (a data-access failure is logged and
// an empty result returned), the strict ones propagate the error to the
// caller. The split is per report and deliberate; do not unify it.
type Service struct {
	repo     Repository
	logger   *slog.Logger
	validate *validator.Validate
}

// NewService wires a Repository with logging and filter validation.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		logger:   logger,
		validate: validator.New(),
	}
}

// sanitize normalizes a filter: an out-of-range year collapses to "no
// filter" rather than an error, and the "all" sentinel clears the
// salesperson dimension.
func (s *Service) sanitize(f Filter) Filter {
	if err := s.validate.Struct(f); err != nil {
		s.logger.Debug("filter rejected, dropping constraint", "error", err)
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			for _, fieldErr := range invalid {
				switch fieldErr.Field() {
				case "Year":
					f.Year = nil
				case "Salesperson":
					f.Salesperson = ""
				}
			}
		}
	}
	if f.Salesperson == FilterAll {
		f.Salesperson = ""
	}
	return f
}

// logFailure records a degraded report, classifying server-side query
// failures apart from transport failures.
func (s *Service) logFailure(report string, err error) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		s.logger.Error("report query failed", "report", report, "code", pgErr.Code, "error", pgErr.Message)
		return
	}
	s.logger.Error("report unavailable", "report", report, "error", err)
}

// OrdersVsTarget returns revenue-vs-target rows; degrades to empty on
// failure.
func (s *Service) OrdersVsTarget(ctx context.Context, f Filter) []OrderVsTarget {
	rows, err := s.repo.OrdersVsTarget(ctx, s.sanitize(f))
	if err != nil {
		s.logFailure("commandes", err)
		return []OrderVsTarget{}
	}
	if rows == nil {
		rows = []OrderVsTarget{}
	}
	return rows
}

// Salespeople returns the directory; degrades to empty on failure.
func (s *Service) Salespeople(ctx context.Context) []Salesperson {
	rows, err := s.repo.Salespeople(ctx)
	if err != nil {
		s.logFailure("commerciaux", err)
		return []Salesperson{}
	}
	if rows == nil {
		rows = []Salesperson{}
	}
	return rows
}

// Years returns available years, newest first; degrades to empty on failure.
func (s *Service) Years(ctx context.Context) []int {
	years, err := s.repo.Years(ctx)
	if err != nil {
		s.logFailure("annees", err)
		return []int{}
	}
	if years == nil {
		years = []int{}
	}
	return years
}

// ConversionRates returns conversion rows; degrades to empty on failure.
func (s *Service) ConversionRates(ctx context.Context, f Filter) []ConversionRate {
	rows, err := s.repo.ConversionRates(ctx, s.sanitize(f))
	if err != nil {
		s.logFailure("taux-conversion", err)
		return []ConversionRate{}
	}
	if rows == nil {
		rows = []ConversionRate{}
	}
	return rows
}

// RevenueByCountry returns per-country revenue; degrades to empty on
// failure.
func (s *Service) RevenueByCountry(ctx context.Context, f Filter) []CountryRevenue {
	rows, err := s.repo.RevenueByCountry(ctx, s.sanitize(f))
	if err != nil {
		s.logFailure("ca-par-pays", err)
		return []CountryRevenue{}
	}
	if rows == nil {
		rows = []CountryRevenue{}
	}
	return rows
}

// RevenuePrediction returns the weighted revenue aggregate; degrades to
// zero on failure.
func (s *Service) RevenuePrediction(ctx context.Context, f Filter) RevenuePrediction {
	prediction, err := s.repo.RevenuePrediction(ctx, s.sanitize(f))
	if err != nil {
		s.logFailure("prediction-ca", err)
		return RevenuePrediction{}
	}
	return prediction
}

// FunnelBuckets returns the four probability bands in fixed order; degrades
// to empty on failure.
func (s *Service) FunnelBuckets(ctx context.Context, f Filter) []FunnelBucket {
	buckets, err := s.repo.FunnelBuckets(ctx, s.sanitize(f))
	if err != nil {
		s.logFailure("funnel-data", err)
		return []FunnelBucket{}
	}
	if buckets == nil {
		buckets = []FunnelBucket{}
	}
	return buckets
}

// RevenueByMonth returns per-month revenue. Failures propagate.
func (s *Service) RevenueByMonth(ctx context.Context, f Filter) ([]MonthRevenue, error) {
	rows, err := s.repo.RevenueByMonth(ctx, s.sanitize(f))
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []MonthRevenue{}
	}
	return rows, nil
}

// ReasonBreakdown returns the order-reason rows. Failures propagate.
func (s *Service) ReasonBreakdown(ctx context.Context, f Filter) ([]ReasonBreakdown, error) {
	rows, err := s.repo.ReasonBreakdown(ctx, s.sanitize(f))
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []ReasonBreakdown{}
	}
	return rows, nil
}

// TopSales returns the top-5 sales rows. Failures propagate.
func (s *Service) TopSales(ctx context.Context, f Filter) ([]TopSale, error) {
	rows, err := s.repo.TopSales(ctx, s.sanitize(f))
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []TopSale{}
	}
	return rows, nil
}

// ConversionTiming returns exactly 12 entries, one per calendar month,
// zero-filled where the store has no data. Failures propagate.
func (s *Service) ConversionTiming(ctx context.Context, f Filter) ([]ConversionTiming, error) {
	rows, err := s.repo.ConversionTiming(ctx, s.sanitize(f))
	if err != nil {
		return nil, err
	}

	byMonth := make(map[int]ConversionTiming, len(rows))
	for _, row := range rows {
		if row.Month >= 1 && row.Month <= 12 {
			byMonth[row.Month] = row
		}
	}
	out := make([]ConversionTiming, 0, 12)
	for month := 1; month <= 12; month++ {
		entry, ok := byMonth[month]
		if !ok {
			entry = ConversionTiming{Month: month}
		}
		out = append(out, entry)
	}
	return out, nil
}
