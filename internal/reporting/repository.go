package reporting

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// topSalesDocPrefix is the fixed sales-document prefix the top-sales report
// is restricted to.
const topSalesDocPrefix = "CDE-"

// PgRepository provides PostgreSQL backed access to the report queries.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository constructs a repository over a shared connection pool.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// filterClause builds the conditional WHERE fragment for the two shared
// filter dimensions. Column names differ per table, so callers pass them in.
func filterClause(f Filter, yearCol, salespersonCol string) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if f.HasYear() {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", yearCol, argPos))
		args = append(args, *f.Year)
		argPos++
	}
	if f.HasSalesperson() {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", salespersonCol, argPos))
		args = append(args, f.Salesperson)
		argPos++
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// OrdersVsTarget returns revenue against target per (salesperson, year).
func (r *PgRepository) OrdersVsTarget(ctx context.Context, f Filter) ([]OrderVsTarget, error) {
	where, args := filterClause(f, "co.Date_Annee", "co.ID_Commercial")
	query := fmt.Sprintf(`
		SELECT co.ID_Commercial, co.CA_Commande, co.CA_Objectif, co.Date_Annee
		FROM CA_Commande_Objectif co
		%s
		ORDER BY co.ID_Commercial, co.Date_Annee
	`, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reporting: orders vs target: %w", err)
	}
	defer rows.Close()

	var out []OrderVsTarget
	for rows.Next() {
		var row OrderVsTarget
		if err := rows.Scan(&row.SalespersonID, &row.ActualRevenue, &row.TargetRevenue, &row.Year); err != nil {
			return nil, fmt.Errorf("reporting: orders vs target: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Salespeople returns the salesperson directory.
func (r *PgRepository) Salespeople(ctx context.Context) ([]Salesperson, error) {
	rows, err := r.pool.Query(ctx, `SELECT ID_Commercial, Nom FROM KPI_Commercial ORDER BY Nom`)
	if err != nil {
		return nil, fmt.Errorf("reporting: salespeople: %w", err)
	}
	defer rows.Close()

	var out []Salesperson
	for rows.Next() {
		var row Salesperson
		if err := rows.Scan(&row.ID, &row.Name); err != nil {
			return nil, fmt.Errorf("reporting: salespeople: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Years returns the distinct years with order data, newest first.
func (r *PgRepository) Years(ctx context.Context) ([]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT co.Date_Annee
		FROM CA_Commande_Objectif co
		ORDER BY co.Date_Annee DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("reporting: years: %w", err)
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, fmt.Errorf("reporting: years: %w", err)
		}
		out = append(out, year)
	}
	return out, rows.Err()
}

// ConversionRates returns quote-to-order conversion rows per salesperson
// and year.
func (r *PgRepository) ConversionRates(ctx context.Context, f Filter) ([]ConversionRate, error) {
	where, args := filterClause(f, "Annee_Commande", "Commercial_ID")
	query := fmt.Sprintf(`
		SELECT ID, Annee_Commande, Commercial_ID, Nb_Devis, Nb_Commandes, Taux_Conversion
		FROM Taux_Conversion
		%s
		ORDER BY Commercial_ID, Annee_Commande
	`, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reporting: conversion rates: %w", err)
	}
	defer rows.Close()

	var out []ConversionRate
	for rows.Next() {
		var row ConversionRate
		if err := rows.Scan(&row.ID, &row.Year, &row.SalespersonID, &row.QuoteCount, &row.OrderCount, &row.Rate); err != nil {
			return nil, fmt.Errorf("reporting: conversion rates: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// RevenueByCountry returns summed revenue grouped by country code.
func (r *PgRepository) RevenueByCountry(ctx context.Context, f Filter) ([]CountryRevenue, error) {
	where, args := filterClause(f, "Date_Annee", "ID_Commercial")
	query := fmt.Sprintf(`
		SELECT Pays, SUM(CA_Commande)
		FROM CA_Commande_Localite
		%s
		GROUP BY Pays
	`, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reporting: revenue by country: %w", err)
	}
	defer rows.Close()

	var out []CountryRevenue
	for rows.Next() {
		var row CountryRevenue
		if err := rows.Scan(&row.Country, &row.Revenue); err != nil {
			return nil, fmt.Errorf("reporting: revenue by country: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// RevenueByMonth returns summed revenue grouped by calendar month.
func (r *PgRepository) RevenueByMonth(ctx context.Context, f Filter) ([]MonthRevenue, error) {
	where, args := filterClause(f, "Date_Annee", "ID_Commercial")
	query := fmt.Sprintf(`
		SELECT Date_Mois, SUM(CA_Commande)
		FROM CA_Commande
		%s
		GROUP BY Date_Mois
		ORDER BY Date_Mois
	`, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reporting: revenue by month: %w", err)
	}
	defer rows.Close()

	var out []MonthRevenue
	for rows.Next() {
		var row MonthRevenue
		if err := rows.Scan(&row.Month, &row.Revenue); err != nil {
			return nil, fmt.Errorf("reporting: revenue by month: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ReasonBreakdown returns order-reason rows sorted by quote count.
func (r *PgRepository) ReasonBreakdown(ctx context.Context, f Filter) ([]ReasonBreakdown, error) {
	where, args := filterClause(f, "Date_Annee", "ID_Commercial")
	query := fmt.Sprintf(`
		SELECT ID, Date_Annee, ID_Commercial, COALESCE(Motif, 'NULL'), Nb_Devis
		FROM Taux_Motif
		%s
		ORDER BY Nb_Devis DESC
	`, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reporting: reason breakdown: %w", err)
	}
	defer rows.Close()

	var out []ReasonBreakdown
	for rows.Next() {
		var row ReasonBreakdown
		if err := rows.Scan(&row.ID, &row.Year, &row.SalespersonID, &row.Reason, &row.QuoteCount); err != nil {
			return nil, fmt.Errorf("reporting: reason breakdown: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// RevenuePrediction returns the probability-weighted revenue sum over open
// quotes.
func (r *PgRepository) RevenuePrediction(ctx context.Context, f Filter) (RevenuePrediction, error) {
	where, args := filterClause(f, "Date_Annee", "ID_Commercial")
	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(CA_Prevu * Probabilite / 100.0), 0)
		FROM Prediction_CA
		%s
	`, where)

	var prediction RevenuePrediction
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&prediction.WeightedRevenue); err != nil {
		return RevenuePrediction{}, fmt.Errorf("reporting: revenue prediction: %w", err)
	}
	return prediction, nil
}

// FunnelBuckets partitions open quotes into the four probability bands.
// One query per band, concatenated in the fixed display order.
func (r *PgRepository) FunnelBuckets(ctx context.Context, f Filter) ([]FunnelBucket, error) {
	out := make([]FunnelBucket, 0, len(funnelBands))
	for _, band := range funnelBands {
		where, args := filterClause(f, "Date_Annee", "ID_Commercial")
		conditions := []string{}
		if where != "" {
			conditions = append(conditions, strings.TrimPrefix(where, "WHERE "))
		}
		argPos := len(args) + 1
		if band.low != nil {
			conditions = append(conditions, fmt.Sprintf("Probabilite > $%d", argPos))
			args = append(args, *band.low)
			argPos++
		}
		if band.high != nil {
			conditions = append(conditions, fmt.Sprintf("Probabilite <= $%d", argPos))
			args = append(args, *band.high)
		}

		query := `
			SELECT COALESCE(SUM(CA_Prevu * Probabilite / 100.0), 0), COUNT(*)
			FROM Prediction_CA
		`
		if len(conditions) > 0 {
			query += " WHERE " + strings.Join(conditions, " AND ")
		}

		bucket := FunnelBucket{Level: band.level}
		if err := r.pool.QueryRow(ctx, query, args...).Scan(&bucket.WeightedRevenue, &bucket.QuoteCount); err != nil {
			return nil, fmt.Errorf("reporting: funnel bucket %q: %w", band.level, err)
		}
		out = append(out, bucket)
	}
	return out, nil
}

// TopSales returns the five highest-revenue sales documents matching the
// fixed document prefix. Ties break on document number.
func (r *PgRepository) TopSales(ctx context.Context, f Filter) ([]TopSale, error) {
	where, args := filterClause(f, "tv.Date_Annee", "tv.ID_Commercial")
	prefixCond := fmt.Sprintf("LEFT(tv.Document_Vente, 4) = $%d", len(args)+1)
	if where == "" {
		where = "WHERE " + prefixCond
	} else {
		where += " AND " + prefixCond
	}
	args = append(args, topSalesDocPrefix)
	query := fmt.Sprintf(`
		SELECT tv.CA_Commande, tv.Document_Vente, kc.Nom, tv.Client, tv.Date_Commande, tv.Pays
		FROM Top_Ventes tv
		JOIN KPI_Commercial kc ON kc.ID_Commercial = tv.ID_Commercial
		%s
		ORDER BY tv.CA_Commande DESC, tv.Document_Vente ASC
		LIMIT 5
	`, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reporting: top sales: %w", err)
	}
	defer rows.Close()

	var out []TopSale
	for rows.Next() {
		var row TopSale
		if err := rows.Scan(&row.Revenue, &row.DocumentID, &row.Salesperson, &row.Customer, &row.Date, &row.Country); err != nil {
			return nil, fmt.Errorf("reporting: top sales: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ConversionTiming returns the average quote-to-order delay and average
// order revenue per month. Sparse: only months with data are returned; the
// service back-fills the rest.
func (r *PgRepository) ConversionTiming(ctx context.Context, f Filter) ([]ConversionTiming, error) {
	where, args := filterClause(f, "Date_Annee", "ID_Commercial")
	query := fmt.Sprintf(`
		SELECT Date_Mois, AVG(Duree_Conversion), AVG(CA_Commande) / 1000.0
		FROM Temps_CA_Conversion
		%s
		GROUP BY Date_Mois
		ORDER BY Date_Mois
	`, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reporting: conversion timing: %w", err)
	}
	defer rows.Close()

	var out []ConversionTiming
	for rows.Next() {
		var row ConversionTiming
		if err := rows.Scan(&row.Month, &row.AvgDays, &row.AvgRevenueK); err != nil {
			return nil, fmt.Errorf("reporting: conversion timing: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
