// Package export serialises the headline reports to downloadable CSV and
// XLSX files.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/salesboard/salesboard/internal/reporting"
	"github.com/salesboard/salesboard/internal/reshape"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// WriteOrdersCSV serialises revenue-vs-objective rows, with the salesperson
// names resolved against the directory.
func WriteOrdersCSV(w io.Writer, rows []reporting.OrderVsTarget, directory []reporting.Salesperson) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Commercial", "Annee", "CA_Commande", "CA_Objectif", "Atteinte_Pct"}); err != nil {
		return err
	}
	for _, row := range rows {
		year := ""
		if row.Year != 0 {
			year = strconv.Itoa(row.Year)
		}
		if err := writer.Write([]string{
			reshape.ResolveName(row.SalespersonID, directory),
			year,
			formatFloat(row.ActualRevenue),
			formatFloat(row.TargetRevenue),
			formatFloat(reshape.AttainmentPercent(row.ActualRevenue, row.TargetRevenue)),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteConversionCSV serialises conversion rows plus a trailing aggregate
// line recomputed from the raw counts.
func WriteConversionCSV(w io.Writer, rows []reporting.ConversionRate, directory []reporting.Salesperson) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Commercial", "Annee", "Nb_Devis", "Nb_Commandes", "Taux_Conversion"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write([]string{
			reshape.ResolveName(row.SalespersonID, directory),
			strconv.Itoa(row.Year),
			strconv.Itoa(row.QuoteCount),
			strconv.Itoa(row.OrderCount),
			formatFloat(row.Rate),
		}); err != nil {
			return err
		}
	}
	summary := reshape.SummarizeConversion(rows)
	if err := writer.Write([]string{
		"TOTAL",
		"",
		strconv.Itoa(summary.Quotes),
		strconv.Itoa(summary.Orders),
		formatFloat(summary.Rate),
	}); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// WriteMonthlyCSV serialises the back-filled monthly revenue with its
// month-over-month deltas.
func WriteMonthlyCSV(w io.Writer, rows []reporting.MonthRevenue) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Mois", "CA_Commande", "Variation_Pct"}); err != nil {
		return err
	}
	months := reshape.BackfillMonths(rows)
	values := make([]float64, len(months))
	for i, row := range months {
		values[i] = row.Revenue
	}
	deltas := reshape.MonthOverMonthDeltas(values)
	for i, row := range months {
		delta := ""
		if deltas[i] != nil {
			delta = formatFloat(*deltas[i])
		}
		if err := writer.Write([]string{
			reshape.MonthName(row.Month),
			formatFloat(row.Revenue),
			delta,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
