package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/salesboard/salesboard/internal/reporting"
	"github.com/salesboard/salesboard/internal/reshape"
)

// WriteWorkbook emits one XLSX workbook with a sheet per headline report.
func WriteWorkbook(w io.Writer, orders []reporting.OrderVsTarget, rates []reporting.ConversionRate, months []reporting.MonthRevenue, directory []reporting.Salesperson) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := writeOrdersSheet(file, orders, directory); err != nil {
		return err
	}
	if err := writeConversionSheet(file, rates, directory); err != nil {
		return err
	}
	if err := writeMonthlySheet(file, months); err != nil {
		return err
	}
	// drop the default sheet created by NewFile
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

func writeOrdersSheet(file *excelize.File, orders []reporting.OrderVsTarget, directory []reporting.Salesperson) error {
	const sheet = "CA vs Objectif"
	if _, err := file.NewSheet(sheet); err != nil {
		return err
	}
	headers := []interface{}{"Commercial", "Année", "CA réalisé", "Objectif", "Atteinte (%)"}
	if err := file.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	for i, row := range orders {
		var year interface{}
		if row.Year != 0 {
			year = row.Year
		}
		cells := []interface{}{
			reshape.ResolveName(row.SalespersonID, directory),
			year,
			row.ActualRevenue,
			row.TargetRevenue,
			reshape.AttainmentPercent(row.ActualRevenue, row.TargetRevenue),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(sheet, cell, &cells); err != nil {
			return err
		}
	}
	return nil
}

func writeConversionSheet(file *excelize.File, rates []reporting.ConversionRate, directory []reporting.Salesperson) error {
	const sheet = "Taux de conversion"
	if _, err := file.NewSheet(sheet); err != nil {
		return err
	}
	headers := []interface{}{"Commercial", "Année", "Devis", "Commandes", "Taux (%)"}
	if err := file.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	rowIdx := 2
	for _, row := range rates {
		cells := []interface{}{
			reshape.ResolveName(row.SalespersonID, directory),
			row.Year,
			row.QuoteCount,
			row.OrderCount,
			row.Rate,
		}
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(sheet, cell, &cells); err != nil {
			return err
		}
		rowIdx++
	}
	summary := reshape.SummarizeConversion(rates)
	totals := []interface{}{"TOTAL", nil, summary.Quotes, summary.Orders, summary.Rate}
	cell, err := excelize.CoordinatesToCellName(1, rowIdx)
	if err != nil {
		return err
	}
	return file.SetSheetRow(sheet, cell, &totals)
}

func writeMonthlySheet(file *excelize.File, months []reporting.MonthRevenue) error {
	const sheet = "CA par mois"
	if _, err := file.NewSheet(sheet); err != nil {
		return err
	}
	headers := []interface{}{"Mois", "CA", "Variation (%)"}
	if err := file.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	filled := reshape.BackfillMonths(months)
	values := make([]float64, len(filled))
	for i, row := range filled {
		values[i] = row.Revenue
	}
	deltas := reshape.MonthOverMonthDeltas(values)
	for i, row := range filled {
		var delta interface{}
		if deltas[i] != nil {
			delta = *deltas[i]
		}
		cells := []interface{}{reshape.MonthName(row.Month), row.Revenue, delta}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(sheet, cell, &cells); err != nil {
			return err
		}
	}
	return nil
}
