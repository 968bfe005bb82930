package export

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/salesboard/salesboard/internal/reporting"
)

var testDirectory = []reporting.Salesperson{
	{ID: "C001", Name: "Martin Durand"},
}

func TestWriteOrdersCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteOrdersCSV(&buf, []reporting.OrderVsTarget{
		{SalespersonID: "C001", ActualRevenue: 1500, TargetRevenue: 2000, Year: 2024},
		{SalespersonID: "C999", ActualRevenue: 100, TargetRevenue: 0},
	}, testDirectory)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Commercial,Annee,CA_Commande,CA_Objectif,Atteinte_Pct", lines[0])
	assert.Equal(t, "Martin Durand,2024,1500.00,2000.00,75.00", lines[1])
	// unresolved id falls back to the raw id; zero target with revenue caps
	// the attainment at 200
	assert.Equal(t, "C999,,100.00,0.00,200.00", lines[2])
}

func TestWriteConversionCSVAppendsTotal(t *testing.T) {
	var buf bytes.Buffer
	err := WriteConversionCSV(&buf, []reporting.ConversionRate{
		{SalespersonID: "C001", Year: 2024, QuoteCount: 10, OrderCount: 3, Rate: 30},
	}, testDirectory)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "TOTAL,,10,3,30.00", lines[2])
}

func TestWriteMonthlyCSVBackfills(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMonthlyCSV(&buf, []reporting.MonthRevenue{
		{Month: 1, Revenue: 1000},
		{Month: 2, Revenue: 1500},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 13)
	assert.Equal(t, "Janvier,1000.00,", lines[1])
	assert.Equal(t, "Février,1500.00,50.00", lines[2])
	assert.Equal(t, "Décembre,0.00,", lines[12])
}

func TestWriteWorkbookSheets(t *testing.T) {
	var buf bytes.Buffer
	err := WriteWorkbook(&buf,
		[]reporting.OrderVsTarget{{SalespersonID: "C001", ActualRevenue: 1500, TargetRevenue: 2000, Year: 2024}},
		[]reporting.ConversionRate{{SalespersonID: "C001", Year: 2024, QuoteCount: 10, OrderCount: 3, Rate: 30}},
		[]reporting.MonthRevenue{{Month: 1, Revenue: 1000}},
		testDirectory,
	)
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer file.Close()

	sheets := file.GetSheetList()
	assert.ElementsMatch(t, []string{"CA vs Objectif", "Taux de conversion", "CA par mois"}, sheets)

	name, err := file.GetCellValue("CA vs Objectif", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Martin Durand", name)
}

// ============================================================================
// HANDLER
// ============================================================================

type stubSource struct {
	orders    []reporting.OrderVsTarget
	rates     []reporting.ConversionRate
	directory []reporting.Salesperson
	months    []reporting.MonthRevenue
	monthsErr error
}

func (s *stubSource) OrdersVsTarget(ctx context.Context, f reporting.Filter) []reporting.OrderVsTarget {
	return s.orders
}

func (s *stubSource) ConversionRates(ctx context.Context, f reporting.Filter) []reporting.ConversionRate {
	return s.rates
}

func (s *stubSource) Salespeople(ctx context.Context) []reporting.Salesperson {
	return s.directory
}

func (s *stubSource) RevenueByMonth(ctx context.Context, f reporting.Filter) ([]reporting.MonthRevenue, error) {
	return s.months, s.monthsErr
}

func newTestRouter(source ReportSource) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(source, logger)
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		handler.MountRoutes(r)
	})
	return r
}

func TestCSVEndpoint(t *testing.T) {
	source := &stubSource{
		orders:    []reporting.OrderVsTarget{{SalespersonID: "C001", ActualRevenue: 100, TargetRevenue: 200, Year: 2024}},
		directory: testDirectory,
	}
	req := httptest.NewRequest(http.MethodGet, "/api/export.csv?annee=2024", nil)
	rec := httptest.NewRecorder()
	newTestRouter(source).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".csv")
	assert.Contains(t, rec.Body.String(), "Martin Durand")
}

func TestXLSXEndpoint(t *testing.T) {
	source := &stubSource{directory: testDirectory}
	req := httptest.NewRequest(http.MethodGet, "/api/export.xlsx", nil)
	rec := httptest.NewRecorder()
	newTestRouter(source).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")

	_, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	assert.NoError(t, err)
}

func TestExportFailsOn500(t *testing.T) {
	source := &stubSource{monthsErr: errors.New("query failed")}
	req := httptest.NewRequest(http.MethodGet, "/api/export.csv", nil)
	rec := httptest.NewRecorder()
	newTestRouter(source).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
