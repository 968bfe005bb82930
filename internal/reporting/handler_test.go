package reporting

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(repo Repository) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(NewService(repo, logger), logger)
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		handler.MountRoutes(r)
	})
	return r
}

func doGet(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestOrdersEndpointWireFormat(t *testing.T) {
	repo := &mockRepository{orders: []OrderVsTarget{
		{SalespersonID: "C001", ActualRevenue: 1500.5, TargetRevenue: 2000, Year: 2024},
	}}
	rec := doGet(t, newTestRouter(repo), "/api/commandes?annee=2024&commercial=C001")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "C001", body[0]["ID_Commercial"])
	assert.Equal(t, 1500.5, body[0]["CA_Commande"])
	assert.Equal(t, 2000.0, body[0]["CA_Objectif"])
	assert.Equal(t, 2024.0, body[0]["Annee"])

	require.NotNil(t, repo.lastFilter.Year)
	assert.Equal(t, 2024, *repo.lastFilter.Year)
	assert.Equal(t, "C001", repo.lastFilter.Salesperson)
}

func TestInvalidYearMeansNoFilter(t *testing.T) {
	repo := &mockRepository{}
	rec := doGet(t, newTestRouter(repo), "/api/commandes?annee=abc")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, repo.lastFilter.Year)
}

func TestAllSalespersonMeansNoFilter(t *testing.T) {
	repo := &mockRepository{}
	rec := doGet(t, newTestRouter(repo), "/api/taux-conversion?commercial=all")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, repo.lastFilter.Salesperson)
}

func TestDegradableEndpointsReturn200OnFailure(t *testing.T) {
	repo := &mockRepository{err: errors.New("connection refused")}
	router := newTestRouter(repo)

	for _, path := range []string{
		"/api/commandes",
		"/api/commerciaux",
		"/api/annees",
		"/api/taux-conversion",
		"/api/ca-par-pays",
		"/api/funnel-data",
	} {
		rec := doGet(t, router, path)
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "[]\n", rec.Body.String(), path)
	}

	rec := doGet(t, router, "/api/prediction-ca")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"CA_Prediction": 0}`, rec.Body.String())
}

func TestStrictEndpointsReturn500OnFailure(t *testing.T) {
	repo := &mockRepository{err: errors.New("query failed")}
	router := newTestRouter(repo)

	for _, path := range []string{
		"/api/ca-par-mois",
		"/api/motif-repartition",
		"/api/top-sales",
		"/api/temps-ca-conversion",
	} {
		rec := doGet(t, router, path)
		require.Equal(t, http.StatusInternalServerError, rec.Code, path)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), path)
		assert.Contains(t, body, "error", path)
		assert.NotEmpty(t, body["error"], path)
	}
}

func TestConversionTimingEndpointAlwaysTwelveEntries(t *testing.T) {
	repo := &mockRepository{timings: []ConversionTiming{{Month: 6, AvgDays: 10, AvgRevenueK: 2.5}}}
	rec := doGet(t, newTestRouter(repo), "/api/temps-ca-conversion")

	require.Equal(t, http.StatusOK, rec.Code)
	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 12)
	assert.Equal(t, 10.0, body[5]["Duree_Moyenne"])
	assert.Equal(t, 0.0, body[0]["Duree_Moyenne"])
}

func TestTopSalesEndpointWireFormat(t *testing.T) {
	repo := &mockRepository{topSales: []TopSale{
		{Revenue: 125000, DocumentID: "CDE-0001", Salesperson: "Durand", Customer: "Acme SA", Country: "FR"},
	}}
	rec := doGet(t, newTestRouter(repo), "/api/top-sales")

	require.Equal(t, http.StatusOK, rec.Code)
	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, 125000.0, body[0]["ca"])
	assert.Equal(t, "CDE-0001", body[0]["documentDeVente"])
	assert.Equal(t, "Durand", body[0]["commercial"])
	assert.Equal(t, "Acme SA", body[0]["client"])
	assert.Equal(t, "FR", body[0]["pays"])
}
