package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap/zaptest"

	"github.com/mamadbah2/geotree/internal/carbon"
	"github.com/mamadbah2/geotree/internal/config"
	"github.com/mamadbah2/geotree/internal/domain/models"
	"github.com/mamadbah2/geotree/internal/metrics"
	"github.com/mamadbah2/geotree/internal/repository/mongodb"
	"github.com/mamadbah2/geotree/internal/server/handlers"
	"github.com/mamadbah2/geotree/internal/service/footprint"
	"github.com/mamadbah2/geotree/internal/service/plantation"
)

type nopCarbonRepo struct{}

func (nopCarbonRepo) SaveCarbonResult(_ context.Context, r *models.CarbonResult) error {
	r.ID = primitive.NewObjectID()
	return nil
}

func (nopCarbonRepo) LatestCarbonResult(context.Context, string) (models.CarbonResult, bool, error) {
	return models.CarbonResult{}, false, nil
}

func (nopCarbonRepo) ListCarbonTypes(context.Context, models.CarbonTypeKind) ([]models.CarbonType, error) {
	return nil, nil
}

func (nopCarbonRepo) InsertCarbonType(context.Context, models.CarbonTypeKind, *models.CarbonType) error {
	return nil
}

type nopPlantationRepo struct{}

func (nopPlantationRepo) ListPlants(context.Context) ([]models.Plant, error)         { return nil, nil }
func (nopPlantationRepo) InsertPlant(context.Context, *models.Plant) error           { return nil }
func (nopPlantationRepo) ListLocations(context.Context) ([]models.Location, error)   { return nil, nil }
func (nopPlantationRepo) InsertLocation(context.Context, *models.Location) error     { return nil }
func (nopPlantationRepo) InsertPlantation(context.Context, *models.Plantation) error { return nil }
func (nopPlantationRepo) FindPlantation(context.Context, primitive.ObjectID) (models.Plantation, bool, error) {
	return models.Plantation{}, false, nil
}
func (nopPlantationRepo) ListPlantations(context.Context, string) ([]models.Plantation, error) {
	return nil, nil
}
func (nopPlantationRepo) InsertCertificate(context.Context, *models.Certificate) error { return nil }
func (nopPlantationRepo) FindCertificate(context.Context, mongodb.CertificateQuery) (models.Certificate, bool, error) {
	return models.Certificate{}, false, nil
}

func newTestEngine(t *testing.T, origins []string) http.Handler {
	t.Helper()
	logger := zaptest.NewLogger(t)
	reg := prometheus.NewRegistry()
	m := metrics.MustNewMetrics(reg)

	carbonSvc, err := footprint.NewService(nopCarbonRepo{}, nil, m, logger)
	require.NoError(t, err)
	plantationSvc := plantation.NewService(nopPlantationRepo{}, m, logger)

	return New(Handlers{
		Carbon:     handlers.NewCarbonHandler(carbonSvc, logger),
		Plantation: handlers.NewPlantationHandler(plantationSvc, logger),
		Health:     handlers.NewHealthHandler(nil, logger),
	}, Options{
		Server:   config.ServerConfig{Port: "0", AllowedOrigins: origins},
		Metrics:  m,
		Gatherer: reg,
		Logger:   logger,
	})
}

func TestRoutesAreMounted(t *testing.T) {
	engine := newTestEngine(t, []string{"*"})

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/health"},
		{http.MethodGet, "/api/carbon/home-type-list"},
		{http.MethodGet, "/api/carbon/transport-type-list"},
		{http.MethodGet, "/api/carbon/electricity-list"},
		{http.MethodGet, "/api/carbon/food-type-list"},
		{http.MethodGet, "/api/carbon/type-list"},
		{http.MethodGet, "/api/carbon/species"},
		{http.MethodGet, "/api/plant/list"},
		{http.MethodGet, "/api/location/list"},
		{http.MethodGet, "/api/plantation/history?user_id=u1"},
		{http.MethodGet, "/api/certificate/details?user_id=u1"},
		{http.MethodGet, "/api/certificate/download?certificate_id=CERT-1"},
		{http.MethodGet, "/api/certificate/verify?qr_code=QR-1"},
	}

	for _, rt := range routes {
		t.Run(rt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, httptest.NewRequest(rt.method, rt.path, nil))
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestSubmitThroughRouter(t *testing.T) {
	engine := newTestEngine(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/carbon/submit",
		strings.NewReader(`{"user_id":"u1","inputs":{"car_km_week":100,"electricity_kwh_month":200}}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"species_recommendations":[`)
	assert.Contains(t, rec.Body.String(), `"kind":"`+string(carbon.KindActivity)+`"`)
}

func TestRequestIDHeader(t *testing.T) {
	engine := newTestEngine(t, nil)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Len(t, rec.Header().Get(requestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestMetricsEndpoint(t *testing.T) {
	engine := newTestEngine(t, nil)

	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/health", nil))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `geotree_http_requests_total{method="GET",route="/api/health",status="200"} 1`)
}

func TestCORS(t *testing.T) {
	engine := newTestEngine(t, []string{"https://app.example.org"})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://app.example.org")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, "https://app.example.org", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
