package footprint

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap/zaptest"

	"github.com/mamadbah2/geotree/internal/carbon"
	"github.com/mamadbah2/geotree/internal/domain/models"
	"github.com/mamadbah2/geotree/internal/metrics"
	"github.com/mamadbah2/geotree/internal/repository/mongodb"
)

type memoryRepo struct {
	mu      sync.Mutex
	results []models.CarbonResult
	types   map[models.CarbonTypeKind][]models.CarbonType
	failOn  models.CarbonTypeKind
	saveErr error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{types: map[models.CarbonTypeKind][]models.CarbonType{}}
}

func (r *memoryRepo) SaveCarbonResult(_ context.Context, result *models.CarbonResult) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	result.ID = primitive.NewObjectID()
	r.results = append(r.results, *result)
	return nil
}

func (r *memoryRepo) LatestCarbonResult(_ context.Context, userID string) (models.CarbonResult, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var (
		latest models.CarbonResult
		found  bool
	)
	for _, res := range r.results {
		if res.UserID == userID && (!found || !res.CreatedAt.Before(latest.CreatedAt)) {
			latest, found = res, true
		}
	}
	return latest, found, nil
}

func (r *memoryRepo) ListCarbonTypes(_ context.Context, kind models.CarbonTypeKind) ([]models.CarbonType, error) {
	if kind == r.failOn {
		return nil, errors.New("connection reset")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	items := append([]models.CarbonType(nil), r.types[kind]...)
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (r *memoryRepo) InsertCarbonType(_ context.Context, kind models.CarbonTypeKind, item *models.CarbonType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.types[kind] {
		if existing.Name == item.Name {
			return mongodb.ErrDuplicate
		}
	}
	item.ID = primitive.NewObjectID()
	r.types[kind] = append(r.types[kind], *item)
	return nil
}

func newTestService(t *testing.T, repo *memoryRepo) *Service {
	t.Helper()
	svc, err := NewService(repo, nil, metrics.MustNewMetrics(prometheus.NewRegistry()), zaptest.NewLogger(t))
	require.NoError(t, err)

	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return svc
}

func TestNewService_RequiresRepository(t *testing.T) {
	_, err := NewService(nil, nil, nil, nil)
	assert.Error(t, err)
}

func TestSubmit_Activity(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(t, repo)

	result, err := svc.Submit(context.Background(), map[string]any{
		"user_id": "u1",
		"inputs": map[string]any{
			"car_km_week":           100.0,
			"electricity_kwh_month": 200.0,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, carbon.KindActivity, result.Kind)
	assert.Equal(t, "u1", result.UserID)
	assert.False(t, result.ID.IsZero())
	require.NotNil(t, result.Total)
	assert.InDelta(t, 2956.0, *result.Total, 1e-9)
	require.NotNil(t, result.TotalTonnes)
	assert.InDelta(t, 2.956, *result.TotalTonnes, 1e-9)
	assert.Nil(t, result.LegacyResult)
	assert.Nil(t, result.Factors)
	assert.Equal(t, 114, carbon.TotalTrees(result.SpeciesRecommendations))
	assert.Len(t, repo.results, 1)
}

func TestSubmit_CustomFactorsAreStored(t *testing.T) {
	svc := newTestService(t, newMemoryRepo())

	result, err := svc.Submit(context.Background(), map[string]any{
		"user_id":     "u1",
		"car_km_week": 10.0,
		"factors":     map[string]any{"car_petrol_km": 1.0},
	})
	require.NoError(t, err)

	assert.Equal(t, carbon.EmissionFactors{"car_petrol_km": 1.0}, result.Factors)
	require.NotNil(t, result.Total)
	assert.InDelta(t, 520.0, *result.Total, 1e-9)
}

func TestSubmit_Legacy(t *testing.T) {
	svc := newTestService(t, newMemoryRepo())

	result, err := svc.Submit(context.Background(), map[string]any{
		"user_id":          "u2",
		"home_type":        "house",
		"transport_type":   "car",
		"electricity_type": "medium",
		"food_type":        "bad",
	})
	require.NoError(t, err)

	assert.Equal(t, carbon.KindLegacy, result.Kind)
	require.NotNil(t, result.LegacyResult)
	assert.InDelta(t, 1000.0, *result.LegacyResult, 1e-9)
	assert.Nil(t, result.Total)
	assert.Empty(t, result.SpeciesRecommendations)
}

func TestSubmit_Errors(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(t, repo)

	_, err := svc.Submit(context.Background(), map[string]any{"car_km_week": 10.0})
	assert.ErrorIs(t, err, carbon.ErrMissingUserID)

	repo.saveErr = errors.New("disk full")
	_, err = svc.Submit(context.Background(), map[string]any{"user_id": "u1"})
	assert.ErrorContains(t, err, "disk full")
}

func TestLatestResult(t *testing.T) {
	svc := newTestService(t, newMemoryRepo())
	ctx := context.Background()

	_, found, err := svc.LatestResult(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, found)

	_, err = svc.Submit(ctx, map[string]any{"user_id": "u1", "home_type": "100"})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, map[string]any{"user_id": "u1", "home_type": "200"})
	require.NoError(t, err)

	latest, found, err := svc.LatestResult(ctx, " u1 ")
	require.NoError(t, err)
	require.True(t, found)
	require.NotNil(t, latest.LegacyResult)
	assert.InDelta(t, 200.0, *latest.LegacyResult, 1e-9)

	_, _, err = svc.LatestResult(ctx, "")
	assert.ErrorIs(t, err, carbon.ErrMissingUserID)
}

func TestAddAllTypes_ReportsPerItemErrors(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.AddAllTypes(ctx, models.BulkCarbonTypesRequest{
		HomeTypes: []models.CarbonTypeInput{{Name: "house", Value: "300"}},
	})
	require.NoError(t, err)

	result, err := svc.AddAllTypes(ctx, models.BulkCarbonTypesRequest{
		HomeTypes:      []models.CarbonTypeInput{{Name: "house", Value: "300"}, {Name: "villa", Value: "500"}},
		TransportTypes: []models.CarbonTypeInput{{Name: "car"}},
		FoodTypes:      []models.CarbonTypeInput{{Name: "vegan", Value: "80"}},
	})
	require.NoError(t, err)

	require.Len(t, result.HomeTypes, 1)
	assert.Equal(t, "villa", result.HomeTypes[0].Name)
	assert.Empty(t, result.TransportTypes)
	assert.Empty(t, result.ElectricityTypes)
	assert.Len(t, result.FoodTypes, 1)
	assert.Equal(t, []models.BulkCarbonTypeError{
		{Type: models.CarbonTypeHome, Error: "Already exists", Item: "house"},
		{Type: models.CarbonTypeTransport, Error: "name and value are required", Item: "car"},
	}, result.Errors)
}

func TestAddAllTypes_NumericValuesAreStoredAsText(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(t, repo)

	result, err := svc.AddAllTypes(context.Background(), models.BulkCarbonTypesRequest{
		HomeTypes:      []models.CarbonTypeInput{{Name: "house", Value: 300.0}},
		FoodTypes:      []models.CarbonTypeInput{{Name: "vegan", Value: json.Number("80.5")}},
		TransportTypes: []models.CarbonTypeInput{{Name: "car", Value: false}},
	})
	require.NoError(t, err)

	require.Len(t, result.HomeTypes, 1)
	assert.Equal(t, "300", result.HomeTypes[0].Value)
	require.Len(t, result.FoodTypes, 1)
	assert.Equal(t, "80.5", result.FoodTypes[0].Value)
	assert.Equal(t, []models.BulkCarbonTypeError{
		{Type: models.CarbonTypeTransport, Error: "name and value are required", Item: "car"},
	}, result.Errors)
}

func TestSubmit_HugeActivityStaysRenderable(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(t, repo)

	var result models.CarbonResult
	require.NotPanics(t, func() {
		var err error
		result, err = svc.Submit(context.Background(), map[string]any{"user_id": "u1", "car_km_week": 1e20})
		require.NoError(t, err)
	})

	require.NotNil(t, result.Total)
	assert.Equal(t, carbon.MaxCategoryKg, *result.Total)
	require.Len(t, result.SpeciesRecommendations, 4)
	for _, r := range result.SpeciesRecommendations {
		assert.Equal(t, carbon.MaxTreesPerSpecies, r.Count, r.ID)
	}
	assert.Positive(t, carbon.TotalTrees(result.SpeciesRecommendations))

	_, err := json.Marshal(result)
	require.NoError(t, err)
}

func TestListAllTypes(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.AddAllTypes(ctx, models.BulkCarbonTypesRequest{
		HomeTypes:        []models.CarbonTypeInput{{Name: "villa", Value: "500"}, {Name: "apartment", Value: "200"}},
		ElectricityTypes: []models.CarbonTypeInput{{Name: "low", Value: "150"}},
	})
	require.NoError(t, err)

	lists, err := svc.ListAllTypes(ctx)
	require.NoError(t, err)

	require.Len(t, lists.HomeTypes, 2)
	assert.Equal(t, "apartment", lists.HomeTypes[0].Name)
	assert.NotNil(t, lists.TransportTypes)
	assert.Len(t, lists.ElectricityTypes, 1)
	assert.Equal(t, 3, lists.Count())

	repo.failOn = models.CarbonTypeFood
	_, err = svc.ListAllTypes(ctx)
	assert.ErrorContains(t, err, "food_type")
}

func TestSpecies(t *testing.T) {
	svc := newTestService(t, newMemoryRepo())

	overview := svc.Species()
	assert.Len(t, overview.Species, 4)
	assert.Len(t, overview.Mix, 4)
}
