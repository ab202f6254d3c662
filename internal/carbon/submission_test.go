package carbon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubmission_RequiresUserID(t *testing.T) {
	for _, payload := range []map[string]any{
		{},
		{KeyUserID: ""},
		{KeyUserID: "   "},
		{KeyUserID: nil, FieldCarKmWeek: 10},
		{KeyUserID: true},
		{KeyUserID: false},
		{KeyUserID: map[string]any{}},
		{KeyUserID: []any{"u1"}},
	} {
		_, err := ParseSubmission(payload)
		assert.ErrorIs(t, err, ErrMissingUserID)
	}
}

func TestParseSubmission_LegacyShape(t *testing.T) {
	sub, err := ParseSubmission(map[string]any{
		KeyUserID:        "u1",
		KeyHomeType:      "300",
		KeyTransportType: "bad",
	})
	require.NoError(t, err)

	legacy, ok := sub.(LegacySubmission)
	require.True(t, ok)
	assert.Equal(t, KindLegacy, legacy.Kind())
	assert.Equal(t, "u1", legacy.Owner())
	assert.Equal(t, 300.0, legacy.Result())
}

func TestLegacySubmission_Result(t *testing.T) {
	tests := []struct {
		name string
		sub  LegacySubmission
		want float64
	}{
		{"empty", LegacySubmission{}, 0},
		{"numeric strings", LegacySubmission{HomeType: "200", TransportType: "100", ElectricityType: "150", FoodType: "80"}, 530},
		{"named categories", LegacySubmission{HomeType: "house", TransportType: "car", ElectricityType: "high", FoodType: "vegan"}, 1380},
		{"rounds to two decimals", LegacySubmission{HomeType: "100.126"}, 100.13},
		{"negative counts as zero", LegacySubmission{HomeType: "-50", FoodType: "20"}, 20},
		{"huge selectors are clamped", LegacySubmission{HomeType: "1e308", TransportType: "1e308", ElectricityType: "1e308", FoodType: "1e308"}, 4 * MaxCategoryKg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.sub.Result(), 1e-9)
		})
	}
}

func TestParseSubmission_NumericLegacySelectors(t *testing.T) {
	sub, err := ParseSubmission(map[string]any{
		KeyUserID:   42.0,
		KeyHomeType: 150.0,
		KeyFoodType: "100",
	})
	require.NoError(t, err)

	legacy := sub.(LegacySubmission)
	assert.Equal(t, "42", legacy.UserID)
	assert.Equal(t, "150", legacy.HomeType)
	assert.Equal(t, 250.0, legacy.Result())
}

func TestParseSubmission_NestedInputs(t *testing.T) {
	sub, err := ParseSubmission(map[string]any{
		KeyUserID:   "u2",
		KeyHomeType: "300",
		KeyInputs: map[string]any{
			FieldCarKmWeek:           100,
			FieldElectricityKWhMonth: "200",
		},
	})
	require.NoError(t, err)

	activity, ok := sub.(ActivitySubmission)
	require.True(t, ok)
	assert.Equal(t, KindActivity, activity.Kind())
	assert.False(t, activity.CustomFactors)
	assert.InDelta(t, 2956.0, activity.Estimate().Total, 1e-9)
}

func TestParseSubmission_TopLevelActivityFields(t *testing.T) {
	sub, err := ParseSubmission(map[string]any{
		KeyUserID:         "u3",
		FieldWasteKgMonth: 10,
	})
	require.NoError(t, err)

	activity, ok := sub.(ActivitySubmission)
	require.True(t, ok)
	assert.Equal(t, 10.0, activity.Input.WasteKgMonth)
	assert.InDelta(t, 60.0, activity.Estimate().Breakdown.Waste, 1e-9)
}

func TestParseSubmission_FactorOverrideReplacesDefaults(t *testing.T) {
	sub, err := ParseSubmission(map[string]any{
		KeyUserID: "u4",
		KeyInputs: map[string]any{
			FieldCarKmWeek:           10,
			FieldElectricityKWhMonth: 100,
		},
		KeyFactors: map[string]any{
			FactorCarPetrolKm: 1,
		},
	})
	require.NoError(t, err)

	activity := sub.(ActivitySubmission)
	assert.True(t, activity.CustomFactors)

	fp := activity.Estimate()
	assert.InDelta(t, 520.0, fp.Breakdown.Transport, 1e-9)
	assert.Zero(t, fp.Breakdown.Energy)
}

func TestParseSubmission_InputsMustBeAnObject(t *testing.T) {
	sub, err := ParseSubmission(map[string]any{
		KeyUserID: "u5",
		KeyInputs: "car_km_week=10",
	})
	require.NoError(t, err)

	assert.Equal(t, KindLegacy, sub.Kind())
}
