package carbon

import "math"

// Legacy selector keys.
const (
	KeyHomeType        = "home_type"
	KeyTransportType   = "transport_type"
	KeyElectricityType = "electricity_type"
	KeyFoodType        = "food_type"
)

// Monthly kg CO2e for the named selectors older clients send.
var (
	legacyHome = map[string]float64{
		"apartment": 200,
		"house":     300,
		"villa":     500,
		"studio":    150,
	}
	legacyTransport = map[string]float64{
		"car":              400,
		"bike":             50,
		"public_transport": 100,
		"walking":          0,
		"cycling":          0,
	}
	legacyElectricity = map[string]float64{
		"low":    150,
		"medium": 300,
		"high":   600,
	}
	legacyFood = map[string]float64{
		"vegetarian":     100,
		"non_vegetarian": 200,
		"vegan":          80,
	}
)

// Result sums the four selectors and rounds to two decimals.
// A selector is read as a number; a known category name resolves through the
// legacy table; anything else counts as zero. Each selector is clamped to
// MaxCategoryKg.
func (s LegacySubmission) Result() float64 {
	total := clampKg(legacyValue(legacyHome, s.HomeType)) +
		clampKg(legacyValue(legacyTransport, s.TransportType)) +
		clampKg(legacyValue(legacyElectricity, s.ElectricityType)) +
		clampKg(legacyValue(legacyFood, s.FoodType))

	return math.Round(total*100) / 100
}

func legacyValue(table map[string]float64, raw string) float64 {
	if v, ok := table[raw]; ok {
		return v
	}
	return toNumber(raw)
}
