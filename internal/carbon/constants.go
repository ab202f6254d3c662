// Package carbon estimates a household carbon footprint from survey answers
// and sizes a tree-planting offset across a fixed species mix.
package carbon

import "math"

const (
	// WeeksPerYear annualizes weekly quantities.
	WeeksPerYear = 52.0

	// MonthsPerYear annualizes monthly quantities.
	MonthsPerYear = 12.0

	// KgPerTonne converts between kilograms and metric tonnes.
	KgPerTonne = 1000.0

	// BillToKWhRate is the currency-per-kWh proxy used to estimate electricity
	// usage from an annual bill when monthly usage is not reported.
	BillToKWhRate = 8.0

	// DairyKgPerPortion is kg CO2e per weekly dairy portion.
	// It is applied directly and cannot be overridden through EmissionFactors.
	DairyKgPerPortion = 2.5

	// ShoppingKgPerTrip is kg CO2e per weekly shopping trip.
	// Like DairyKgPerPortion it sits outside EmissionFactors.
	ShoppingKgPerTrip = 10.0

	// MaxCategoryKg caps a single category's annual emissions so totals,
	// tonnes and percentages stay finite for absurd inputs.
	MaxCategoryKg = 1e12

	// MaxTreesPerSpecies caps one recommendation line.
	MaxTreesPerSpecies = math.MaxInt32
)

// Fuel selectors understood by the car factor lookup.
const (
	FuelPetrol = "petrol"
	FuelDiesel = "diesel"
)
