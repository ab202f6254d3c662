package carbon

import "math"

// Breakdown splits annual emissions into the four reporting categories, in kg CO2e.
type Breakdown struct {
	Transport float64 `json:"transport" bson:"transport"`
	Energy    float64 `json:"energy" bson:"energy"`
	Food      float64 `json:"food" bson:"food"`
	Waste     float64 `json:"waste" bson:"waste"`
}

// Total returns the sum of all categories.
func (b Breakdown) Total() float64 {
	return b.Transport + b.Energy + b.Food + b.Waste
}

// Percentages returns each category's share of the total on a 0-100 scale.
// All shares are zero when the total is zero or not finite.
func (b Breakdown) Percentages() Breakdown {
	total := b.Total()
	if total <= 0 || math.IsInf(total, 0) || math.IsNaN(total) {
		return Breakdown{}
	}
	return Breakdown{
		Transport: 100 * b.Transport / total,
		Energy:    100 * b.Energy / total,
		Food:      100 * b.Food / total,
		Waste:     100 * b.Waste / total,
	}
}

// Footprint is the full result of an estimation run.
type Footprint struct {
	Breakdown   Breakdown `json:"breakdown"`
	Total       float64   `json:"total"`
	TotalTonnes float64   `json:"total_tonnes"`
	Percent     Breakdown `json:"breakdown_percent"`
}

// Calculate applies the emission factors to normalized inputs and returns the
// annualized per-category emissions.
//
// Weekly quantities are multiplied by 52 and monthly ones by 12. Flight counts
// are taken as-is. Electricity usage wins over the annual bill; the bill is only
// used, converted through BillToKWhRate, when no usage was reported.
// Each category is clamped to [0, MaxCategoryKg].
func Calculate(in ActivityInput, f EmissionFactors) Breakdown {
	return Breakdown{
		Transport: clampKg(transportEmissions(in, f)),
		Energy:    clampKg(energyEmissions(in, f)),
		Food:      clampKg(foodEmissions(in, f)),
		Waste:     clampKg(wasteEmissions(in, f)),
	}
}

// clampKg maps NaN and negatives to zero and saturates at MaxCategoryKg.
func clampKg(kg float64) float64 {
	switch {
	case math.IsNaN(kg) || kg <= 0:
		return 0
	case kg > MaxCategoryKg:
		return MaxCategoryKg
	default:
		return kg
	}
}

// Estimate runs Calculate and derives totals and percentages.
func Estimate(in ActivityInput, f EmissionFactors) Footprint {
	breakdown := Calculate(in, f)
	total := breakdown.Total()

	return Footprint{
		Breakdown:   breakdown,
		Total:       total,
		TotalTonnes: total / KgPerTonne,
		Percent:     breakdown.Percentages(),
	}
}

func transportEmissions(in ActivityInput, f EmissionFactors) float64 {
	var kg float64

	if in.CarKmWeek > 0 {
		carFactor := f.Get(FactorCarPetrolKm)
		if in.UsesDiesel() {
			carFactor = f.Get(FactorCarDieselKm)
		}
		kg += in.CarKmWeek * WeeksPerYear * carFactor
	}
	if in.MotorbikeKmWeek > 0 {
		kg += in.MotorbikeKmWeek * WeeksPerYear * f.Get(FactorMotorbikeKm)
	}
	if in.BusKmWeek > 0 {
		kg += in.BusKmWeek * WeeksPerYear * f.Get(FactorBusKm)
	}
	if in.TrainKmWeek > 0 {
		kg += in.TrainKmWeek * WeeksPerYear * f.Get(FactorTrainKm)
	}
	if in.FlightsShort > 0 {
		kg += in.FlightsShort * f.Get(FactorFlightShort)
	}
	if in.FlightsLong > 0 {
		kg += in.FlightsLong * f.Get(FactorFlightLong)
	}

	return kg
}

func energyEmissions(in ActivityInput, f EmissionFactors) float64 {
	var kg float64

	switch {
	case in.ElectricityKWhMonth > 0:
		kg += in.ElectricityKWhMonth * MonthsPerYear * f.Get(FactorElectricityKWh)
	case in.ElectricityBillYear > 0:
		estimatedKWh := in.ElectricityBillYear / BillToKWhRate
		kg += estimatedKWh * f.Get(FactorElectricityKWh)
	}

	if in.LPGKgMonth > 0 {
		kg += in.LPGKgMonth * MonthsPerYear * f.Get(FactorLPGKg)
	}

	return kg
}

func foodEmissions(in ActivityInput, f EmissionFactors) float64 {
	var kg float64

	if in.MeatMealsWeek > 0 {
		kg += in.MeatMealsWeek * WeeksPerYear * f.Get(FactorMeatMeal)
	}
	if in.DairyPortionsWeek > 0 {
		kg += in.DairyPortionsWeek * WeeksPerYear * DairyKgPerPortion
	}
	if in.ShoppingPerWeek > 0 {
		kg += in.ShoppingPerWeek * WeeksPerYear * ShoppingKgPerTrip
	}

	return kg
}

func wasteEmissions(in ActivityInput, f EmissionFactors) float64 {
	if in.WasteKgMonth <= 0 {
		return 0
	}
	return in.WasteKgMonth * MonthsPerYear * f.Get(FactorWasteKg)
}
