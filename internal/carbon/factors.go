package carbon

// Emission factor keys. Values are kg CO2e per unit.
const (
	FactorCarPetrolKm    = "car_petrol_km"
	FactorCarDieselKm    = "car_diesel_km"
	FactorMotorbikeKm    = "motorbike_km"
	FactorBusKm          = "bus_km"
	FactorTrainKm        = "train_km"
	FactorFlightShort    = "flight_short"
	FactorFlightLong     = "flight_long"
	FactorElectricityKWh = "electricity_kwh"
	FactorLPGKg          = "lpg_kg"
	FactorWasteKg        = "waste_kg"
	FactorMeatMeal       = "meat_meal"
)

// FactorKeys lists every key EmissionFactors understands, in display order.
var FactorKeys = []string{
	FactorCarPetrolKm,
	FactorCarDieselKm,
	FactorMotorbikeKm,
	FactorBusKm,
	FactorTrainKm,
	FactorFlightShort,
	FactorFlightLong,
	FactorElectricityKWh,
	FactorLPGKg,
	FactorWasteKg,
	FactorMeatMeal,
}

// EmissionFactors maps an activity category to its per-unit emission coefficient.
// A key that is absent contributes nothing.
type EmissionFactors map[string]float64

var defaultFactors = EmissionFactors{
	FactorCarPetrolKm:    0.19, // per km
	FactorCarDieselKm:    0.17, // per km
	FactorMotorbikeKm:    0.10, // per km
	FactorBusKm:          0.10, // per passenger km
	FactorTrainKm:        0.04, // per passenger km
	FactorFlightShort:    250,  // per flight, under ~3h
	FactorFlightLong:     1100, // per flight
	FactorElectricityKWh: 0.82, // Indian grid average
	FactorLPGKg:          2.98, // per kg burned
	FactorWasteKg:        0.5,  // landfilled household waste
	FactorMeatMeal:       3.3,  // per meal
}

// DefaultFactors returns a copy of the built-in factor table.
func DefaultFactors() EmissionFactors {
	return defaultFactors.Clone()
}

// Get returns the factor for key, or zero when it is not configured.
func (f EmissionFactors) Get(key string) float64 {
	if f == nil {
		return 0
	}
	return f[key]
}

// Clone returns an independent copy of the table.
func (f EmissionFactors) Clone() EmissionFactors {
	out := make(EmissionFactors, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// NormalizeFactors coerces a raw factor override into EmissionFactors.
// Only known keys are kept and every value goes through the same coercion as
// activity fields, so malformed entries become zero.
func NormalizeFactors(payload map[string]any) EmissionFactors {
	out := make(EmissionFactors, len(FactorKeys))
	for _, key := range FactorKeys {
		raw, ok := payload[key]
		if !ok {
			continue
		}
		out[key] = toNumber(raw)
	}
	return out
}
