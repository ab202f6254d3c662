package carbon

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Raw survey field names.
const (
	FieldCarKmWeek           = "car_km_week"
	FieldCarFuel             = "car_fuel"
	FieldMotorbikeKmWeek     = "motorbike_km_week"
	FieldBusKmWeek           = "bus_km_week"
	FieldTrainKmWeek         = "train_km_week"
	FieldFlightsShort        = "flights_short"
	FieldFlightsLong         = "flights_long"
	FieldElectricityKWhMonth = "electricity_kwh_month"
	FieldElectricityBillYear = "electricity_bill_year"
	FieldLPGKgMonth          = "lpg_kg_month"
	FieldWasteKgMonth        = "waste_kg_month"
	FieldMeatMealsWeek       = "meat_meals_week"
	FieldDairyPortionsWeek   = "dairy_portions_week"
	FieldShoppingPerWeek     = "shopping_per_week"
)

// ActivityFields lists every raw field that marks a payload as an activity survey.
var ActivityFields = []string{
	FieldCarKmWeek,
	FieldCarFuel,
	FieldMotorbikeKmWeek,
	FieldBusKmWeek,
	FieldTrainKmWeek,
	FieldFlightsShort,
	FieldFlightsLong,
	FieldElectricityKWhMonth,
	FieldElectricityBillYear,
	FieldLPGKgMonth,
	FieldWasteKgMonth,
	FieldMeatMealsWeek,
	FieldDairyPortionsWeek,
	FieldShoppingPerWeek,
}

// ActivityInput holds one survey's normalized activity quantities.
// Every numeric field is finite and non-negative.
type ActivityInput struct {
	CarKmWeek           float64 `json:"car_km_week" bson:"car_km_week"`
	CarFuel             string  `json:"car_fuel" bson:"car_fuel"`
	MotorbikeKmWeek     float64 `json:"motorbike_km_week" bson:"motorbike_km_week"`
	BusKmWeek           float64 `json:"bus_km_week" bson:"bus_km_week"`
	TrainKmWeek         float64 `json:"train_km_week" bson:"train_km_week"`
	FlightsShort        float64 `json:"flights_short" bson:"flights_short"`
	FlightsLong         float64 `json:"flights_long" bson:"flights_long"`
	ElectricityKWhMonth float64 `json:"electricity_kwh_month" bson:"electricity_kwh_month"`
	ElectricityBillYear float64 `json:"electricity_bill_year" bson:"electricity_bill_year"`
	LPGKgMonth          float64 `json:"lpg_kg_month" bson:"lpg_kg_month"`
	WasteKgMonth        float64 `json:"waste_kg_month" bson:"waste_kg_month"`
	MeatMealsWeek       float64 `json:"meat_meals_week" bson:"meat_meals_week"`
	DairyPortionsWeek   float64 `json:"dairy_portions_week" bson:"dairy_portions_week"`
	ShoppingPerWeek     float64 `json:"shopping_per_week" bson:"shopping_per_week"`
}

// NormalizeInput coerces an arbitrary payload into an ActivityInput.
// It never fails: missing, non-numeric, non-finite or negative values become zero,
// so a partially answered survey is still a valid one.
func NormalizeInput(payload map[string]any) ActivityInput {
	fuel := FuelPetrol
	if raw, ok := payload[FieldCarFuel].(string); ok && strings.TrimSpace(raw) != "" {
		fuel = raw
	}

	return ActivityInput{
		CarKmWeek:           toNumber(payload[FieldCarKmWeek]),
		CarFuel:             fuel,
		MotorbikeKmWeek:     toNumber(payload[FieldMotorbikeKmWeek]),
		BusKmWeek:           toNumber(payload[FieldBusKmWeek]),
		TrainKmWeek:         toNumber(payload[FieldTrainKmWeek]),
		FlightsShort:        toNumber(payload[FieldFlightsShort]),
		FlightsLong:         toNumber(payload[FieldFlightsLong]),
		ElectricityKWhMonth: toNumber(payload[FieldElectricityKWhMonth]),
		ElectricityBillYear: toNumber(payload[FieldElectricityBillYear]),
		LPGKgMonth:          toNumber(payload[FieldLPGKgMonth]),
		WasteKgMonth:        toNumber(payload[FieldWasteKgMonth]),
		MeatMealsWeek:       toNumber(payload[FieldMeatMealsWeek]),
		DairyPortionsWeek:   toNumber(payload[FieldDairyPortionsWeek]),
		ShoppingPerWeek:     toNumber(payload[FieldShoppingPerWeek]),
	}
}

// HasActivityFields reports whether payload carries any raw survey field.
func HasActivityFields(payload map[string]any) bool {
	for _, field := range ActivityFields {
		if _, ok := payload[field]; ok {
			return true
		}
	}
	return false
}

// UsesDiesel reports whether the car factor should be the diesel one.
func (in ActivityInput) UsesDiesel() bool {
	return strings.EqualFold(strings.TrimSpace(in.CarFuel), FuelDiesel)
}

// ToNumber exposes the survey coercion rule to callers outside the package.
func ToNumber(value any) float64 {
	return toNumber(value)
}

func toNumber(value any) float64 {
	var n float64

	switch v := value.(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int32:
		n = float64(v)
	case int64:
		n = float64(v)
	case uint:
		n = float64(v)
	case uint32:
		n = float64(v)
	case uint64:
		n = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		n = f
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		n = f
	default:
		return 0
	}

	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0
	}
	return n
}
