package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/geotree/internal/carbon"
)

// CarbonResult is one persisted footprint submission. Records are append-only;
// the newest one per user is the user's current result.
type CarbonResult struct {
	ID     primitive.ObjectID    `bson:"_id,omitempty" json:"_id"`
	UserID string                `bson:"user_id" json:"user_id"`
	Kind   carbon.SubmissionKind `bson:"kind" json:"kind"`

	// Legacy selectors as sent by the client.
	HomeType        string   `bson:"home_type,omitempty" json:"home_type,omitempty"`
	TransportType   string   `bson:"transport_type,omitempty" json:"transport_type,omitempty"`
	ElectricityType string   `bson:"electricity_type,omitempty" json:"electricity_type,omitempty"`
	FoodType        string   `bson:"food_type,omitempty" json:"food_type,omitempty"`
	LegacyResult    *float64 `bson:"carbon_result,omitempty" json:"carbon_result,omitempty"`

	Inputs                 *carbon.ActivityInput   `bson:"inputs,omitempty" json:"inputs,omitempty"`
	Factors                carbon.EmissionFactors  `bson:"factors,omitempty" json:"factors,omitempty"`
	Total                  *float64                `bson:"total,omitempty" json:"total,omitempty"`
	TotalTonnes            *float64                `bson:"total_tonnes,omitempty" json:"total_tonnes,omitempty"`
	Breakdown              *carbon.Breakdown       `bson:"breakdown,omitempty" json:"breakdown,omitempty"`
	BreakdownPercent       *carbon.Breakdown       `bson:"breakdown_percent,omitempty" json:"breakdown_percent,omitempty"`
	SpeciesRecommendations []carbon.Recommendation `bson:"species_recommendations,omitempty" json:"species_recommendations,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewActivityResult builds the record for an activity survey.
func NewActivityResult(sub carbon.ActivitySubmission, fp carbon.Footprint, recs []carbon.Recommendation, now time.Time) CarbonResult {
	input := sub.Input
	breakdown := fp.Breakdown
	percent := fp.Percent
	total := fp.Total
	tonnes := fp.TotalTonnes

	result := CarbonResult{
		UserID:                 sub.UserID,
		Kind:                   carbon.KindActivity,
		Inputs:                 &input,
		Total:                  &total,
		TotalTonnes:            &tonnes,
		Breakdown:              &breakdown,
		BreakdownPercent:       &percent,
		SpeciesRecommendations: recs,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if sub.CustomFactors {
		result.Factors = sub.Factors
	}
	if result.SpeciesRecommendations == nil {
		result.SpeciesRecommendations = []carbon.Recommendation{}
	}
	return result
}

// NewLegacyResult builds the record for a four-selector survey.
func NewLegacyResult(sub carbon.LegacySubmission, now time.Time) CarbonResult {
	value := sub.Result()
	return CarbonResult{
		UserID:          sub.UserID,
		Kind:            carbon.KindLegacy,
		HomeType:        sub.HomeType,
		TransportType:   sub.TransportType,
		ElectricityType: sub.ElectricityType,
		FoodType:        sub.FoodType,
		LegacyResult:    &value,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// CarbonTypeKind names one of the selector catalogs shown in the survey.
type CarbonTypeKind string

const (
	CarbonTypeHome        CarbonTypeKind = "home_type"
	CarbonTypeTransport   CarbonTypeKind = "transport_type"
	CarbonTypeElectricity CarbonTypeKind = "electricity_type"
	CarbonTypeFood        CarbonTypeKind = "food_type"
)

// CarbonTypeKinds lists every catalog in display order.
var CarbonTypeKinds = []CarbonTypeKind{
	CarbonTypeHome,
	CarbonTypeTransport,
	CarbonTypeElectricity,
	CarbonTypeFood,
}

// CarbonType is a named survey option and the value the client submits for it.
type CarbonType struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Value     string             `bson:"value" json:"value"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CarbonTypeLists groups every selector catalog.
type CarbonTypeLists struct {
	HomeTypes        []CarbonType `json:"home_types"`
	TransportTypes   []CarbonType `json:"transport_types"`
	ElectricityTypes []CarbonType `json:"electricity_types"`
	FoodTypes        []CarbonType `json:"food_types"`
}

// CarbonTypeInput is one item of a bulk add request. Value is stored as a
// string but clients may send it as a JSON number.
type CarbonTypeInput struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// ValueString returns Value as trimmed text. Types other than strings and
// numbers read as empty.
func (in CarbonTypeInput) ValueString() string {
	switch v := in.Value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

// BulkCarbonTypesRequest adds items to several catalogs at once.
type BulkCarbonTypesRequest struct {
	HomeTypes        []CarbonTypeInput `json:"home_types"`
	TransportTypes   []CarbonTypeInput `json:"transport_types"`
	ElectricityTypes []CarbonTypeInput `json:"electricity_types"`
	FoodTypes        []CarbonTypeInput `json:"food_types"`
}

// Items returns the request items for one catalog.
func (r BulkCarbonTypesRequest) Items(kind CarbonTypeKind) []CarbonTypeInput {
	switch kind {
	case CarbonTypeHome:
		return r.HomeTypes
	case CarbonTypeTransport:
		return r.TransportTypes
	case CarbonTypeElectricity:
		return r.ElectricityTypes
	case CarbonTypeFood:
		return r.FoodTypes
	default:
		return nil
	}
}

// BulkCarbonTypeError reports why one bulk item was not added.
type BulkCarbonTypeError struct {
	Type  CarbonTypeKind `json:"type"`
	Error string         `json:"error"`
	Item  string         `json:"item"`
}

// BulkCarbonTypesResult lists what a bulk add created and what it skipped.
type BulkCarbonTypesResult struct {
	CarbonTypeLists
	Errors []BulkCarbonTypeError `json:"errors"`
}

// Set stores the list for one catalog.
func (l *CarbonTypeLists) Set(kind CarbonTypeKind, items []CarbonType) {
	if items == nil {
		items = []CarbonType{}
	}
	switch kind {
	case CarbonTypeHome:
		l.HomeTypes = items
	case CarbonTypeTransport:
		l.TransportTypes = items
	case CarbonTypeElectricity:
		l.ElectricityTypes = items
	case CarbonTypeFood:
		l.FoodTypes = items
	}
}

// Count returns the number of entries across all catalogs.
func (l CarbonTypeLists) Count() int {
	return len(l.HomeTypes) + len(l.TransportTypes) + len(l.ElectricityTypes) + len(l.FoodTypes)
}
