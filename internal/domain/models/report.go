package models

import "time"

// DailyReport summarizes one day of community activity.
type DailyReport struct {
	Date               time.Time `bson:"date" json:"date"`
	Submissions        int       `bson:"submissions" json:"submissions"`
	ActivitySurveys    int       `bson:"activity_surveys" json:"activity_surveys"`
	LegacySurveys      int       `bson:"legacy_surveys" json:"legacy_surveys"`
	EmissionsKg        float64   `bson:"emissions_kg" json:"emissions_kg"`
	RecommendedTrees   int       `bson:"recommended_trees" json:"recommended_trees"`
	Plantations        int       `bson:"plantations" json:"plantations"`
	TreesPlanted       float64   `bson:"trees_planted" json:"trees_planted"`
	CertificatesIssued int       `bson:"certificates_issued" json:"certificates_issued"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
}

// CarbonSummary aggregates carbon submissions over a window.
type CarbonSummary struct {
	Submissions      int
	ActivitySurveys  int
	LegacySurveys    int
	EmissionsKg      float64
	RecommendedTrees int
}

// PlantationSummary aggregates plantations over a window.
type PlantationSummary struct {
	Plantations  int
	TreesPlanted float64
	Certificates int
}
