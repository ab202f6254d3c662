package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/geotree/internal/carbon"
	"github.com/mamadbah2/geotree/internal/domain/models"
)

// ReportRepository aggregates activity for reports and stores the result.
type ReportRepository interface {
	SummarizeCarbon(ctx context.Context, start, end time.Time) (models.CarbonSummary, error)
	SummarizePlantations(ctx context.Context, start, end time.Time) (models.PlantationSummary, error)
	SaveDailyReport(ctx context.Context, report models.DailyReport) error
}

var _ ReportRepository = (*Store)(nil)

type carbonGroup struct {
	Kind  string  `bson:"_id"`
	Count int     `bson:"count"`
	Total float64 `bson:"total"`
	Trees int     `bson:"trees"`
}

// SummarizeCarbon counts submissions created in [start, end) and sums their
// emissions and recommended trees.
func (s *Store) SummarizeCarbon(ctx context.Context, start, end time.Time) (models.CarbonSummary, error) {
	pipeline := bson.A{
		bson.M{"$match": bson.M{"createdAt": bson.M{"$gte": start, "$lt": end}}},
		bson.M{"$group": bson.M{
			"_id":   "$kind",
			"count": bson.M{"$sum": 1},
			"total": bson.M{"$sum": bson.M{"$ifNull": bson.A{"$total", 0}}},
			"trees": bson.M{"$sum": bson.M{"$sum": "$species_recommendations.count"}},
		}},
	}

	cursor, err := s.collection(carbonCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return models.CarbonSummary{}, fmt.Errorf("aggregate carbon submissions: %w", err)
	}

	var groups []carbonGroup
	if err := cursor.All(ctx, &groups); err != nil {
		return models.CarbonSummary{}, fmt.Errorf("decode carbon aggregation: %w", err)
	}

	var summary models.CarbonSummary
	for _, g := range groups {
		summary.Submissions += g.Count
		summary.EmissionsKg += g.Total
		summary.RecommendedTrees += g.Trees
		if g.Kind == string(carbon.KindActivity) {
			summary.ActivitySurveys += g.Count
		} else {
			summary.LegacySurveys += g.Count
		}
	}
	return summary, nil
}

// SummarizePlantations counts plantations and certificates created in [start, end).
func (s *Store) SummarizePlantations(ctx context.Context, start, end time.Time) (models.PlantationSummary, error) {
	window := bson.M{"createdAt": bson.M{"$gte": start, "$lt": end}}

	pipeline := bson.A{
		bson.M{"$match": window},
		bson.M{"$group": bson.M{
			"_id":   nil,
			"count": bson.M{"$sum": 1},
			"trees": bson.M{"$sum": bson.M{"$ifNull": bson.A{"$trees_count", 0}}},
		}},
	}

	cursor, err := s.collection(plantationCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return models.PlantationSummary{}, fmt.Errorf("aggregate plantations: %w", err)
	}

	var groups []struct {
		Count int     `bson:"count"`
		Trees float64 `bson:"trees"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return models.PlantationSummary{}, fmt.Errorf("decode plantation aggregation: %w", err)
	}

	var summary models.PlantationSummary
	if len(groups) > 0 {
		summary.Plantations = groups[0].Count
		summary.TreesPlanted = groups[0].Trees
	}

	certificates, err := s.collection(certificateCollection).CountDocuments(ctx, window)
	if err != nil {
		return models.PlantationSummary{}, fmt.Errorf("count certificates: %w", err)
	}
	summary.Certificates = int(certificates)

	return summary, nil
}

// SaveDailyReport stores a daily report, replacing an earlier one for the same date.
func (s *Store) SaveDailyReport(ctx context.Context, report models.DailyReport) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.collection(dailyReportCollection).ReplaceOne(ctx, bson.M{"date": report.Date}, report, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert daily report: %w", err)
	}
	return nil
}
