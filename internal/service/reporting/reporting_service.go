package reporting

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/geotree/internal/domain/models"
	"github.com/mamadbah2/geotree/internal/metrics"
	"github.com/mamadbah2/geotree/internal/repository/mongodb"
)

const dateLayout = "2006-01-02"

// Exporter mirrors a generated report to an external destination.
type Exporter interface {
	ExportDailyReport(ctx context.Context, report models.DailyReport) error
}

// Service builds the daily community summary.
type Service struct {
	repo     mongodb.ReportRepository
	exporter Exporter
	metrics  *metrics.Metrics
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new reporting service instance. exporter may be nil.
func NewService(repository mongodb.ReportRepository, exporter Exporter, m *metrics.Metrics, location *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.UTC
	}
	return &Service{
		repo:     repository,
		exporter: exporter,
		metrics:  m,
		location: location,
		logger:   logger,
		now:      time.Now,
	}
}

// GenerateDailyReport aggregates the calendar day containing day, in the
// service's timezone, and stores the result. A failed export is logged and
// does not fail the report.
func (s *Service) GenerateDailyReport(ctx context.Context, day time.Time) (models.DailyReport, error) {
	if s.repo == nil {
		return models.DailyReport{}, errors.New("report repository is not configured")
	}

	start, end := dayBounds(day, s.location)

	carbonSummary, err := s.repo.SummarizeCarbon(ctx, start, end)
	if err != nil {
		s.metrics.ObserveReportRun("failure")
		return models.DailyReport{}, fmt.Errorf("summarize carbon: %w", err)
	}

	plantationSummary, err := s.repo.SummarizePlantations(ctx, start, end)
	if err != nil {
		s.metrics.ObserveReportRun("failure")
		return models.DailyReport{}, fmt.Errorf("summarize plantations: %w", err)
	}

	report := models.DailyReport{
		Date:               start,
		Submissions:        carbonSummary.Submissions,
		ActivitySurveys:    carbonSummary.ActivitySurveys,
		LegacySurveys:      carbonSummary.LegacySurveys,
		EmissionsKg:        math.Round(carbonSummary.EmissionsKg*100) / 100,
		RecommendedTrees:   carbonSummary.RecommendedTrees,
		Plantations:        plantationSummary.Plantations,
		TreesPlanted:       plantationSummary.TreesPlanted,
		CertificatesIssued: plantationSummary.Certificates,
		CreatedAt:          s.now().UTC(),
	}

	if err := s.repo.SaveDailyReport(ctx, report); err != nil {
		s.metrics.ObserveReportRun("failure")
		return models.DailyReport{}, fmt.Errorf("save daily report: %w", err)
	}

	if s.exporter != nil {
		if err := s.exporter.ExportDailyReport(ctx, report); err != nil {
			s.logger.Warn("daily report export failed", zap.String("date", start.Format(dateLayout)), zap.Error(err))
		}
	}

	s.metrics.ObserveReportRun("success")
	s.logger.Info("daily report generated",
		zap.String("date", start.Format(dateLayout)),
		zap.Int("submissions", report.Submissions),
		zap.Int("plantations", report.Plantations),
	)

	return report, nil
}

// FormatReport renders a report as a short plain-text message.
func FormatReport(report models.DailyReport) string {
	return fmt.Sprintf(
		"GeoTree daily report (%s)\n"+
			"Footprint surveys: %d (%d activity, %d legacy)\n"+
			"Estimated emissions: %.2f kg CO2e, %d trees recommended\n"+
			"Plantations: %d, %.0f trees planted, %d certificates issued",
		report.Date.Format(dateLayout),
		report.Submissions, report.ActivitySurveys, report.LegacySurveys,
		report.EmissionsKg, report.RecommendedTrees,
		report.Plantations, report.TreesPlanted, report.CertificatesIssued,
	)
}

func dayBounds(day time.Time, loc *time.Location) (time.Time, time.Time) {
	local := day.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
