package sheets

import (
	"context"

	"github.com/mamadbah2/geotree/internal/domain/models"
)

const (
	reportsWriteRange = "Reports!A:I"
	dateFormat        = "2006-01-02"
)

// ReportExporter writes daily reports as spreadsheet rows.
type ReportExporter struct {
	repo Repository
}

// NewReportExporter wraps a sheet repository.
func NewReportExporter(repo Repository) *ReportExporter {
	return &ReportExporter{repo: repo}
}

// ExportDailyReport appends one row per report.
func (e *ReportExporter) ExportDailyReport(ctx context.Context, report models.DailyReport) error {
	values := []interface{}{
		report.Date.Format(dateFormat),
		report.Submissions,
		report.ActivitySurveys,
		report.LegacySurveys,
		report.EmissionsKg,
		report.RecommendedTrees,
		report.Plantations,
		report.TreesPlanted,
		report.CertificatesIssued,
	}
	return e.repo.WriteRow(ctx, reportsWriteRange, values)
}
