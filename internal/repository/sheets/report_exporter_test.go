package sheets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/geotree/internal/config"
	"github.com/mamadbah2/geotree/internal/domain/models"
)

type recordingRepo struct {
	ranges []string
	rows   [][]interface{}
	err    error
}

func (r *recordingRepo) WriteRow(_ context.Context, sheetRange string, values []interface{}) error {
	r.ranges = append(r.ranges, sheetRange)
	r.rows = append(r.rows, values)
	return r.err
}

func TestReportExporter_WritesOneRow(t *testing.T) {
	repo := &recordingRepo{}
	exporter := NewReportExporter(repo)

	err := exporter.ExportDailyReport(context.Background(), models.DailyReport{
		Date:               time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Submissions:        5,
		ActivitySurveys:    4,
		LegacySurveys:      1,
		EmissionsKg:        12500.5,
		RecommendedTrees:   480,
		Plantations:        2,
		TreesPlanted:       30,
		CertificatesIssued: 2,
	})
	require.NoError(t, err)

	require.Len(t, repo.rows, 1)
	assert.Equal(t, "Reports!A:I", repo.ranges[0])
	assert.Equal(t, []interface{}{"2026-03-14", 5, 4, 1, 12500.5, 480, 2, 30.0, 2}, repo.rows[0])
}

func TestReportExporter_PropagatesErrors(t *testing.T) {
	repo := &recordingRepo{err: errors.New("quota exceeded")}

	err := NewReportExporter(repo).ExportDailyReport(context.Background(), models.DailyReport{})

	assert.EqualError(t, err, "quota exceeded")
}

func TestNewGoogleSheetRepository_RequiresConfiguration(t *testing.T) {
	repo, err := NewGoogleSheetRepository(context.Background(), config.SheetsConfig{SpreadsheetID: "sheet-1"}, nil)
	require.Error(t, err)
	assert.Nil(t, repo)
}

func TestGoogleSheetRepository_RejectsEmptyWrites(t *testing.T) {
	repo := &GoogleSheetRepository{}

	assert.Error(t, repo.WriteRow(context.Background(), "", []interface{}{"x"}))
	assert.Error(t, repo.WriteRow(context.Background(), reportsWriteRange, nil))
}
