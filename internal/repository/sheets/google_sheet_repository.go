package sheets

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/geotree/internal/config"
)

// Repository appends rows to a spreadsheet. The daily report exporter is its
// only writer.
type Repository interface {
	WriteRow(ctx context.Context, writeRange string, values []interface{}) error
}

// GoogleSheetRepository is the Sheets API backed Repository used when
// GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID are both set.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository authenticates with a service-account file and
// targets the configured report spreadsheet.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled() {
		return nil, errors.New("sheets export is not configured")
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("init sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger.With(zap.String("spreadsheet_id", cfg.SpreadsheetID)),
	}, nil
}

// WriteRow appends one report row below the last filled row of writeRange.
func (r *GoogleSheetRepository) WriteRow(ctx context.Context, writeRange string, values []interface{}) error {
	if writeRange == "" {
		return errors.New("write range must not be empty")
	}
	if len(values) == 0 {
		return errors.New("report row has no values")
	}

	rows := &sheetsapi.ValueRange{Values: [][]interface{}{values}}
	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, writeRange, rows).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return fmt.Errorf("append report row to %s: %w", writeRange, err)
	}

	updated := writeRange
	if resp.Updates != nil && resp.Updates.UpdatedRange != "" {
		updated = resp.Updates.UpdatedRange
	}
	r.logger.Debug("report row appended", zap.String("range", updated), zap.Int("cells", len(values)))
	return nil
}
