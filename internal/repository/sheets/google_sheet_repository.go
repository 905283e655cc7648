package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/uzagro/omborbot/internal/config"
	"github.com/uzagro/omborbot/internal/domain/models"
)

const snapshotRange = "Snapshots!A:F"

// Repository defines the persistence operations supported by the Google Sheets adapter.
type Repository interface {
	AppendSnapshot(ctx context.Context, snapshot models.DailySnapshot) error
}

// GoogleSheetRepository mirrors nightly snapshots into a spreadsheet
// using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendSnapshot appends one spreadsheet row per district of the
// snapshot, plus a totals row for the warehouse.
func (r *GoogleSheetRepository) AppendSnapshot(ctx context.Context, snapshot models.DailySnapshot) error {
	date := snapshot.Date.Format("2006-01-02")

	rows := make([][]interface{}, 0, len(snapshot.Rows)+1)
	for _, row := range snapshot.Rows {
		rows = append(rows, []interface{}{
			date,
			snapshot.WarehouseID,
			snapshot.WarehouseName,
			row.DistrictName,
			row.TodayQuantity,
			row.TotalQuantity,
		})
	}
	rows = append(rows, []interface{}{
		date,
		snapshot.WarehouseID,
		snapshot.WarehouseName,
		"Жами",
		snapshot.TodayTotal,
		snapshot.SeasonTotal,
	})

	payload := &sheetsapi.ValueRange{Values: rows}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, snapshotRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append snapshot for warehouse %d: %w", snapshot.WarehouseID, err)
	}

	r.logger.Debug("snapshot mirrored to sheet",
		zap.Int("warehouse_id", snapshot.WarehouseID),
		zap.Int("rows", len(rows)))
	return nil
}
