package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/uzagro/omborbot/internal/domain/models"
	"github.com/uzagro/omborbot/internal/service/report"
)

// The adapter receives the same reduced dataset the renderer would have
// paginated and turns it into a workbook. Empty datasets yield a nil
// buffer, the caller's "no data" sentinel.

// Receipts exports raw receipt movements.
func Receipts(records []models.MovementRecord) (*bytes.Buffer, error) {
	if len(records) == 0 {
		return nil, nil
	}

	rows := make([][]any, 0, len(records))
	for i, item := range records {
		invoice := item.InvoiceNumber
		if invoice == "" {
			invoice = "-"
		}
		product := item.ProductName
		if product == "" {
			product = "-"
		}
		rows = append(rows, []any{
			i + 1,
			report.NormalizeDate(item.Date).Display,
			invoice,
			product,
			item.BagCount,
			item.Quantity.InexactFloat64(),
		})
	}

	return writeSheet("WarehouseReceipts",
		[]string{"№", "Сана", "Накладной", "Маҳсулот", "Қоп сони", "Миқдор"}, rows)
}

// FarmerIssues exports the by-farmer issue summaries.
func FarmerIssues(summaries []models.FarmerSummary) (*bytes.Buffer, error) {
	if len(summaries) == 0 {
		return nil, nil
	}

	rows := make([][]any, 0, len(summaries))
	for i, item := range summaries {
		rows = append(rows, []any{
			i + 1,
			item.FarmerName,
			item.Quantity.InexactFloat64(),
			item.Area.InexactFloat64(),
			item.QuantityPerArea.Round(0).InexactFloat64(),
		})
	}

	return writeSheet("WarehouseExpenses",
		[]string{"№", "Фермер", "Миқдор", "Майдон (га)", "Га/кг"}, rows)
}

// DistrictReport exports the by-district report summaries.
func DistrictReport(summaries []models.DistrictSummary, today time.Time) (*bytes.Buffer, error) {
	if len(summaries) == 0 {
		return nil, nil
	}

	rows := make([][]any, 0, len(summaries))
	for i, item := range summaries {
		rows = append(rows, []any{
			i + 1,
			item.DistrictName,
			item.TodayQuantity.InexactFloat64(),
			item.TotalQuantity.InexactFloat64(),
		})
	}

	return writeSheet("WarehouseReport",
		[]string{"№", "Туман", "Бир кунда " + report.DayDisplay(today), "Мавсумда"}, rows)
}

// FarmerBalances exports the farmer balance listing.
func FarmerBalances(balances []models.FarmerBalance) (*bytes.Buffer, error) {
	if len(balances) == 0 {
		return nil, nil
	}

	rows := make([][]any, 0, len(balances))
	for i, item := range balances {
		rows = append(rows, []any{i + 1, item.INN, item.Name, item.Balance.InexactFloat64()})
	}

	return writeSheet("Farmers", []string{"№", "ИНН", "Фермер номи", "Баланс"}, rows)
}

// Contracts exports the contracts summary listing.
func Contracts(contracts []models.ContractSummary) (*bytes.Buffer, error) {
	if len(contracts) == 0 {
		return nil, nil
	}

	rows := make([][]any, 0, len(contracts))
	for i, item := range contracts {
		rows = append(rows, []any{
			i + 1,
			item.Region,
			item.District,
			item.Massive,
			item.Name,
			item.Quantity.InexactFloat64(),
			item.Amount.InexactFloat64(),
		})
	}

	return writeSheet("Contracts",
		[]string{"№", "Вилоят", "Туман", "Массив", "Фермер", "Миқдор (тн)", "Сумма"}, rows)
}

func writeSheet(name string, headers []string, rows [][]any) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", name); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("row coordinates: %w", err)
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := styleHeader(f, name, headers, rows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf, nil
}

// styleHeader bolds the first row and widens each column to fit its
// longest value, matching the documents operators already receive.
func styleHeader(f *excelize.File, name string, headers []string, rows [][]any) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return fmt.Errorf("column name: %w", err)
	}
	if err := f.SetCellStyle(name, "A1", lastCol+"1", style); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	for i, header := range headers {
		width := len([]rune(header))
		for _, row := range rows {
			if i < len(row) {
				if l := len([]rune(fmt.Sprint(row[i]))); l > width {
					width = l
				}
			}
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(name, col, col, float64(width+2)); err != nil {
			return fmt.Errorf("column width: %w", err)
		}
	}
	return nil
}
