package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uzagro/omborbot/internal/domain/models"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func area(v float64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(v), Valid: true}
}

func TestDistrictRows(t *testing.T) {
	today := time.Date(2024, 5, 17, 10, 0, 0, 0, time.UTC)

	t.Run("splits today from season totals", func(t *testing.T) {
		records := []models.MovementRecord{
			{DistrictName: "Андижон", Date: "2024-05-17T08:00:00Z", Quantity: dec(10)},
			{DistrictName: "Андижон", Date: "2024-04-01", Quantity: dec(5)},
			{DistrictName: "Балиқчи", Date: "17.05.2024", Quantity: dec(3)},
		}

		rows := DistrictRows(records, today)
		require.Len(t, rows, 2)

		assert.Equal(t, "Андижон", rows[0].DistrictName)
		assert.True(t, rows[0].TodayQuantity.Equal(dec(10)))
		assert.True(t, rows[0].TotalQuantity.Equal(dec(15)))

		assert.Equal(t, "Балиқчи", rows[1].DistrictName)
		assert.True(t, rows[1].TodayQuantity.Equal(dec(3)))
		assert.True(t, rows[1].TotalQuantity.Equal(dec(3)))

		todayTotal, seasonTotal := GrandTotal(rows)
		assert.True(t, todayTotal.Equal(dec(13)))
		assert.True(t, seasonTotal.Equal(dec(18)))
	})

	t.Run("today never exceeds total per row", func(t *testing.T) {
		records := []models.MovementRecord{
			{DistrictName: "Асака", Date: "2024-05-17", Quantity: dec(7)},
			{DistrictName: "Асака", Date: "2024-05-17", Quantity: dec(2)},
		}
		rows := DistrictRows(records, today)
		require.Len(t, rows, 1)
		assert.True(t, rows[0].TodayQuantity.LessThanOrEqual(rows[0].TotalQuantity))
	})

	t.Run("blank district collapses to dash", func(t *testing.T) {
		records := []models.MovementRecord{
			{DistrictName: "  ", Date: "2024-04-01", Quantity: dec(1)},
			{DistrictName: "", Date: "2024-04-02", Quantity: dec(2)},
		}
		rows := DistrictRows(records, today)
		require.Len(t, rows, 1)
		assert.Equal(t, "-", rows[0].DistrictName)
		assert.True(t, rows[0].TotalQuantity.Equal(dec(3)))
	})

	t.Run("empty input yields empty rows", func(t *testing.T) {
		assert.Empty(t, DistrictRows(nil, today))
	})
}

func TestFarmerRows(t *testing.T) {
	t.Run("sums quantity and derives per-area after the fold", func(t *testing.T) {
		records := []models.MovementRecord{
			{FarmerName: "Фермер Х", Quantity: dec(4), Area: area(2)},
			{FarmerName: "Фермер Х", Quantity: dec(6), Area: area(9)},
		}
		rows := FarmerRows(records)
		require.Len(t, rows, 1)
		assert.True(t, rows[0].Quantity.Equal(dec(10)))
		assert.True(t, rows[0].Area.Equal(dec(2)), "first positive area wins")
		assert.True(t, rows[0].QuantityPerArea.Equal(dec(5)))
	})

	t.Run("missing area keeps per-area at zero", func(t *testing.T) {
		records := []models.MovementRecord{
			{FarmerName: "Фермер Y", Quantity: dec(12)},
			{FarmerName: "Фермер Y", Quantity: dec(3), Area: area(0)},
		}
		rows := FarmerRows(records)
		require.Len(t, rows, 1)
		assert.True(t, rows[0].Area.IsZero())
		assert.True(t, rows[0].QuantityPerArea.IsZero())
	})

	t.Run("late area still covers the whole quantity", func(t *testing.T) {
		records := []models.MovementRecord{
			{FarmerName: "Фермер Z", Quantity: dec(8)},
			{FarmerName: "Фермер Z", Quantity: dec(2), Area: area(5)},
		}
		rows := FarmerRows(records)
		require.Len(t, rows, 1)
		assert.True(t, rows[0].QuantityPerArea.Equal(dec(2)))
	})

	t.Run("rows sort by farmer name", func(t *testing.T) {
		records := []models.MovementRecord{
			{FarmerName: "Яшил дала", Quantity: dec(1)},
			{FarmerName: "Барака", Quantity: dec(1)},
		}
		rows := FarmerRows(records)
		require.Len(t, rows, 2)
		assert.Equal(t, "Барака", rows[0].FarmerName)
		assert.Equal(t, "Яшил дала", rows[1].FarmerName)
	})
}
