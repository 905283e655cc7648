package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"

	"github.com/uzagro/omborbot/internal/domain/models"
)

// The tables below are consumed inside <pre> blocks by chat clients and
// by downstream tooling that screen-scrapes them, so the layout is a
// contract: column widths, truncations and separators must not drift.
// Padding is rune-aware because fmt's width counts bytes, not columns.

// ReceiptsPage renders one page of raw receipt movements.
func ReceiptsPage(warehouseName, productName string, totals models.WarehouseTotals, page Page[models.MovementRecord]) string {
	lines := movementsHeader(warehouseName, productName, totals)
	lines = append(lines,
		"📥 Кирим деталлари:",
		padRight("Сана", 12)+" "+padRight("Юк-№", 4)+" "+padLeft("Қоп", 4)+" "+padLeft("Миқдори", 8),
		strings.Repeat("-", 38),
	)

	for _, item := range page.Items {
		invoice := item.InvoiceNumber
		if invoice == "" {
			invoice = "-"
		}
		lines = append(lines,
			padRight(NormalizeDate(item.Date).Display, 12)+" "+
				padRight(invoice, 4)+" "+
				padLeft(strconv.Itoa(item.BagCount), 4)+" "+
				padLeft(fixed(item.Quantity, 0), 8))
	}

	return strings.Join(lines, "\n")
}

// IssuesPage renders one page of by-farmer issue summaries.
func IssuesPage(warehouseName, productName string, totals models.WarehouseTotals, page Page[models.FarmerSummary]) string {
	lines := movementsHeader(warehouseName, productName, totals)
	lines = append(lines,
		"📤 Чиқим деталлари:",
		padRight("№", 3)+" "+padRight("Фермер номи", 16)+" "+padLeft("Миқдори", 8)+" "+padLeft("Га/кг", 6),
		strings.Repeat("-", 37),
	)

	for offset, item := range page.Items {
		lines = append(lines,
			padRight(strconv.Itoa(page.Start+offset+1), 3)+" "+
				padRight(truncate(item.FarmerName, 16), 16)+" "+
				padLeft(fixed(item.Quantity, 0), 8)+" "+
				padLeft(fixed(item.QuantityPerArea, 0), 6))
	}

	return strings.Join(lines, "\n")
}

// ReportPage renders one page of by-district report summaries. The
// trailing Жами line totals every row of the filtered set, not just the
// visible page.
func ReportPage(warehouseName, productName string, totals models.WarehouseTotals, page Page[models.DistrictSummary], all []models.DistrictSummary, today time.Time) string {
	lines := movementsHeader(warehouseName, productName, totals)
	lines = append(lines,
		"📊 Свод деталлари:",
		padRight("№", 3)+" "+padRight("Туман", 10)+" "+padLeft("Бир кунда", 8)+" "+padLeft("Мавсумда", 10),
		padRight("", 14)+" "+padLeft(DayDisplay(today), 10),
		strings.Repeat("-", 40),
	)

	for offset, item := range page.Items {
		lines = append(lines,
			padRight(strconv.Itoa(page.Start+offset+1), 3)+" "+
				padRight(truncate(item.DistrictName, 16), 10)+" "+
				padLeft(fixed(item.TodayQuantity, 0), 8)+" "+
				padLeft(fixed(item.TotalQuantity, 0), 12))
	}

	todayTotal, seasonTotal := GrandTotal(all)
	lines = append(lines,
		strings.Repeat("-", 40),
		padRight("", 3)+" "+padRight("Жами", 10)+" "+padLeft(fixed(todayTotal, 0), 8)+" "+padLeft(fixed(seasonTotal, 0), 10),
	)

	return strings.Join(lines, "\n")
}

// FarmerBalancesPage renders one page of the farmer balance listing.
// Balances are shown in millions with one decimal.
func FarmerBalancesPage(districtTitle string, page Page[models.FarmerBalance]) string {
	rows := make([]string, 0, len(page.Items))
	for offset, item := range page.Items {
		rows = append(rows,
			padRight(strconv.Itoa(page.Start+offset+1), 3)+" "+
				padRight(truncate(item.Name, 18), 18)+" "+
				padLeft(grouped(item.Balance, 1_000_000, 1), 13))
	}

	return buildPageText(
		"📋 Фермер Баланс: "+districtTitle,
		padRight("№", 3)+" "+padRight("Фермер номи", 18)+" "+padLeft("Баланс", 13),
		padRight(" ", 3)+" "+padRight(" ", 18)+" "+padLeft("(млн)", 13),
		rows,
	)
}

// ContractsPage renders one page of the contracts summary listing.
// Quantities are in tons, amounts in millions.
func ContractsPage(districtTitle string, page Page[models.ContractSummary]) string {
	rows := make([]string, 0, len(page.Items))
	for offset, item := range page.Items {
		rows = append(rows,
			padRight(strconv.Itoa(page.Start+offset+1), 3)+" "+
				padRight(truncate(item.Name, 14), 14)+" "+
				padLeft(grouped(item.Quantity, 1_000, 1), 7)+
				padLeft(grouped(item.Amount, 1_000_000, 1), 9))
	}

	return buildPageText(
		"📑 Шартномалар: "+districtTitle,
		padRight("№", 3)+" "+padRight("Фермер номи", 14)+" "+padLeft("миқдор", 7)+" "+padLeft("Сумма", 7),
		padRight(" ", 3)+" "+padRight("   ", 14)+" "+padLeft("  (тн)", 4)+" "+padLeft("   (млн)", 9),
		rows,
	)
}

func movementsHeader(warehouseName, productName string, totals models.WarehouseTotals) []string {
	return []string{
		"🏬 " + warehouseName,
		"📦 " + productName,
		"",
		"📥 Кирим: " + fixed(totals.TotalIn, 2),
		"📤 Чиқим: " + fixed(totals.TotalOut, 2),
		"🧮 Қолдиқ: " + fixed(totals.Balance, 2),
		"",
	}
}

func buildPageText(title, headers, subheaders string, rows []string) string {
	text := title + "\n\n" + headers + "\n"
	if subheaders != "" {
		text += subheaders + "\n"
	}
	text += strings.Repeat("-", 37) + "\n"
	if len(rows) > 0 {
		text += strings.Join(rows, "\n") + "\n"
	}
	return text
}

// fixed formats a decimal with the given number of decimal places,
// rounding half to even like the layouts this replaces.
func fixed(value decimal.Decimal, places int) string {
	return strconv.FormatFloat(value.InexactFloat64(), 'f', places, 64)
}

// grouped scales the value down by divisor and formats it with a
// thousands separator, e.g. 12345678 / 1e6 -> "12.3"; 4567890123 / 1e3
// -> "4,567,890.1".
func grouped(value decimal.Decimal, divisor int64, places int) string {
	scaled := value.InexactFloat64() / float64(divisor)
	plain := strconv.FormatFloat(scaled, 'f', places, 64)

	sign := ""
	if strings.HasPrefix(plain, "-") {
		sign = "-"
		plain = plain[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(plain, ".")

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	out := sign + b.String()
	if hasFrac {
		out += "." + fracPart
	}
	return out
}

func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return s
}
