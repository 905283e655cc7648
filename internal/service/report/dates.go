package report

import (
	"strings"
	"time"
)

const (
	sortKeyLayout = "2006-01-02"
	displayLayout = "02.01.2006"
)

// timestampLayouts are tried against the full value after the trailing
// "Z" zone marker has been substituted with an explicit zero offset.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// NormalizedDate is the canonical form of an untrusted date value: a
// sortable key and the operator-facing display text. Two values with
// the same SortKey are the same calendar day for bucketing.
type NormalizedDate struct {
	SortKey string
	Display string
}

// NormalizeDate canonicalizes an arbitrary date-like value. It is
// total: any input produces a NormalizedDate. Empty input sorts first
// and displays as "-"; values no layout accepts degrade to their first
// ten characters rather than failing the render.
func NormalizeDate(value string) NormalizedDate {
	text := strings.TrimSpace(value)
	if text == "" {
		return NormalizedDate{SortKey: "", Display: "-"}
	}

	normalized := text
	if strings.HasSuffix(normalized, "Z") {
		normalized = strings.TrimSuffix(normalized, "Z") + "+00:00"
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, normalized); err == nil {
			return fromTime(parsed)
		}
	}

	head := firstRunes(text, 10)
	for _, layout := range []string{sortKeyLayout, displayLayout} {
		if parsed, err := time.Parse(layout, head); err == nil {
			return fromTime(parsed)
		}
	}

	return NormalizedDate{SortKey: head, Display: head}
}

// DayKey returns the sort key of a point in time, in its location.
func DayKey(t time.Time) string {
	return t.Format(sortKeyLayout)
}

// DayDisplay returns the display form of a point in time.
func DayDisplay(t time.Time) string {
	return t.Format(displayLayout)
}

func fromTime(t time.Time) NormalizedDate {
	return NormalizedDate{SortKey: t.Format(sortKeyLayout), Display: t.Format(displayLayout)}
}

func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}
