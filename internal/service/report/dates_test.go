package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		sortKey string
		display string
	}{
		{"empty", "", "", "-"},
		{"blank", "   ", "", "-"},
		{"utc timestamp with zone marker", "2024-05-17T08:30:00Z", "2024-05-17", "17.05.2024"},
		{"timestamp with offset", "2024-05-17T08:30:00+05:00", "2024-05-17", "17.05.2024"},
		{"timestamp without zone", "2024-05-17T08:30:00", "2024-05-17", "17.05.2024"},
		{"space separated timestamp", "2024-05-17 08:30:00", "2024-05-17", "17.05.2024"},
		{"plain iso date", "2024-05-17", "2024-05-17", "17.05.2024"},
		{"dotted date", "17.05.2024", "2024-05-17", "17.05.2024"},
		{"dotted date with trailing junk", "17.05.2024 smth", "2024-05-17", "17.05.2024"},
		{"unparseable degrades to its head", "not-a-date-at-all", "not-a-date", "not-a-date"},
		{"short unparseable value kept whole", "n/a", "n/a", "n/a"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeDate(tc.input)
			assert.Equal(t, tc.sortKey, got.SortKey)
			assert.Equal(t, tc.display, got.Display)
		})
	}
}

func TestNormalizeDateBucketsSameDay(t *testing.T) {
	// Different source formats for the same calendar day must share a
	// sort key, otherwise today totals fragment.
	inputs := []string{
		"2024-05-17T23:59:59Z",
		"2024-05-17 00:00:01",
		"2024-05-17",
		"17.05.2024",
	}
	for _, input := range inputs {
		assert.Equal(t, "2024-05-17", NormalizeDate(input).SortKey, "input %q", input)
	}
}

func TestDayHelpers(t *testing.T) {
	day := time.Date(2024, 5, 17, 13, 45, 0, 0, time.UTC)
	assert.Equal(t, "2024-05-17", DayKey(day))
	assert.Equal(t, "17.05.2024", DayDisplay(day))
}
