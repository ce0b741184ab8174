package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name        string
		dateStr     string
		expectedOk  bool
		expectedY   int
		expectedM   time.Month
		expectedD   int
		expectedFmt string
	}{
		{"ISO format", "2024-01-15", true, 2024, time.January, 15, DateLayoutISO},
		{"ISO with padding", "  2024-01-15 ", true, 2024, time.January, 15, DateLayoutISO},
		{"Full timestamp", "2024-01-15 10:30:45", true, 2024, time.January, 15, DateLayoutFull},
		{"US format", "01/15/2024", true, 2024, time.January, 15, DateLayoutUS},
		{"US short", "1/5/2024", true, 2024, time.January, 5, "1/2/2006"},
		{"European format", "15.01.2024", true, 2024, time.January, 15, DateLayoutEuropean},
		{"Slash ISO", "2024/03/02", true, 2024, time.March, 2, DateLayoutSlashISO},
		{"With month name", "15-Jan-2024", true, 2024, time.January, 15, DateLayoutWithMonth},
		{"Empty string", "", false, 0, 0, 0, ""},
		{"Invalid format", "not a date", false, 0, 0, 0, ""},
		{"Impossible day", "2024-02-31", false, 0, 0, 0, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			date, layout, err := ParseDate(tc.dateStr)
			if !tc.expectedOk {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedY, date.Year())
			assert.Equal(t, tc.expectedM, date.Month())
			assert.Equal(t, tc.expectedD, date.Day())
			assert.Equal(t, tc.expectedFmt, layout)
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2024-01-05", FormatDate(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-05 09:15:00", FormatDate(time.Date(2024, 1, 5, 9, 15, 0, 0, time.UTC)))
}

func TestCalendarParts(t *testing.T) {
	tests := []struct {
		date    time.Time
		quarter int
		week    int
		month   string
	}{
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 1, 1, "January"},
		{time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), 1, 13, "March"},
		{time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), 2, 14, "April"},
		{time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), 4, 1, "December"},
		{time.Date(2021, 1, 3, 0, 0, 0, 0, time.UTC), 1, 53, "January"},
	}

	for _, tc := range tests {
		t.Run(tc.date.Format(DateLayoutISO), func(t *testing.T) {
			assert.Equal(t, tc.quarter, Quarter(tc.date))
			assert.Equal(t, tc.week, ISOWeek(tc.date))
			assert.Equal(t, tc.month, MonthName(tc.date))
		})
	}
}
