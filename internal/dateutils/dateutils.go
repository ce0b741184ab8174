// Package dateutils parses the loosely formatted dates found in sales exports and
// derives the calendar parts the cleaned dataset carries.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutFull      = "2006-01-02 15:04:05"
	DateLayoutISOT      = "2006-01-02T15:04:05"
	DateLayoutSlashISO  = "2006/01/02"
	DateLayoutUS        = "01/02/2006"
	DateLayoutEuropean  = "02.01.2006"
	DateLayoutCompact   = "20060102"
	DateLayoutWithMonth = "2-Jan-2006"
)

// CommonFormats is tried in order. Slash dates without a leading year are read
// month-first, matching what spreadsheet exports in this dataset produce.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutFull,
	DateLayoutISOT,
	time.RFC3339,
	DateLayoutSlashISO,
	DateLayoutUS,
	"1/2/2006",
	DateLayoutEuropean,
	DateLayoutCompact,
	DateLayoutWithMonth,
	"Jan 2, 2006",
	"January 2, 2006",
}

var whitespace = regexp.MustCompile(`\s+`)

// CleanDateString trims and collapses internal whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseDate tries every layout in CommonFormats and returns the parsed value
// together with the layout that matched.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)
	if dateStr == "" {
		return time.Time{}, "", fmt.Errorf("empty date")
	}

	for _, layout := range CommonFormats {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, layout, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// FormatDate renders t as an ISO date, keeping the time of day only when it is set.
func FormatDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(DateLayoutISO)
	}
	return t.Format(DateLayoutFull)
}

// Quarter returns the calendar quarter (1-4).
func Quarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// ISOWeek returns the ISO 8601 week number.
func ISOWeek(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// MonthName returns the English month name, e.g. "January".
func MonthName(t time.Time) string {
	return t.Month().String()
}
