package utils

import (
	"fmt"
	"strings"
	"time"

	"emoshown/internal/analytics"
)

type DateFormat string

const (
	FormatISO8601Date DateFormat = "2006-01-02"
	FormatMonthDay    DateFormat = "January 2, 2006"
	FormatShortMonth  DateFormat = "Jan 2, 2006"
	FormatISO8601     DateFormat = time.RFC3339
)

// Order matters: the date-only layouts are tried before the timestamp layout.
var calendarFormats = []DateFormat{
	FormatISO8601Date,
	FormatMonthDay,
	FormatShortMonth,
	FormatISO8601,
}

// ParseCalendarDate accepts the date layouts the clients send and normalizes
// them to a civil date. A full timestamp keeps its own calendar day and is not
// shifted to UTC.
func ParseCalendarDate(input string) (analytics.CalendarDate, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return analytics.CalendarDate{}, fmt.Errorf("%w: date is required", analytics.ErrIncompleteInput)
	}

	for _, format := range calendarFormats {
		parsed, err := time.Parse(string(format), input)
		if err != nil {
			continue
		}
		return analytics.NewCalendarDate(parsed), nil
	}

	return analytics.CalendarDate{}, fmt.Errorf(
		"%w: unsupported date %q, expected %s or %s",
		analytics.ErrIncompleteInput,
		input,
		FormatISO8601Date,
		FormatMonthDay,
	)
}

// ParseOptionalCalendarDate returns fallback when input is blank.
func ParseOptionalCalendarDate(
	input string,
	fallback analytics.CalendarDate,
) (analytics.CalendarDate, error) {
	if strings.TrimSpace(input) == "" {
		return fallback, nil
	}
	return ParseCalendarDate(input)
}
