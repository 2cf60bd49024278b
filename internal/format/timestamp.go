package format

import (
	"strings"
	"time"
)

// DisplayLayout renders timestamps as "Jan 09, 2024 06:56 UTC".
const DisplayLayout = "Jan 02, 2006 15:04 UTC"

// InvalidDate is shown for timestamps that cannot be parsed.
const InvalidDate = "Invalid date"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO 8601 timestamp. Values without a zone are
// read as UTC.
func ParseTimestamp(input string) (time.Time, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, input); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders an ISO 8601 timestamp as "Jan 09, 2024 06:56 UTC".
func FormatTimestamp(input string) string {
	ts, ok := ParseTimestamp(input)
	if !ok {
		return InvalidDate
	}
	return ts.Format(DisplayLayout)
}
