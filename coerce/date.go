package coerce

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when parsing a date string.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateTime,
	time.DateOnly,
	"2006/01/02",
	"01/02/2006",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.RFC822Z,
	time.RFC822,
	time.UnixDate,
	time.ANSIC,
	"Jan 2 2006",
	"January 2 2006",
	"2 Jan 2006",
}

// parseDate parses raw using the known date layouts. Plain numbers are never
// dates here; see [parseEpoch].
func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseEpoch interprets raw as milliseconds since the Unix epoch.
func parseEpoch(raw string) (time.Time, bool) {
	ms, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return time.Time{}, false
	}

	return time.UnixMilli(ms).UTC(), true
}
