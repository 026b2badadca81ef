package model

import (
	"strings"
	"time"
)

// now is the fallback for unparsable event dates. Tests replace it.
var now = time.Now

// ESPN mixes full RFC 3339 timestamps with minute precision ones such as
// "2024-01-15T20:00Z".
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDateTime parses an ESPN timestamp. A trailing "Z" is UTC; values
// without an offset are taken as UTC.
func ParseDateTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseDateTimeOrNow is the lenient form used by mappers
func parseDateTimeOrNow(s string) time.Time {
	if t, ok := ParseDateTime(s); ok {
		return t
	}
	return now()
}
