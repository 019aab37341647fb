package leads

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// timestampLayouts are tried in order. Month, day and hour fields written
// as a single digit accept one or two digits, so "01/02/2006" also parses.
// Day-first dates are not accepted.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 3:04:05 PM",
	"2006-01-02 3:04 PM",
	"2006-01-02",

	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"2006/1/2 3:04:05 PM",
	"2006/1/2 3:04 PM",
	"2006/1/2",

	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006",

	"1-2-2006 15:04:05",
	"1-2-2006 15:04",
	"1-2-2006 3:04:05 PM",
	"1-2-2006 3:04 PM",
	"1-2-2006",

	"Jan 2, 2006 15:04:05",
	"Jan 2, 2006 3:04:05 PM",
	"Jan 2, 2006 3:04 PM",
	"Jan 2, 2006",
	"January 2, 2006 15:04:05",
	"January 2, 2006 3:04:05 PM",
	"January 2, 2006 3:04 PM",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// ParseTimestamp parses a form-export timestamp. Fractional seconds are
// accepted after the seconds field in every layout.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, eris.Errorf("unrecognized timestamp format %q", s)
}

// CalendarDate returns the date of t in its own offset as YYYY-MM-DD.
func CalendarDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
