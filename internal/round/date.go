package round

import (
	"strings"
	"time"
)

// dateLayouts are the date formats seen on scorecards and in saved data
var dateLayouts = []string{
	"Jan 02, 2006",
	"Jan 2, 2006",
	"Jan 02 2006",
	"Jan 2 2006",
	"January 2, 2006",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
}

// ParseDate attempts to parse a round date into a time.Time.
// Returns time.Time{} (zero value) if parsing fails.
func ParseDate(dateText string) time.Time {
	dateText = strings.TrimSpace(dateText)
	if dateText == "" {
		return time.Time{}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, dateText); err == nil {
			return t
		}
	}

	return time.Time{}
}

// Time returns the parsed round date, zero if the date is unparseable
func (r *Round) Time() time.Time {
	return ParseDate(r.Date)
}
