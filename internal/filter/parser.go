package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/pfrederiksen/golf-rounds/internal/round"
)

const monthPattern = `(jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|sept|september|oct|october|nov|november|dec|december)`

var (
	sameMonthRange  = regexp.MustCompile(`(?i)^` + monthPattern + `\s+(\d{1,2})\s*-\s*(\d{1,2})$`)
	crossMonthRange = regexp.MustCompile(`(?i)^` + monthPattern + `\s+(\d{1,2})\s*-\s*` + monthPattern + `\s+(\d{1,2})$`)
	wholeMonth      = regexp.MustCompile(`(?i)^` + monthPattern + `$`)
)

// naturalParser handles relative dates such as "yesterday" or "3 days ago"
var naturalParser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// ParseDateBound parses a single --from/--to value into a UTC date at
// midnight. It accepts the date layouts used on scorecards ("Oct 24, 2025"),
// ISO dates, and relative expressions understood by olebedev/when.
func ParseDateBound(input string, now time.Time) (*time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("date cannot be empty")
	}

	if t := round.ParseDate(input); !t.IsZero() {
		return &t, nil
	}

	r, err := naturalParser.Parse(input, now)
	if err != nil {
		return nil, fmt.Errorf("parsing date %q: %w", input, err)
	}
	if r == nil {
		return nil, fmt.Errorf("unrecognized date %q", input)
	}

	t := truncateDay(r.Time)
	return &t, nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDateRange parses a date range string into start and end times.
//
// Supported formats:
//   - "Mar 1-15" or "March 1-15" - Same month, different days
//   - "March 1 - April 15" - Different months
//   - "March" - Entire month
//
// Rounds are in the past, so the year is inferred backwards: a month later
// in the calendar than now's month belongs to last year. For cross-month
// ranges where the end month precedes the start month, the end falls in the
// following year.
//
// Returns (dateFrom, dateTo, error). Times are in UTC.
// Start time is at 00:00:00, end time is at 23:59:59.
func ParseDateRange(input string, now time.Time) (*time.Time, *time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil, fmt.Errorf("date range cannot be empty")
	}

	// "Mar 1-15" or "March 1-15"
	if matches := sameMonthRange.FindStringSubmatch(input); matches != nil {
		month := parseMonth(matches[1])

		day1, err := parseDay(matches[2])
		if err != nil {
			return nil, nil, err
		}
		day2, err := parseDay(matches[3])
		if err != nil {
			return nil, nil, err
		}

		year := yearForMonth(month, now)
		if err := checkDay(year, month, day1); err != nil {
			return nil, nil, err
		}
		if err := checkDay(year, month, day2); err != nil {
			return nil, nil, err
		}
		from := time.Date(year, month, day1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, month, day2, 23, 59, 59, 0, time.UTC)

		if from.After(to) {
			return nil, nil, fmt.Errorf("start date must be before end date")
		}

		return &from, &to, nil
	}

	// "Mar 1 - Apr 15" or "March 1 - April 15"
	if matches := crossMonthRange.FindStringSubmatch(input); matches != nil {
		month1 := parseMonth(matches[1])
		month2 := parseMonth(matches[3])

		day1, err := parseDay(matches[2])
		if err != nil {
			return nil, nil, err
		}
		day2, err := parseDay(matches[4])
		if err != nil {
			return nil, nil, err
		}

		year1 := yearForMonth(month1, now)
		year2 := year1
		if month2 < month1 {
			year2++
		}
		if err := checkDay(year1, month1, day1); err != nil {
			return nil, nil, err
		}
		if err := checkDay(year2, month2, day2); err != nil {
			return nil, nil, err
		}

		from := time.Date(year1, month1, day1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year2, month2, day2, 23, 59, 59, 0, time.UTC)

		if from.After(to) {
			return nil, nil, fmt.Errorf("start date must be before end date")
		}

		return &from, &to, nil
	}

	// "March" or "Mar" (entire month)
	if matches := wholeMonth.FindStringSubmatch(input); matches != nil {
		month := parseMonth(matches[1])

		year := yearForMonth(month, now)
		from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		// Last day of month
		to := time.Date(year, month+1, 0, 23, 59, 59, 0, time.UTC)

		return &from, &to, nil
	}

	return nil, nil, fmt.Errorf("invalid date range format. Use 'Mar 1-15', 'March 1 - April 15', or 'March'")
}

func parseDay(s string) (int, error) {
	day, err := strconv.Atoi(s)
	if err != nil || day < 1 || day > 31 {
		return 0, fmt.Errorf("invalid day: %s", s)
	}
	return day, nil
}

// checkDay rejects days past the end of the month, which time.Date would
// otherwise roll into the next month
func checkDay(year int, month time.Month, day int) error {
	if last := daysIn(year, month); day > last {
		return fmt.Errorf("invalid day: %s has %d days", month, last)
	}
	return nil
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// parseMonth converts a month name to time.Month
func parseMonth(name string) time.Month {
	name = strings.ToLower(strings.TrimSpace(name))

	months := map[string]time.Month{
		"jan": time.January, "january": time.January,
		"feb": time.February, "february": time.February,
		"mar": time.March, "march": time.March,
		"apr": time.April, "april": time.April,
		"may": time.May,
		"jun": time.June, "june": time.June,
		"jul": time.July, "july": time.July,
		"aug": time.August, "august": time.August,
		"sep": time.September, "sept": time.September, "september": time.September,
		"oct": time.October, "october": time.October,
		"nov": time.November, "november": time.November,
		"dec": time.December, "december": time.December,
	}

	return months[name]
}

// yearForMonth returns the most recent year in which month has started
func yearForMonth(month time.Month, now time.Time) int {
	year := now.Year()
	if month > now.Month() {
		year--
	}
	return year
}
