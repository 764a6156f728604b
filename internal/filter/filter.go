// Package filter narrows a set of rounds before analysis or export.
//
// Rounds can be selected by:
//   - Date range (from/to dates, inclusive)
//   - Course names (substring matching, case-insensitive)
//   - Players (every listed player must have a scorecard in the round)
//
// A round whose date cannot be parsed is always kept by the date criteria.
//
// Example usage:
//
//	from, to, _ := filter.ParseDateRange("Oct 1-15", time.Now())
//	f := filter.NewFilter()
//	f.DateFrom, f.DateTo = from, to
//	f.Courses = []string{"Bali Hai"}
//	selected := f.Apply(rounds)
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/golf-rounds/internal/round"
)

// Filter represents round filtering criteria
type Filter struct {
	// Date range filtering
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`

	// Course name filtering (case-insensitive substring match)
	Courses []string `json:"courses,omitempty"`

	// Players that must all appear in the round (case-insensitive)
	Players []string `json:"players,omitempty"`
}

// NewFilter creates a new empty filter with no active criteria.
// The filter will match all rounds until criteria are added.
func NewFilter() *Filter {
	return &Filter{
		Courses: []string{},
		Players: []string{},
	}
}

// IsEmpty checks if the filter has any active criteria.
// Returns true if the filter would match all rounds.
func (f *Filter) IsEmpty() bool {
	return f.DateFrom == nil &&
		f.DateTo == nil &&
		len(f.Courses) == 0 &&
		len(f.Players) == 0
}

// Matches checks if a round matches all active filter criteria.
//
// Matching logic:
//   - Date range: round date must be within DateFrom and DateTo (inclusive);
//     rounds with unparseable dates pass
//   - Courses: course name must contain at least one course (case-insensitive)
//   - Players: every listed player must be on the scorecard
func (f *Filter) Matches(r *round.Round) bool {
	if f.IsEmpty() {
		return true
	}

	if date := r.Time(); !date.IsZero() {
		if f.DateFrom != nil && date.Before(*f.DateFrom) {
			return false
		}
		if f.DateTo != nil && date.After(*f.DateTo) {
			return false
		}
	}

	if len(f.Courses) > 0 {
		matched := false
		courseLower := strings.ToLower(r.CourseName)
		for _, course := range f.Courses {
			if strings.Contains(courseLower, strings.ToLower(course)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, name := range f.Players {
		if r.FindPlayer(name) == nil {
			return false
		}
	}

	return true
}

// Apply returns the rounds matching every criterion, in input order.
// If the filter is empty, returns the original list unchanged.
func (f *Filter) Apply(rounds []*round.Round) []*round.Round {
	if f.IsEmpty() {
		return rounds
	}

	filtered := make([]*round.Round, 0, len(rounds))
	for _, r := range rounds {
		if f.Matches(r) {
			filtered = append(filtered, r)
		}
	}

	return filtered
}

// String returns a human-readable description of the active filter criteria.
// Returns "No active filters" if the filter is empty.
// Format: "From: Oct 1, 2025 | To: Oct 15, 2025 | Courses: Bali Hai"
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if f.DateFrom != nil {
		parts = append(parts, fmt.Sprintf("From: %s", f.DateFrom.Format("Jan 2, 2006")))
	}

	if f.DateTo != nil {
		parts = append(parts, fmt.Sprintf("To: %s", f.DateTo.Format("Jan 2, 2006")))
	}

	if len(f.Courses) > 0 {
		parts = append(parts, fmt.Sprintf("Courses: %s", strings.Join(f.Courses, ", ")))
	}

	if len(f.Players) > 0 {
		parts = append(parts, fmt.Sprintf("Players: %s", strings.Join(f.Players, ", ")))
	}

	return strings.Join(parts, " | ")
}
