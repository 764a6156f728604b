package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/golf-rounds/internal/round"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByInput  SortOrder = "input"
	SortByDate   SortOrder = "date"
	SortByCourse SortOrder = "course"
)

func parseSortOrder(s string) (SortOrder, error) {
	order := SortOrder(strings.ToLower(strings.TrimSpace(s)))
	switch order {
	case SortByInput, SortByDate, SortByCourse:
		return order, nil
	default:
		return "", fmt.Errorf("invalid sort order: %s (must be 'input', 'date' or 'course')", s)
	}
}

// sortRounds returns the rounds in the given order. Input order leaves the
// slice untouched; other orders sort a copy and keep ties in input order.
func sortRounds(rounds []*round.Round, order SortOrder) []*round.Round {
	if order == SortByInput || order == "" {
		return rounds
	}

	sorted := make([]*round.Round, len(rounds))
	copy(sorted, rounds)

	switch order {
	case SortByDate:
		sort.SliceStable(sorted, func(i, j int) bool {
			return compareByDate(sorted[i], sorted[j])
		})
	case SortByCourse:
		sort.SliceStable(sorted, func(i, j int) bool {
			ci, cj := strings.ToLower(sorted[i].CourseName), strings.ToLower(sorted[j].CourseName)
			if ci != cj {
				return ci < cj
			}
			// If courses are equal, sort by date
			return compareByDate(sorted[i], sorted[j])
		})
	}

	return sorted
}

// compareByDate compares two rounds by their date
// Returns true if round i should come before round j
func compareByDate(i, j *round.Round) bool {
	dateI := i.Time()
	dateJ := j.Time()

	// If both dates are valid, compare them
	if !dateI.IsZero() && !dateJ.IsZero() {
		return dateI.Before(dateJ)
	}

	// If only one date is valid, put the valid one first
	return !dateI.IsZero()
}
