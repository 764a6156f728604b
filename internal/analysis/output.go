package analysis

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
)

const ruleWidth = 70

// FormatScore renders a player's score for the report. Full rounds show the
// raw score; partial rounds show the projection, e.g. "85×18/15=102".
func FormatScore(r PlayerResult) string {
	if r.IsFullRound() {
		return fmt.Sprintf("%d", r.RawScore)
	}
	return fmt.Sprintf("%d×%d/%d=%d", r.RawScore, 18, r.HolesPlayed, r.NormalizedScore)
}

// FormatHoles renders the holes-played column: "9 holes" when both players
// played the same number of holes, otherwise "L:9 G:18" using the labels.
func FormatHoles(a, b PlayerResult, players Players) string {
	if a.HolesPlayed == b.HolesPlayed {
		return fmt.Sprintf("%d holes", a.HolesPlayed)
	}
	return fmt.Sprintf("%s:%d %s:%d", players.A.Label, a.HolesPlayed, players.B.Label, b.HolesPlayed)
}

// WinnerName returns the display text for a row's outcome
func WinnerName(o Outcome, players Players) string {
	switch o {
	case WinnerA:
		return players.A.Display
	case WinnerB:
		return players.B.Display
	default:
		return "Tie"
	}
}

// WriteText writes the human-readable comparison table and summary
func WriteText(w io.Writer, report *Report) error {
	p := report.Players
	rule := strings.Repeat("-", ruleWidth)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Scores for all rounds (normalized to 18 holes):")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-15s %-15s %-15s %-10s %s\n", "Date", p.A.Display, p.B.Display, "Winner", "Holes")
	fmt.Fprintln(w, rule)

	for _, row := range report.Rows {
		fmt.Fprintf(w, "%-15s %-15s %-15s %-10s %s\n",
			row.Date,
			FormatScore(row.A),
			FormatScore(row.B),
			WinnerName(row.Winner, p),
			FormatHoles(row.A, row.B, p),
		)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total rounds: %d\n", report.Summary.Total)
	fmt.Fprintf(w, "%s wins: %d\n", p.A.Display, report.Summary.WinsA)
	fmt.Fprintf(w, "%s wins: %d\n", p.B.Display, report.Summary.WinsB)
	_, err := fmt.Fprintf(w, "Ties: %d\n", report.Summary.Ties)

	return err
}

// WriteJSON writes the report as indented JSON
func WriteJSON(w io.Writer, report *Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
