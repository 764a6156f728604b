package analysis

import (
	"math"

	"github.com/pfrederiksen/golf-rounds/internal/round"
)

// Outcome identifies the winner of a compared round
type Outcome string

const (
	WinnerA Outcome = "A"
	WinnerB Outcome = "B"
	Tie     Outcome = "tie"
)

// Tracked describes one of the two players being compared
type Tracked struct {
	Name    string `json:"name" yaml:"name"`       // matched case-insensitively against scorecard names
	Display string `json:"display" yaml:"display"` // column header and winner text
	Label   string `json:"label" yaml:"label"`     // prefix in the holes column, e.g. "L"
}

// Players is the pair of tracked players
type Players struct {
	A Tracked `json:"a" yaml:"a"`
	B Tracked `json:"b" yaml:"b"`
}

// PlayerResult is one player's derived score for one round
type PlayerResult struct {
	Name            string `json:"name"`
	HolesPlayed     int    `json:"holes_played"`
	RawScore        int    `json:"raw_score"`
	NormalizedScore int    `json:"normalized_score"` // 0 when no holes were played
}

// Defined reports whether a normalized score exists
func (r PlayerResult) Defined() bool {
	return r.HolesPlayed > 0
}

// IsFullRound reports whether all 18 holes were played
func (r PlayerResult) IsFullRound() bool {
	return r.HolesPlayed == round.MaxHoles
}

// ComparisonRow is a round in which both tracked players have a score
type ComparisonRow struct {
	Date       string       `json:"date"`
	CourseName string       `json:"course_name,omitempty"`
	URL        string       `json:"url,omitempty"`
	A          PlayerResult `json:"a"`
	B          PlayerResult `json:"b"`
	Winner     Outcome      `json:"winner"`
}

// ComputePlayerResult scores the first player in the round whose name matches
// case-insensitively. The boolean is false when the player is not in the round.
//
// Unplayed entries are excluded. Every other entry is read with
// round.LenientAtoi, so a malformed entry counts as a played hole worth 0.
func ComputePlayerResult(r *round.Round, name string) (PlayerResult, bool) {
	p := r.FindPlayer(name)
	if p == nil {
		return PlayerResult{}, false
	}

	result := PlayerResult{Name: p.Name}
	for _, s := range p.Played() {
		result.HolesPlayed++
		result.RawScore += s.Value()
	}
	result.NormalizedScore = Normalize(result.RawScore, result.HolesPlayed)

	return result, true
}

// Normalize projects a raw score over holesPlayed holes to 18 holes, rounding
// half up. Returns 0 when no holes were played.
func Normalize(rawScore, holesPlayed int) int {
	if holesPlayed <= 0 {
		return 0
	}
	scaled := float64(rawScore) * (float64(round.MaxHoles) / float64(holesPlayed))
	return int(math.Floor(scaled + 0.5))
}

// CompareRound builds a comparison row for the two tracked players.
//
// The round is excluded when either player is absent or has a normalized
// score of 0, which counts as missing data.
func CompareRound(r *round.Round, players Players) (ComparisonRow, bool) {
	a, okA := ComputePlayerResult(r, players.A.Name)
	b, okB := ComputePlayerResult(r, players.B.Name)
	if !okA || !okB || a.NormalizedScore == 0 || b.NormalizedScore == 0 {
		return ComparisonRow{}, false
	}

	return ComparisonRow{
		Date:       r.Date,
		CourseName: r.CourseName,
		URL:        r.URL,
		A:          a,
		B:          b,
		Winner:     decideWinner(a.NormalizedScore, b.NormalizedScore),
	}, true
}

func decideWinner(a, b int) Outcome {
	switch {
	case a < b:
		return WinnerA
	case b < a:
		return WinnerB
	default:
		return Tie
	}
}

// Compare returns comparison rows for every round where both players scored,
// in input order.
func Compare(rounds []*round.Round, players Players) []ComparisonRow {
	rows := make([]ComparisonRow, 0, len(rounds))
	for _, r := range rounds {
		if row, ok := CompareRound(r, players); ok {
			rows = append(rows, row)
		}
	}
	return rows
}
