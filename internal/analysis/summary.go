package analysis

import (
	"github.com/pfrederiksen/golf-rounds/internal/round"
)

// Summary holds aggregate counts over compared rounds
type Summary struct {
	Total int `json:"total"`
	WinsA int `json:"wins_a"`
	WinsB int `json:"wins_b"`
	Ties  int `json:"ties"`
}

// GraphData is the columnar export of compared rounds for charting.
// All arrays are index-aligned with the comparison rows.
type GraphData struct {
	PlayerA          string   `json:"playerA"`
	PlayerB          string   `json:"playerB"`
	Dates            []string `json:"dates"`
	NormalizedScoreA []int    `json:"normalizedScoreA"`
	NormalizedScoreB []int    `json:"normalizedScoreB"`
	RawScoreA        []int    `json:"rawScoreA"`
	RawScoreB        []int    `json:"rawScoreB"`
	HolesPlayedA     []int    `json:"holesPlayedA"`
	HolesPlayedB     []int    `json:"holesPlayedB"`
}

// Len returns the number of compared rounds in the graph data
func (g *GraphData) Len() int {
	return len(g.Dates)
}

// Report is the complete result of analyzing a set of rounds
type Report struct {
	Players Players         `json:"players"`
	Rows    []ComparisonRow `json:"rows"`
	Summary Summary         `json:"summary"`
	Graph   *GraphData      `json:"graph"`
}

// Summarize counts wins for each player and ties
func Summarize(rows []ComparisonRow) Summary {
	s := Summary{Total: len(rows)}
	for _, row := range rows {
		switch row.Winner {
		case WinnerA:
			s.WinsA++
		case WinnerB:
			s.WinsB++
		default:
			s.Ties++
		}
	}
	return s
}

// BuildGraphData converts comparison rows to parallel arrays, keeping row order
func BuildGraphData(rows []ComparisonRow, players Players) *GraphData {
	g := &GraphData{
		PlayerA:          players.A.Display,
		PlayerB:          players.B.Display,
		Dates:            make([]string, 0, len(rows)),
		NormalizedScoreA: make([]int, 0, len(rows)),
		NormalizedScoreB: make([]int, 0, len(rows)),
		RawScoreA:        make([]int, 0, len(rows)),
		RawScoreB:        make([]int, 0, len(rows)),
		HolesPlayedA:     make([]int, 0, len(rows)),
		HolesPlayedB:     make([]int, 0, len(rows)),
	}

	for _, row := range rows {
		g.Dates = append(g.Dates, row.Date)
		g.NormalizedScoreA = append(g.NormalizedScoreA, row.A.NormalizedScore)
		g.NormalizedScoreB = append(g.NormalizedScoreB, row.B.NormalizedScore)
		g.RawScoreA = append(g.RawScoreA, row.A.RawScore)
		g.RawScoreB = append(g.RawScoreB, row.B.RawScore)
		g.HolesPlayedA = append(g.HolesPlayedA, row.A.HolesPlayed)
		g.HolesPlayedB = append(g.HolesPlayedB, row.B.HolesPlayed)
	}

	return g
}

// Analyze compares the tracked players over all rounds and summarizes the result
func Analyze(rounds []*round.Round, players Players) *Report {
	rows := Compare(rounds, players)
	return &Report{
		Players: players,
		Rows:    rows,
		Summary: Summarize(rows),
		Graph:   BuildGraphData(rows, players),
	}
}
