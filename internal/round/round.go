package round

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// MaxHoles is the number of holes in a full round
const MaxHoles = 18

// Unplayed marks a hole without a recorded score
const Unplayed = ""

// Round represents one played round of golf
type Round struct {
	URL        string    `json:"url"`
	Date       string    `json:"date"`
	CourseName string    `json:"courseName"`
	Location   string    `json:"location,omitempty"`
	Format     string    `json:"format,omitempty"`
	PaceOfPlay string    `json:"paceOfPlay,omitempty"`
	Score      string    `json:"score,omitempty"` // total shown on the rounds list
	Players    []*Player `json:"players"`
	Holes      []*Hole   `json:"holes"`
}

// Hole describes a single hole of the course as played
type Hole struct {
	Hole     int    `json:"hole"`
	Par      string `json:"par"`
	Distance string `json:"distance"`
	Handicap string `json:"handicap"`
}

// Player holds one player's scorecard entries, index = hole number - 1
type Player struct {
	Name   string   `json:"name"`
	Scores []Stroke `json:"scores"`
}

// Stroke is a single scorecard entry. Unplayed holes are empty.
type Stroke string

// UnmarshalJSON accepts strings, numbers and null
func (s *Stroke) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = Unplayed
		return nil
	case len(data) > 0 && data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("decoding stroke: %w", err)
		}
		*s = Stroke(str)
		return nil
	default:
		n, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("decoding stroke %s: %w", data, err)
		}
		*s = Stroke(strconv.FormatFloat(n, 'f', -1, 64))
		return nil
	}
}

// IsPlayed reports whether the entry carries a recorded value
func (s Stroke) IsPlayed() bool {
	return s != Unplayed
}

// Value returns the entry as an integer using LenientAtoi
func (s Stroke) Value() int {
	return LenientAtoi(string(s))
}

// NewPlayer creates a player from raw string entries
func NewPlayer(name string, scores ...string) *Player {
	p := &Player{Name: name, Scores: make([]Stroke, 0, len(scores))}
	for _, s := range scores {
		p.Scores = append(p.Scores, Stroke(s))
	}
	return p
}

// Played returns the entries that are not the unplayed marker, in hole order
func (p *Player) Played() []Stroke {
	played := make([]Stroke, 0, len(p.Scores))
	for _, s := range p.Scores {
		if s.IsPlayed() {
			played = append(played, s)
		}
	}
	return played
}

// ScoreAt returns the entry for a zero-based hole index, or Unplayed when out of range
func (p *Player) ScoreAt(idx int) Stroke {
	if idx < 0 || idx >= len(p.Scores) {
		return Unplayed
	}
	return p.Scores[idx]
}

// FindPlayer returns the first player whose name matches case-insensitively.
// Returns nil when the round does not include the player.
func (r *Round) FindPlayer(name string) *Player {
	for _, p := range r.Players {
		if p != nil && strings.EqualFold(p.Name, name) {
			return p
		}
	}
	return nil
}

// Validate checks the structural invariants of a round: at most 18 entries
// per player, no negative stroke counts and no null player entries.
func (r *Round) Validate() error {
	for i, p := range r.Players {
		if p == nil {
			return fmt.Errorf("player %d is null", i+1)
		}
		if len(p.Scores) > MaxHoles {
			return fmt.Errorf("player %s has %d scores, max %d", p.Name, len(p.Scores), MaxHoles)
		}
		for i, s := range p.Scores {
			if s.IsPlayed() && s.Value() < 0 {
				return fmt.Errorf("player %s hole %d: negative score %q", p.Name, i+1, s)
			}
		}
	}
	if len(r.Holes) > MaxHoles {
		return fmt.Errorf("round has %d holes, max %d", len(r.Holes), MaxHoles)
	}
	return nil
}
