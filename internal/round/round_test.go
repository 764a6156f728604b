package round

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

func TestLenientAtoi(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"5", 5},
		{"12", 12},
		{" 7", 7},
		{"7x", 7},
		{"+4", 4},
		{"-3", -3},
		{"abc", 0},
		{"", 0},
		{"—", 0},
		{"-", 0},
		{"4.5", 4},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := LenientAtoi(tt.input); got != tt.want {
				t.Errorf("LenientAtoi(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"5", true},
		{" 6", true},
		{"-2", true},
		{"x5", false},
		{"—", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsNumeric(tt.input); got != tt.want {
				t.Errorf("IsNumeric(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestStrokeUnmarshalJSON(t *testing.T) {
	var p Player
	data := `{"name":"lest","scores":["6",5,null,"",""]}`
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	want := []Stroke{"6", "5", Unplayed, Unplayed, Unplayed}
	if diff := cmp.Diff(want, p.Scores); diff != "" {
		t.Errorf("Scores mismatch (-want +got):\n%s", diff)
	}

	if got := len(p.Played()); got != 2 {
		t.Errorf("len(Played()) = %d, want 2", got)
	}
}

func TestFindPlayer(t *testing.T) {
	r := &Round{
		Players: []*Player{
			NewPlayer("lest", "5"),
			NewPlayer("Gary", "4"),
			NewPlayer("gary", "9"),
		},
	}

	tests := []struct {
		name     string
		lookup   string
		wantNil  bool
		wantName string
	}{
		{"exact match", "lest", false, "lest"},
		{"case-insensitive", "GARY", false, "Gary"},
		{"first match wins", "gary", false, "Gary"},
		{"absent player", "tom", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := r.FindPlayer(tt.lookup)
			if tt.wantNil {
				if p != nil {
					t.Errorf("FindPlayer(%q) = %v, want nil", tt.lookup, p)
				}
				return
			}
			if p == nil {
				t.Fatalf("FindPlayer(%q) = nil", tt.lookup)
			}
			if p.Name != tt.wantName {
				t.Errorf("FindPlayer(%q).Name = %q, want %q", tt.lookup, p.Name, tt.wantName)
			}
		})
	}
}

func TestScoreAt(t *testing.T) {
	p := NewPlayer("lest", "5", "", "6")

	if got := p.ScoreAt(0); got != "5" {
		t.Errorf("ScoreAt(0) = %q, want 5", got)
	}
	if got := p.ScoreAt(1); got.IsPlayed() {
		t.Errorf("ScoreAt(1) = %q, want unplayed", got)
	}
	if got := p.ScoreAt(17); got.IsPlayed() {
		t.Errorf("ScoreAt(17) = %q, want unplayed", got)
	}
}

func TestValidate(t *testing.T) {
	ok := &Round{Players: []*Player{NewPlayer("lest", "5", "", "4")}}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}

	scores := make([]string, 19)
	tooMany := &Round{Players: []*Player{NewPlayer("lest", scores...)}}
	if err := tooMany.Validate(); err == nil {
		t.Error("Validate() with 19 scores should fail")
	}

	negative := &Round{Players: []*Player{NewPlayer("gary", "-2")}}
	if err := negative.Validate(); err == nil {
		t.Error("Validate() with negative score should fail")
	}

	nullPlayer := &Round{Players: []*Player{nil, NewPlayer("lest", "5")}}
	if err := nullPlayer.Validate(); err == nil {
		t.Error("Validate() with null player should fail")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		wantY   int
		wantM   int
		wantD   int
		wantErr bool
	}{
		{"Oct 03, 2025", 2025, 10, 3, false},
		{"Oct 3, 2025", 2025, 10, 3, false},
		{"Jan 19 2025", 2025, 1, 19, false},
		{"2025-09-21", 2025, 9, 21, false},
		{"09/07/2025", 2025, 9, 7, false},
		{"sometime last year", 0, 0, 0, true},
		{"", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseDate(tt.input)
			if tt.wantErr {
				if !got.IsZero() {
					t.Errorf("ParseDate(%q) = %v, want zero time", tt.input, got)
				}
				return
			}
			if got.Year() != tt.wantY || int(got.Month()) != tt.wantM || got.Day() != tt.wantD {
				t.Errorf("ParseDate(%q) = %v, want %d-%02d-%02d", tt.input, got, tt.wantY, tt.wantM, tt.wantD)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	existing := []*Round{
		{URL: "https://example.com/r/1", Date: "Oct 03, 2025"},
		{URL: "https://example.com/r/2", Date: "Oct 05, 2025"},
	}
	incoming := []*Round{
		{URL: "https://example.com/r/2", Date: "Oct 05, 2025"},
		{URL: "https://example.com/r/3", Date: "Oct 12, 2025"},
		{URL: "https://example.com/r/3", Date: "Oct 12, 2025"},
		{URL: "", Date: "Oct 15, 2025"},
	}

	merged, added, skipped := Merge(existing, incoming)

	if added != 2 {
		t.Errorf("added = %d, want 2", added)
	}
	if skipped != 2 {
		t.Errorf("skipped = %d, want 2", skipped)
	}

	var dates []string
	for _, r := range merged {
		dates = append(dates, r.Date)
	}
	want := []string{"Oct 03, 2025", "Oct 05, 2025", "Oct 12, 2025", "Oct 15, 2025"}
	if diff := cmp.Diff(want, dates); diff != "" {
		t.Errorf("merged order mismatch (-want +got):\n%s", diff)
	}
}
