package scraper

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pfrederiksen/golf-rounds/internal/logger"
	"github.com/pfrederiksen/golf-rounds/internal/round"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("../../testdata/fixtures/" + name)
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return string(data)
}

func quietLogger() *logger.Logger {
	return logger.New(logger.LevelError, io.Discard)
}

func TestParseRound(t *testing.T) {
	ref := RoundRef{URL: "https://play.golfshot.com/profiles/OYgqr/rounds/abc", Score: "96"}

	r, err := parseRound(strings.NewReader(loadFixture(t, "round.html")), ref)
	if err != nil {
		t.Fatalf("parseRound failed: %v", err)
	}

	if r.URL != ref.URL {
		t.Errorf("URL = %q, want %q", r.URL, ref.URL)
	}
	if r.CourseName != "Bali Hai Golf Club" {
		t.Errorf("CourseName = %q, want %q", r.CourseName, "Bali Hai Golf Club")
	}
	if r.Date != "Oct 24, 2025" {
		t.Errorf("Date = %q, want %q", r.Date, "Oct 24, 2025")
	}
	if r.Location != "Las Vegas" {
		t.Errorf("Location = %q, want %q", r.Location, "Las Vegas")
	}
	if r.Format != "Stroke Play" {
		t.Errorf("Format = %q, want %q", r.Format, "Stroke Play")
	}
	if r.PaceOfPlay != "4:12 Pace of Play" {
		t.Errorf("PaceOfPlay = %q, want %q", r.PaceOfPlay, "4:12 Pace of Play")
	}
	if r.Score != "96" {
		t.Errorf("Score = %q, want 96", r.Score)
	}

	if len(r.Holes) != 18 {
		t.Fatalf("len(Holes) = %d, want 18", len(r.Holes))
	}
	if diff := cmp.Diff(&round.Hole{Hole: 1, Par: "4", Distance: "410", Handicap: "5"}, r.Holes[0]); diff != "" {
		t.Errorf("hole 1 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(&round.Hole{Hole: 10, Par: "4", Distance: "395", Handicap: "6"}, r.Holes[9]); diff != "" {
		t.Errorf("hole 10 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(&round.Hole{Hole: 18, Par: "4", Distance: "440", Handicap: "12"}, r.Holes[17]); diff != "" {
		t.Errorf("hole 18 mismatch (-want +got):\n%s", diff)
	}

	want := []*round.Player{
		round.NewPlayer("Lest", "5", "6", "4", "7", "5", "5", "4", "6", "6", "6", "5", "4", "6", "5", "6", "4", "7", "5"),
		round.NewPlayer("Gary", "5", "5", "3", "6", "5", "4", "4", "6", "5", "5", "5", "3", "", "5", "5", "4", "6", ""),
	}
	if diff := cmp.Diff(want, r.Players); diff != "" {
		t.Errorf("players mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRound_NineHoles(t *testing.T) {
	r, err := parseRound(strings.NewReader(loadFixture(t, "round_nine.html")), RoundRef{})
	if err != nil {
		t.Fatalf("parseRound failed: %v", err)
	}

	if len(r.Holes) != 9 {
		t.Errorf("len(Holes) = %d, want 9", len(r.Holes))
	}
	if r.Format != "Stableford" {
		t.Errorf("Format = %q, want Stableford", r.Format)
	}
	if r.Date != "Oct 5, 2025" {
		t.Errorf("Date = %q, want %q", r.Date, "Oct 5, 2025")
	}

	lest := r.FindPlayer("lest")
	if lest == nil {
		t.Fatal("expected player Lest")
	}
	if len(lest.Scores) != 18 {
		t.Errorf("len(Scores) = %d, want 18", len(lest.Scores))
	}
	if got := len(lest.Played()); got != 9 {
		t.Errorf("played holes = %d, want 9", got)
	}
	if lest.ScoreAt(9) != round.Unplayed {
		t.Errorf("ScoreAt(9) = %q, want unplayed", lest.ScoreAt(9))
	}
}

func TestParseRound_FallsBackToRef(t *testing.T) {
	html := `<html><body><p>No scorecard here</p></body></html>`
	ref := RoundRef{URL: "u", Date: "Sep 1, 2025", Course: "Desert Pines"}

	r, err := parseRound(strings.NewReader(html), ref)
	if err != nil {
		t.Fatalf("parseRound failed: %v", err)
	}

	if r.Date != ref.Date {
		t.Errorf("Date = %q, want %q", r.Date, ref.Date)
	}
	if r.CourseName != ref.Course {
		t.Errorf("CourseName = %q, want %q", r.CourseName, ref.Course)
	}
	if len(r.Players) != 0 || len(r.Holes) != 0 {
		t.Errorf("expected no players or holes, got %d players %d holes", len(r.Players), len(r.Holes))
	}
}

func TestIsPlayerName(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Lest", true},
		{"Gary", true},
		{"Al", false},
		{"Par", false},
		{"Putts", false},
		{"Penalties", false},
		{"Mary Ann", false},
		{"R2D2", false},
		{"", false},
		{"Abcdefghijklmnopqrs", true},
		{"Abcdefghijklmnopqrst", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := isPlayerName(tt.text); got != tt.want {
				t.Errorf("isPlayerName(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

// listPage renders a round list page with n rows and an optional next link
func listPage(page, n int, next bool) string {
	var b strings.Builder
	b.WriteString("<html><body><table><tbody>")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `<tr data-href="/profiles/x/rounds/p%d-r%d"><td>Oct %d, 2025</td><td>Course %d</td><td>%d</td><td>50%%</td><td>20%%</td><td>1.9</td></tr>`,
			page, i, i+1, i, 90+i)
	}
	b.WriteString("</tbody></table>")
	if next {
		fmt.Fprintf(&b, `<a href="?sb=Date&sd=Descending&p=%d">Next</a>`, page+1)
	}
	b.WriteString("</body></html>")
	return b.String()
}

// listServer serves pages[p-1] for ?p=N, 404 past the end
func listServer(t *testing.T, pages []string) (*httptest.Server, *[]int) {
	t.Helper()
	var requested []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != UserAgent {
			t.Errorf("User-Agent = %q, want %q", r.Header.Get("User-Agent"), UserAgent)
		}
		p, _ := strconv.Atoi(r.URL.Query().Get("p"))
		requested = append(requested, p)
		if p < 1 || p > len(pages) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(pages[p-1]))
	}))
	t.Cleanup(server.Close)
	return server, &requested
}

func TestFetchRoundList(t *testing.T) {
	tests := []struct {
		name          string
		pages         []string
		maxPages      int
		wantRounds    int
		wantRequested []int
		wantError     bool
	}{
		{
			name:          "stops when next link missing",
			pages:         []string{listPage(1, 3, true), listPage(2, 2, false), listPage(3, 5, false)},
			maxPages:      20,
			wantRounds:    5,
			wantRequested: []int{1, 2},
		},
		{
			name:          "stops at empty page",
			pages:         []string{listPage(1, 2, true), listPage(2, 0, true)},
			maxPages:      20,
			wantRounds:    2,
			wantRequested: []int{1, 2},
		},
		{
			name:          "stops at max pages",
			pages:         []string{listPage(1, 1, true), listPage(2, 1, true), listPage(3, 1, true)},
			maxPages:      2,
			wantRounds:    2,
			wantRequested: []int{1, 2},
		},
		{
			name:          "later page failure keeps gathered rounds",
			pages:         []string{listPage(1, 4, true)},
			maxPages:      20,
			wantRounds:    4,
			wantRequested: []int{1, 2},
		},
		{
			name:          "first page failure",
			pages:         nil,
			maxPages:      20,
			wantError:     true,
			wantRequested: []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, requested := listServer(t, tt.pages)
			metrics := logger.NewMetrics()
			s := New(server.URL+"/profiles/x/rounds",
				WithMaxPages(tt.maxPages), WithLogger(quietLogger()), WithMetrics(metrics))

			refs, err := s.FetchRoundList()
			if (err != nil) != tt.wantError {
				t.Fatalf("FetchRoundList() error = %v, wantError %v", err, tt.wantError)
			}
			if len(refs) != tt.wantRounds {
				t.Errorf("got %d rounds, want %d", len(refs), tt.wantRounds)
			}
			if diff := cmp.Diff(tt.wantRequested, *requested); diff != "" {
				t.Errorf("requested pages mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFetchRoundList_Ref(t *testing.T) {
	server, _ := listServer(t, []string{listPage(1, 1, false)})
	s := New(server.URL+"/profiles/x/rounds", WithLogger(quietLogger()), WithMetrics(logger.NewMetrics()))

	refs, err := s.FetchRoundList()
	if err != nil {
		t.Fatalf("FetchRoundList() error = %v", err)
	}

	want := []RoundRef{{
		URL:          server.URL + "/profiles/x/rounds/p1-r0",
		Date:         "Oct 1, 2025",
		Course:       "Course 0",
		Score:        "90",
		FairwayPct:   "50%",
		GIRPct:       "20%",
		PuttsPerHole: "1.9",
	}}
	if diff := cmp.Diff(want, refs); diff != "" {
		t.Errorf("refs mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchAll(t *testing.T) {
	roundHTML := loadFixture(t, "round.html")
	list := `<html><body><table><tbody>
		<tr data-href="/rounds/good"><td>Oct 24, 2025</td><td>Bali Hai</td><td>96</td></tr>
		<tr data-href="/rounds/missing"><td>Oct 20, 2025</td><td>Somewhere</td><td>88</td></tr>
		<tr data-href="/rounds/short"><td>Oct 19, 2025</td></tr>
	</tbody></table></body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/profiles/x/rounds":
			_, _ = w.Write([]byte(list))
		case "/rounds/good":
			_, _ = w.Write([]byte(roundHTML))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	metrics := logger.NewMetrics()
	s := New(server.URL+"/profiles/x/rounds", WithLogger(quietLogger()), WithMetrics(metrics))

	rounds, err := s.FetchAll()
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}

	if len(rounds) != 1 {
		t.Fatalf("got %d rounds, want 1", len(rounds))
	}
	if rounds[0].URL != server.URL+"/rounds/good" {
		t.Errorf("URL = %q, want %q", rounds[0].URL, server.URL+"/rounds/good")
	}
	if len(rounds[0].Players) != 2 {
		t.Errorf("got %d players, want 2", len(rounds[0].Players))
	}

	if got := metrics.Counter("scraper.rounds"); got != 1 {
		t.Errorf("scraper.rounds = %d, want 1", got)
	}
	if got := metrics.Counter("scraper.errors"); got != 1 {
		t.Errorf("scraper.errors = %d, want 1", got)
	}
	if got := metrics.Counter("scraper.pages"); got != 1 {
		t.Errorf("scraper.pages = %d, want 1", got)
	}
}

func TestPageURL(t *testing.T) {
	tests := []struct {
		profile string
		page    int
		want    string
	}{
		{"https://play.golfshot.com/profiles/OYgqr/rounds", 1, "https://play.golfshot.com/profiles/OYgqr/rounds?sb=Date&sd=Descending&p=1"},
		{"https://example.com/rounds?x=1", 3, "https://example.com/rounds?x=1&sb=Date&sd=Descending&p=3"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			s := New(tt.profile)
			if got := s.pageURL(tt.page); got != tt.want {
				t.Errorf("pageURL(%d) = %q, want %q", tt.page, got, tt.want)
			}
		})
	}
}
