// Package scraper fetches round history from a Golfshot profile.
//
// A crawl walks the profile's paginated round list (newest first), then
// fetches each round page and parses its scorecard table into a
// round.Round: course, date, location, format, pace of play, per-hole
// par/distance/handicap, and every player's per-hole entries.
package scraper

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/golf-rounds/internal/logger"
	"github.com/pfrederiksen/golf-rounds/internal/round"
)

const (
	UserAgent       = "golf-rounds-cli/1.0 (github.com/pfrederiksen/golf-rounds)"
	Timeout         = 30 * time.Second
	DefaultMaxPages = 20
)

var (
	dateLocationPattern = regexp.MustCompile(`(\w{3}\s+\d{1,2},\s+\d{4}),\s+([A-Za-z\s]+)`)
	formatPacePattern   = regexp.MustCompile(`(Stableford|Stroke Play),\s+([\d:]+\s+Pace of Play)`)
	playerNamePattern   = regexp.MustCompile(`^[a-zA-Z]+$`)
)

// statLabels are first-column labels of scorecard rows that are not players
var statLabels = map[string]bool{
	"Distance":  true,
	"Handicap":  true,
	"Par":       true,
	"Fairways":  true,
	"GIR":       true,
	"Putts":     true,
	"Sand":      true,
	"Penalties": true,
	"Tee":       true,
}

// RoundRef is one row of the profile's round list
type RoundRef struct {
	URL          string `json:"url"`
	Date         string `json:"date"`
	Course       string `json:"course"`
	Score        string `json:"score"`
	FairwayPct   string `json:"fairwayPct,omitempty"`
	GIRPct       string `json:"girPct,omitempty"`
	PuttsPerHole string `json:"puttsPerHole,omitempty"`
}

// Scraper handles fetching and parsing Golfshot round pages
type Scraper struct {
	client     *http.Client
	profileURL string
	origin     string
	maxPages   int
	log        *logger.Logger
	metrics    *logger.Metrics
}

// Option configures a Scraper
type Option func(*Scraper)

// WithMaxPages limits how many list pages a crawl visits
func WithMaxPages(n int) Option {
	return func(s *Scraper) {
		if n > 0 {
			s.maxPages = n
		}
	}
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(s *Scraper) {
		s.client = c
	}
}

// WithLogger replaces the package default logger
func WithLogger(l *logger.Logger) Option {
	return func(s *Scraper) {
		s.log = l
	}
}

// WithMetrics records crawl metrics somewhere other than the default registry
func WithMetrics(m *logger.Metrics) Option {
	return func(s *Scraper) {
		s.metrics = m
	}
}

// New creates a new Scraper for the given profile rounds URL
func New(profileURL string, opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		profileURL: profileURL,
		origin:     siteOrigin(profileURL),
		maxPages:   DefaultMaxPages,
		log:        logger.Default(),
		metrics:    logger.DefaultMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// siteOrigin returns scheme://host of rawURL, or "" if it cannot be parsed
func siteOrigin(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// pageURL builds the list URL for a 1-based page number, newest rounds first
func (s *Scraper) pageURL(page int) string {
	sep := "?"
	if strings.Contains(s.profileURL, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%ssb=Date&sd=Descending&p=%d", s.profileURL, sep, page)
}

// get fetches a page and returns its body. The caller closes it.
func (s *Scraper) get(pageURL string) (io.ReadCloser, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordTiming("scraper.fetch", time.Since(start))
	}()

	req, err := http.NewRequest("GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}

// FetchRoundList walks the paginated round list. It stops at the first page
// without rows, when no link to the next page exists, or after the page
// limit. A failure on a later page ends the crawl with the rounds gathered
// so far; only a failure on the first page is returned as an error.
func (s *Scraper) FetchRoundList() ([]RoundRef, error) {
	var refs []RoundRef

	for page := 1; page <= s.maxPages; page++ {
		pageURL := s.pageURL(page)
		s.log.Debug("Fetching round list page", logger.Fields{"page": page, "url": pageURL})

		body, err := s.get(pageURL)
		if err != nil {
			s.metrics.IncrCounter("scraper.errors")
			if page == 1 {
				return nil, fmt.Errorf("fetching round list: %w", err)
			}
			s.log.Warn("Round list page failed, keeping rounds gathered so far", logger.Fields{"page": page}, err)
			break
		}

		pageRefs, hasNext, err := s.parseRoundList(body, page)
		body.Close()
		if err != nil {
			s.metrics.IncrCounter("scraper.errors")
			if page == 1 {
				return nil, err
			}
			s.log.Warn("Round list page unparseable, keeping rounds gathered so far", logger.Fields{"page": page}, err)
			break
		}
		s.metrics.IncrCounter("scraper.pages")

		if len(pageRefs) == 0 {
			break
		}
		refs = append(refs, pageRefs...)

		if !hasNext {
			break
		}
	}

	s.log.Info("Collected round list", logger.Fields{"rounds": len(refs)})
	return refs, nil
}

// parseRoundList extracts round references from one list page and reports
// whether the page links to the following one
func (s *Scraper) parseRoundList(r io.Reader, page int) ([]RoundRef, bool, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, false, fmt.Errorf("parsing HTML: %w", err)
	}

	refs := make([]RoundRef, 0)
	doc.Find("tbody tr[data-href]").Each(func(i int, row *goquery.Selection) {
		href, _ := row.Attr("data-href")
		cells := row.Find("td")
		if href == "" || cells.Length() < 3 {
			return
		}

		cell := func(idx int) string {
			return strings.TrimSpace(cells.Eq(idx).Text())
		}

		refs = append(refs, RoundRef{
			URL:          s.absoluteURL(href),
			Date:         cell(0),
			Course:       cell(1),
			Score:        cell(2),
			FairwayPct:   cell(3),
			GIRPct:       cell(4),
			PuttsPerHole: cell(5),
		})
	})

	hasNext := doc.Find(fmt.Sprintf(`a[href*="p=%d"]`, page+1)).Length() > 0
	return refs, hasNext, nil
}

func (s *Scraper) absoluteURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return s.origin + href
}

// FetchRound fetches and parses a single round page
func (s *Scraper) FetchRound(ref RoundRef) (*round.Round, error) {
	body, err := s.get(ref.URL)
	if err != nil {
		return nil, fmt.Errorf("fetching round %s: %w", ref.URL, err)
	}
	defer body.Close()

	r, err := parseRound(body, ref)
	if err != nil {
		return nil, fmt.Errorf("parsing round %s: %w", ref.URL, err)
	}
	return r, nil
}

// FetchAll crawls the round list, then every round page. Rounds that fail to
// load are logged and skipped.
func (s *Scraper) FetchAll() ([]*round.Round, error) {
	refs, err := s.FetchRoundList()
	if err != nil {
		return nil, err
	}

	rounds := make([]*round.Round, 0, len(refs))
	for i, ref := range refs {
		s.log.Debug("Fetching round", logger.Fields{"index": i + 1, "total": len(refs), "url": ref.URL})

		r, err := s.FetchRound(ref)
		if err != nil {
			s.metrics.IncrCounter("scraper.errors")
			s.log.Warn("Skipping round", logger.Fields{"url": ref.URL}, err)
			continue
		}
		s.metrics.IncrCounter("scraper.rounds")
		rounds = append(rounds, r)
	}

	return rounds, nil
}

// parseRound extracts the scorecard from a round page. Fields missing from
// the page fall back to the list reference.
func parseRound(r io.Reader, ref RoundRef) (*round.Round, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	rd := &round.Round{
		URL:     ref.URL,
		Score:   ref.Score,
		Players: make([]*round.Player, 0),
		Holes:   make([]*round.Hole, 0),
	}

	if link := doc.Find(`a[href*="courses"]`).First(); link.Length() > 0 {
		rd.CourseName = strings.TrimSpace(strings.Split(strings.TrimSpace(link.Text()), " - ")[0])
	}

	bodyText := doc.Find("body").Text()
	if m := dateLocationPattern.FindStringSubmatch(bodyText); m != nil {
		rd.Date = m[1]
		rd.Location = strings.TrimSpace(strings.Split(m[2], "\n")[0])
	}
	if m := formatPacePattern.FindStringSubmatch(bodyText); m != nil {
		rd.Format = m[1]
		rd.PaceOfPlay = m[2]
	}

	if rd.Date == "" {
		rd.Date = ref.Date
	}
	if rd.CourseName == "" {
		rd.CourseName = ref.Course
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return rd, nil
	}
	rows := table.Find("tbody tr")

	distance := labelRow(rows, "distance")
	handicap := labelRow(rows, "handicap")
	par := labelRow(rows, "par")

	// Front nine at cells 0-8, "Out" total at 9, back nine at 10-18.
	for i := 0; i < 19 && i < len(par); i++ {
		if i == 9 || par[i] == "" || par[i] == "—" {
			continue
		}
		hole := i + 1
		if i > 9 {
			hole = i
		}
		rd.Holes = append(rd.Holes, &round.Hole{
			Hole:     hole,
			Par:      par[i],
			Distance: at(distance, i),
			Handicap: at(handicap, i),
		})
	}

	rows.Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() == 0 {
			return
		}
		name := strings.TrimSpace(cells.First().Text())
		if !isPlayerName(name) {
			return
		}

		values := cellTexts(cells.Slice(1, cells.Length()))
		scores := make([]string, 0, round.MaxHoles)
		for i := 0; i < 19 && i < len(values); i++ {
			if i == 9 {
				continue
			}
			v := values[i]
			if v == "—" || v == "-" {
				v = round.Unplayed
			}
			scores = append(scores, v)
		}
		rd.Players = append(rd.Players, round.NewPlayer(name, scores...))
	})

	return rd, nil
}

// labelRow returns the trimmed cell values (label excluded) of the first row
// whose first cell equals label, ignoring case
func labelRow(rows *goquery.Selection, label string) []string {
	var values []string
	rows.EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() == 0 {
			return true
		}
		if !strings.EqualFold(strings.TrimSpace(cells.First().Text()), label) {
			return true
		}
		values = cellTexts(cells.Slice(1, cells.Length()))
		return false
	})
	return values
}

func cellTexts(cells *goquery.Selection) []string {
	return cells.Map(func(_ int, c *goquery.Selection) string {
		return strings.TrimSpace(c.Text())
	})
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

func isPlayerName(text string) bool {
	return playerNamePattern.MatchString(text) &&
		len(text) > 2 && len(text) < 20 &&
		!statLabels[text]
}
