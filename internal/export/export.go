// Package export flattens rounds into one table per player and course and
// writes those tables as CSV files or as sheets of an XLSX workbook.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pfrederiksen/golf-rounds/internal/round"
)

// maxSheetName is the longest sheet name Excel accepts
const maxSheetName = 31

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Sanitize lowercases name and collapses every run of characters outside
// [a-z0-9] into a single "-", trimming dashes at both ends
func Sanitize(name string) string {
	return strings.Trim(nonAlnum.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

// Column is one named cell of a record
type Column struct {
	Name  string
	Value string
}

// Record is one round from one player's point of view, columns in order
type Record []Column

// Get returns the value of the named column, or "" when absent
func (r Record) Get(name string) string {
	for _, c := range r {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// PlayerCourse collects the records of one player at one course
type PlayerCourse struct {
	Key        string
	PlayerName string
	CourseName string
	Records    []Record
}

// GroupByPlayerCourse builds a record for every player of every round and
// groups them by sanitized player and course name, in first-seen order
func GroupByPlayerCourse(rounds []*round.Round) []*PlayerCourse {
	groups := make([]*PlayerCourse, 0)
	byKey := make(map[string]*PlayerCourse)

	for _, r := range rounds {
		for _, p := range r.Players {
			if p == nil {
				continue
			}
			key := Sanitize(p.Name) + "-" + Sanitize(r.CourseName)

			pc, ok := byKey[key]
			if !ok {
				pc = &PlayerCourse{Key: key, PlayerName: p.Name, CourseName: r.CourseName}
				byKey[key] = pc
				groups = append(groups, pc)
			}
			pc.Records = append(pc.Records, BuildRecord(r, p))
		}
	}

	return groups
}

// BuildRecord flattens a round for one player. Hole columns follow the
// round's hole list; the player's entry is looked up by position in that list.
func BuildRecord(r *round.Round, p *round.Player) Record {
	rec := Record{
		{"date", r.Date},
		{"location", r.Location},
		{"format", r.Format},
		{"paceOfPlay", r.PaceOfPlay},
	}

	for idx, h := range r.Holes {
		if h == nil {
			continue
		}
		prefix := fmt.Sprintf("hole%d_", h.Hole)
		rec = append(rec,
			Column{prefix + "par", h.Par},
			Column{prefix + "distance", h.Distance},
			Column{prefix + "handicap", h.Handicap},
		)
		if s := p.ScoreAt(idx); s.IsPlayed() {
			rec = append(rec, Column{prefix + "score", string(s)})
		}
	}

	total := 0
	for _, s := range p.Scores {
		if s == "—" || !round.IsNumeric(string(s)) {
			continue
		}
		total += s.Value()
	}
	totalText := ""
	if total != 0 {
		totalText = strconv.Itoa(total)
	}
	rec = append(rec, Column{"total_score", totalText})

	return rec
}

// Header returns the union of column names across records, first-seen order
func Header(records []Record) []string {
	var header []string
	seen := make(map[string]bool)
	for _, rec := range records {
		for _, c := range rec {
			if !seen[c.Name] {
				seen[c.Name] = true
				header = append(header, c.Name)
			}
		}
	}
	return header
}

// rows lays the records out under header, one slice per record
func rows(header []string, records []Record) [][]string {
	out := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, len(header))
		for i, name := range header {
			row[i] = rec.Get(name)
		}
		out = append(out, row)
	}
	return out
}

// WriteCSV writes the group's records with a header row
func WriteCSV(w io.Writer, pc *PlayerCourse) error {
	header := Header(pc.Records)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := cw.WriteAll(rows(header, pc.Records)); err != nil {
		return fmt.Errorf("writing records: %w", err)
	}
	return nil
}

// WriteCSVFiles writes <key>.csv into dir for every group with records and
// returns the written paths
func WriteCSVFiles(dir string, groups []*PlayerCourse) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	var written []string
	for _, pc := range groups {
		if len(pc.Records) == 0 {
			continue
		}

		path := filepath.Join(dir, pc.Key+".csv")
		f, err := os.Create(path)
		if err != nil {
			return written, fmt.Errorf("creating %s: %w", path, err)
		}
		if err := WriteCSV(f, pc); err != nil {
			f.Close()
			return written, fmt.Errorf("writing %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return written, fmt.Errorf("closing %s: %w", path, err)
		}
		written = append(written, path)
	}

	return written, nil
}

// WriteWorkbook writes all groups into one XLSX workbook, one sheet each
func WriteWorkbook(w io.Writer, groups []*PlayerCourse) error {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(f.GetActiveSheetIndex())
	used := make(map[string]bool)
	first := true

	for _, pc := range groups {
		if len(pc.Records) == 0 {
			continue
		}

		name := SheetName(pc.Key, used)
		if first {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return fmt.Errorf("naming sheet %q: %w", name, err)
			}
			first = false
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %q: %w", name, err)
		}

		header := Header(pc.Records)
		table := append([][]string{header}, rows(header, pc.Records)...)
		for idx, row := range table {
			axis, err := excelize.CoordinatesToCellName(1, idx+1)
			if err != nil {
				return fmt.Errorf("locating row %d: %w", idx+1, err)
			}
			cells := make([]interface{}, len(row))
			for i, val := range row {
				cells[i] = val
			}
			if err := f.SetSheetRow(name, axis, &cells); err != nil {
				return fmt.Errorf("writing sheet %q: %w", name, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// SheetName truncates key to Excel's limit and appends a numeric suffix
// until the name is unused. The chosen name is recorded in used.
func SheetName(key string, used map[string]bool) string {
	if key == "" {
		key = "sheet"
	}
	name := truncate(key, maxSheetName)
	for n := 2; used[strings.ToLower(name)]; n++ {
		suffix := "-" + strconv.Itoa(n)
		name = truncate(key, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
