package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/pfrederiksen/golf-rounds/internal/analysis"
	"github.com/pfrederiksen/golf-rounds/internal/round"
)

const (
	RoundsFile = "rounds-data.json"
	GraphFile  = "score-graph-data.json"
)

// Storage handles persistence of rounds and graph data
type Storage struct {
	dataDir string
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// Dir returns the expanded data directory
func (s *Storage) Dir() string {
	return s.dataDir
}

// Path returns the path of a file inside the data directory
func (s *Storage) Path(name string) string {
	return filepath.Join(s.dataDir, name)
}

// LoadRounds loads all stored rounds. A missing file yields no rounds.
func (s *Storage) LoadRounds() ([]*round.Round, error) {
	return LoadRoundsFile(s.Path(RoundsFile))
}

// LoadRoundsFile reads a JSON array of rounds from any file, such as one
// exported from a browser session. A missing file yields no rounds.
func LoadRoundsFile(path string) ([]*round.Round, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*round.Round{}, nil
		}
		return nil, fmt.Errorf("reading rounds: %w", err)
	}

	var rounds []*round.Round
	if err := json.Unmarshal(data, &rounds); err != nil {
		return nil, fmt.Errorf("parsing rounds: %w", err)
	}

	// Drop null entries so callers never see a nil round
	kept := rounds[:0]
	for _, r := range rounds {
		if r != nil {
			kept = append(kept, r)
		}
	}

	return kept, nil
}

// SaveRounds replaces the stored rounds
func (s *Storage) SaveRounds(rounds []*round.Round) error {
	if rounds == nil {
		rounds = []*round.Round{}
	}
	return s.writeJSON(RoundsFile, rounds)
}

// AppendRounds merges incoming rounds into the stored ones, skipping URLs
// already present, and saves the result
func (s *Storage) AppendRounds(incoming []*round.Round) (added, skipped int, err error) {
	existing, err := s.LoadRounds()
	if err != nil {
		return 0, 0, err
	}

	merged, added, skipped := round.Merge(existing, incoming)
	if added == 0 {
		return 0, skipped, nil
	}

	if err := s.SaveRounds(merged); err != nil {
		return 0, 0, err
	}
	return added, skipped, nil
}

// SaveGraphData writes the chart series of the last analysis
func (s *Storage) SaveGraphData(graph *analysis.GraphData) error {
	return s.writeJSON(GraphFile, graph)
}

// LoadGraphData reads the last saved chart series. It returns nil when none
// has been saved.
func (s *Storage) LoadGraphData() (*analysis.GraphData, error) {
	data, err := os.ReadFile(s.Path(GraphFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading graph data: %w", err)
	}

	var graph analysis.GraphData
	if err := json.Unmarshal(data, &graph); err != nil {
		return nil, fmt.Errorf("parsing graph data: %w", err)
	}
	return &graph, nil
}

func (s *Storage) writeJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}

	if err := os.WriteFile(s.Path(name), data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}

	return nil
}
