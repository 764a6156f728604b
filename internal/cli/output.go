package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// parseFormat validates a --format value
func parseFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", s)
	}
	return format, nil
}

// ImportResult reports the outcome of a scrape or merge
type ImportResult struct {
	CheckedAt time.Time `json:"checked_at"`
	Source    string    `json:"source"`
	Fetched   int       `json:"fetched"`
	Added     int       `json:"added"`
	Skipped   int       `json:"skipped"`
	Invalid   int       `json:"invalid,omitempty"`
	File      string    `json:"file"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *ImportResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *ImportResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *ImportResult) error {
	fmt.Fprintf(w, "Fetched %d rounds from %s\n", result.Fetched, result.Source)
	if result.Invalid > 0 {
		fmt.Fprintf(w, "Rejected %d invalid rounds\n", result.Invalid)
	}

	if result.Added == 0 {
		fmt.Fprintln(w, "No new rounds found.")
	} else {
		fmt.Fprintf(w, "Added %d new rounds\n", result.Added)
	}
	if result.Skipped > 0 {
		fmt.Fprintf(w, "Skipped %d rounds already stored\n", result.Skipped)
	}

	fmt.Fprintf(w, "Rounds file: %s\n", result.File)
	return nil
}
