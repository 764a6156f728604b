package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
)

func TestWriteOutput(t *testing.T) {
	result := &ImportResult{
		CheckedAt: time.Date(2025, time.October, 24, 12, 0, 0, 0, time.UTC),
		Source:    "https://play.golfshot.com/profiles/OYgqr/rounds",
		Fetched:   5,
		Added:     2,
		Skipped:   3,
		File:      "golf-data/rounds-data.json",
	}

	tests := []struct {
		name   string
		result *ImportResult
		format OutputFormat
		want   []string
	}{
		{
			name:   "text with new rounds",
			result: result,
			format: FormatText,
			want: []string{
				"Fetched 5 rounds from https://play.golfshot.com/profiles/OYgqr/rounds",
				"Added 2 new rounds",
				"Skipped 3 rounds already stored",
				"Rounds file: golf-data/rounds-data.json",
			},
		},
		{
			name:   "text without new rounds",
			result: &ImportResult{Source: "x.json", Fetched: 1, Skipped: 1, Invalid: 2, File: "f"},
			format: FormatText,
			want:   []string{"No new rounds found.", "Rejected 2 invalid rounds"},
		},
		{
			name:   "json",
			result: result,
			format: FormatJSON,
			want:   []string{`"added": 2`, `"skipped": 3`, `"checked_at": "2025-10-24T12:00:00Z"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteOutput(&buf, tt.result, tt.format); err != nil {
				t.Fatalf("WriteOutput() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestWriteOutput_JSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, &ImportResult{Fetched: 4, Added: 4}, FormatJSON); err != nil {
		t.Fatalf("WriteOutput() error = %v", err)
	}

	var got ImportResult
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if got.Added != 4 || got.Fetched != 4 {
		t.Errorf("decoded %+v, want fetched 4 added 4", got)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
