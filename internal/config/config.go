// Package config loads golf-rounds settings from a YAML file, a .env file and
// the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/golf-rounds/internal/analysis"
)

const (
	DefaultFile       = "golf-rounds.yaml"
	DefaultProfileURL = "https://play.golfshot.com/profiles/OYgqr/rounds"
	DefaultDataDir    = "./golf-data"
	DefaultMaxPages   = 20
	DefaultLogLevel   = "info"
)

// Config holds the settings shared by all commands
type Config struct {
	ProfileURL string           `yaml:"profile_url"`
	DataDir    string           `yaml:"data_dir"`
	MaxPages   int              `yaml:"max_pages"`
	LogLevel   string           `yaml:"log_level"`
	Players    analysis.Players `yaml:"players"`
}

// Default returns the built-in configuration. Player display names and labels
// are left empty and derived from the names by Load.
func Default() *Config {
	return &Config{
		ProfileURL: DefaultProfileURL,
		DataDir:    DefaultDataDir,
		MaxPages:   DefaultMaxPages,
		LogLevel:   DefaultLogLevel,
		Players: analysis.Players{
			A: analysis.Tracked{Name: "lest"},
			B: analysis.Tracked{Name: "gary"},
		},
	}
}

// Load reads the YAML file at filename on top of the defaults, then applies
// environment overrides. A missing file is not an error. Variables from a
// .env file in the working directory are loaded first without replacing
// variables already set.
func Load(filename string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Default()

	if filename != "" {
		data, err := os.ReadFile(filename)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		case errors.Is(err, fs.ErrNotExist):
			// defaults plus environment
		default:
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	applyEnv(cfg)
	cfg.fillPlayerDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GOLF_PROFILE_URL"); v != "" {
		cfg.ProfileURL = v
	}
	if v := os.Getenv("GOLF_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("GOLF_MAX_PAGES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxPages = n
		}
	}
	if v := os.Getenv("GOLF_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("GOLF_PLAYER_A"); v != "" {
		cfg.Players.A = analysis.Tracked{Name: v}
	}
	if v := os.Getenv("GOLF_PLAYER_B"); v != "" {
		cfg.Players.B = analysis.Tracked{Name: v}
	}
}

// fillPlayerDefaults derives display names and labels from player names:
// "lest" displays as "Lest" with label "L".
func (c *Config) fillPlayerDefaults() {
	for _, t := range []*analysis.Tracked{&c.Players.A, &c.Players.B} {
		t.Name = strings.TrimSpace(t.Name)
		if t.Name == "" {
			continue
		}
		first, size := utf8.DecodeRuneInString(t.Name)
		initial := string(unicode.ToUpper(first))
		if t.Display == "" {
			t.Display = initial + t.Name[size:]
		}
		if t.Label == "" {
			t.Label = initial
		}
	}
}

// Validate checks that the configuration can drive a run
func (c *Config) Validate() error {
	if c.Players.A.Name == "" || c.Players.B.Name == "" {
		return fmt.Errorf("two tracked players are required (players.a.name, players.b.name)")
	}
	if strings.EqualFold(c.Players.A.Name, c.Players.B.Name) {
		return fmt.Errorf("tracked players must differ, both are %q", c.Players.A.Name)
	}
	if c.MaxPages < 1 {
		return fmt.Errorf("max_pages must be at least 1, got %d", c.MaxPages)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	return nil
}
