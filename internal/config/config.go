// Package config loads pipeline configuration by layering defaults, an
// optional YAML file, and PICKARB_-prefixed environment variables.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds everything the entry points need. Season values are
// season_end years.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DataDir, TableDir, and FigDir receive the intermediate tables,
	// export tables, and chart images.
	DataDir  string `koanf:"data_dir"`
	TableDir string `koanf:"table_dir"`
	FigDir   string `koanf:"fig_dir"`

	// StartSeason/EndSeason bound the WAR and salary tables.
	StartSeason int `koanf:"start_season"`
	EndSeason   int `koanf:"end_season"`

	// WarStartSeason bounds the WAR table separately; rookie windows for
	// the earliest draft class begin one season after the draft.
	WarStartSeason int `koanf:"war_start_season"`

	// DraftStart/DraftEnd bound the draft classes fetched.
	DraftStart int `koanf:"draft_start"`
	DraftEnd   int `koanf:"draft_end"`

	// RookieYears is the rookie-contract window length.
	RookieYears int `koanf:"rookie_years"`

	// Workers bounds the RealGM per-team fan-out.
	Workers int `koanf:"workers"`

	// UserAgent overrides the scraping User-Agent when non-empty.
	UserAgent string `koanf:"user_agent"`

	// WarSource selects "scrape" (Basketball-Reference win shares) or
	// "csv" (a local RAPTOR-style export at WarCSVPath).
	WarSource  string `koanf:"war_source"`
	WarCSVPath string `koanf:"war_csv_path"`

	// FetchCapHistory and FetchTransactions toggle the auxiliary tables.
	FetchCapHistory   bool `koanf:"fetch_cap_history"`
	FetchTransactions bool `koanf:"fetch_transactions"`
}

// New returns the defaults matching the published study.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		DataDir:           "data",
		TableDir:          "tables",
		FigDir:            "figs",
		StartSeason:       2016,
		EndSeason:         2024,
		WarStartSeason:    2017,
		DraftStart:        2016,
		DraftEnd:          2020,
		RookieYears:       4,
		Workers:           8,
		WarSource:         "csv",
		WarCSVPath:        "data/modern_RAPTOR_by_player.csv",
		FetchCapHistory:   true,
		FetchTransactions: false,
	}
}

// Load builds a Config. Precedence (low -> high):
//  1. defaults (New)
//  2. YAML file named by PICKARB_CONFIG, if set
//  3. environment (PICKARB_DATA_DIR, PICKARB_START_SEASON, ...)
func Load() (*Config, error) {
	base := New()
	k := koanf.New(".")

	if path := os.Getenv("PICKARB_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	envProvider := env.Provider("PICKARB_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "pickarb_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DataDir == "" {
		return errors.New("data_dir must not be empty")
	}
	if c.StartSeason > c.EndSeason {
		return errors.New("start_season must not exceed end_season")
	}
	if c.DraftStart > c.DraftEnd {
		return errors.New("draft_start must not exceed draft_end")
	}
	if c.RookieYears <= 0 {
		return errors.New("rookie_years must be positive")
	}
	switch c.WarSource {
	case "scrape", "csv":
	default:
		return errors.New(`war_source must be "scrape" or "csv"`)
	}
	return nil
}
