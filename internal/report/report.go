// Package report renders terminal summaries and the end-of-run build report.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/hooplytics/pickarb/pkg/arbitrage"
)

// BuildSummary is the end-of-run report for a dataset build. One file per
// run, tagged so reruns are distinguishable.
type BuildSummary struct {
	RunID                string `json:"run_id"`
	WarRows              int    `json:"war_rows"`
	SalaryRows           int    `json:"salary_rows"`
	DraftRows            int    `json:"draft_rows"`
	MarketRows           int    `json:"market_rows"`
	PickRows             int    `json:"pick_rows"`
	CapRows              int    `json:"cap_rows"`
	SigningRows          int    `json:"signing_rows"`
	UnmatchedPicks       int    `json:"unmatched_picks"`
	UniqueCanonicalNames int    `json:"unique_canonical_names"`
}

// NewBuildSummary stamps a fresh run id.
func NewBuildSummary() *BuildSummary {
	return &BuildSummary{RunID: uuid.NewString()}
}

// Write persists the summary as indented JSON and echoes it to stdout.
func (s *BuildSummary) Write(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding build summary: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Println(string(data))
	return nil
}

// DisplayBucketTable prints a bucket summary to the terminal, one row per
// bucket with band context and zone.
func DisplayBucketTable(title string, table []arbitrage.BucketSummary) {
	fmt.Printf("\n=========== %s ===========\n", strings.ToUpper(title))
	fmt.Printf("%-6s | %-10s | %-10s | %-10s | %-8s | %-7s | %-9s\n",
		"Bucket", "$/WAR med", "q25", "q75", "WAR med", "Zone", "Surplus")
	fmt.Printf("%-6s | %-10s | %-10s | %-10s | %-8s | %-7s | %-9s\n",
		strings.Repeat("-", 6), strings.Repeat("-", 10), strings.Repeat("-", 10),
		strings.Repeat("-", 10), strings.Repeat("-", 8), strings.Repeat("-", 7),
		strings.Repeat("-", 9))
	for _, row := range table {
		fmt.Printf("%-6s | %9.2fM | %9.2fM | %9.2fM | %8.1f | %-7s | %9s\n",
			row.Bucket,
			row.Median/1e6, row.Q25/1e6, row.Q75/1e6,
			row.WarMed, row.Zone, arbitrage.Millions(row.Surplus))
	}
	fmt.Println(strings.Repeat("=", 78))
}
