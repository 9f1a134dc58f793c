package arbitrage

import (
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"
)

// Scenario is one alternate market band. Scenario runs share nothing with
// each other or the baseline except the input pick costs.
type Scenario struct {
	Name  string // file-name stem, e.g. "thin"
	Title string // human title for charts
	Band  Band
}

// BuildScenarios derives the three standard scenario bands:
//
//   - thin: FA pricing restricted to seasons with a top-quartile
//     season-median $/WAR (scarce supply, expensive wins)
//   - deep: bottom-quartile seasons (plentiful supply, cheap wins)
//   - apron: the baseline band uniformly inflated 10%
//
// A season subset that turns out empty skips its scenario rather than
// failing the run.
func BuildScenarios(priced []PricedRow, baseline Band) ([]Scenario, error) {
	medians, seasons, err := seasonMedians(priced)
	if err != nil {
		return nil, err
	}
	high, err := stats.Percentile(medians, 75)
	if err != nil {
		return nil, fmt.Errorf("season median q75: %w", err)
	}
	low, err := stats.Percentile(medians, 25)
	if err != nil {
		return nil, fmt.Errorf("season median q25: %w", err)
	}

	highSeasons := make(map[int]bool)
	lowSeasons := make(map[int]bool)
	for i, season := range seasons {
		if medians[i] >= high {
			highSeasons[season] = true
		}
		if medians[i] <= low {
			lowSeasons[season] = true
		}
	}

	var scenarios []Scenario
	if band, ok := bandForSeasons(priced, highSeasons); ok {
		scenarios = append(scenarios, Scenario{
			Name:  "thin",
			Title: "Thin FA class (top quartile)",
			Band:  band,
		})
	}
	if band, ok := bandForSeasons(priced, lowSeasons); ok {
		scenarios = append(scenarios, Scenario{
			Name:  "deep",
			Title: "Deep FA class (bottom quartile)",
			Band:  band,
		})
	}
	scenarios = append(scenarios, Scenario{
		Name:  "apron",
		Title: "Second apron pressure (+10% FA $/WAR)",
		Band:  baseline.Scale(1.10),
	})
	return scenarios, nil
}

// seasonMedians returns the median $/WAR per season, with the season list in
// ascending order and medians aligned to it.
func seasonMedians(priced []PricedRow) ([]float64, []int, error) {
	bySeason := make(map[int][]float64)
	for _, row := range priced {
		bySeason[row.SeasonEnd] = append(bySeason[row.SeasonEnd], row.DollarsPerWar)
	}
	if len(bySeason) == 0 {
		return nil, nil, fmt.Errorf("no market rows to split into seasons")
	}
	seasons := make([]int, 0, len(bySeason))
	for season := range bySeason {
		seasons = append(seasons, season)
	}
	sort.Ints(seasons)
	medians := make([]float64, len(seasons))
	for i, season := range seasons {
		m, err := stats.Median(bySeason[season])
		if err != nil {
			return nil, nil, fmt.Errorf("season %d median: %w", season, err)
		}
		medians[i] = m
	}
	return medians, seasons, nil
}

func bandForSeasons(priced []PricedRow, keep map[int]bool) (Band, bool) {
	var subset []PricedRow
	for _, row := range priced {
		if keep[row.SeasonEnd] {
			subset = append(subset, row)
		}
	}
	if len(subset) == 0 {
		return Band{}, false
	}
	band, err := ComputeBand(subset)
	if err != nil {
		return Band{}, false
	}
	return band, true
}
