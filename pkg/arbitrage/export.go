package arbitrage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// WriteBandCSV persists a market band as (quantile, value) rows.
func WriteBandCSV(band Band, path string) error {
	return writeRows(path, []string{"quantile", "value"}, [][]string{
		{"q25", ftoa(band.Q25)},
		{"q50", ftoa(band.Q50)},
		{"q75", ftoa(band.Q75)},
	})
}

// WritePricingCSV persists the filtered market rows with their $/WAR ratio.
func WritePricingCSV(priced []PricedRow, path string) error {
	rows := make([][]string, len(priced))
	for i, r := range priced {
		rows[i] = []string{
			r.PlayerSlug, r.PlayerName, r.CanonicalName,
			strconv.Itoa(r.SeasonEnd), ftoa(r.War), ftoa(r.Salary), ftoa(r.DollarsPerWar),
		}
	}
	return writeRows(path,
		[]string{"player_slug", "player_name", "canonical_name", "season_end", "war", "salary", "dollars_per_war"},
		rows)
}

// WritePickCostsCSV persists the bucketed, per-season-priced pick costs.
func WritePickCostsCSV(picks []PickCost, path string) error {
	rows := make([][]string, len(picks))
	for i, p := range picks {
		rows[i] = []string{
			strconv.Itoa(p.DraftYear), strconv.Itoa(p.Pick), p.PlayerSlug, p.PlayerName, p.CanonicalName,
			ftoa(p.WarWindow), ftoa(p.CostWindow), string(p.Bucket),
			ftoa(p.CostPerWarPerSeason), ftoa(p.WarPerSeason),
		}
	}
	return writeRows(path,
		[]string{"draft_year", "pick", "player_slug", "player_name", "canonical_name",
			"war_window", "cost_window", "bucket", "cost_per_war_per_season", "war_per_season"},
		rows)
}

// WriteBucketCSV persists a bucket summary table.
func WriteBucketCSV(table []BucketSummary, path string) error {
	rows := make([][]string, len(table))
	for i, r := range table {
		rows[i] = []string{
			string(r.Bucket), ftoa(r.Median), ftoa(r.Q25), ftoa(r.Q75),
			ftoa(r.WarMed), ftoa(r.CostMed),
			ftoa(r.MarketQ25), ftoa(r.MarketQ50), ftoa(r.MarketQ75),
			string(r.Zone), ftoa(r.MarketEquivCost), ftoa(r.Surplus),
		}
	}
	return writeRows(path,
		[]string{"bucket", "median", "q25", "q75", "war_med", "cost_med",
			"market_q25", "market_q50", "market_q75", "arbitrage_zone",
			"market_equiv_cost", "surplus"},
		rows)
}

// WriteFormattedCSV persists the human-scaled ($ in millions) export table.
func WriteFormattedCSV(table []FormattedRow, path string) error {
	rows := make([][]string, len(table))
	for i, r := range table {
		rows[i] = []string{
			string(r.Bucket),
			ftoa(r.RookieCostPerWarMil), ftoa(r.RookieCostQ25Mil), ftoa(r.RookieCostQ75Mil),
			ftoa(r.WarMed), ftoa(r.CostMed),
			ftoa(r.MarketCostQ25Mil), ftoa(r.MarketCostQ50Mil), ftoa(r.MarketCostQ75Mil),
			string(r.Zone), ftoa(r.MarketEquivCostWin), ftoa(r.SurplusWindowMil),
		}
	}
	return writeRows(path,
		[]string{"bucket", "rookie_cost_per_war_mil", "rookie_cost_q25_mil", "rookie_cost_q75_mil",
			"war_med", "cost_med", "market_cost_q25_mil", "market_cost_q50_mil", "market_cost_q75_mil",
			"arbitrage_zone", "market_equiv_cost", "surplus_mil"},
		rows)
}

func writeRows(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
