package arbitrage

import "fmt"

const million = 1_000_000

// FormattedRow is a bucket summary with currency columns scaled to millions
// for human-facing exports.
type FormattedRow struct {
	Bucket              Bucket
	RookieCostPerWarMil float64
	RookieCostQ25Mil    float64
	RookieCostQ75Mil    float64
	WarMed              float64
	CostMed             float64
	MarketCostQ25Mil    float64
	MarketCostQ50Mil    float64
	MarketCostQ75Mil    float64
	Zone                Zone
	MarketEquivCostWin  float64
	SurplusWindowMil    float64
}

// FormatForExport scales a bucket table's currency columns to millions.
func FormatForExport(table []BucketSummary) []FormattedRow {
	out := make([]FormattedRow, len(table))
	for i, row := range table {
		out[i] = FormattedRow{
			Bucket:              row.Bucket,
			RookieCostPerWarMil: row.Median / million,
			RookieCostQ25Mil:    row.Q25 / million,
			RookieCostQ75Mil:    row.Q75 / million,
			WarMed:              row.WarMed,
			CostMed:             row.CostMed,
			MarketCostQ25Mil:    row.MarketQ25 / million,
			MarketCostQ50Mil:    row.MarketQ50 / million,
			MarketCostQ75Mil:    row.MarketQ75 / million,
			Zone:                row.Zone,
			MarketEquivCostWin:  row.MarketEquivCost,
			SurplusWindowMil:    row.Surplus / million,
		}
	}
	return out
}

// Millions renders a dollar amount as a signed millions label, e.g. "+12.3M".
func Millions(v float64) string {
	return fmt.Sprintf("%+.1fM", v/million)
}
