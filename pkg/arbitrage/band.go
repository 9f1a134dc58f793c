package arbitrage

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/hooplytics/pickarb/pkg/models"
)

// Band is the free-agent market price band: quartiles of $-per-WAR over all
// positive-WAR, positive-salary player seasons.
type Band struct {
	Q25 float64
	Q50 float64
	Q75 float64
}

// Scale returns the band inflated (or deflated) by a uniform factor.
func (b Band) Scale(factor float64) Band {
	return Band{Q25: b.Q25 * factor, Q50: b.Q50 * factor, Q75: b.Q75 * factor}
}

// PricedRow is a market row with its derived unit price.
type PricedRow struct {
	models.MarketRow
	DollarsPerWar float64
}

// PrepareMarketPricing filters market rows to those with positive salary and
// positive WAR and attaches the $/WAR ratio. Non-finite ratios (zero WAR
// slips through upstream filters when rows are loaded from CSV) are dropped,
// not clamped.
func PrepareMarketPricing(market []models.MarketRow) []PricedRow {
	priced := make([]PricedRow, 0, len(market))
	for _, row := range market {
		if row.Salary <= 0 || row.War <= 0 {
			continue
		}
		ratio := row.Salary / row.War
		if math.IsInf(ratio, 0) || math.IsNaN(ratio) {
			continue
		}
		priced = append(priced, PricedRow{MarketRow: row, DollarsPerWar: ratio})
	}
	return priced
}

// ComputeBand returns the 25th/50th/75th percentile band of $/WAR over the
// given rows.
func ComputeBand(priced []PricedRow) (Band, error) {
	if len(priced) == 0 {
		return Band{}, fmt.Errorf("no market rows to price")
	}
	ratios := make([]float64, len(priced))
	for i, row := range priced {
		ratios[i] = row.DollarsPerWar
	}
	return bandOf(ratios)
}

func bandOf(values []float64) (Band, error) {
	q25, err := stats.Percentile(values, 25)
	if err != nil {
		return Band{}, fmt.Errorf("computing q25: %w", err)
	}
	q50, err := stats.Median(values)
	if err != nil {
		return Band{}, fmt.Errorf("computing q50: %w", err)
	}
	q75, err := stats.Percentile(values, 75)
	if err != nil {
		return Band{}, fmt.Errorf("computing q75: %w", err)
	}
	return Band{Q25: q25, Q50: q50, Q75: q75}, nil
}
