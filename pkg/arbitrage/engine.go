package arbitrage

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/hooplytics/pickarb/pkg/models"
)

// Zone classifies a bucket's rookie cost-efficiency against the free-agent
// market band.
type Zone string

const (
	ZoneBuy     Zone = "BUY"
	ZoneNeutral Zone = "NEUTRAL"
	ZoneSell    Zone = "SELL"
)

// Deadband keeps a bucket NEUTRAL within 7% of either band edge so small
// reruns don't flip-flop the classification.
const Deadband = 0.07

// Classify returns the zone for a bucket's median cost-per-WAR-per-season
// against a market band. The zone is a non-decreasing step function of the
// median with breakpoints at Q25*(1-Deadband) and Q75*(1+Deadband).
func Classify(median float64, band Band) Zone {
	if median < band.Q25*(1-Deadband) {
		return ZoneBuy
	}
	if median > band.Q75*(1+Deadband) {
		return ZoneSell
	}
	return ZoneNeutral
}

// PickCost is a pick outcome with its derived per-season pricing. Only
// outcomes with positive windowed WAR are priced.
type PickCost struct {
	models.PickOutcome
	Bucket              Bucket
	CostPerWarPerSeason float64
	WarPerSeason        float64
}

// PreparePickCosts filters pick outcomes to positive-WAR players and
// attaches bucket and per-season pricing. rookieYears is the window length
// the outcome sums were taken over.
func PreparePickCosts(outcomes []models.PickOutcome, rookieYears int) []PickCost {
	if rookieYears <= 0 {
		rookieYears = 4
	}
	costs := make([]PickCost, 0, len(outcomes))
	for _, o := range outcomes {
		if o.WarWindow <= 0 {
			continue
		}
		costs = append(costs, PickCost{
			PickOutcome:         o,
			Bucket:              AssignBucket(o.Pick),
			CostPerWarPerSeason: (o.CostWindow / o.WarWindow) / float64(rookieYears),
			WarPerSeason:        o.WarWindow / float64(rookieYears),
		})
	}
	return costs
}

// BucketSummary aggregates one bucket against one market band.
type BucketSummary struct {
	Bucket    Bucket
	Median    float64 // median cost-per-WAR-per-season
	Q25       float64
	Q75       float64
	WarMed    float64 // median windowed WAR
	CostMed   float64 // median windowed cost
	MarketQ25 float64
	MarketQ50 float64
	MarketQ75 float64
	Zone      Zone
	// MarketEquivCost is what the bucket's median WAR would have cost at
	// the FA median price; Surplus is that minus the median rookie cost.
	// Positive surplus means the pick out-earned an equivalent FA buy.
	MarketEquivCost float64
	Surplus         float64
}

// BuildBucketTable computes per-bucket summaries in BucketOrder. Buckets
// with no priced picks are omitted (matching how the summaries are grouped
// from real data, where every bucket is populated).
func BuildBucketTable(picks []PickCost, band Band) ([]BucketSummary, error) {
	byBucket := make(map[Bucket][]PickCost)
	for _, p := range picks {
		byBucket[p.Bucket] = append(byBucket[p.Bucket], p)
	}

	var table []BucketSummary
	for _, bucket := range BucketOrder {
		group := byBucket[bucket]
		if len(group) == 0 {
			continue
		}
		costsPerWar := make([]float64, len(group))
		wars := make([]float64, len(group))
		costs := make([]float64, len(group))
		for i, p := range group {
			costsPerWar[i] = p.CostPerWarPerSeason
			wars[i] = p.WarWindow
			costs[i] = p.CostWindow
		}
		median, err := stats.Median(costsPerWar)
		if err != nil {
			return nil, fmt.Errorf("bucket %s: %w", bucket, err)
		}
		q25, err := stats.Percentile(costsPerWar, 25)
		if err != nil {
			return nil, fmt.Errorf("bucket %s: %w", bucket, err)
		}
		q75, err := stats.Percentile(costsPerWar, 75)
		if err != nil {
			return nil, fmt.Errorf("bucket %s: %w", bucket, err)
		}
		warMed, err := stats.Median(wars)
		if err != nil {
			return nil, fmt.Errorf("bucket %s: %w", bucket, err)
		}
		costMed, err := stats.Median(costs)
		if err != nil {
			return nil, fmt.Errorf("bucket %s: %w", bucket, err)
		}
		equiv := warMed * band.Q50
		table = append(table, BucketSummary{
			Bucket:          bucket,
			Median:          median,
			Q25:             q25,
			Q75:             q75,
			WarMed:          warMed,
			CostMed:         costMed,
			MarketQ25:       band.Q25,
			MarketQ50:       band.Q50,
			MarketQ75:       band.Q75,
			Zone:            Classify(median, band),
			MarketEquivCost: equiv,
			Surplus:         equiv - costMed,
		})
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("no priced picks in any bucket")
	}
	return table, nil
}
