// Package arbitrage computes the pick-vs-free-agent cost-efficiency
// comparison: market price bands, per-bucket rookie pricing, BUY/NEUTRAL/
// SELL zones, surplus estimates, and scenario variants.
package arbitrage

import "log/slog"

// Bucket is one of six fixed contiguous ranges partitioning pick slots 1-60.
type Bucket string

const (
	Bucket0105 Bucket = "01-05"
	Bucket0610 Bucket = "06-10"
	Bucket1120 Bucket = "11-20"
	Bucket2130 Bucket = "21-30"
	Bucket3145 Bucket = "31-45"
	Bucket4660 Bucket = "46-60"
)

// BucketOrder lists buckets from the top of the draft down; table and chart
// output follow this order.
var BucketOrder = []Bucket{
	Bucket0105, Bucket0610, Bucket1120, Bucket2130, Bucket3145, Bucket4660,
}

// AssignBucket maps a pick slot to its bucket. Every integer 1-60 maps to
// exactly one bucket; anything outside that range takes the explicit
// catch-all into the last bucket (historical drafts ran longer than 60
// picks, and those slots are priced like late second-rounders).
func AssignBucket(pick int) Bucket {
	switch {
	case pick >= 1 && pick <= 5:
		return Bucket0105
	case pick >= 6 && pick <= 10:
		return Bucket0610
	case pick >= 11 && pick <= 20:
		return Bucket1120
	case pick >= 21 && pick <= 30:
		return Bucket2130
	case pick >= 31 && pick <= 45:
		return Bucket3145
	case pick >= 46 && pick <= 60:
		return Bucket4660
	default:
		slog.Warn("pick outside 1-60, using catch-all bucket", "pick", pick, "bucket", Bucket4660)
		return Bucket4660
	}
}
