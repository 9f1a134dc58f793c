package arbitrage_test

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/hooplytics/pickarb/pkg/arbitrage"
	"github.com/hooplytics/pickarb/pkg/models"
)

func marketRow(slug string, season int, war, salary float64) models.MarketRow {
	return models.MarketRow{
		PlayerSlug:    slug,
		PlayerName:    slug,
		CanonicalName: slug,
		SeasonEnd:     season,
		War:           war,
		Salary:        salary,
	}
}

func TestPrepareMarketPricing(t *testing.T) {
	Convey("Given raw market rows", t, func() {
		rows := []models.MarketRow{
			marketRow("a", 2020, 4.0, 8_000_000),
			marketRow("b", 2020, 0, 8_000_000),
			marketRow("c", 2020, -1.5, 8_000_000),
			marketRow("d", 2020, 2.0, 0),
			marketRow("e", 2020, 2.0, math.Inf(1)),
		}

		Convey("Only positive-WAR, positive-salary rows survive", func() {
			priced := arbitrage.PrepareMarketPricing(rows)
			So(priced, ShouldHaveLength, 1)
			So(priced[0].PlayerSlug, ShouldEqual, "a")
			So(priced[0].DollarsPerWar, ShouldEqual, 2_000_000)
		})

		Convey("An empty input prices to an empty slice, not nil panic", func() {
			So(arbitrage.PrepareMarketPricing(nil), ShouldBeEmpty)
		})
	})
}

func TestComputeBand(t *testing.T) {
	Convey("Given priced market rows", t, func() {
		Convey("A uniform market collapses to a flat band", func() {
			priced := arbitrage.PrepareMarketPricing([]models.MarketRow{
				marketRow("a", 2020, 1, 10_000_000),
				marketRow("b", 2020, 1, 10_000_000),
				marketRow("c", 2020, 1, 10_000_000),
				marketRow("d", 2020, 1, 10_000_000),
			})
			band, err := arbitrage.ComputeBand(priced)
			So(err, ShouldBeNil)
			So(band, ShouldResemble, arbitrage.Band{Q25: 10_000_000, Q50: 10_000_000, Q75: 10_000_000})
		})

		Convey("Quartiles spread across a varied market", func() {
			priced := arbitrage.PrepareMarketPricing([]models.MarketRow{
				marketRow("a", 2020, 1, 100),
				marketRow("b", 2020, 1, 200),
				marketRow("c", 2020, 1, 300),
				marketRow("d", 2020, 1, 400),
			})
			band, err := arbitrage.ComputeBand(priced)
			So(err, ShouldBeNil)
			So(band.Q25, ShouldEqual, 100)
			So(band.Q50, ShouldEqual, 250)
			So(band.Q75, ShouldEqual, 300)
			So(band.Q25, ShouldBeLessThanOrEqualTo, band.Q50)
			So(band.Q50, ShouldBeLessThanOrEqualTo, band.Q75)
		})

		Convey("No rows is an error", func() {
			_, err := arbitrage.ComputeBand(nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestClassify(t *testing.T) {
	Convey("Given a market band of 3M/4M/5M per WAR", t, func() {
		band := arbitrage.Band{Q25: 3_000_000, Q50: 4_000_000, Q75: 5_000_000}

		Convey("Cheap rookie production is a BUY", func() {
			So(arbitrage.Classify(2_500_000, band), ShouldEqual, arbitrage.ZoneBuy)
		})

		Convey("Production inside the band is NEUTRAL", func() {
			So(arbitrage.Classify(3_000_000, band), ShouldEqual, arbitrage.ZoneNeutral)
			So(arbitrage.Classify(4_000_000, band), ShouldEqual, arbitrage.ZoneNeutral)
			So(arbitrage.Classify(5_000_000, band), ShouldEqual, arbitrage.ZoneNeutral)
		})

		Convey("The deadband keeps near-edge medians NEUTRAL", func() {
			So(arbitrage.Classify(band.Q25*(1-arbitrage.Deadband), band), ShouldEqual, arbitrage.ZoneNeutral)
			So(arbitrage.Classify(band.Q75*(1+arbitrage.Deadband), band), ShouldEqual, arbitrage.ZoneNeutral)
			So(arbitrage.Classify(band.Q25*0.92, band), ShouldEqual, arbitrage.ZoneBuy)
			So(arbitrage.Classify(band.Q75*1.08, band), ShouldEqual, arbitrage.ZoneSell)
		})

		Convey("The zone never steps backwards as the median rises", func() {
			rank := map[arbitrage.Zone]int{
				arbitrage.ZoneBuy:     0,
				arbitrage.ZoneNeutral: 1,
				arbitrage.ZoneSell:    2,
			}
			prev := -1
			for median := 0.0; median <= 8_000_000; median += 50_000 {
				r := rank[arbitrage.Classify(median, band)]
				So(r, ShouldBeGreaterThanOrEqualTo, prev)
				prev = r
			}
		})
	})
}

func TestPreparePickCosts(t *testing.T) {
	Convey("Given pick outcomes over a four-season window", t, func() {
		outcomes := []models.PickOutcome{
			{DraftYear: 2017, Pick: 3, PlayerSlug: "good01", WarWindow: 8, CostWindow: 16_000_000},
			{DraftYear: 2017, Pick: 41, PlayerSlug: "bust01", WarWindow: 0, CostWindow: 6_000_000},
			{DraftYear: 2017, Pick: 55, PlayerSlug: "neg01", WarWindow: -2, CostWindow: 6_000_000},
		}

		Convey("Only positive-WAR outcomes are priced", func() {
			costs := arbitrage.PreparePickCosts(outcomes, 4)
			So(costs, ShouldHaveLength, 1)
			So(costs[0].PlayerSlug, ShouldEqual, "good01")
			So(costs[0].Bucket, ShouldEqual, arbitrage.Bucket0105)
			So(costs[0].WarPerSeason, ShouldEqual, 2.0)
			So(costs[0].CostPerWarPerSeason, ShouldEqual, 500_000)
		})

		Convey("A non-positive window length falls back to four seasons", func() {
			costs := arbitrage.PreparePickCosts(outcomes, 0)
			So(costs[0].WarPerSeason, ShouldEqual, 2.0)
		})
	})
}

func TestBuildBucketTable(t *testing.T) {
	Convey("Given priced picks and a 3M/4M/5M market band", t, func() {
		band := arbitrage.Band{Q25: 3_000_000, Q50: 4_000_000, Q75: 5_000_000}
		outcomes := []models.PickOutcome{
			{DraftYear: 2017, Pick: 2, PlayerSlug: "star01", WarWindow: 8, CostWindow: 16_000_000},
			{DraftYear: 2018, Pick: 48, PlayerSlug: "steal01", WarWindow: 4, CostWindow: 4_000_000},
		}
		picks := arbitrage.PreparePickCosts(outcomes, 4)

		Convey("The table follows draft order and omits empty buckets", func() {
			table, err := arbitrage.BuildBucketTable(picks, band)
			So(err, ShouldBeNil)
			So(table, ShouldHaveLength, 2)
			So(table[0].Bucket, ShouldEqual, arbitrage.Bucket0105)
			So(table[1].Bucket, ShouldEqual, arbitrage.Bucket4660)
		})

		Convey("A cheap bucket classifies as BUY with a positive surplus", func() {
			table, err := arbitrage.BuildBucketTable(picks, band)
			So(err, ShouldBeNil)
			top := table[0]
			// (16M / 8 WAR) / 4 seasons = 0.5M per WAR per season.
			So(top.Median, ShouldEqual, 500_000)
			So(top.Zone, ShouldEqual, arbitrage.ZoneBuy)
			// 8 WAR at the FA median of 4M/WAR would cost 32M; the pick cost 16M.
			So(top.MarketEquivCost, ShouldEqual, 32_000_000)
			So(top.Surplus, ShouldEqual, 16_000_000)
			So(top.MarketQ50, ShouldEqual, band.Q50)
		})

		Convey("No priced picks at all is an error", func() {
			_, err := arbitrage.BuildBucketTable(nil, band)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestFormatForExport(t *testing.T) {
	Convey("Given a bucket table", t, func() {
		table := []arbitrage.BucketSummary{{
			Bucket:          arbitrage.Bucket0610,
			Median:          1_500_000,
			Q25:             1_000_000,
			Q75:             2_000_000,
			WarMed:          6,
			CostMed:         9_000_000,
			MarketQ25:       3_000_000,
			MarketQ50:       4_000_000,
			MarketQ75:       5_000_000,
			Zone:            arbitrage.ZoneBuy,
			MarketEquivCost: 24_000_000,
			Surplus:         15_000_000,
		}}

		Convey("Currency columns scale to millions", func() {
			rows := arbitrage.FormatForExport(table)
			So(rows, ShouldHaveLength, 1)
			So(rows[0].RookieCostPerWarMil, ShouldEqual, 1.5)
			So(rows[0].MarketCostQ50Mil, ShouldEqual, 4.0)
			So(rows[0].SurplusWindowMil, ShouldEqual, 15.0)
			So(rows[0].Zone, ShouldEqual, arbitrage.ZoneBuy)
		})

		Convey("Millions renders signed labels", func() {
			So(arbitrage.Millions(15_000_000), ShouldEqual, "+15.0M")
			So(arbitrage.Millions(-2_340_000), ShouldEqual, "-2.3M")
		})
	})
}
