package arbitrage_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/hooplytics/pickarb/pkg/arbitrage"
	"github.com/hooplytics/pickarb/pkg/models"
)

func TestBuildScenarios(t *testing.T) {
	Convey("Given market pricing spread over four seasons", t, func() {
		// Each season's $/WAR is uniform, so the season medians are
		// 1M, 2M, 3M and 4M respectively.
		var rows []models.MarketRow
		for season := 2017; season <= 2020; season++ {
			ratio := float64(season-2016) * 1_000_000
			for i := 0; i < 4; i++ {
				rows = append(rows, marketRow("p", season, 1, ratio))
			}
		}
		priced := arbitrage.PrepareMarketPricing(rows)
		baseline := arbitrage.Band{Q25: 2_000_000, Q50: 2_500_000, Q75: 3_000_000}

		Convey("All three scenarios come back in thin/deep/apron order", func() {
			scenarios, err := arbitrage.BuildScenarios(priced, baseline)
			So(err, ShouldBeNil)
			So(scenarios, ShouldHaveLength, 3)
			So(scenarios[0].Name, ShouldEqual, "thin")
			So(scenarios[1].Name, ShouldEqual, "deep")
			So(scenarios[2].Name, ShouldEqual, "apron")
		})

		Convey("The thin band prices above the deep band", func() {
			scenarios, err := arbitrage.BuildScenarios(priced, baseline)
			So(err, ShouldBeNil)
			thin, deep := scenarios[0].Band, scenarios[1].Band
			So(thin.Q50, ShouldBeGreaterThan, deep.Q50)
			So(deep.Q50, ShouldEqual, 1_000_000)
		})

		Convey("The apron band is the baseline inflated ten percent", func() {
			scenarios, err := arbitrage.BuildScenarios(priced, baseline)
			So(err, ShouldBeNil)
			apron := scenarios[2].Band
			So(apron.Q25, ShouldAlmostEqual, 2_200_000, 1)
			So(apron.Q50, ShouldAlmostEqual, 2_750_000, 1)
			So(apron.Q75, ShouldAlmostEqual, 3_300_000, 1)
		})

		Convey("No market rows at all is an error", func() {
			_, err := arbitrage.BuildScenarios(nil, baseline)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestBandScale(t *testing.T) {
	Convey("Scaling a band multiplies every quartile", t, func() {
		band := arbitrage.Band{Q25: 2, Q50: 4, Q75: 8}
		doubled := band.Scale(2)
		So(doubled, ShouldResemble, arbitrage.Band{Q25: 4, Q50: 8, Q75: 16})
	})
}
