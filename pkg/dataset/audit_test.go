package dataset_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/hooplytics/pickarb/pkg/dataset"
	"github.com/hooplytics/pickarb/pkg/models"
)

func TestAuditJoin(t *testing.T) {
	Convey("Given pick outcomes against a salary table", t, func() {
		salary := []models.SalaryRecord{
			salaryRec("marvin bagley", 2019, 7_300_000),
			salaryRec("luka doncic", 2019, 6_500_000),
		}
		outcomes := []models.PickOutcome{
			{DraftYear: 2018, Pick: 2, PlayerName: "Marvin Bagley III", CanonicalName: "marvin bagley", WarWindow: 2, CostWindow: 30_000_000},
			{DraftYear: 2018, Pick: 3, PlayerName: "Luka Doncic", CanonicalName: "luka donic", WarWindow: 20, CostWindow: 0},
			{DraftYear: 2018, Pick: 58, PlayerName: "Thomas Welsh", CanonicalName: "thomas welsh", WarWindow: 0, CostWindow: 0},
		}

		audit := dataset.AuditJoin(outcomes, salary)

		Convey("Only zero-cost picks are flagged", func() {
			So(audit, ShouldHaveLength, 2)
			So(audit[0].Pick, ShouldEqual, 3)
			So(audit[1].Pick, ShouldEqual, 58)
		})

		Convey("Near-miss canonical names are suggested", func() {
			So(audit[0].Suggestions, ShouldContain, "luka doncic")
		})

		Convey("A name with no near miss gets no suggestions", func() {
			So(audit[1].Suggestions, ShouldBeEmpty)
		})
	})
}
