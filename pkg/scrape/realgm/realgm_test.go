package realgm_test

import (
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/hooplytics/pickarb/pkg/models"
	"github.com/hooplytics/pickarb/pkg/scrape/realgm"
)

func salary(player, team string, season int, amount float64) models.SalaryRecord {
	return models.SalaryRecord{Player: player, Team: team, SeasonEnd: season, Salary: amount}
}

func TestReconcile(t *testing.T) {
	Convey("Given roster rows with mid-season duplicates", t, func() {
		records := []models.SalaryRecord{
			salary("James Harden", "LAC", 2024, 33_000_000),
			salary("James Harden", "PHI", 2024, 35_640_000),
			salary("James Harden", "PHI", 2023, 33_000_000),
			salary("Amir Coffey", "LAC", 2024, 3_800_000),
		}

		Convey("The maximum salary per player-season wins", func() {
			out := realgm.Reconcile(records)
			So(out, ShouldHaveLength, 3)
			So(out[0].Player, ShouldEqual, "Amir Coffey")
			So(out[1], ShouldResemble, salary("James Harden", "PHI", 2023, 33_000_000))
			So(out[2], ShouldResemble, salary("James Harden", "PHI", 2024, 35_640_000))
		})

		Convey("The result is independent of input order and repetition", func() {
			want := realgm.Reconcile(records)
			rng := rand.New(rand.NewSource(7))
			for trial := 0; trial < 20; trial++ {
				shuffled := append([]models.SalaryRecord(nil), records...)
				shuffled = append(shuffled, records[rng.Intn(len(records))])
				rng.Shuffle(len(shuffled), func(i, j int) {
					shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
				})
				So(realgm.Reconcile(shuffled), ShouldResemble, want)
			}
		})

		Convey("Reconciling twice changes nothing", func() {
			once := realgm.Reconcile(records)
			So(realgm.Reconcile(once), ShouldResemble, once)
		})

		Convey("An empty input reconciles to an empty slice", func() {
			So(realgm.Reconcile(nil), ShouldBeEmpty)
		})
	})
}
