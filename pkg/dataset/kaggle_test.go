package dataset_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/hooplytics/pickarb/pkg/dataset"
	"github.com/hooplytics/pickarb/pkg/models"
)

const kaggleSample = `Rank,Player,Season,Salary
1,Stephen Curry,2023-24,"$51,915,615"
2,Nikola Jokić,2023-24,"$47,607,350"
3,  Gary   Payton II ,2023-24,"$8,715,000"
4,,2023-24,"$1,000,000"
5,Bad Season,24,"$1,000,000"
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestIngestKaggle(t *testing.T) {
	Convey("Given a downloaded salary export", t, func() {
		path := writeTemp(t, "kaggle_nba_salaries.csv", kaggleSample)

		Convey("Rows are cleaned, canonicalized and dated by season start", func() {
			records, err := dataset.IngestKaggle(path)
			So(err, ShouldBeNil)
			So(records, ShouldHaveLength, 3)

			So(records[0].Player, ShouldEqual, "Stephen Curry")
			So(records[0].SeasonEnd, ShouldEqual, 2023)
			So(records[0].Salary, ShouldEqual, 51915615)

			So(records[1].CanonicalName, ShouldEqual, "nikola jokic")
			So(records[2].Player, ShouldEqual, "Gary Payton II")
			So(records[2].CanonicalName, ShouldEqual, "gary payton")
		})

		Convey("A file without the expected columns is rejected", func() {
			bad := writeTemp(t, "other.csv", "name,year\nSomeone,2023\n")
			_, err := dataset.IngestKaggle(bad)
			So(err, ShouldNotBeNil)
		})

		Convey("A file with only unusable rows is rejected", func() {
			empty := writeTemp(t, "empty.csv", "Player,Season,Salary\n,24,$1\n")
			_, err := dataset.IngestKaggle(empty)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestFindKaggleInput(t *testing.T) {
	Convey("Given a data directory", t, func() {
		dir := t.TempDir()

		Convey("No candidate file present is an error", func() {
			_, err := dataset.FindKaggleInput(dir)
			So(err, ShouldNotBeNil)
		})

		Convey("The first present candidate is chosen", func() {
			path := filepath.Join(dir, "kaggle_nba_salaries.csv")
			So(os.WriteFile(path, []byte("Player,Season,Salary\n"), 0o644), ShouldBeNil)
			found, err := dataset.FindKaggleInput(dir)
			So(err, ShouldBeNil)
			So(found, ShouldEqual, path)
		})
	})
}

func TestSaveRawSalaries(t *testing.T) {
	Convey("Raw salaries round-trip through player_salary.csv", t, func() {
		dir := t.TempDir()
		records := []models.SalaryRecord{
			{Player: "Stephen Curry", CanonicalName: "stephen curry", SeasonEnd: 2023, Salary: 51915615},
		}
		So(dataset.SaveRawSalaries(dir, records), ShouldBeNil)

		b := dataset.NewBuilder(dir)
		b.StartSeason, b.EndSeason = 2016, 2025
		loaded, err := b.LoadSalaryCSV(filepath.Join(dir, "player_salary.csv"))
		So(err, ShouldBeNil)
		So(loaded, ShouldHaveLength, 1)
		So(loaded[0].CanonicalName, ShouldEqual, "stephen curry")
		So(loaded[0].Salary, ShouldEqual, 51915615.0)
	})
}
