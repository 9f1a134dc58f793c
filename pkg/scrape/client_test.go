package scrape_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/hooplytics/pickarb/pkg/retry"
	"github.com/hooplytics/pickarb/pkg/scrape"
)

const visibleTablePage = `<html><body>
<table id="stats">
  <thead>
    <tr><th class="over_header" colspan="2">Totals</th></tr>
    <tr><th>Pk</th><th>Player</th></tr>
  </thead>
  <tbody>
    <tr><td data-stat="pick_overall">1</td><td data-stat="player">First Pick</td></tr>
    <tr class="thead"><td>Pk</td><td>Player</td></tr>
    <tr><td data-stat="pick_overall">2</td><td data-stat="player">Second Pick</td></tr>
  </tbody>
</table>
</body></html>`

const commentedTablePage = `<html><body>
<div id="all_salaries_wrap">
<!--
<table id="all_salaries">
  <thead><tr><th>Season</th><th>Salary</th></tr></thead>
  <tbody>
    <tr><td data-stat="season">2019-20</td><td data-stat="salary">$8,000,000</td></tr>
  </tbody>
</table>
-->
</div>
</body></html>`

func TestTableLookup(t *testing.T) {
	Convey("Given pages with visible and comment-wrapped tables", t, func() {
		Convey("TableByID finds a live table", func() {
			table, err := scrape.TableByID([]byte(visibleTablePage), "stats")
			So(err, ShouldBeNil)
			So(table.Length(), ShouldEqual, 1)
		})

		Convey("TableByID recovers a table hidden in an HTML comment", func() {
			table, err := scrape.TableByID([]byte(commentedTablePage), "all_salaries")
			So(err, ShouldBeNil)
			var seasons []string
			scrape.BodyRows(table, func(row *goquery.Selection) {
				seasons = append(seasons, scrape.CellByStat(row, "season").Text())
			})
			So(seasons, ShouldResemble, []string{"2019-20"})
		})

		Convey("TableByID reports a missing table", func() {
			_, err := scrape.TableByID([]byte(visibleTablePage), "advanced")
			So(err, ShouldNotBeNil)
		})

		Convey("FirstTable also searches comments", func() {
			table, err := scrape.FirstTable([]byte(commentedTablePage))
			So(err, ShouldBeNil)
			So(table.AttrOr("id", ""), ShouldEqual, "all_salaries")
		})
	})
}

func TestHeaderAndRows(t *testing.T) {
	Convey("Given a table with an over-header and a mid-table header row", t, func() {
		table, err := scrape.TableByID([]byte(visibleTablePage), "stats")
		So(err, ShouldBeNil)

		Convey("HeaderIndex uses the last thead row", func() {
			idx := scrape.HeaderIndex(table)
			So(idx["Pk"], ShouldEqual, 0)
			So(idx["Player"], ShouldEqual, 1)
			So(idx, ShouldNotContainKey, "Totals")
		})

		Convey("BodyRows skips repeated header rows", func() {
			var players []string
			scrape.BodyRows(table, func(row *goquery.Selection) {
				players = append(players, scrape.CellByStat(row, "player").Text())
			})
			So(players, ShouldResemble, []string{"First Pick", "Second Pick"})
		})
	})

	Convey("Given a bare table without thead or tbody", t, func() {
		page := `<table><tr><th>Year</th><th>Salary Cap</th></tr>` +
			`<tr><td>2019-20</td><td>$109,140,000</td></tr></table>`
		table, err := scrape.FirstTable([]byte(page))
		So(err, ShouldBeNil)

		Convey("HeaderIndex falls back to the first row", func() {
			idx := scrape.HeaderIndex(table)
			So(idx["Year"], ShouldEqual, 0)
			So(idx["Salary Cap"], ShouldEqual, 1)
		})

		Convey("BodyRows skips the header row", func() {
			count := 0
			scrape.BodyRows(table, func(*goquery.Selection) { count++ })
			So(count, ShouldEqual, 1)
		})
	})
}

func TestCleanMoney(t *testing.T) {
	Convey("Given salary cell values", t, func() {
		So(scrape.CleanMoney("$12,345,678"), ShouldEqual, 12345678)
		So(scrape.CleanMoney(" $8,000,000 "), ShouldEqual, 8000000)
		So(scrape.CleanMoney("109140000"), ShouldEqual, 109140000)
		So(scrape.CleanMoney(""), ShouldEqual, 0)
		So(scrape.CleanMoney("—"), ShouldEqual, 0)
		So(scrape.CleanMoney("TBD"), ShouldEqual, 0)
	})
}

func TestClientGet(t *testing.T) {
	Convey("Given a flaky upstream", t, func() {
		hits := 0
		var gotUA, gotReferer string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			gotUA = r.Header.Get("User-Agent")
			gotReferer = r.Header.Get("Referer")
			if hits < 3 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			_, _ = w.Write([]byte(visibleTablePage))
		}))
		defer srv.Close()

		policy := retry.Policy{
			MaxAttempts: 5,
			BaseDelay:   time.Millisecond,
			Multiplier:  1.5,
			MaxDelay:    5 * time.Millisecond,
			Retryable:   retry.RateLimited,
		}

		Convey("Get retries rate limits and sends browser headers", func() {
			c := scrape.NewClient(5*time.Second, policy)
			c.Referer = "https://www.basketball-reference.com/"
			body, status, err := c.Get(context.Background(), srv.URL)
			So(err, ShouldBeNil)
			So(status, ShouldEqual, http.StatusOK)
			So(hits, ShouldEqual, 3)
			So(strings.Contains(string(body), `id="stats"`), ShouldBeTrue)
			So(gotUA, ShouldEqual, scrape.DefaultUserAgent)
			So(gotReferer, ShouldEqual, "https://www.basketball-reference.com/")
		})

		Convey("A single-attempt client does not retry", func() {
			c := scrape.NewClient(5*time.Second, retry.Policy{MaxAttempts: 1})
			_, status, err := c.Get(context.Background(), srv.URL)
			So(err, ShouldBeNil)
			So(status, ShouldEqual, http.StatusTooManyRequests)
			So(hits, ShouldEqual, 1)
		})

		Convey("GetOK turns a terminal non-2xx into an error", func() {
			c := scrape.NewClient(5*time.Second, retry.Policy{MaxAttempts: 1})
			_, err := c.GetOK(context.Background(), srv.URL)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "status 429")
		})
	})
}
