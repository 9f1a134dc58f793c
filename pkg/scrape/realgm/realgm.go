// Package realgm scrapes per-team roster salary tables from
// basketball.realgm.com and reconciles them into one league-season table.
package realgm

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/hooplytics/pickarb/pkg/models"
	"github.com/hooplytics/pickarb/pkg/retry"
	"github.com/hooplytics/pickarb/pkg/scrape"
)

const (
	baseURL = "https://basketball.realgm.com/nba/teams/%s/%d/Rosters/%d"
	referer = "https://basketball.realgm.com/"

	// DefaultWorkers bounds the per-team fan-out.
	DefaultWorkers = 8
)

// team carries RealGM's numeric id and URL slug for one franchise.
type team struct {
	id   int
	slug string
}

// RealGM's team ids are arbitrary and stable; they do not follow any
// alphabetical or historical order.
var teams = map[string]team{
	"ATL": {1, "atlanta-hawks"},
	"BOS": {2, "boston-celtics"},
	"BKN": {38, "brooklyn-nets"},
	"CHA": {30, "charlotte-hornets"},
	"CHI": {4, "chicago-bulls"},
	"CLE": {5, "cleveland-cavaliers"},
	"DAL": {6, "dallas-mavericks"},
	"DEN": {7, "denver-nuggets"},
	"DET": {8, "detroit-pistons"},
	"GSW": {9, "golden-state-warriors"},
	"HOU": {10, "houston-rockets"},
	"IND": {11, "indiana-pacers"},
	"LAC": {12, "los-angeles-clippers"},
	"LAL": {13, "los-angeles-lakers"},
	"MEM": {29, "memphis-grizzlies"},
	"MIA": {15, "miami-heat"},
	"MIL": {16, "milwaukee-bucks"},
	"MIN": {17, "minnesota-timberwolves"},
	"NOP": {3, "new-orleans-pelicans"},
	"NYK": {20, "new-york-knicks"},
	"OKC": {21, "oklahoma-city-thunder"},
	"ORL": {22, "orlando-magic"},
	"PHI": {23, "philadelphia-76ers"},
	"PHX": {24, "phoenix-suns"},
	"POR": {25, "portland-trail-blazers"},
	"SAC": {26, "sacramento-kings"},
	"SAS": {27, "san-antonio-spurs"},
	"TOR": {28, "toronto-raptors"},
	"UTA": {18, "utah-jazz"},
	"WAS": {31, "washington-wizards"},
}

// Site fetches RealGM roster pages.
type Site struct {
	client  *scrape.Client
	Workers int
}

// New builds a Site with a plain single-attempt client; a failed team fetch
// is logged and dropped rather than retried.
func New() *Site {
	c := scrape.NewClient(30*time.Second, retry.Policy{MaxAttempts: 1})
	c.Referer = referer
	return &Site{client: c, Workers: DefaultWorkers}
}

// TeamSalaries returns one team's roster salaries for the season ending in
// seasonEnd. The roster page carries several tables; the first one with both
// "Player" and "Salary" columns is the salary table.
func (s *Site) TeamSalaries(ctx context.Context, abbr string, seasonEnd int) ([]models.SalaryRecord, error) {
	t, ok := teams[abbr]
	if !ok {
		return nil, fmt.Errorf("unknown team %q", abbr)
	}
	url := fmt.Sprintf(baseURL, t.slug, t.id, seasonEnd)
	body, err := s.client.GetOK(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := scrape.Document(body)
	if err != nil {
		return nil, err
	}

	var records []models.SalaryRecord
	found := false
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		idx := scrape.HeaderIndex(table)
		playerCol, okPlayer := idx["Player"]
		salaryCol, okSalary := idx["Salary"]
		if !okPlayer || !okSalary {
			return true
		}
		found = true
		scrape.BodyRows(table, func(row *goquery.Selection) {
			cells := row.Find("th, td")
			player := strings.Join(strings.Fields(cells.Eq(playerCol).Text()), " ")
			if player == "" || strings.EqualFold(player, "Player") {
				return
			}
			records = append(records, models.SalaryRecord{
				Player:    player,
				Team:      abbr,
				SeasonEnd: seasonEnd,
				Salary:    scrape.CleanMoney(cells.Eq(salaryCol).Text()),
			})
		})
		return false
	})
	if !found {
		// Page rendered without a salary table; old seasons do this.
		return nil, nil
	}
	return records, nil
}

// LeagueSalaries fans out across all 30 teams with a bounded worker pool and
// reconciles the results: players traded mid-season (or on 10-day deals)
// appear on several rosters, and the maximum reported salary per
// (player, season) wins. A failed team logs a warning and contributes no
// rows; result ordering is deterministic regardless of fetch completion
// order.
func (s *Site) LeagueSalaries(ctx context.Context, seasonEnd int) ([]models.SalaryRecord, error) {
	workers := s.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	var mu sync.Mutex
	var all []models.SalaryRecord

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for abbr := range teams {
		abbr := abbr
		g.Go(func() error {
			recs, err := s.TeamSalaries(gctx, abbr, seasonEnd)
			if err != nil {
				slog.Warn("dropping team salaries", "team", abbr, "season_end", seasonEnd, "error", err)
				return nil
			}
			mu.Lock()
			all = append(all, recs...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return Reconcile(all), nil
}

// Reconcile collapses duplicate (player, season) rows by keeping the maximum
// salary. Max is commutative and associative, so the result is independent
// of input order and of repeated rows.
func Reconcile(records []models.SalaryRecord) []models.SalaryRecord {
	type key struct {
		player    string
		seasonEnd int
	}
	best := make(map[key]models.SalaryRecord)
	for _, r := range records {
		k := key{r.Player, r.SeasonEnd}
		cur, ok := best[k]
		if !ok || r.Salary > cur.Salary {
			best[k] = r
		}
	}
	out := make([]models.SalaryRecord, 0, len(best))
	for _, r := range best {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Player != out[j].Player {
			return out[i].Player < out[j].Player
		}
		return out[i].SeasonEnd < out[j].SeasonEnd
	})
	return out
}
