package bbref

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hooplytics/pickarb/pkg/models"
	"github.com/hooplytics/pickarb/pkg/scrape"
)

// SeasonWinShares returns each player's win shares for one season, from the
// league advanced-stats page. Players who changed teams appear once per team
// plus a TOT row; the TOT row wins, otherwise the max-WS row per slug is
// kept. An empty result is an error here (unlike drafts) because a missing
// WAR season silently zeroes every join downstream.
func (s *Site) SeasonWinShares(ctx context.Context, seasonEnd int) ([]models.WarRecord, error) {
	url := fmt.Sprintf("%s/leagues/NBA_%d_advanced.html", baseURL, seasonEnd)
	body, err := s.advanced.GetOK(ctx, url)
	if err != nil {
		return nil, err
	}
	return parseAdvancedBody(body, seasonEnd)
}

func parseAdvancedBody(body []byte, seasonEnd int) ([]models.WarRecord, error) {
	table, err := scrape.TableByID(body, "advanced")
	if err != nil {
		return nil, fmt.Errorf("advanced stats table not found for season %d", seasonEnd)
	}

	type entry struct {
		rec models.WarRecord
		tot bool
	}
	var entries []entry
	scrape.BodyRows(table, func(row *goquery.Selection) {
		playerCell := scrape.CellByStat(row, "name_display")
		wsCell := scrape.CellByStat(row, "ws")
		teamCell := scrape.CellByStat(row, "team_name_abbr")
		if playerCell.Length() == 0 || wsCell.Length() == 0 || teamCell.Length() == 0 {
			return
		}
		slug, ok := playerCell.Attr("data-append-csv")
		if !ok || slug == "" {
			return
		}
		ws, err := strconv.ParseFloat(strings.TrimSpace(wsCell.Text()), 64)
		if err != nil {
			ws = 0
		}
		entries = append(entries, entry{
			rec: models.WarRecord{
				PlayerSlug: slug,
				PlayerName: strings.TrimSpace(playerCell.Text()),
				SeasonEnd:  seasonEnd,
				War:        ws,
			},
			tot: strings.TrimSpace(teamCell.Text()) == "TOT",
		})
	})
	if len(entries) == 0 {
		return nil, fmt.Errorf("no advanced rows parsed for season %d", seasonEnd)
	}

	// Deduplicate per slug: the TOT row wins, otherwise the highest WS row.
	best := make(map[string]entry)
	var order []string
	for _, e := range entries {
		cur, seen := best[e.rec.PlayerSlug]
		if !seen {
			best[e.rec.PlayerSlug] = e
			order = append(order, e.rec.PlayerSlug)
			continue
		}
		if cur.tot {
			continue
		}
		if e.tot || e.rec.War > cur.rec.War {
			best[e.rec.PlayerSlug] = e
		}
	}
	records := make([]models.WarRecord, 0, len(order))
	for _, slug := range order {
		records = append(records, best[slug].rec)
	}
	return records, nil
}
