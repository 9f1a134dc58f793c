package bbref

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hooplytics/pickarb/pkg/models"
	"github.com/hooplytics/pickarb/pkg/scrape"
)

// DraftClass returns the picks of one draft (keyed by the draft year, which
// is the season_end of the season the draft precedes). A page that cannot be
// fetched after the retry budget yields an empty class, not an error: one
// missing draft year must not abort a multi-year build.
func (s *Site) DraftClass(ctx context.Context, seasonEnd int) ([]models.DraftPick, error) {
	url := fmt.Sprintf("%s/draft/NBA_%d.html", baseURL, seasonEnd)
	body, status, err := s.draft.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		slog.Warn("draft page unavailable, returning empty class", "season_end", seasonEnd, "status", status)
		return nil, nil
	}
	return parseDraftBody(body, seasonEnd)
}

func parseDraftBody(body []byte, seasonEnd int) ([]models.DraftPick, error) {
	table, err := scrape.TableByID(body, "stats")
	if err != nil {
		slog.Warn("draft table missing, returning empty class", "season_end", seasonEnd)
		return nil, nil
	}

	var picks []models.DraftPick
	scrape.BodyRows(table, func(row *goquery.Selection) {
		pickCell := scrape.CellByStat(row, "pick_overall")
		playerCell := scrape.CellByStat(row, "player")
		teamCell := scrape.CellByStat(row, "team_id")
		if pickCell.Length() == 0 || playerCell.Length() == 0 {
			return
		}
		pick, err := strconv.Atoi(strings.TrimSpace(pickCell.Text()))
		if err != nil {
			return
		}
		link := playerCell.Find("a").First()
		href, ok := link.Attr("href")
		if !ok {
			// Rows without a player link are forfeited or unsigned picks.
			return
		}
		parts := strings.Split(href, "/")
		slug := strings.TrimSuffix(parts[len(parts)-1], ".html")
		picks = append(picks, models.DraftPick{
			SeasonEnd:  seasonEnd,
			Pick:       pick,
			Team:       strings.TrimSpace(teamCell.Text()),
			PlayerName: strings.TrimSpace(playerCell.Text()),
			PlayerSlug: slug,
		})
	})
	return picks, nil
}
