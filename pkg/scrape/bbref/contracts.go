package bbref

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hooplytics/pickarb/pkg/models"
	"github.com/hooplytics/pickarb/pkg/scrape"
)

const contractsURL = baseURL + "/contracts/players.html"

var seasonLabelRE = regexp.MustCompile(`^\d{4}-\d{2}$`)

// PlayerContracts returns the league contracts table in long form, one
// record per player-season with a non-empty salary cell. The wide table has
// one column per future season; columns are recognized by their
// "YYYY-YY" labels so added or removed seasons don't break the parse.
func (s *Site) PlayerContracts(ctx context.Context) ([]models.SalaryRecord, error) {
	body, err := s.plain.GetOK(ctx, contractsURL)
	if err != nil {
		return nil, err
	}
	table, err := scrape.FirstTable(body)
	if err != nil {
		return nil, fmt.Errorf("contracts: %w", err)
	}
	idx := scrape.HeaderIndex(table)

	playerCol, okPlayer := idx["Player"]
	teamCol, okTeam := idx["Tm"]
	if !okPlayer || !okTeam {
		return nil, fmt.Errorf("contracts: expected Player/Tm columns not found (got %v)", keys(idx))
	}
	type seasonCol struct {
		col       int
		seasonEnd int
	}
	var seasons []seasonCol
	for label, col := range idx {
		if !seasonLabelRE.MatchString(label) {
			continue
		}
		end, perr := SeasonEndYear(label)
		if perr != nil {
			continue
		}
		seasons = append(seasons, seasonCol{col: col, seasonEnd: end})
	}
	if len(seasons) == 0 {
		return nil, fmt.Errorf("contracts: no season columns found (got %v)", keys(idx))
	}

	var records []models.SalaryRecord
	scrape.BodyRows(table, func(row *goquery.Selection) {
		cells := row.Find("th, td")
		player := strings.TrimSpace(cells.Eq(playerCol).Text())
		if player == "" || player == "Player" {
			return
		}
		team := strings.TrimSpace(cells.Eq(teamCol).Text())
		for _, sc := range seasons {
			salary := scrape.CleanMoney(cells.Eq(sc.col).Text())
			if salary <= 0 {
				continue
			}
			records = append(records, models.SalaryRecord{
				Player:    player,
				Team:      team,
				SeasonEnd: sc.seasonEnd,
				Salary:    salary,
			})
		}
	})
	if len(records) == 0 {
		return nil, fmt.Errorf("contracts: no rows parsed")
	}
	return records, nil
}

// SeasonEndYear converts a "YYYY-YY" (or "YYYY-YYYY") season label to the
// calendar year the season ends in.
func SeasonEndYear(label string) (int, error) {
	start, end, ok := strings.Cut(label, "-")
	if !ok || len(start) != 4 {
		return 0, fmt.Errorf("bad season label %q", label)
	}
	var startYear int
	if _, err := fmt.Sscanf(start, "%d", &startYear); err != nil {
		return 0, fmt.Errorf("bad season label %q", label)
	}
	if len(end) == 4 {
		var endYear int
		if _, err := fmt.Sscanf(end, "%d", &endYear); err != nil {
			return 0, fmt.Errorf("bad season label %q", label)
		}
		return endYear, nil
	}
	var endYear int
	if _, err := fmt.Sscanf(start[:2]+end, "%d", &endYear); err != nil {
		return 0, fmt.Errorf("bad season label %q", label)
	}
	return endYear, nil
}
