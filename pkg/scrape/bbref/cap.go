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

const capURL = baseURL + "/contracts/salary-cap-history.html"

// CapHistory returns the league salary cap for every listed season.
// The table schema ("Year", "Salary Cap") is the external contract; a page
// without those columns fails fast rather than producing garbage joins.
func (s *Site) CapHistory(ctx context.Context) ([]models.CapRecord, error) {
	body, err := s.cap.GetOK(ctx, capURL)
	if err != nil {
		return nil, err
	}
	return parseCapBody(body)
}

func parseCapBody(body []byte) ([]models.CapRecord, error) {
	table, err := scrape.FirstTable(body)
	if err != nil {
		return nil, fmt.Errorf("cap history: %w", err)
	}
	idx := scrape.HeaderIndex(table)
	yearCol, okYear := idx["Year"]
	capCol, okCap := idx["Salary Cap"]
	if !okYear || !okCap {
		return nil, fmt.Errorf("cap history: unexpected table schema (columns %v)", keys(idx))
	}

	var records []models.CapRecord
	scrape.BodyRows(table, func(row *goquery.Selection) {
		cells := row.Find("th, td")
		season := strings.TrimSpace(cells.Eq(yearCol).Text())
		if len(season) < 4 {
			return
		}
		start, err := strconv.Atoi(season[:4])
		if err != nil {
			return
		}
		records = append(records, models.CapRecord{
			Season:      season,
			SeasonStart: start,
			Cap:         scrape.CleanMoney(cells.Eq(capCol).Text()),
		})
	})
	if len(records) == 0 {
		return nil, fmt.Errorf("cap history: no rows parsed")
	}
	return records, nil
}

func keys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
