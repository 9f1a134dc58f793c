package bbref

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	lru "github.com/hashicorp/golang-lru"

	"github.com/hooplytics/pickarb/pkg/models"
	"github.com/hooplytics/pickarb/pkg/scrape"
)

// salaryCache memoizes per-player salary fetches for the life of the
// process. Sized far above the number of players that exist so eviction
// never fires; the LRU is just a convenient thread-safe map.
type salaryCache struct {
	cache *lru.Cache
}

const salaryCacheSize = 16384

func newSalaryCache() *salaryCache {
	c, err := lru.New(salaryCacheSize)
	if err != nil {
		// Only reachable with a non-positive size constant.
		panic(err)
	}
	return &salaryCache{cache: c}
}

// PlayerSalaries returns a player's season-by-season salary history from
// their Basketball-Reference page. The salary table is embedded in an HTML
// comment with id "all_salaries". Missing pages and missing tables yield an
// empty history (many short-career players have none), never an error.
// Results are memoized by slug.
func (s *Site) PlayerSalaries(ctx context.Context, slug string) ([]models.SalaryRecord, error) {
	if slug == "" {
		return nil, nil
	}
	if cached, ok := s.salaryCache.cache.Get(slug); ok {
		return cached.([]models.SalaryRecord), nil
	}

	url := fmt.Sprintf("%s/players/%s/%s.html", baseURL, slug[:1], slug)
	body, status, err := s.player.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	var records []models.SalaryRecord
	if status < 200 || status >= 300 {
		slog.Warn("player page unavailable, no salary history", "slug", slug, "status", status)
		s.salaryCache.cache.Add(slug, records)
		return records, nil
	}

	table, terr := scrape.TableByID(body, "all_salaries")
	if terr != nil {
		table, terr = scrape.TableByID(body, "salaries")
	}
	if terr != nil {
		s.salaryCache.cache.Add(slug, records)
		return records, nil
	}
	idx := scrape.HeaderIndex(table)
	seasonCol, okSeason := idx["Season"]
	salaryCol, okSalary := idx["Salary"]
	if !okSeason || !okSalary {
		s.salaryCache.cache.Add(slug, records)
		return records, nil
	}
	scrape.BodyRows(table, func(row *goquery.Selection) {
		cells := row.Find("th, td")
		season := strings.TrimSpace(cells.Eq(seasonCol).Text())
		if !strings.Contains(season, "-") {
			return
		}
		end, perr := SeasonEndYear(season)
		if perr != nil {
			return
		}
		records = append(records, models.SalaryRecord{
			Player:    slug,
			SeasonEnd: end,
			Salary:    scrape.CleanMoney(cells.Eq(salaryCol).Text()),
		})
	})
	s.salaryCache.cache.Add(slug, records)
	return records, nil
}
