// Package dataset builds the pipeline's tabular artifacts: it orchestrates
// the fetchers over season ranges, canonicalizes names, reconciles salary
// duplicates, joins WAR to salary, and derives pick outcomes over the rookie
// window.
package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hooplytics/pickarb/pkg/models"
	"github.com/hooplytics/pickarb/pkg/names"
	"github.com/hooplytics/pickarb/pkg/scrape/bbref"
)

// DefaultRookieYears is the length of the rookie-contract window used to sum
// a drafted player's early-career value and cost.
const DefaultRookieYears = 4

// Fetcher is the slice of the Basketball-Reference site the builder needs.
// *bbref.Site satisfies it; tests substitute stubs.
type Fetcher interface {
	DraftClass(ctx context.Context, seasonEnd int) ([]models.DraftPick, error)
	SeasonWinShares(ctx context.Context, seasonEnd int) ([]models.WarRecord, error)
	CapHistory(ctx context.Context) ([]models.CapRecord, error)
	FreeAgentSignings(ctx context.Context, seasonEnd int) ([]models.FreeAgentSigning, error)
}

// Builder holds the directories and ranges one dataset build runs with.
type Builder struct {
	DataDir     string
	StartSeason int // first season_end included in WAR/salary tables
	EndSeason   int // last season_end included
	DraftStart  int // first draft class fetched
	DraftEnd    int // last draft class fetched
	RookieYears int

	BBRef Fetcher
}

// NewBuilder applies defaults matching the published study: WAR 2017-2024,
// salaries 2016-2024, draft classes 2016-2020, four-season rookie window.
func NewBuilder(dataDir string) *Builder {
	return &Builder{
		DataDir:     dataDir,
		StartSeason: 2016,
		EndSeason:   2024,
		DraftStart:  2016,
		DraftEnd:    2020,
		RookieYears: DefaultRookieYears,
		BBRef:       bbref.New(),
	}
}

// LoadWarCSV loads WAR records from a local RAPTOR-style export
// (player_id, player_name, season, war_total), filtered to the builder's
// season range and canonicalized.
func (b *Builder) LoadWarCSV(path string) ([]models.WarRecord, error) {
	t, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if err := t.require("player_id", "player_name", "season", "war_total"); err != nil {
		return nil, err
	}
	var records []models.WarRecord
	for _, row := range t.rows {
		seasonEnd := t.getInt(row, "season")
		if seasonEnd < b.StartSeason || seasonEnd > b.EndSeason {
			continue
		}
		name := t.get(row, "player_name")
		records = append(records, models.WarRecord{
			PlayerSlug:    t.get(row, "player_id"),
			PlayerName:    name,
			CanonicalName: names.Canonical(name),
			SeasonEnd:     seasonEnd,
			War:           t.getFloat(row, "war_total"),
		})
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: no WAR rows in season range %d-%d", path, b.StartSeason, b.EndSeason)
	}
	return records, nil
}

// FetchWarSeasons scrapes win shares for every season in the builder's
// range. A season that fails after its retry budget aborts the build; a
// silently missing WAR season would zero out every downstream join.
func (b *Builder) FetchWarSeasons(ctx context.Context) ([]models.WarRecord, error) {
	var records []models.WarRecord
	for seasonEnd := b.StartSeason; seasonEnd <= b.EndSeason; seasonEnd++ {
		recs, err := b.BBRef.SeasonWinShares(ctx, seasonEnd)
		if err != nil {
			return nil, fmt.Errorf("win shares %d: %w", seasonEnd, err)
		}
		for i := range recs {
			recs[i].CanonicalName = names.Canonical(recs[i].PlayerName)
		}
		slog.Info("fetched win shares", "season_end", seasonEnd, "rows", len(recs))
		records = append(records, recs...)
	}
	return records, nil
}

// SaveWar persists the WAR table.
func (b *Builder) SaveWar(records []models.WarRecord) error {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{r.PlayerSlug, r.PlayerName, r.CanonicalName, itoa(r.SeasonEnd), ftoa(r.War)}
	}
	return writeCSV(filepath.Join(b.DataDir, "player_war.csv"),
		[]string{"player_slug", "player_name", "canonical_name", "season_end", "war"}, rows)
}

// LoadSalaryCSV loads the raw salary table written by fetch-salaries or
// ingest-kaggle (player, season_end, salary, optionally canonical_name),
// canonicalizing where the source didn't.
func (b *Builder) LoadSalaryCSV(path string) ([]models.SalaryRecord, error) {
	t, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if err := t.require("player", "season_end", "salary"); err != nil {
		return nil, err
	}
	hasCanonical := t.has("canonical_name")
	var records []models.SalaryRecord
	for _, row := range t.rows {
		seasonEnd := t.getInt(row, "season_end")
		if seasonEnd < b.StartSeason || seasonEnd > b.EndSeason {
			continue
		}
		player := t.get(row, "player")
		canonical := ""
		if hasCanonical {
			canonical = t.get(row, "canonical_name")
		}
		if canonical == "" {
			canonical = names.Canonical(player)
		}
		records = append(records, models.SalaryRecord{
			Player:        player,
			CanonicalName: canonical,
			SeasonEnd:     seasonEnd,
			Salary:        t.getFloat(row, "salary"),
		})
	}
	return records, nil
}

// CleanSalaries reconciles salary rows across sources by keeping the MAX
// salary per (canonical name, season). Max is order- and duplicate-
// independent, so repeated ingests and shuffled inputs produce the same
// table.
func CleanSalaries(records []models.SalaryRecord) []models.SalaryRecord {
	type key struct {
		canonical string
		seasonEnd int
	}
	best := make(map[key]models.SalaryRecord)
	for _, r := range records {
		k := key{r.CanonicalName, r.SeasonEnd}
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
		if out[i].CanonicalName != out[j].CanonicalName {
			return out[i].CanonicalName < out[j].CanonicalName
		}
		return out[i].SeasonEnd < out[j].SeasonEnd
	})
	return out
}

// SaveCleanSalaries persists the reconciled salary table.
func (b *Builder) SaveCleanSalaries(records []models.SalaryRecord) error {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{r.CanonicalName, itoa(r.SeasonEnd), ftoa(r.Salary)}
	}
	return writeCSV(filepath.Join(b.DataDir, "player_salary_clean.csv"),
		[]string{"canonical_name", "season_end", "salary"}, rows)
}

// BuildDraft fetches every draft class in the builder's range. One class's
// failure logs a warning and the build continues; zero classes overall is an
// error.
func (b *Builder) BuildDraft(ctx context.Context) ([]models.DraftPick, error) {
	var picks []models.DraftPick
	fetched := 0
	for seasonEnd := b.DraftStart; seasonEnd <= b.DraftEnd; seasonEnd++ {
		class, err := b.BBRef.DraftClass(ctx, seasonEnd)
		if err != nil {
			slog.Warn("failed to fetch draft class, continuing", "season_end", seasonEnd, "error", err)
			continue
		}
		if len(class) == 0 {
			slog.Warn("empty draft class", "season_end", seasonEnd)
			continue
		}
		for i := range class {
			class[i].CanonicalName = names.Canonical(class[i].PlayerName)
		}
		slog.Info("fetched draft class", "season_end", seasonEnd, "picks", len(class))
		picks = append(picks, class...)
		fetched++
	}
	if fetched == 0 {
		return nil, fmt.Errorf("no draft data fetched for %d-%d", b.DraftStart, b.DraftEnd)
	}
	return picks, nil
}

// SaveDraft persists the draft-class table.
func (b *Builder) SaveDraft(picks []models.DraftPick) error {
	rows := make([][]string, len(picks))
	for i, p := range picks {
		rows[i] = []string{itoa(p.SeasonEnd), itoa(p.Pick), p.Team, p.PlayerName, p.PlayerSlug, p.CanonicalName}
	}
	return writeCSV(filepath.Join(b.DataDir, "draft_classes.csv"),
		[]string{"season_end", "pick", "team", "player_name", "player_slug", "canonical_name"}, rows)
}

// BuildMarket inner-joins WAR and salary on (canonical name, season_end),
// keeping only positive-WAR rows. Canonical name is the fallback key here
// because salary sources carry no stable player id.
func BuildMarket(war []models.WarRecord, salary []models.SalaryRecord) []models.MarketRow {
	type key struct {
		canonical string
		seasonEnd int
	}
	salaries := make(map[key]float64, len(salary))
	for _, s := range salary {
		salaries[key{s.CanonicalName, s.SeasonEnd}] = s.Salary
	}
	var market []models.MarketRow
	for _, w := range war {
		if w.War <= 0 {
			continue
		}
		sal, ok := salaries[key{w.CanonicalName, w.SeasonEnd}]
		if !ok {
			continue
		}
		market = append(market, models.MarketRow{
			PlayerSlug:    w.PlayerSlug,
			PlayerName:    w.PlayerName,
			CanonicalName: w.CanonicalName,
			SeasonEnd:     w.SeasonEnd,
			War:           w.War,
			Salary:        sal,
		})
	}
	return market
}

// SaveMarket persists the joined market table.
func (b *Builder) SaveMarket(market []models.MarketRow) error {
	rows := make([][]string, len(market))
	for i, m := range market {
		rows[i] = []string{m.PlayerSlug, m.PlayerName, m.CanonicalName, itoa(m.SeasonEnd), ftoa(m.War), ftoa(m.Salary)}
	}
	return writeCSV(filepath.Join(b.DataDir, "salary_market_raw.csv"),
		[]string{"player_slug", "player_name", "canonical_name", "season_end", "war", "salary"}, rows)
}

// BuildPickOutcomes sums each drafted player's WAR and salary cost over the
// rookie window [draftYear+1, draftYear+N]. A player-season absent from
// either lookup contributes zero through the explicit branch below; "no
// data" and "zero value" are deliberately indistinguishable here, which
// biases cost estimates for players missing from the sources. That
// simplification is inherited from the study design, not an accident.
func (b *Builder) BuildPickOutcomes(draft []models.DraftPick, war []models.WarRecord, salary []models.SalaryRecord) []models.PickOutcome {
	type slugKey struct {
		slug      string
		seasonEnd int
	}
	type nameKey struct {
		canonical string
		seasonEnd int
	}
	warLookup := make(map[slugKey]float64, len(war))
	for _, w := range war {
		warLookup[slugKey{w.PlayerSlug, w.SeasonEnd}] = w.War
	}
	salaryLookup := make(map[nameKey]float64, len(salary))
	for _, s := range salary {
		salaryLookup[nameKey{s.CanonicalName, s.SeasonEnd}] = s.Salary
	}

	rookieYears := b.RookieYears
	if rookieYears <= 0 {
		rookieYears = DefaultRookieYears
	}
	outcomes := make([]models.PickOutcome, 0, len(draft))
	for _, pick := range draft {
		var warSum, costSum float64
		for seasonEnd := pick.SeasonEnd + 1; seasonEnd <= pick.SeasonEnd+rookieYears; seasonEnd++ {
			if w, ok := warLookup[slugKey{pick.PlayerSlug, seasonEnd}]; ok {
				warSum += w
			} else {
				// Missing season: counts as zero WAR, not an error.
				slog.Debug("no WAR for rookie season", "slug", pick.PlayerSlug, "season_end", seasonEnd)
			}
			if s, ok := salaryLookup[nameKey{pick.CanonicalName, seasonEnd}]; ok {
				costSum += s
			} else {
				// Missing salary: counts as zero cost, not an error.
				slog.Debug("no salary for rookie season", "canonical_name", pick.CanonicalName, "season_end", seasonEnd)
			}
		}
		outcomes = append(outcomes, models.PickOutcome{
			DraftYear:     pick.SeasonEnd,
			Pick:          pick.Pick,
			PlayerSlug:    pick.PlayerSlug,
			PlayerName:    pick.PlayerName,
			CanonicalName: pick.CanonicalName,
			WarWindow:     warSum,
			CostWindow:    costSum,
		})
	}
	return outcomes
}

// SavePickOutcomes persists the pick-outcome table. The file name carries
// the window length, e.g. pick_outcomes_first4.csv.
func (b *Builder) SavePickOutcomes(outcomes []models.PickOutcome) error {
	rows := make([][]string, len(outcomes))
	for i, o := range outcomes {
		rows[i] = []string{itoa(o.DraftYear), itoa(o.Pick), o.PlayerSlug, o.PlayerName, o.CanonicalName, ftoa(o.WarWindow), ftoa(o.CostWindow)}
	}
	return writeCSV(b.PickOutcomesPath(),
		[]string{"draft_year", "pick", "player_slug", "player_name", "canonical_name", "war_window", "cost_window"}, rows)
}

// PickOutcomesPath returns the pick-outcome CSV path for the builder's
// rookie window.
func (b *Builder) PickOutcomesPath() string {
	rookieYears := b.RookieYears
	if rookieYears <= 0 {
		rookieYears = DefaultRookieYears
	}
	return filepath.Join(b.DataDir, fmt.Sprintf("pick_outcomes_first%d.csv", rookieYears))
}

// SaveCapHistory persists the league cap table.
func (b *Builder) SaveCapHistory(records []models.CapRecord) error {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{r.Season, itoa(r.SeasonStart), ftoa(r.Cap)}
	}
	return writeCSV(filepath.Join(b.DataDir, "salary_cap_history.csv"),
		[]string{"season", "season_start", "cap"}, rows)
}

// SaveSignings persists the free-agent signings table.
func (b *Builder) SaveSignings(signings []models.FreeAgentSigning) error {
	rows := make([][]string, len(signings))
	for i, s := range signings {
		rows[i] = []string{itoa(s.SeasonEnd), s.Date, s.Player, s.Team}
	}
	return writeCSV(filepath.Join(b.DataDir, "free_agent_signings.csv"),
		[]string{"season_end", "date", "player", "team"}, rows)
}

// UniqueCanonicalNames counts distinct canonical names across the WAR and
// draft tables, a rough coverage indicator for the summary report.
func UniqueCanonicalNames(war []models.WarRecord, draft []models.DraftPick) int {
	seen := make(map[string]bool)
	for _, w := range war {
		seen[w.CanonicalName] = true
	}
	for _, d := range draft {
		seen[d.CanonicalName] = true
	}
	return len(seen)
}

// normalizeSpace collapses runs of whitespace to single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
