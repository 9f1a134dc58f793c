package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hooplytics/pickarb/pkg/models"
	"github.com/hooplytics/pickarb/pkg/names"
	"github.com/hooplytics/pickarb/pkg/scrape"
)

// KaggleCandidates are the file names tried, in order, when no explicit
// input path is given to the ingest.
var KaggleCandidates = []string{
	"kaggle_nba_salaries.csv",
	"NBA Player Salaries_2000-2025.csv",
}

// FindKaggleInput returns the first candidate salary export present in dir.
func FindKaggleInput(dir string) (string, error) {
	for _, name := range KaggleCandidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no salary CSV found in %s (expected one of: %s)",
		dir, strings.Join(KaggleCandidates, ", "))
}

// IngestKaggle converts a pre-downloaded salary export (columns Player,
// Season, Salary) into salary records: whitespace normalized, currency
// cleaned, the season's leading year taken as season_end, names
// canonicalized.
func IngestKaggle(path string) ([]models.SalaryRecord, error) {
	t, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if err := t.require("Player", "Season", "Salary"); err != nil {
		return nil, err
	}
	records := make([]models.SalaryRecord, 0, len(t.rows))
	for _, row := range t.rows {
		player := normalizeSpace(t.get(row, "Player"))
		season := strings.TrimSpace(t.get(row, "Season"))
		if player == "" || len(season) < 4 {
			continue
		}
		seasonEnd, err := strconv.Atoi(season[:4])
		if err != nil {
			continue
		}
		records = append(records, models.SalaryRecord{
			Player:        player,
			CanonicalName: names.Canonical(player),
			SeasonEnd:     seasonEnd,
			Salary:        scrape.CleanMoney(t.get(row, "Salary")),
		})
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: no salary rows parsed", path)
	}
	return records, nil
}

// SaveRawSalaries writes the player_salary.csv consumed by the builder.
func SaveRawSalaries(dataDir string, records []models.SalaryRecord) error {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{r.Player, r.CanonicalName, itoa(r.SeasonEnd), ftoa(r.Salary)}
	}
	return writeCSV(filepath.Join(dataDir, "player_salary.csv"),
		[]string{"player", "canonical_name", "season_end", "salary"}, rows)
}
