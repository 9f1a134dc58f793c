package dataset

import (
	"fmt"

	"github.com/hooplytics/pickarb/pkg/models"
)

// LoadMarketCSV loads the joined market table written by SaveMarket.
func LoadMarketCSV(path string) ([]models.MarketRow, error) {
	t, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if err := t.require("canonical_name", "season_end", "war", "salary"); err != nil {
		return nil, err
	}
	rows := make([]models.MarketRow, 0, len(t.rows))
	for _, row := range t.rows {
		rows = append(rows, models.MarketRow{
			PlayerSlug:    t.get(row, "player_slug"),
			PlayerName:    t.get(row, "player_name"),
			CanonicalName: t.get(row, "canonical_name"),
			SeasonEnd:     t.getInt(row, "season_end"),
			War:           t.getFloat(row, "war"),
			Salary:        t.getFloat(row, "salary"),
		})
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: no market rows", path)
	}
	return rows, nil
}

// LoadPickOutcomesCSV loads the pick-outcome table written by
// SavePickOutcomes.
func LoadPickOutcomesCSV(path string) ([]models.PickOutcome, error) {
	t, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if err := t.require("draft_year", "pick", "war_window", "cost_window"); err != nil {
		return nil, err
	}
	rows := make([]models.PickOutcome, 0, len(t.rows))
	for _, row := range t.rows {
		rows = append(rows, models.PickOutcome{
			DraftYear:     t.getInt(row, "draft_year"),
			Pick:          t.getInt(row, "pick"),
			PlayerSlug:    t.get(row, "player_slug"),
			PlayerName:    t.get(row, "player_name"),
			CanonicalName: t.get(row, "canonical_name"),
			WarWindow:     t.getFloat(row, "war_window"),
			CostWindow:    t.getFloat(row, "cost_window"),
		})
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: no pick outcomes", path)
	}
	return rows, nil
}
