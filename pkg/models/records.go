// Package models contains data structures shared across the pipeline.
package models

// CapRecord holds the league salary cap for one season.
type CapRecord struct {
	Season      string
	SeasonStart int
	Cap         float64
}

// DraftPick holds one selection from a draft class.
type DraftPick struct {
	SeasonEnd     int
	Pick          int
	Team          string
	PlayerName    string
	PlayerSlug    string
	CanonicalName string
}

// SalaryRecord holds one player-season salary from any source.
type SalaryRecord struct {
	Player        string
	CanonicalName string
	Team          string
	SeasonEnd     int
	Salary        float64
}

// WarRecord holds one player-season wins-above-replacement value.
type WarRecord struct {
	PlayerSlug    string
	PlayerName    string
	CanonicalName string
	SeasonEnd     int
	War           float64
}

// FreeAgentSigning holds one parsed free-agent transaction.
// Player names are kept raw; signings are never joined by canonical name.
type FreeAgentSigning struct {
	SeasonEnd int
	Date      string
	Player    string
	Team      string
}

// MarketRow is a WAR record joined with a salary record for the same
// player-season. Rows only exist where both sides were found and WAR > 0.
type MarketRow struct {
	PlayerSlug    string
	PlayerName    string
	CanonicalName string
	SeasonEnd     int
	War           float64
	Salary        float64
}

// PickOutcome sums a drafted player's WAR and salary cost over the rookie
// window (the N seasons following the draft year).
type PickOutcome struct {
	DraftYear     int
	Pick          int
	PlayerSlug    string
	PlayerName    string
	CanonicalName string
	WarWindow     float64
	CostWindow    float64
}
