package dataset

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/hooplytics/pickarb/pkg/models"
)

// maxSuggestions caps fuzzy matches reported per unmatched pick.
const maxSuggestions = 3

// AuditRow flags one draft pick whose rookie window found no salary rows,
// with near-miss canonical names from the salary key space. The join itself
// treats missing keys as zero cost; the audit makes that policy inspectable
// instead of silent.
type AuditRow struct {
	DraftYear     int
	Pick          int
	PlayerName    string
	CanonicalName string
	Suggestions   []string
}

// AuditJoin reports picks with zero windowed cost and fuzzy name
// suggestions drawn from the distinct canonical names present in the salary
// table.
func AuditJoin(outcomes []models.PickOutcome, salary []models.SalaryRecord) []AuditRow {
	seen := make(map[string]bool)
	var known []string
	for _, s := range salary {
		if s.CanonicalName != "" && !seen[s.CanonicalName] {
			seen[s.CanonicalName] = true
			known = append(known, s.CanonicalName)
		}
	}
	sort.Strings(known)

	var audit []AuditRow
	for _, o := range outcomes {
		if o.CostWindow > 0 {
			continue
		}
		var suggestions []string
		if o.CanonicalName != "" && !seen[o.CanonicalName] {
			matches := fuzzy.Find(o.CanonicalName, known)
			for i, m := range matches {
				if i >= maxSuggestions {
					break
				}
				suggestions = append(suggestions, m.Str)
			}
		}
		audit = append(audit, AuditRow{
			DraftYear:     o.DraftYear,
			Pick:          o.Pick,
			PlayerName:    o.PlayerName,
			CanonicalName: o.CanonicalName,
			Suggestions:   suggestions,
		})
	}
	return audit
}

// SaveAudit persists the join audit. Suggestions are ;-joined in one column.
func (b *Builder) SaveAudit(audit []AuditRow) error {
	rows := make([][]string, len(audit))
	for i, a := range audit {
		rows[i] = []string{itoa(a.DraftYear), itoa(a.Pick), a.PlayerName, a.CanonicalName, strings.Join(a.Suggestions, ";")}
	}
	return writeCSV(filepath.Join(b.DataDir, "join_audit.csv"),
		[]string{"draft_year", "pick", "player_name", "canonical_name", "suggestions"}, rows)
}
