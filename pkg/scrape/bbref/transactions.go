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

var freeAgentRE = regexp.MustCompile(`(?i)signed as a free agent`)

const signingMarker = " signed as a free agent with "

// FreeAgentSignings returns free-agent signings from the transactions log of
// the season ending in seasonEnd (so seasonEnd=2024 captures summer 2023
// signings). The log is free text; lines that don't match the expected
// "date - player signed as a free agent with team" shape are skipped.
func (s *Site) FreeAgentSignings(ctx context.Context, seasonEnd int) ([]models.FreeAgentSigning, error) {
	url := fmt.Sprintf("%s/leagues/NBA_%d_transactions.html", baseURL, seasonEnd)
	body, err := s.plain.GetOK(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := scrape.Document(body)
	if err != nil {
		return nil, err
	}

	var signings []models.FreeAgentSigning
	doc.Find("#content p").Each(func(_ int, p *goquery.Selection) {
		text := strings.Join(strings.Fields(p.Text()), " ")
		if !freeAgentRE.MatchString(text) {
			return
		}
		if rec, ok := parseSigningText(text, seasonEnd); ok {
			signings = append(signings, rec)
		}
	})
	return signings, nil
}

func parseSigningText(text string, seasonEnd int) (models.FreeAgentSigning, bool) {
	date, body, ok := strings.Cut(text, " - ")
	if !ok {
		return models.FreeAgentSigning{}, false
	}
	player, team, ok := strings.Cut(body, signingMarker)
	if !ok {
		return models.FreeAgentSigning{}, false
	}
	return models.FreeAgentSigning{
		SeasonEnd: seasonEnd,
		Date:      strings.TrimSpace(date),
		Player:    strings.TrimSpace(player),
		Team:      strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(team), ".")),
	}, true
}
