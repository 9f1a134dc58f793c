// Package bbref fetches tables from basketball-reference.com: salary-cap
// history, draft classes, advanced stats (win shares), player contracts,
// per-player salary histories, and free-agent transactions.
//
// Each fetcher keeps the retry constants its upstream page was tuned with;
// they differ slightly per page and are not worth unifying beyond the shared
// retry.Policy shape.
package bbref

import (
	"time"

	"github.com/hooplytics/pickarb/pkg/retry"
	"github.com/hooplytics/pickarb/pkg/scrape"
)

const (
	baseURL = "https://www.basketball-reference.com"
	referer = "https://www.basketball-reference.com/"
)

// Site bundles the per-page clients for basketball-reference.com.
type Site struct {
	cap          *scrape.Client
	draft        *scrape.Client
	advanced     *scrape.Client
	player       *scrape.Client
	plain        *scrape.Client
	salaryCache  *salaryCache
	userAgentSet string
}

// New builds a Site with the default per-page retry policies.
func New() *Site {
	s := &Site{
		cap: scrape.NewClient(30*time.Second, retry.Policy{
			MaxAttempts: 5,
			BaseDelay:   500 * time.Millisecond,
			Multiplier:  1.5,
			MaxDelay:    5 * time.Second,
		}),
		draft: scrape.NewClient(30*time.Second, retry.Policy{
			MaxAttempts: 6,
			BaseDelay:   1500 * time.Millisecond,
			Multiplier:  1.5,
			MaxDelay:    8 * time.Second,
		}),
		advanced: scrape.NewClient(60*time.Second, retry.Policy{
			MaxAttempts: 7,
			BaseDelay:   2 * time.Second,
			Multiplier:  1.6,
			MaxDelay:    10 * time.Second,
		}),
		player: scrape.NewClient(30*time.Second, retry.Policy{
			MaxAttempts: 6,
			BaseDelay:   time.Second,
			Multiplier:  1.4,
			MaxDelay:    8 * time.Second,
		}),
		// Contracts and transactions pages are fetched once, no backoff.
		plain:       scrape.NewClient(30*time.Second, retry.Policy{MaxAttempts: 1}),
		salaryCache: newSalaryCache(),
	}
	for _, c := range []*scrape.Client{s.cap, s.draft, s.advanced, s.player, s.plain} {
		c.Referer = referer
	}
	return s
}

// SetUserAgent overrides the User-Agent on every client.
func (s *Site) SetUserAgent(ua string) {
	for _, c := range []*scrape.Client{s.cap, s.draft, s.advanced, s.player, s.plain} {
		c.UserAgent = ua
	}
}
