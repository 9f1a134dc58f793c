// Command build-data fetches and assembles the pipeline's datasets: the
// WAR table, cleaned salaries, draft classes, the joined market table, and
// pick outcomes over the rookie window, plus the auxiliary cap-history and
// free-agent-signing tables. It runs once to completion and writes CSVs.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hooplytics/pickarb/internal/config"
	"github.com/hooplytics/pickarb/internal/logging"
	"github.com/hooplytics/pickarb/internal/report"
	"github.com/hooplytics/pickarb/pkg/dataset"
	"github.com/hooplytics/pickarb/pkg/models"
	"github.com/hooplytics/pickarb/pkg/scrape/bbref"
)

// Version is set during build using ldflags.
var version = "dev"

func main() {
	versionFlag := flag.Bool("version", false, "Print version information and exit")
	flag.Parse()
	if *versionFlag {
		fmt.Printf("build-data version %s\n", version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	if err := run(context.Background(), cfg); err != nil {
		slog.Error("build failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	site := bbref.New()
	if cfg.UserAgent != "" {
		site.SetUserAgent(cfg.UserAgent)
	}
	b := dataset.NewBuilder(cfg.DataDir)
	b.BBRef = site
	b.StartSeason = cfg.StartSeason
	b.EndSeason = cfg.EndSeason
	b.DraftStart = cfg.DraftStart
	b.DraftEnd = cfg.DraftEnd
	b.RookieYears = cfg.RookieYears

	summary := report.NewBuildSummary()

	war, err := loadWar(ctx, cfg, b)
	if err != nil {
		return err
	}
	if err := b.SaveWar(war); err != nil {
		return err
	}
	summary.WarRows = len(war)

	rawSalaries, err := b.LoadSalaryCSV(filepath.Join(cfg.DataDir, "player_salary.csv"))
	if err != nil {
		return fmt.Errorf("loading salaries (run fetch-salaries or ingest-kaggle first): %w", err)
	}
	salaries := dataset.CleanSalaries(rawSalaries)
	if err := b.SaveCleanSalaries(salaries); err != nil {
		return err
	}
	summary.SalaryRows = len(salaries)

	draft, err := b.BuildDraft(ctx)
	if err != nil {
		return err
	}
	if err := b.SaveDraft(draft); err != nil {
		return err
	}
	summary.DraftRows = len(draft)

	market := dataset.BuildMarket(war, salaries)
	if err := b.SaveMarket(market); err != nil {
		return err
	}
	summary.MarketRows = len(market)

	outcomes := b.BuildPickOutcomes(draft, war, salaries)
	if err := b.SavePickOutcomes(outcomes); err != nil {
		return err
	}
	summary.PickRows = len(outcomes)

	audit := dataset.AuditJoin(outcomes, salaries)
	if err := b.SaveAudit(audit); err != nil {
		return err
	}
	summary.UnmatchedPicks = len(audit)

	if cfg.FetchCapHistory {
		caps, err := b.BBRef.CapHistory(ctx)
		if err != nil {
			// Cap history is context for readers, not a join input; a
			// failed fetch warns and the build carries on.
			slog.Warn("cap history unavailable", "error", err)
		} else if err := b.SaveCapHistory(caps); err != nil {
			return err
		} else {
			summary.CapRows = len(caps)
		}
	}

	if cfg.FetchTransactions {
		signings, err := fetchSignings(ctx, cfg, b)
		if err != nil {
			slog.Warn("transactions unavailable", "error", err)
		} else if err := b.SaveSignings(signings); err != nil {
			return err
		} else {
			summary.SigningRows = len(signings)
		}
	}

	summary.UniqueCanonicalNames = dataset.UniqueCanonicalNames(war, draft)
	return summary.Write(filepath.Join(cfg.DataDir, "build_summary.json"))
}

func loadWar(ctx context.Context, cfg *config.Config, b *dataset.Builder) ([]models.WarRecord, error) {
	warStart := cfg.WarStartSeason
	if warStart == 0 {
		warStart = cfg.StartSeason
	}
	saved := b.StartSeason
	b.StartSeason = warStart
	defer func() { b.StartSeason = saved }()

	switch cfg.WarSource {
	case "scrape":
		return b.FetchWarSeasons(ctx)
	default:
		return b.LoadWarCSV(cfg.WarCSVPath)
	}
}

func fetchSignings(ctx context.Context, cfg *config.Config, b *dataset.Builder) ([]models.FreeAgentSigning, error) {
	var all []models.FreeAgentSigning
	for seasonEnd := cfg.StartSeason; seasonEnd <= cfg.EndSeason; seasonEnd++ {
		signings, err := b.BBRef.FreeAgentSignings(ctx, seasonEnd)
		if err != nil {
			slog.Warn("skipping transactions season", "season_end", seasonEnd, "error", err)
			continue
		}
		all = append(all, signings...)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no signings parsed for %d-%d", cfg.StartSeason, cfg.EndSeason)
	}
	return all, nil
}
