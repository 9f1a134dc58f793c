// Command fetch-salaries scrapes RealGM roster salaries for a season range
// and writes the reconciled player_salary.csv consumed by build-data.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hooplytics/pickarb/internal/config"
	"github.com/hooplytics/pickarb/internal/logging"
	"github.com/hooplytics/pickarb/pkg/dataset"
	"github.com/hooplytics/pickarb/pkg/models"
	"github.com/hooplytics/pickarb/pkg/names"
	"github.com/hooplytics/pickarb/pkg/scrape/realgm"
)

var version = "dev"

// seasonPause spaces out season batches; RealGM tolerates the per-team
// burst but not back-to-back seasons.
const seasonPause = 600 * time.Millisecond

func main() {
	versionFlag := flag.Bool("version", false, "Print version information and exit")
	flag.Parse()
	if *versionFlag {
		fmt.Printf("fetch-salaries version %s\n", version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	if err := run(context.Background(), cfg); err != nil {
		slog.Error("fetch failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	site := realgm.New()
	site.Workers = cfg.Workers

	var all []models.SalaryRecord
	for seasonEnd := cfg.StartSeason; seasonEnd <= cfg.EndSeason; seasonEnd++ {
		slog.Info("fetching league salaries", "season_end", seasonEnd)
		records, err := site.LeagueSalaries(ctx, seasonEnd)
		if err != nil {
			return fmt.Errorf("season %d: %w", seasonEnd, err)
		}
		slog.Info("fetched league salaries", "season_end", seasonEnd, "rows", len(records))
		all = append(all, records...)
		time.Sleep(seasonPause)
	}

	for i := range all {
		all[i].CanonicalName = names.Canonical(all[i].Player)
	}
	if err := dataset.SaveRawSalaries(cfg.DataDir, all); err != nil {
		return err
	}
	slog.Info("wrote player_salary.csv", "rows", len(all), "data_dir", cfg.DataDir)
	return nil
}
