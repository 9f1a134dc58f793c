// Command arbitrage reads the built datasets and produces the pick-vs-
// free-agent comparison: the market price band, per-bucket pricing tables
// with BUY/NEUTRAL/SELL zones, the three scenario variants, formatted
// export tables, and the two chart images.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hooplytics/pickarb/internal/config"
	"github.com/hooplytics/pickarb/internal/logging"
	"github.com/hooplytics/pickarb/internal/report"
	"github.com/hooplytics/pickarb/pkg/arbitrage"
	"github.com/hooplytics/pickarb/pkg/dataset"
)

var version = "dev"

func main() {
	versionFlag := flag.Bool("version", false, "Print version information and exit")
	flag.Parse()
	if *versionFlag {
		fmt.Printf("arbitrage version %s\n", version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	if err := run(cfg); err != nil {
		slog.Error("arbitrage run failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	market, err := dataset.LoadMarketCSV(filepath.Join(cfg.DataDir, "salary_market_raw.csv"))
	if err != nil {
		return fmt.Errorf("loading market (run build-data first): %w", err)
	}
	outcomesPath := filepath.Join(cfg.DataDir, fmt.Sprintf("pick_outcomes_first%d.csv", cfg.RookieYears))
	outcomes, err := dataset.LoadPickOutcomesCSV(outcomesPath)
	if err != nil {
		return fmt.Errorf("loading pick outcomes (run build-data first): %w", err)
	}

	priced := arbitrage.PrepareMarketPricing(market)
	band, err := arbitrage.ComputeBand(priced)
	if err != nil {
		return err
	}
	if err := arbitrage.WritePricingCSV(priced, filepath.Join(cfg.DataDir, "salary_pricing_prepared.csv")); err != nil {
		return err
	}
	if err := arbitrage.WriteBandCSV(band, filepath.Join(cfg.TableDir, "salary_price_band_overall.csv")); err != nil {
		return err
	}

	picks := arbitrage.PreparePickCosts(outcomes, cfg.RookieYears)
	if err := arbitrage.WritePickCostsCSV(picks, filepath.Join(cfg.DataDir, "pick_costs_prepared.csv")); err != nil {
		return err
	}

	baseline, err := arbitrage.BuildBucketTable(picks, band)
	if err != nil {
		return err
	}
	if err := arbitrage.WriteBucketCSV(baseline, filepath.Join(cfg.TableDir, "pick_bucket_summary.csv")); err != nil {
		return err
	}
	if err := arbitrage.WriteFormattedCSV(arbitrage.FormatForExport(baseline),
		filepath.Join(cfg.TableDir, "table1_arbitrage_summary.csv")); err != nil {
		return err
	}
	report.DisplayBucketTable("Baseline pick pricing", baseline)

	if err := os.MkdirAll(cfg.FigDir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", cfg.FigDir, err)
	}
	if err := arbitrage.PlotArbitrageMap(baseline, band, "Pick-Cap Arbitrage Map",
		filepath.Join(cfg.FigDir, "figure1_arbitrage_map.png")); err != nil {
		return err
	}

	scenarios, err := arbitrage.BuildScenarios(priced, band)
	if err != nil {
		return err
	}
	tables := make([][]arbitrage.BucketSummary, 0, len(scenarios))
	for _, scenario := range scenarios {
		table, err := arbitrage.BuildBucketTable(picks, scenario.Band)
		if err != nil {
			return fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		base := filepath.Join(cfg.TableDir, "table_scenario_"+scenario.Name)
		if err := arbitrage.WriteBucketCSV(table, base+".csv"); err != nil {
			return err
		}
		if err := arbitrage.WriteFormattedCSV(arbitrage.FormatForExport(table), base+"_formatted.csv"); err != nil {
			return err
		}
		report.DisplayBucketTable(scenario.Title, table)
		tables = append(tables, table)
	}
	if err := arbitrage.PlotScenarioBars(baseline, scenarios, tables,
		filepath.Join(cfg.FigDir, "figure2_arbitrage_scenarios.png")); err != nil {
		return err
	}

	slog.Info("arbitrage outputs written",
		"tables", cfg.TableDir, "figures", cfg.FigDir, "scenarios", len(scenarios))
	return nil
}
