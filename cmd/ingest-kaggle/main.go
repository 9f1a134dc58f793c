// Command ingest-kaggle converts a pre-downloaded salary export (columns
// Player, Season, Salary) into the player_salary.csv consumed by
// build-data. It is the offline alternative to fetch-salaries.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hooplytics/pickarb/internal/config"
	"github.com/hooplytics/pickarb/internal/logging"
	"github.com/hooplytics/pickarb/pkg/dataset"
)

var version = "dev"

func main() {
	versionFlag := flag.Bool("version", false, "Print version information and exit")
	inPath := flag.String("in", "", "Input CSV path (default: known file names under the data directory)")
	flag.Parse()
	if *versionFlag {
		fmt.Printf("ingest-kaggle version %s\n", version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	path := *inPath
	if path == "" {
		path, err = dataset.FindKaggleInput(cfg.DataDir)
		if err != nil {
			slog.Error("no input found", "error", err)
			os.Exit(1)
		}
	}

	records, err := dataset.IngestKaggle(path)
	if err != nil {
		slog.Error("ingest failed", "error", err)
		os.Exit(1)
	}
	if err := dataset.SaveRawSalaries(cfg.DataDir, records); err != nil {
		slog.Error("write failed", "error", err)
		os.Exit(1)
	}
	slog.Info("wrote player_salary.csv",
		"source", filepath.Base(path), "rows", len(records), "data_dir", cfg.DataDir)
}
