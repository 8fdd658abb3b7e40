package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/kkgogogo17/binance-public-data/internal/config"
)

// downloadFlags holds raw flag values for the download command.
type downloadFlags struct {
	*flag.FlagSet

	configPath  *string
	tradingType *string
	symbols     *string
	intervals   *string
	dates       *string
	years       *string
	months      *string
	startDate   *string
	endDate     *string
	folder      *string
	checksum    *bool
	workers     *int
	skipDaily   *bool
	skipMonthly *bool
}

func newDownloadFlags(name string) *downloadFlags {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	return &downloadFlags{
		FlagSet:     fs,
		configPath:  fs.String("config", "", "Path to YAML config file"),
		tradingType: fs.String("type", "", "Trading type: spot, um, or cm (default spot)"),
		symbols:     fs.String("symbols", "", "Comma-separated symbols (default: all symbols from the exchange)"),
		intervals:   fs.String("intervals", "", "Comma-separated kline intervals (default: all)"),
		dates:       fs.String("dates", "", "Comma-separated dates (YYYY-MM-DD) for the daily queue"),
		years:       fs.String("years", "", "Comma-separated years for the monthly queue"),
		months:      fs.String("months", "", "Comma-separated months (1-12) for the monthly queue"),
		startDate:   fs.String("start-date", "", "Inclusive start date (YYYY-MM-DD)"),
		endDate:     fs.String("end-date", "", "Inclusive end date (YYYY-MM-DD)"),
		folder:      fs.String("folder", "", "Destination folder or bucket URL (default: working directory)"),
		checksum:    fs.Bool("checksum", false, "Also download .CHECKSUM sidecar files"),
		workers:     fs.Int("workers", 0, "Number of parallel download workers (default 512)"),
		skipDaily:   fs.Bool("skip-daily", false, "Skip the daily archive queue"),
		skipMonthly: fs.Bool("skip-monthly", false, "Skip the monthly archive queue"),
	}
}

// resolveConfig builds the effective config: defaults, then YAML file,
// then environment, then flags.
func resolveConfig(f *downloadFlags) (config.Config, error) {
	cfg := config.Default()

	if *f.configPath != "" {
		loaded, err := config.LoadFromFile(*f.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return config.Config{}, err
	}

	override := config.Config{
		TradingType: *f.tradingType,
		Symbols:     splitList(*f.symbols),
		Intervals:   splitList(*f.intervals),
		Dates:       splitList(*f.dates),
		StartDate:   *f.startDate,
		EndDate:     *f.endDate,
		Folder:      *f.folder,
		Checksum:    *f.checksum,
		Workers:     *f.workers,
		SkipDaily:   *f.skipDaily,
		SkipMonthly: *f.skipMonthly,
	}

	years, err := splitInts(*f.years)
	if err != nil {
		return config.Config{}, fmt.Errorf("parse -years: %w", err)
	}
	override.Years = years

	months, err := splitInts(*f.months)
	if err != nil {
		return config.Config{}, fmt.Errorf("parse -months: %w", err)
	}
	override.Months = months

	cfg = cfg.Merge(override)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func splitInts(s string) ([]int, error) {
	var out []int
	for _, p := range splitList(s) {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
