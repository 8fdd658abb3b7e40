package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"

	"github.com/kkgogogo17/binance-public-data/internal/config"
	"github.com/kkgogogo17/binance-public-data/internal/downloader"
	"github.com/kkgogogo17/binance-public-data/internal/exchange"
	"github.com/kkgogogo17/binance-public-data/internal/xhttp"
)

func runDownload(args []string) int {
	fs := newDownloadFlags("download")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: bpd download [options]

Download kline archive files for symbols x intervals x dates into a local
folder or bucket URL. Files that already exist with non-zero size are
skipped, so re-running a batch is cheap.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	cfg, err := resolveConfig(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\n[bpd] Received interrupt, shutting down...")
		cancel()
	}()

	return download(ctx, cfg)
}

func download(ctx context.Context, cfg config.Config) int {
	startDate, _ := config.ParseDate(cfg.StartDate)
	endDate, _ := config.ParseDate(cfg.EndDate)

	// Raw range hint handed through to the fetcher, set only when the
	// operator supplied both bounds.
	var dateRange string
	if cfg.StartDate != "" && cfg.EndDate != "" {
		dateRange = cfg.StartDate + " " + cfg.EndDate
	}

	client := xhttp.NewClient(xhttp.DefaultOptions())

	symbols := cfg.Symbols
	if len(symbols) == 0 {
		fmt.Println("Fetching all symbols from exchange...")
		var err error
		symbols, err = exchange.ListSymbols(ctx, client, cfg.TradingType)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitFailure
		}
	}
	fmt.Printf("Found %d symbols\n", len(symbols))

	bucket, err := openBucket(ctx, cfg.Folder)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening destination: %v\n", err)
		return ExitFailure
	}
	defer bucket.Close()

	fetcher := downloader.NewHTTPFetcher(client, "")
	d := downloader.New(bucket, fetcher, os.Stdout)

	opts := downloader.QueueOptions{
		TradingType: cfg.TradingType,
		Checksum:    cfg.Checksum,
		StartDate:   startDate,
		EndDate:     endDate,
		DateRange:   dateRange,
	}

	if !cfg.SkipMonthly {
		years := cfg.Years
		if len(years) == 0 {
			for y := exchange.DefaultStartDate.Year(); y <= time.Now().UTC().Year(); y++ {
				years = append(years, y)
			}
		}
		months := cfg.Months
		if len(months) == 0 {
			for m := 1; m <= 12; m++ {
				months = append(months, m)
			}
		}

		fmt.Println("Building monthly download queue...")
		queue := downloader.BuildMonthlyQueue(symbols, cfg.Intervals, years, months, opts)
		d.Run(ctx, queue, cfg.Workers)
	}

	if !cfg.SkipDaily {
		dates := cfg.Dates
		if len(dates) == 0 {
			dates = dailyDates(startDate, endDate)
		}

		fmt.Println("Building daily download queue...")
		queue := downloader.BuildDailyQueue(symbols, cfg.Intervals, dates, opts)
		d.Run(ctx, queue, cfg.Workers)
	}

	if ctx.Err() != nil {
		return ExitFailure
	}
	return ExitSuccess
}

// dailyDates generates every date token in the configured range, falling
// back to the repository start date and today.
func dailyDates(start, end time.Time) []string {
	if start.IsZero() {
		start = exchange.DefaultStartDate
	}
	if end.IsZero() {
		end = time.Now().UTC().Truncate(24 * time.Hour)
	}

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format("2006-01-02"))
	}
	return dates
}

// openBucket opens the destination. Bucket URLs pass through to the
// driver registry; anything else is treated as a local directory, created
// if needed.
func openBucket(ctx context.Context, folder string) (*blob.Bucket, error) {
	if strings.Contains(folder, "://") {
		return blob.OpenBucket(ctx, folder)
	}

	if folder == "" {
		folder = "."
	}
	abs, err := filepath.Abs(folder)
	if err != nil {
		return nil, err
	}
	return fileblob.OpenBucket(abs, &fileblob.Options{CreateDir: true})
}
