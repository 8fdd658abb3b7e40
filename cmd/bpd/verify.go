package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"

	"github.com/kkgogogo17/binance-public-data/internal/config"
	"github.com/kkgogogo17/binance-public-data/internal/verify"
)

func runVerify(args []string) int {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)

	workers := fs.Int("workers", 0, "Number of verification workers (default: CPU count)")
	sequential := fs.Bool("sequential", false, "Verify files one at a time instead of in parallel")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: bpd verify [options] <target>

Verify downloaded archives against their .CHECKSUM sidecar files. The
target is a directory, a bucket URL, or a single data file. Exits 0 only
when every sidecar verifies and no data file is missing.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one target is required")
		fs.Usage()
		return ExitInvalidArgs
	}
	target := fs.Arg(0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Environment supplies defaults; flags win.
	cfg := config.Default()
	if err := cfg.LoadFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}
	opts := verify.Options{Workers: cfg.Verify.Workers, Sequential: cfg.Verify.Sequential}
	if *workers != 0 {
		opts.Workers = *workers
	}
	if *sequential {
		opts.Sequential = true
	}

	// Bucket URLs go straight to the driver registry. Local targets may
	// be a single file (single-file mode) or a directory.
	if strings.Contains(target, "://") {
		bucket, err := blob.OpenBucket(ctx, target)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening bucket: %v\n", err)
			return ExitFailure
		}
		defer bucket.Close()
		return verifyBucket(ctx, bucket, opts)
	}

	info, err := os.Stat(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Target not found: %s\n", target)
		return ExitFailure
	}

	if !info.IsDir() {
		return verifySingleFile(target)
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitFailure
	}
	bucket, err := fileblob.OpenBucket(abs, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening directory: %v\n", err)
		return ExitFailure
	}
	defer bucket.Close()

	return verifyBucket(ctx, bucket, opts)
}

func verifyBucket(ctx context.Context, bucket *blob.Bucket, opts verify.Options) int {
	report, err := verify.Verify(ctx, bucket, opts)
	if err != nil {
		if errors.Is(err, verify.ErrNoChecksums) {
			fmt.Fprintln(os.Stderr, "No .CHECKSUM files found!")
			return ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitFailure
	}

	report.Print(os.Stdout)
	if report.OK() {
		return ExitSuccess
	}
	return ExitFailure
}

func verifySingleFile(path string) int {
	result := verify.VerifyFile(path)

	switch result.Status {
	case verify.StatusVerified:
		fmt.Printf("VERIFIED: %s\n", result.File)
		return ExitSuccess
	case verify.StatusCorrupted:
		fmt.Printf("CORRUPTED: %s\n", result.Path)
		fmt.Printf("  expected: %s\n", result.Expected)
		fmt.Printf("  actual:   %s\n", result.Actual)
	case verify.StatusMissing:
		fmt.Printf("Data file not found: %s\n", result.Path)
	case verify.StatusMissingChecksum:
		fmt.Printf("Checksum file not found: %s%s\n", result.Path, verify.ChecksumSuffix)
	default:
		fmt.Printf("%s: %s\n", strings.ToUpper(string(result.Status)), result.Path)
	}
	return ExitFailure
}
