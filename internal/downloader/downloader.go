package downloader

import (
	"context"
	"fmt"
	"io"
	"os"

	"gocloud.dev/blob"
	"golang.org/x/sync/errgroup"

	"github.com/kkgogogo17/binance-public-data/internal/progress"
)

// ChecksumSuffix is appended to an archive key to form its sidecar key.
const ChecksumSuffix = ".CHECKSUM"

// DefaultWorkers is the download pool size when none is configured. The
// workload is many small I/O-bound fetches, so the pool is large.
const DefaultWorkers = 512

// Downloader runs download tasks against a destination bucket.
type Downloader struct {
	bucket  *blob.Bucket
	fetcher Fetcher
	out     io.Writer
}

// New creates a Downloader writing archives to bucket via fetcher.
// Progress and diagnostics go to out; a nil out defaults to os.Stdout.
func New(bucket *blob.Bucket, fetcher Fetcher, out io.Writer) *Downloader {
	if out == nil {
		out = os.Stdout
	}
	return &Downloader{bucket: bucket, fetcher: fetcher, out: out}
}

// Run executes all tasks under a bounded worker pool and prints the final
// summary. Individual task failures are recorded in the summary, never
// returned; the batch always runs to completion.
func (d *Downloader) Run(ctx context.Context, tasks []Task, workers int) progress.Summary {
	if len(tasks) == 0 {
		fmt.Fprintln(d.out, "No files to download.")
		return progress.Summary{}
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}

	fmt.Fprintf(d.out, "Queued %d files for download using %d workers...\n", len(tasks), workers)

	tracker := progress.NewTracker(len(tasks), d.out)

	var g errgroup.Group
	g.SetLimit(workers)
	for _, task := range tasks {
		task := task
		g.Go(func() error {
			d.process(ctx, task, tracker)
			return nil
		})
	}
	// Workers never return errors into the group; Wait only joins them.
	_ = g.Wait()

	summary := tracker.Summary()
	summary.Print(d.out)
	return summary
}

// process handles one task: range check, skip-if-present, fetch, and
// best-effort sidecar fetch. All failures are converted into tracker
// state; process never panics past its own boundary.
func (d *Downloader) process(ctx context.Context, task Task, tracker *progress.Tracker) bool {
	// Range filtering safety net. Out-of-range tasks are skipped
	// silently, without touching the tracker.
	if !task.inRange() {
		return true
	}

	key := task.Key()
	fileName := task.FileName()

	if d.objectComplete(ctx, key) {
		tracker.MarkSkipped(fileName)
		return true
	}

	if err := d.fetchObject(ctx, task, key, fileName); err != nil {
		fmt.Fprintf(d.out, "\nError downloading %s: %v\n", task.ID(), err)
		tracker.MarkFailed(task.ID())
		return false
	}

	if task.Checksum {
		csKey := key + ChecksumSuffix
		if !d.objectComplete(ctx, csKey) {
			// Sidecar failures are logged, not fatal: the verify pass is
			// the integrity authority and reports what is missing.
			if err := d.fetchObject(ctx, task, csKey, fileName+ChecksumSuffix); err != nil {
				fmt.Fprintf(d.out, "\nWarning: checksum for %s: %v\n", task.ID(), err)
			}
		}
	}

	tracker.MarkCompleted(fileName)
	return true
}

// objectComplete reports whether key exists in the bucket with non-zero
// size. Size > 0 is the only integrity signal at download time; real
// verification is a separate pass.
func (d *Downloader) objectComplete(ctx context.Context, key string) bool {
	attrs, err := d.bucket.Attributes(ctx, key)
	if err != nil {
		return false
	}
	return attrs.Size > 0
}

// fetchObject streams one file from the fetcher into the bucket. The
// write context is cancelled on copy failure so the partial object is
// discarded rather than left behind.
func (d *Downloader) fetchObject(ctx context.Context, task Task, key, fileName string) error {
	body, err := d.fetcher.Fetch(ctx, task.Path(), fileName, task.DateRange)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", fileName, err)
	}
	defer body.Close()

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := d.bucket.NewWriter(wctx, key, nil)
	if err != nil {
		return fmt.Errorf("create %s: %w", key, err)
	}

	if _, err := io.Copy(w, body); err != nil {
		cancel()
		w.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close %s: %w", key, err)
	}
	return nil
}
