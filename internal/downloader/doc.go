// Package downloader builds and executes bulk archive download queues.
//
// A queue is the deduplicated cartesian product of symbols, intervals,
// and dates, restricted to an inclusive date range. Tasks run under a
// bounded worker pool; a task whose destination already exists with
// non-zero size is skipped, which makes re-running a batch cheap and
// idempotent.
//
// # Usage
//
//	queue := downloader.BuildDailyQueue(symbols, intervals, dates, downloader.QueueOptions{
//	    TradingType: "spot",
//	    Checksum:    true,
//	})
//
//	d := downloader.New(bucket, fetcher, os.Stdout)
//	summary := d.Run(ctx, queue, workers)
//
// # Fault Isolation
//
// One failed fetch never aborts the batch. Failures are caught at the
// worker boundary, printed, and recorded in the summary; re-invoking the
// command is the retry mechanism.
package downloader
