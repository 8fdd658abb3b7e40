// Package progress provides thread-safe progress tracking for download
// batches.
//
// A Tracker counts completed, failed, and skipped files behind a single
// mutex and refreshes a one-line status display every 10 processed items
// (and on the last), so output from concurrent workers never interleaves.
//
// # Usage
//
//	tracker := progress.NewTracker(len(tasks), os.Stdout)
//
//	// From worker goroutines:
//	tracker.MarkCompleted(fileName)
//	tracker.MarkFailed(fileName)
//	tracker.MarkSkipped(fileName)
//
//	tracker.Summary().Print(os.Stdout)
//
// # Output Format
//
//	Progress: 45.2% (452/1000) completed:430 failed:2 skipped:20
//	Download summary:
//	  Completed: 950
//	  Failed:    10
//	  Skipped:   40
//	  Total:     1000
//	  Success rate: 95.0%
package progress
