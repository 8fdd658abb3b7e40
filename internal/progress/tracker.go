package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Tracker aggregates per-file download outcomes across workers. A single
// mutex guards the counters, the failed-file list, and the status-line
// print, so concurrent marks never interleave output.
type Tracker struct {
	mu          sync.Mutex
	completed   int
	failed      int
	skipped     int
	total       int
	failedFiles []string
	out         io.Writer
}

// Summary is an immutable snapshot of a Tracker.
type Summary struct {
	Completed   int
	Failed      int
	Skipped     int
	Total       int
	FailedFiles []string
}

// Processed returns the number of resolved items.
func (s Summary) Processed() int {
	return s.Completed + s.Failed + s.Skipped
}

// SuccessRate returns the completed fraction as a percentage.
func (s Summary) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total) * 100
}

// NewTracker creates a tracker for a batch of total items, writing
// progress output to out. A nil out defaults to os.Stdout.
func NewTracker(total int, out io.Writer) *Tracker {
	if out == nil {
		out = os.Stdout
	}
	return &Tracker{total: total, out: out}
}

// MarkCompleted records a successful download.
func (t *Tracker) MarkCompleted(file string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.completed++
	t.printProgress()
}

// MarkFailed records a failed download and remembers the file for the
// final summary.
func (t *Tracker) MarkFailed(file string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failed++
	t.failedFiles = append(t.failedFiles, file)
	t.printProgress()
}

// MarkSkipped records a download skipped because the file already exists.
func (t *Tracker) MarkSkipped(file string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.skipped++
	t.printProgress()
}

// printProgress refreshes the status line every 10 processed items and on
// the final item. Callers must hold t.mu.
func (t *Tracker) printProgress() {
	processed := t.completed + t.failed + t.skipped
	if processed%10 != 0 && processed != t.total {
		return
	}

	percent := float64(processed) / float64(t.total) * 100
	fmt.Fprintf(t.out, "\rProgress: %.1f%% (%d/%d) completed:%d failed:%d skipped:%d",
		percent, processed, t.total, t.completed, t.failed, t.skipped)
	if processed == t.total {
		fmt.Fprintln(t.out)
	}
}

// Summary returns a snapshot of the current counters.
func (t *Tracker) Summary() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Summary{
		Completed:   t.completed,
		Failed:      t.failed,
		Skipped:     t.skipped,
		Total:       t.total,
		FailedFiles: append([]string(nil), t.failedFiles...),
	}
}

// Print writes the final multi-line summary block.
func (s Summary) Print(out io.Writer) {
	fmt.Fprintln(out, "Download summary:")
	fmt.Fprintf(out, "  Completed: %d\n", s.Completed)
	fmt.Fprintf(out, "  Failed:    %d\n", s.Failed)
	fmt.Fprintf(out, "  Skipped:   %d\n", s.Skipped)
	fmt.Fprintf(out, "  Total:     %d\n", s.Total)
	fmt.Fprintf(out, "  Success rate: %.1f%%\n", s.SuccessRate())
	for _, f := range s.FailedFiles {
		fmt.Fprintf(out, "  failed: %s\n", f)
	}
}
