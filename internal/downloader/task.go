package downloader

import (
	"fmt"
	"strings"
	"time"

	"github.com/kkgogogo17/binance-public-data/internal/exchange"
)

// Task describes one archive file to download. Tasks are immutable once
// built; two tasks with the same ID refer to the same file.
type Task struct {
	TradingType string
	Symbol      string
	Interval    string
	Date        string // daily token "2006-01-02" or monthly token "2006-01"
	Granularity exchange.Granularity

	// Inclusive date range the task must fall in to be transferred.
	StartDate time.Time
	EndDate   time.Time

	// Checksum requests the companion .CHECKSUM sidecar.
	Checksum bool

	// DateRange is an optional raw range hint passed through to the
	// fetcher. The HTTP fetcher ignores it.
	DateRange string
}

// ID is the deduplication key: symbol, interval, and date token.
func (t Task) ID() string {
	return fmt.Sprintf("%s-%s-%s", strings.ToUpper(t.Symbol), t.Interval, t.Date)
}

// FileName is the canonical archive name for this task.
func (t Task) FileName() string {
	return exchange.FileName(t.Symbol, t.Interval, t.Date)
}

// Path is the repository-relative directory holding this task's archive.
func (t Task) Path() string {
	return exchange.Path(t.TradingType, "klines", t.Granularity, t.Symbol, t.Interval)
}

// Key is the storage key the archive is written under.
func (t Task) Key() string {
	return t.Path() + t.FileName()
}

// inRange reports whether the task's date falls within [StartDate, EndDate].
// Unparseable dates are treated as out of range.
func (t Task) inRange() bool {
	d, err := exchange.ParseDate(t.Date)
	if err != nil {
		return false
	}
	return !d.Before(t.StartDate) && !d.After(t.EndDate)
}

// QueueOptions carries the parameters shared by every task in a queue.
type QueueOptions struct {
	TradingType string
	Checksum    bool
	StartDate   time.Time
	EndDate     time.Time
	DateRange   string
}

// normalize applies the module-wide default date bounds: the repository
// start date and today.
func (o QueueOptions) normalize() QueueOptions {
	if o.StartDate.IsZero() {
		o.StartDate = exchange.DefaultStartDate
	}
	if o.EndDate.IsZero() {
		o.EndDate = time.Now().UTC().Truncate(24 * time.Hour)
	}
	return o
}

// validIntervals intersects the requested intervals with the fixed daily
// allow-list, preserving request order.
func validIntervals(intervals []string) []string {
	allowed := make(map[string]bool, len(exchange.DailyIntervals))
	for _, i := range exchange.DailyIntervals {
		allowed[i] = true
	}
	var out []string
	for _, i := range intervals {
		if allowed[i] {
			out = append(out, i)
		}
	}
	return out
}

// BuildDailyQueue expands symbols x intervals x dates into a deduplicated,
// ordered task list. Date-range filtering is deferred to the worker; the
// returned queue may contain out-of-range tasks, which are skipped
// silently at run time.
func BuildDailyQueue(symbols, intervals, dates []string, opts QueueOptions) []Task {
	opts = opts.normalize()
	intervals = validIntervals(intervals)

	var queue []Task
	seen := make(map[string]bool)

	for _, symbol := range symbols {
		for _, interval := range intervals {
			for _, date := range dates {
				task := Task{
					TradingType: opts.TradingType,
					Symbol:      symbol,
					Interval:    interval,
					Date:        date,
					Granularity: exchange.Daily,
					StartDate:   opts.StartDate,
					EndDate:     opts.EndDate,
					Checksum:    opts.Checksum,
					DateRange:   opts.DateRange,
				}
				if seen[task.ID()] {
					continue
				}
				seen[task.ID()] = true
				queue = append(queue, task)
			}
		}
	}
	return queue
}

// BuildMonthlyQueue expands symbols x intervals x years x months into a
// deduplicated, ordered task list. Months outside the date range are
// filtered here, at build time.
func BuildMonthlyQueue(symbols, intervals []string, years, months []int, opts QueueOptions) []Task {
	opts = opts.normalize()
	intervals = validIntervals(intervals)

	var queue []Task
	seen := make(map[string]bool)

	for _, symbol := range symbols {
		for _, interval := range intervals {
			for _, year := range years {
				for _, month := range months {
					first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
					if first.Before(opts.StartDate) || first.After(opts.EndDate) {
						continue
					}
					task := Task{
						TradingType: opts.TradingType,
						Symbol:      symbol,
						Interval:    interval,
						Date:        exchange.MonthToken(year, month),
						Granularity: exchange.Monthly,
						StartDate:   opts.StartDate,
						EndDate:     opts.EndDate,
						Checksum:    opts.Checksum,
						DateRange:   opts.DateRange,
					}
					if seen[task.ID()] {
						continue
					}
					seen[task.ID()] = true
					queue = append(queue, task)
				}
			}
		}
	}
	return queue
}
