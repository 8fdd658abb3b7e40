package downloader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kkgogogo17/binance-public-data/internal/exchange"
)

func dateRange(start, end string) (time.Time, time.Time) {
	s, _ := time.Parse("2006-01-02", start)
	e, _ := time.Parse("2006-01-02", end)
	return s, e
}

func TestBuildDailyQueueRestrictsIntervals(t *testing.T) {
	start, end := dateRange("2024-01-01", "2024-01-02")
	queue := BuildDailyQueue(
		[]string{"BTCUSDT"},
		[]string{"1d", "1h"}, // only 1d is valid for daily archives
		[]string{"2024-01-01", "2024-01-02"},
		QueueOptions{TradingType: "spot", StartDate: start, EndDate: end},
	)

	assert.Len(t, queue, 2)
	for _, task := range queue {
		assert.Equal(t, "1d", task.Interval)
	}
}

func TestBuildDailyQueueDeduplicates(t *testing.T) {
	start, end := dateRange("2024-01-01", "2024-01-31")
	queue := BuildDailyQueue(
		[]string{"BTCUSDT", "BTCUSDT"},
		[]string{"1d"},
		[]string{"2024-01-01", "2024-01-01", "2024-01-02"},
		QueueOptions{TradingType: "spot", StartDate: start, EndDate: end},
	)

	assert.Len(t, queue, 2)
	seen := make(map[string]bool)
	for _, task := range queue {
		assert.False(t, seen[task.ID()], "duplicate task %s", task.ID())
		seen[task.ID()] = true
	}
	// First occurrence order is preserved.
	assert.Equal(t, "BTCUSDT-1d-2024-01-01", queue[0].ID())
	assert.Equal(t, "BTCUSDT-1d-2024-01-02", queue[1].ID())
}

func TestBuildDailyQueueBound(t *testing.T) {
	symbols := []string{"BTCUSDT", "ETHUSDT", "BNBUSDT"}
	intervals := []string{"1d", "1w"}
	dates := []string{"2024-01-01", "2024-01-02", "2024-01-03"}

	queue := BuildDailyQueue(symbols, intervals, dates, QueueOptions{TradingType: "spot"})
	assert.LessOrEqual(t, len(queue), len(symbols)*len(intervals)*len(dates))
	assert.Len(t, queue, 18)
}

func TestBuildDailyQueueEmptyInputs(t *testing.T) {
	assert.Empty(t, BuildDailyQueue(nil, []string{"1d"}, []string{"2024-01-01"}, QueueOptions{}))
	assert.Empty(t, BuildDailyQueue([]string{"BTCUSDT"}, nil, []string{"2024-01-01"}, QueueOptions{}))
	assert.Empty(t, BuildDailyQueue([]string{"BTCUSDT"}, []string{"1d"}, nil, QueueOptions{}))
	// Intervals with no daily-valid entries collapse to an empty queue too.
	assert.Empty(t, BuildDailyQueue([]string{"BTCUSDT"}, []string{"1h"}, []string{"2024-01-01"}, QueueOptions{}))
}

func TestBuildDailyQueueDefaultsDateBounds(t *testing.T) {
	queue := BuildDailyQueue(
		[]string{"BTCUSDT"}, []string{"1d"}, []string{"2017-01-01"},
		QueueOptions{TradingType: "spot"},
	)
	assert.Len(t, queue, 1)
	assert.Equal(t, exchange.DefaultStartDate, queue[0].StartDate)
	assert.False(t, queue[0].EndDate.IsZero())
}

func TestBuildMonthlyQueueFiltersRange(t *testing.T) {
	start, end := dateRange("2024-02-01", "2024-03-31")
	queue := BuildMonthlyQueue(
		[]string{"BTCUSDT"},
		[]string{"1d"},
		[]int{2024},
		[]int{1, 2, 3, 4},
		QueueOptions{TradingType: "spot", StartDate: start, EndDate: end},
	)

	// January and April fall outside the range and are filtered at build time.
	assert.Len(t, queue, 2)
	assert.Equal(t, "BTCUSDT-1d-2024-02", queue[0].ID())
	assert.Equal(t, "BTCUSDT-1d-2024-03", queue[1].ID())
	assert.Equal(t, exchange.Monthly, queue[0].Granularity)
}

func TestBuildMonthlyQueueTokenFormat(t *testing.T) {
	start, end := dateRange("2023-01-01", "2024-12-31")
	queue := BuildMonthlyQueue(
		[]string{"ethusdt"}, []string{"1w"}, []int{2023}, []int{7},
		QueueOptions{TradingType: "um", StartDate: start, EndDate: end},
	)

	assert.Len(t, queue, 1)
	assert.Equal(t, "ETHUSDT-1w-2023-07.zip", queue[0].FileName())
	assert.Equal(t, "data/futures/um/monthly/klines/ETHUSDT/1w/ETHUSDT-1w-2023-07.zip", queue[0].Key())
}

func TestTaskInRange(t *testing.T) {
	start, end := dateRange("2024-01-01", "2024-01-31")
	task := Task{Date: "2024-01-15", StartDate: start, EndDate: end}
	assert.True(t, task.inRange())

	task.Date = "2024-02-01"
	assert.False(t, task.inRange())

	// Inclusive bounds.
	task.Date = "2024-01-01"
	assert.True(t, task.inRange())
	task.Date = "2024-01-31"
	assert.True(t, task.inRange())

	task.Date = "garbage"
	assert.False(t, task.inRange())
}
