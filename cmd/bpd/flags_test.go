package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"BTCUSDT"}, splitList("BTCUSDT"))
	assert.Equal(t, []string{"BTCUSDT", "ETHUSDT"}, splitList("BTCUSDT, ETHUSDT"))
	assert.Equal(t, []string{"1d", "1h"}, splitList("1d,,1h,"))
}

func TestSplitInts(t *testing.T) {
	years, err := splitInts("2023,2024")
	require.NoError(t, err)
	assert.Equal(t, []int{2023, 2024}, years)

	empty, err := splitInts("")
	require.NoError(t, err)
	assert.Nil(t, empty)

	_, err = splitInts("2023,twenty")
	assert.Error(t, err)
}

func TestResolveConfigFlagsWin(t *testing.T) {
	t.Setenv("BPD_WORKERS", "64")

	fs := newDownloadFlags("download")
	require.NoError(t, fs.Parse([]string{
		"-type", "um",
		"-symbols", "BTCUSDT",
		"-workers", "16",
		"-checksum",
	}))

	cfg, err := resolveConfig(fs)
	require.NoError(t, err)

	assert.Equal(t, "um", cfg.TradingType)
	assert.Equal(t, []string{"BTCUSDT"}, cfg.Symbols)
	assert.Equal(t, 16, cfg.Workers, "flag overrides environment")
	assert.True(t, cfg.Checksum)
}

func TestResolveConfigInvalid(t *testing.T) {
	fs := newDownloadFlags("download")
	require.NoError(t, fs.Parse([]string{"-type", "margin"}))

	_, err := resolveConfig(fs)
	assert.Error(t, err)
}

func TestDailyDates(t *testing.T) {
	start := time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)

	dates := dailyDates(start, end)
	assert.Equal(t, []string{"2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"}, dates)

	// Defaults kick in for zero bounds.
	all := dailyDates(time.Time{}, time.Time{})
	require.NotEmpty(t, all)
	assert.Equal(t, "2017-01-01", all[0])
}
