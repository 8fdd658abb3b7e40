package exchange

import (
	"fmt"
	"strings"
	"time"
)

// BaseURL is the public data repository all archive paths are relative to.
const BaseURL = "https://data.binance.vision/"

// Granularity selects the archive bucketing period.
type Granularity string

const (
	Daily   Granularity = "daily"
	Monthly Granularity = "monthly"
)

// TradingTypes are the market categories the repository serves.
var TradingTypes = []string{"spot", "um", "cm"}

// Intervals is the full set of kline intervals published by the exchange.
var Intervals = []string{
	"1s", "1m", "3m", "5m", "15m", "30m",
	"1h", "2h", "4h", "6h", "8h", "12h",
	"1d", "3d", "1w", "1mo",
}

// DailyIntervals is the subset of intervals available as per-day archives.
// Sub-daily intervals are only published in monthly archives.
var DailyIntervals = []string{"1d", "3d", "1w", "1mo"}

// DefaultStartDate is the earliest date the repository carries data for.
// It is the default lower bound when no start date is configured.
var DefaultStartDate = time.Date(2017, time.January, 1, 0, 0, 0, 0, time.UTC)

// Path returns the repository-relative directory for an archive, with a
// trailing slash. The interval segment is omitted for data kinds that are
// not interval-scoped (trades, aggTrades).
func Path(tradingType, dataKind string, g Granularity, symbol, interval string) string {
	var b strings.Builder
	if tradingType == "spot" {
		fmt.Fprintf(&b, "data/spot/%s/%s/", g, dataKind)
	} else {
		fmt.Fprintf(&b, "data/futures/%s/%s/%s/", tradingType, g, dataKind)
	}
	fmt.Fprintf(&b, "%s/", strings.ToUpper(symbol))
	if interval != "" {
		fmt.Fprintf(&b, "%s/", interval)
	}
	return b.String()
}

// FileName returns the canonical archive file name for a symbol, interval
// and date token, e.g. "BTCUSDT-1d-2024-01-01.zip".
func FileName(symbol, interval, dateToken string) string {
	return fmt.Sprintf("%s-%s-%s.zip", strings.ToUpper(symbol), interval, dateToken)
}

// MonthToken formats a year and month as a monthly date token ("2024-03").
func MonthToken(year, month int) string {
	return fmt.Sprintf("%d-%02d", year, month)
}

// ParseDate parses a date token. Daily tokens are "2006-01-02"; monthly
// tokens are "2006-01" and resolve to the first day of the month.
func ParseDate(token string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", token); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01", token)
	if err != nil {
		return time.Time{}, fmt.Errorf("exchange: invalid date token %q", token)
	}
	return t, nil
}

// ValidTradingType reports whether t is a known trading type.
func ValidTradingType(t string) bool {
	for _, known := range TradingTypes {
		if t == known {
			return true
		}
	}
	return false
}
