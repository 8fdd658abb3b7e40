package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kkgogogo17/binance-public-data/internal/xhttp"
)

func TestPath(t *testing.T) {
	tests := []struct {
		name        string
		tradingType string
		dataKind    string
		granularity Granularity
		symbol      string
		interval    string
		want        string
	}{
		{
			name:        "spot daily klines",
			tradingType: "spot",
			dataKind:    "klines",
			granularity: Daily,
			symbol:      "BTCUSDT",
			interval:    "1d",
			want:        "data/spot/daily/klines/BTCUSDT/1d/",
		},
		{
			name:        "spot monthly klines",
			tradingType: "spot",
			dataKind:    "klines",
			granularity: Monthly,
			symbol:      "ETHUSDT",
			interval:    "1h",
			want:        "data/spot/monthly/klines/ETHUSDT/1h/",
		},
		{
			name:        "um futures daily",
			tradingType: "um",
			dataKind:    "klines",
			granularity: Daily,
			symbol:      "BTCUSDT",
			interval:    "1d",
			want:        "data/futures/um/daily/klines/BTCUSDT/1d/",
		},
		{
			name:        "cm futures monthly",
			tradingType: "cm",
			dataKind:    "klines",
			granularity: Monthly,
			symbol:      "BTCUSD_PERP",
			interval:    "1w",
			want:        "data/futures/cm/monthly/klines/BTCUSD_PERP/1w/",
		},
		{
			name:        "lowercase symbol is upcased",
			tradingType: "spot",
			dataKind:    "klines",
			granularity: Daily,
			symbol:      "btcusdt",
			interval:    "1d",
			want:        "data/spot/daily/klines/BTCUSDT/1d/",
		},
		{
			name:        "no interval segment for trades",
			tradingType: "spot",
			dataKind:    "trades",
			granularity: Daily,
			symbol:      "BTCUSDT",
			interval:    "",
			want:        "data/spot/daily/trades/BTCUSDT/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Path(tt.tradingType, tt.dataKind, tt.granularity, tt.symbol, tt.interval)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "BTCUSDT-1d-2024-01-01.zip", FileName("btcusdt", "1d", "2024-01-01"))
	assert.Equal(t, "ETHUSDT-1h-2024-03.zip", FileName("ETHUSDT", "1h", "2024-03"))
}

func TestMonthToken(t *testing.T) {
	assert.Equal(t, "2024-03", MonthToken(2024, 3))
	assert.Equal(t, "2024-12", MonthToken(2024, 12))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), d)

	m, err := ParseDate("2024-03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), m)

	_, err = ParseDate("not-a-date")
	assert.Error(t, err)
}

func TestValidTradingType(t *testing.T) {
	for _, tt := range TradingTypes {
		assert.True(t, ValidTradingType(tt))
	}
	assert.False(t, ValidTradingType("margin"))
}

func TestListSymbols(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"symbols":[{"symbol":"BTCUSDT"},{"symbol":"ETHUSDT"},{"symbol":"BNBUSDT"}]}`))
	}))
	defer server.Close()

	orig := infoURLs["spot"]
	infoURLs["spot"] = server.URL
	defer func() { infoURLs["spot"] = orig }()

	client := xhttp.NewClient(xhttp.DefaultOptions())
	symbols, err := ListSymbols(context.Background(), client, "spot")
	require.NoError(t, err)
	assert.Equal(t, []string{"BTCUSDT", "ETHUSDT", "BNBUSDT"}, symbols)
}

func TestListSymbolsUnknownType(t *testing.T) {
	client := xhttp.NewClient(xhttp.DefaultOptions())
	_, err := ListSymbols(context.Background(), client, "margin")
	assert.Error(t, err)
}
