package exchange

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kkgogogo17/binance-public-data/internal/xhttp"
)

// exchangeInfo endpoints per trading type.
var infoURLs = map[string]string{
	"spot": "https://api.binance.com/api/v3/exchangeInfo",
	"um":   "https://fapi.binance.com/fapi/v1/exchangeInfo",
	"cm":   "https://dapi.binance.com/dapi/v1/exchangeInfo",
}

// ListSymbols fetches the full list of trading symbols for a trading type
// from the exchange's metadata endpoint, in the order the API returns them.
func ListSymbols(ctx context.Context, client *xhttp.Client, tradingType string) ([]string, error) {
	url, ok := infoURLs[tradingType]
	if !ok {
		return nil, fmt.Errorf("exchange: unknown trading type %q", tradingType)
	}

	body, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch exchange info: %w", err)
	}
	defer body.Close()

	var info struct {
		Symbols []struct {
			Symbol string `json:"symbol"`
		} `json:"symbols"`
	}
	if err := json.NewDecoder(body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode exchange info: %w", err)
	}

	symbols := make([]string, 0, len(info.Symbols))
	for _, s := range info.Symbols {
		symbols = append(symbols, s.Symbol)
	}
	return symbols, nil
}
