// Package links maps tracked symbols to external chart URLs.
package links

import (
	"net/url"
	"strings"
)

const chartBase = "https://www.tradingview.com/chart/?symbol="

// chartSymbols is the fixed translation table for the tracked symbols.
// Anything else falls back to upper(symbol) + "USDT".
var chartSymbols = map[string]string{
	"BTC":  "BINANCE:BTCUSDT",
	"ETH":  "BINANCE:ETHUSDT",
	"SOL":  "BINANCE:SOLUSDT",
	"BNB":  "BINANCE:BNBUSDT",
	"XRP":  "BINANCE:XRPUSDT",
	"DOGE": "BINANCE:DOGEUSDT",
	"ADA":  "BINANCE:ADAUSDT",
	"AVAX": "BINANCE:AVAXUSDT",
	"LINK": "BINANCE:LINKUSDT",
	"SUI":  "BINANCE:SUIUSDT",
}

// ChartURL returns the charting-site deep link for a symbol.
func ChartURL(symbol string) string {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	tv, ok := chartSymbols[sym]
	if !ok {
		tv = sym + "USDT"
	}
	return chartBase + url.QueryEscape(tv)
}
