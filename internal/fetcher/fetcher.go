package fetcher

import (
	"context"

	"signalboard/internal/market"
)

// MarketFetcher retrieves the tracked assets' market data from the upstream API.
type MarketFetcher interface {
	FetchMarkets(ctx context.Context) ([]market.AssetRecord, error)
}
