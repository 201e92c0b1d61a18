package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"signalboard/internal/market"
)

const marketsPath = "/coins/markets"

// Options parameterise the CoinGecko fetcher.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// RateLimit caps outbound requests per second. The public API starts
	// rejecting around 30 req/min, so the default stays well under that.
	RateLimit float64
}

// CoinGecko fetches spot market data for the tracked assets.
type CoinGecko struct {
	opts    Options
	logger  zerolog.Logger
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
}

// NewCoinGecko constructs a market fetcher.
func NewCoinGecko(opts Options, logger zerolog.Logger) *CoinGecko {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.coingecko.com/api/v3"
	}

	rps := opts.RateLimit
	if rps <= 0 {
		rps = 0.4
	}

	return &CoinGecko{
		opts:    opts,
		logger:  logger.With().Str("component", "market_fetcher").Logger(),
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		baseURL: baseURL,
	}
}

// FetchMarkets issues one request for the full target list and returns the
// records in request order. The result is always a subset of the target list.
func (c *CoinGecko) FetchMarkets(ctx context.Context) ([]market.AssetRecord, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("vs_currency", "usd")
	query.Set("ids", strings.Join(market.TargetIDs(), ","))
	query.Set("order", "market_cap_desc")
	query.Set("sparkline", "false")
	query.Set("price_change_percentage", "24h,7d")

	endpoint := c.baseURL + marketsPath + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if ua := strings.TrimSpace(c.opts.UserAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	} else {
		req.Header.Set("User-Agent", "signalboard/1.0")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("market request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read market response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseHTTPError(resp.StatusCode, payload)
	}

	records, err := decodeMarkets(payload)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().Int("assets", len(records)).Msg("market data fetched")
	return records, nil
}

var _ MarketFetcher = (*CoinGecko)(nil)
