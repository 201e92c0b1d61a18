package poller

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jpillora/backoff"
	"github.com/rs/zerolog"

	"signalboard/internal/fetcher"
	"signalboard/internal/funding"
	"signalboard/internal/market"
)

// Options tune the retry episode.
type Options struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int
	// BackoffMin is the delay before the first retry; each further retry
	// doubles it up to BackoffMax.
	BackoffMin time.Duration
	BackoffMax time.Duration
}

// DefaultOptions gives the 1s/2s/4s schedule with four attempts total.
func DefaultOptions() Options {
	return Options{
		MaxRetries: 3,
		BackoffMin: time.Second,
		BackoffMax: 4 * time.Second,
	}
}

// Poller owns the snapshot pair and runs refresh cycles. The snapshot is
// replaced by a single pointer store, so readers always see a complete cycle
// result, never a partial write.
type Poller struct {
	fetcher fetcher.MarketFetcher
	funding funding.Source
	opts    Options
	logger  zerolog.Logger

	snapshot atomic.Pointer[market.Snapshot]
}

// New constructs a poller. The initial snapshot is empty until the first
// refresh cycle completes.
func New(f fetcher.MarketFetcher, src funding.Source, opts Options, logger zerolog.Logger) *Poller {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.BackoffMin <= 0 {
		opts.BackoffMin = time.Second
	}
	if opts.BackoffMax < opts.BackoffMin {
		opts.BackoffMax = opts.BackoffMin << uint(opts.MaxRetries)
	}

	p := &Poller{
		fetcher: f,
		funding: src,
		opts:    opts,
		logger:  logger.With().Str("component", "poller").Logger(),
	}
	p.snapshot.Store(&market.Snapshot{Funding: market.FundingRates{}})
	return p
}

// Snapshot returns the latest published snapshot.
func (p *Poller) Snapshot() *market.Snapshot {
	return p.snapshot.Load()
}

// Refresh runs one complete refresh cycle and publishes the result. Every
// cycle ends in a wholesale replacement: live data, or the fallback dataset
// with an advisory after the retry budget is spent. A cancelled context
// leaves the previous snapshot in place.
func (p *Poller) Refresh(ctx context.Context) *market.Snapshot {
	snap := p.refreshOnce(ctx)
	if snap == nil {
		return p.snapshot.Load()
	}

	// The fixed fallback makes an empty set impossible, but the guard is a
	// single bounded re-attempt rather than a recursion on that invariant.
	if len(snap.Assets) == 0 {
		p.logger.Warn().Msg("empty record set after refresh, re-running once")
		if again := p.refreshOnce(ctx); again != nil && len(again.Assets) > 0 {
			snap = again
		}
	}

	p.snapshot.Store(snap)
	p.logger.Info().
		Str("source", snap.Source).
		Int("assets", len(snap.Assets)).
		Int("funding_rates", len(snap.Funding)).
		Msg("snapshot replaced")
	return snap
}

func (p *Poller) refreshOnce(ctx context.Context) *market.Snapshot {
	rates, err := p.funding.Rates(ctx)
	if err != nil {
		p.logger.Warn().Err(err).Msg("funding source failed, continuing without rates")
		rates = market.FundingRates{}
	}

	assets, fetchErr := p.fetchWithRetry(ctx)
	if ctx.Err() != nil {
		return nil
	}

	now := time.Now().UTC()
	if fetchErr != nil {
		attempts := p.opts.MaxRetries + 1
		p.logger.Error().Err(fetchErr).Int("attempts", attempts).Msg("retry budget exhausted, substituting fallback dataset")
		return &market.Snapshot{
			Assets:    FallbackAssets(),
			Funding:   rates,
			Advisory:  fmt.Sprintf("live market data unavailable after %d attempts, showing fallback data", attempts),
			Source:    market.SourceFallback,
			UpdatedAt: now,
		}
	}

	return &market.Snapshot{
		Assets:    assets,
		Funding:   rates,
		Source:    market.SourceLive,
		UpdatedAt: now,
	}
}

// fetchWithRetry attempts the market request up to MaxRetries+1 times, waiting
// 2^attempt * BackoffMin between failures. Transport and HTTP errors are not
// distinguished; both are retried.
func (p *Poller) fetchWithRetry(ctx context.Context) ([]market.AssetRecord, error) {
	boff := &backoff.Backoff{
		Min:    p.opts.BackoffMin,
		Max:    p.opts.BackoffMax,
		Factor: 2,
	}

	var lastErr error
	for attempt := 0; attempt <= p.opts.MaxRetries; attempt++ {
		assets, err := p.fetcher.FetchMarkets(ctx)
		if err == nil {
			return assets, nil
		}
		lastErr = err

		if attempt == p.opts.MaxRetries {
			break
		}

		delay := boff.ForAttempt(float64(attempt))
		p.logger.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", delay).Msg("market fetch failed, scheduling retry")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, lastErr
}
