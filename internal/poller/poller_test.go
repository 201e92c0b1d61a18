package poller

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jpillora/backoff"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"signalboard/internal/market"
)

type stubFetcher struct {
	calls   int
	failFor int // fail this many calls before succeeding; -1 fails forever
	assets  []market.AssetRecord
}

func (s *stubFetcher) FetchMarkets(ctx context.Context) ([]market.AssetRecord, error) {
	s.calls++
	if s.failFor < 0 || s.calls <= s.failFor {
		return nil, errors.New("connection refused")
	}
	return s.assets, nil
}

type stubFunding struct {
	rates market.FundingRates
	err   error
}

func (s *stubFunding) Rates(ctx context.Context) (market.FundingRates, error) {
	return s.rates, s.err
}

func fastOptions(maxRetries int) Options {
	return Options{
		MaxRetries: maxRetries,
		BackoffMin: time.Millisecond,
		BackoffMax: 8 * time.Millisecond,
	}
}

func liveAssets() []market.AssetRecord {
	records := make([]market.AssetRecord, len(market.Targets))
	for i, t := range market.Targets {
		records[i] = market.AssetRecord{ID: t.ID, Symbol: t.Symbol, CurrentPrice: decimal.NewFromInt(int64(i + 1))}
	}
	return records
}

func TestRefreshSuccess(t *testing.T) {
	f := &stubFetcher{assets: liveAssets()}
	rates := market.FundingRates{"BTC": decimal.NewFromFloat(0.0123)}
	p := New(f, &stubFunding{rates: rates}, fastOptions(3), zerolog.Nop())

	snap := p.Refresh(context.Background())

	if snap.Source != market.SourceLive {
		t.Fatalf("expected live source, got %s", snap.Source)
	}
	if len(snap.Assets) != 10 {
		t.Fatalf("expected 10 records, got %d", len(snap.Assets))
	}
	if snap.Advisory != "" {
		t.Fatalf("advisory should be empty on success: %q", snap.Advisory)
	}
	if f.calls != 1 {
		t.Fatalf("success should use a single attempt, used %d", f.calls)
	}
	if snap.UpdatedAt.IsZero() {
		t.Fatal("last-updated timestamp not set")
	}
	if p.Snapshot() != snap {
		t.Fatal("snapshot not published")
	}
}

func TestRefreshRetriesThenSucceeds(t *testing.T) {
	f := &stubFetcher{failFor: 2, assets: liveAssets()}
	p := New(f, &stubFunding{rates: market.FundingRates{}}, fastOptions(3), zerolog.Nop())

	snap := p.Refresh(context.Background())

	if snap.Source != market.SourceLive {
		t.Fatalf("expected live source after recovery, got %s", snap.Source)
	}
	if f.calls != 3 {
		t.Fatalf("expected 3 attempts (2 failures + success), got %d", f.calls)
	}
}

func TestRefreshExhaustionSubstitutesFallback(t *testing.T) {
	f := &stubFetcher{failFor: -1}
	p := New(f, &stubFunding{rates: market.FundingRates{}}, fastOptions(3), zerolog.Nop())

	snap := p.Refresh(context.Background())

	if f.calls != 4 {
		t.Fatalf("expected exactly 4 attempts, got %d", f.calls)
	}
	if snap.Source != market.SourceFallback {
		t.Fatalf("expected fallback source, got %s", snap.Source)
	}
	if !strings.Contains(snap.Advisory, "4") {
		t.Fatalf("advisory should mention 4 attempts: %q", snap.Advisory)
	}
	if len(snap.Assets) != 10 {
		t.Fatalf("fallback dataset must have 10 records, got %d", len(snap.Assets))
	}

	want := FallbackAssets()
	for i, rec := range snap.Assets {
		if rec.ID != want[i].ID || !rec.CurrentPrice.Equal(want[i].CurrentPrice) {
			t.Fatalf("record %d differs from fallback dataset: %+v", i, rec)
		}
	}
}

func TestRefreshNeverPartial(t *testing.T) {
	for _, failFor := range []int{0, 1, 3, -1} {
		f := &stubFetcher{failFor: failFor, assets: liveAssets()}
		p := New(f, &stubFunding{rates: market.FundingRates{}}, fastOptions(3), zerolog.Nop())
		snap := p.Refresh(context.Background())
		if len(snap.Assets) != 10 {
			t.Fatalf("failFor=%d: snapshot has %d records, want 10", failFor, len(snap.Assets))
		}
	}
}

func TestFundingRegeneratedOnFetchFailure(t *testing.T) {
	rates := market.FundingRates{"ETH": decimal.NewFromFloat(-0.0087)}
	p := New(&stubFetcher{failFor: -1}, &stubFunding{rates: rates}, fastOptions(3), zerolog.Nop())

	snap := p.Refresh(context.Background())

	if _, ok := snap.Funding["ETH"]; !ok {
		t.Fatal("funding map must be populated independently of the market outcome")
	}
}

func TestRefreshCancelledKeepsPreviousSnapshot(t *testing.T) {
	f := &stubFetcher{assets: liveAssets()}
	p := New(f, &stubFunding{rates: market.FundingRates{}}, fastOptions(3), zerolog.Nop())

	first := p.Refresh(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f.failFor = -1

	got := p.Refresh(ctx)
	if got != first {
		t.Fatal("cancelled refresh must leave the previous snapshot in place")
	}
}

func TestDefaultBackoffSchedule(t *testing.T) {
	opts := DefaultOptions()
	boff := &backoff.Backoff{Min: opts.BackoffMin, Max: opts.BackoffMax, Factor: 2}

	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
	for attempt, expected := range want {
		if got := boff.ForAttempt(float64(attempt)); got != expected {
			t.Fatalf("attempt %d: delay %s, want %s", attempt, got, expected)
		}
	}
	if opts.MaxRetries != 3 {
		t.Fatalf("default retry budget should be 3 retries, got %d", opts.MaxRetries)
	}
}

func TestFallbackAssetsShape(t *testing.T) {
	records := FallbackAssets()
	if len(records) != len(market.Targets) {
		t.Fatalf("fallback has %d records, want %d", len(records), len(market.Targets))
	}
	for i, rec := range records {
		if rec.ID != market.Targets[i].ID {
			t.Fatalf("fallback order mismatch at %d: %s", i, rec.ID)
		}
		if rec.Symbol != market.Targets[i].Symbol {
			t.Fatalf("fallback symbol mismatch at %d: %s", i, rec.Symbol)
		}
		if rec.CurrentPrice.LessThanOrEqual(decimal.Zero) {
			t.Fatalf("fallback price for %s must be positive", rec.Symbol)
		}
	}
}
