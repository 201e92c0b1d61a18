package funding

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"signalboard/internal/market"
)

// noiseRange bounds the per-cycle uniform drift added to each base rate.
const noiseRange = 0.001

// baseRates are fixed signed fractional rates per tracked symbol. These are
// invented values, not market data; they exist so the board has something to
// derive signals from until a real funding feed is wired in.
var baseRates = map[string]float64{
	"BTC":  0.0121,
	"ETH":  -0.0093,
	"SOL":  0.0064,
	"BNB":  0.0018,
	"XRP":  -0.0031,
	"DOGE": 0.0152,
	"ADA":  -0.0008,
	"AVAX": -0.0129,
	"LINK": 0.0043,
	"SUI":  0.0006,
}

// Simulated produces drifting funding rates around the fixed bases. It is a
// pure simulation: values are regenerated on every call and never persisted.
type Simulated struct {
	logger zerolog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulated constructs the simulated source.
func NewSimulated(logger zerolog.Logger) *Simulated {
	return newSimulated(time.Now().UnixNano(), logger)
}

func newSimulated(seed int64, logger zerolog.Logger) *Simulated {
	return &Simulated{
		logger: logger.With().Str("component", "funding_sim").Logger(),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Rates regenerates the full map with fresh independent noise per symbol.
func (s *Simulated) Rates(_ context.Context) (market.FundingRates, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rates := make(market.FundingRates, len(baseRates))
	for symbol, base := range baseRates {
		noise := (s.rng.Float64()*2 - 1) * noiseRange
		rates[symbol] = decimal.NewFromFloat(base + noise)
	}
	return rates, nil
}

var _ Source = (*Simulated)(nil)
