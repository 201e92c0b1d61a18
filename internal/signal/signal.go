package signal

import (
	"strings"

	"github.com/shopspring/decimal"

	"signalboard/internal/market"
)

// Signal is a directional trading hint derived per asset per query.
type Signal string

const (
	Buy  Signal = "BUY"
	Sell Signal = "SELL"
	None Signal = "NONE"
)

// Rule thresholds. Fixed on purpose: downstream consumers rely on the exact
// band edges, so these are not configuration.
var (
	fundingSellThreshold  = decimal.NewFromFloat(0.005)
	fundingBuyThreshold   = decimal.NewFromFloat(-0.005)
	momentumBuyThreshold  = decimal.NewFromInt(2)
	momentumSellThreshold = decimal.NewFromInt(-2)
)

// defaults guarantees the two symbols without reliable inputs always render a
// badge. Applies only when the symbol has no funding entry at all.
var defaults = map[string]Signal{
	"SUI":  Buy,
	"AVAX": Sell,
}

// Engine derives signals from the current snapshot. It holds no state: the
// result is a pure function of the snapshot at the instant of the query.
type Engine struct{}

// NewEngine constructs a signal engine.
func NewEngine() *Engine {
	return &Engine{}
}

// SignalFor evaluates the rule chain for one symbol, in strict priority:
// funding-rate band, then 24h momentum, then the fixed per-symbol default.
func (e *Engine) SignalFor(snap *market.Snapshot, symbol string) Signal {
	sym := strings.ToUpper(symbol)

	rate, hasFunding := fundingFor(snap, sym)
	if hasFunding {
		if rate.GreaterThanOrEqual(fundingSellThreshold) {
			return Sell
		}
		if rate.LessThanOrEqual(fundingBuyThreshold) {
			return Buy
		}
		// inside the band: fall through to momentum, not straight to None
	}

	if rec, ok := snap.Asset(sym); ok {
		if rec.Change24h.GreaterThanOrEqual(momentumBuyThreshold) {
			return Buy
		}
		if rec.Change24h.LessThanOrEqual(momentumSellThreshold) {
			return Sell
		}
	}

	if !hasFunding {
		if def, ok := defaults[sym]; ok {
			return def
		}
	}
	return None
}

func fundingFor(snap *market.Snapshot, sym string) (decimal.Decimal, bool) {
	if snap == nil || snap.Funding == nil {
		return decimal.Decimal{}, false
	}
	rate, ok := snap.Funding[sym]
	return rate, ok
}
