package signal

import (
	"testing"

	"github.com/shopspring/decimal"

	"signalboard/internal/market"
)

func snapshotWith(funding map[string]float64, changes map[string]float64) *market.Snapshot {
	snap := &market.Snapshot{Funding: market.FundingRates{}}
	for sym, rate := range funding {
		snap.Funding[sym] = decimal.NewFromFloat(rate)
	}
	for sym, chg := range changes {
		snap.Assets = append(snap.Assets, market.AssetRecord{
			Symbol:    sym,
			Change24h: decimal.NewFromFloat(chg),
		})
	}
	return snap
}

func TestFundingThresholds(t *testing.T) {
	engine := NewEngine()

	cases := []struct {
		name string
		rate float64
		want Signal
	}{
		{"at sell threshold", 0.005, Sell},
		{"above sell threshold", 0.0123, Sell},
		{"at buy threshold", -0.005, Buy},
		{"below buy threshold", -0.0087, Buy},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := snapshotWith(map[string]float64{"BTC": tc.rate}, nil)
			if got := engine.SignalFor(snap, "BTC"); got != tc.want {
				t.Fatalf("rate %v: want %s, got %s", tc.rate, tc.want, got)
			}
		})
	}
}

func TestInBandFundingFallsThroughToMomentum(t *testing.T) {
	engine := NewEngine()

	// funding inside the band must not short-circuit to NONE
	snap := snapshotWith(map[string]float64{"ETH": 0.002}, map[string]float64{"ETH": 3.4})
	if got := engine.SignalFor(snap, "ETH"); got != Buy {
		t.Fatalf("in-band funding with +3.4%% momentum should be BUY, got %s", got)
	}

	snap = snapshotWith(map[string]float64{"ETH": -0.004}, map[string]float64{"ETH": -2.0})
	if got := engine.SignalFor(snap, "ETH"); got != Sell {
		t.Fatalf("in-band funding with -2%% momentum should be SELL, got %s", got)
	}

	snap = snapshotWith(map[string]float64{"ETH": 0.001}, map[string]float64{"ETH": 0.5})
	if got := engine.SignalFor(snap, "ETH"); got != None {
		t.Fatalf("in-band funding with flat momentum should be NONE, got %s", got)
	}
}

func TestMomentumWithoutFunding(t *testing.T) {
	engine := NewEngine()

	snap := snapshotWith(nil, map[string]float64{"SOL": 2.0})
	if got := engine.SignalFor(snap, "SOL"); got != Buy {
		t.Fatalf("+2%% without funding should be BUY, got %s", got)
	}

	snap = snapshotWith(nil, map[string]float64{"SOL": -2.7})
	if got := engine.SignalFor(snap, "SOL"); got != Sell {
		t.Fatalf("-2.7%% without funding should be SELL, got %s", got)
	}

	snap = snapshotWith(nil, map[string]float64{"SOL": 1.0})
	if got := engine.SignalFor(snap, "SOL"); got != None {
		t.Fatalf("+1%% without funding should be NONE, got %s", got)
	}
}

func TestExceptionalDefaults(t *testing.T) {
	engine := NewEngine()

	// SUI always shows a signal when nothing else fires
	snap := snapshotWith(nil, map[string]float64{"SUI": 1.0})
	if got := engine.SignalFor(snap, "SUI"); got != Buy {
		t.Fatalf("SUI default should be BUY, got %s", got)
	}

	snap = snapshotWith(nil, map[string]float64{"AVAX": -0.3})
	if got := engine.SignalFor(snap, "AVAX"); got != Sell {
		t.Fatalf("AVAX default should be SELL, got %s", got)
	}

	// defaults must not apply while a funding entry exists
	snap = snapshotWith(map[string]float64{"SUI": 0.001}, map[string]float64{"SUI": 1.0})
	if got := engine.SignalFor(snap, "SUI"); got != None {
		t.Fatalf("in-band funding should suppress the SUI default, got %s", got)
	}
}

func TestScenarioRates(t *testing.T) {
	engine := NewEngine()

	snap := snapshotWith(map[string]float64{"BTC": 0.0123, "ETH": -0.0087}, nil)
	if got := engine.SignalFor(snap, "BTC"); got != Sell {
		t.Fatalf("BTC funding 0.0123 should be SELL, got %s", got)
	}
	if got := engine.SignalFor(snap, "ETH"); got != Buy {
		t.Fatalf("ETH funding -0.0087 should be BUY, got %s", got)
	}
}

func TestSignalForIsPure(t *testing.T) {
	engine := NewEngine()
	snap := snapshotWith(map[string]float64{"BTC": 0.0123}, map[string]float64{"BTC": 5.0})

	first := engine.SignalFor(snap, "BTC")
	second := engine.SignalFor(snap, "BTC")
	if first != second {
		t.Fatalf("unchanged snapshot should yield identical signals: %s vs %s", first, second)
	}
}

func TestSymbolCaseInsensitive(t *testing.T) {
	engine := NewEngine()
	snap := snapshotWith(map[string]float64{"BTC": 0.0123}, nil)
	if got := engine.SignalFor(snap, "btc"); got != Sell {
		t.Fatalf("lowercase lookup should match, got %s", got)
	}
}
