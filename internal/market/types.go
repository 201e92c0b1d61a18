package market

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AssetRecord is one tracked asset's market state at fetch time.
// Records are immutable once built; a refresh replaces the whole set.
type AssetRecord struct {
	ID                string
	Symbol            string
	Name              string
	ImageURL          string
	CurrentPrice      decimal.Decimal
	Change24h         decimal.Decimal
	Change7d          decimal.Decimal
	Volume24h         decimal.Decimal
	High24h           decimal.Decimal
	Low24h            decimal.Decimal
	ATHPrice          decimal.Decimal
	ATHChangePct      decimal.Decimal
	CirculatingSupply decimal.Decimal
}

// FundingRates maps an uppercase symbol to a signed fractional rate
// (0.0123 = +1.23%). Regenerated wholesale every refresh cycle.
type FundingRates map[string]decimal.Decimal

// Snapshot sources.
const (
	SourceLive     = "live"
	SourceFallback = "fallback"
)

// Snapshot is the complete result of one refresh cycle. It is never mutated
// after publication; consumers see either the previous snapshot or this one.
type Snapshot struct {
	Assets    []AssetRecord
	Funding   FundingRates
	Advisory  string // non-empty after an exhausted retry episode
	Source    string
	UpdatedAt time.Time
}

// Asset looks up a record by symbol, case-insensitive.
func (s *Snapshot) Asset(symbol string) (AssetRecord, bool) {
	if s == nil {
		return AssetRecord{}, false
	}
	sym := strings.ToUpper(symbol)
	for _, rec := range s.Assets {
		if strings.ToUpper(rec.Symbol) == sym {
			return rec, true
		}
	}
	return AssetRecord{}, false
}
