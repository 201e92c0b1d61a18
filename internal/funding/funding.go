package funding

import (
	"context"

	"signalboard/internal/market"
)

// Source supplies a funding-rate snapshot for the tracked symbols. A refresh
// cycle calls it exactly once and replaces the prior map wholesale, so a real
// exchange feed can be dropped in without touching signal derivation.
type Source interface {
	Rates(ctx context.Context) (market.FundingRates, error)
}
