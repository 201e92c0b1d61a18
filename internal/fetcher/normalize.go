package fetcher

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"signalboard/internal/market"
)

// assetPayload mirrors one element of the /coins/markets response. Numeric
// fields are pointers because the API returns null for assets it cannot price.
type assetPayload struct {
	ID                string           `json:"id"`
	Symbol            string           `json:"symbol"`
	Name              string           `json:"name"`
	Image             string           `json:"image"`
	CurrentPrice      *decimal.Decimal `json:"current_price"`
	Change24h         *decimal.Decimal `json:"price_change_percentage_24h_in_currency"`
	Change7d          *decimal.Decimal `json:"price_change_percentage_7d_in_currency"`
	TotalVolume       *decimal.Decimal `json:"total_volume"`
	High24h           *decimal.Decimal `json:"high_24h"`
	Low24h            *decimal.Decimal `json:"low_24h"`
	ATH               *decimal.Decimal `json:"ath"`
	ATHChangePct      *decimal.Decimal `json:"ath_change_percentage"`
	CirculatingSupply *decimal.Decimal `json:"circulating_supply"`
}

// decodeMarkets parses the response body and reorders records to match the
// target list. Unknown ids are dropped so the set stays a subset of the
// configured targets.
func decodeMarkets(payload []byte) ([]market.AssetRecord, error) {
	var raw []assetPayload
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("decode market response: %w", err)
	}

	byID := make(map[string]assetPayload, len(raw))
	for _, item := range raw {
		byID[item.ID] = item
	}

	records := make([]market.AssetRecord, 0, len(market.Targets))
	for _, target := range market.Targets {
		item, ok := byID[target.ID]
		if !ok {
			continue
		}
		records = append(records, normalizeAsset(item, target))
	}
	return records, nil
}

func normalizeAsset(item assetPayload, target market.Target) market.AssetRecord {
	symbol := strings.ToUpper(item.Symbol)
	if symbol == "" {
		symbol = target.Symbol
	}
	return market.AssetRecord{
		ID:                item.ID,
		Symbol:            symbol,
		Name:              item.Name,
		ImageURL:          item.Image,
		CurrentPrice:      deref(item.CurrentPrice),
		Change24h:         deref(item.Change24h),
		Change7d:          deref(item.Change7d),
		Volume24h:         deref(item.TotalVolume),
		High24h:           deref(item.High24h),
		Low24h:            deref(item.Low24h),
		ATHPrice:          deref(item.ATH),
		ATHChangePct:      deref(item.ATHChangePct),
		CirculatingSupply: deref(item.CirculatingSupply),
	}
}

func deref(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
