package poller

import (
	"github.com/shopspring/decimal"

	"signalboard/internal/market"
)

// fallbackAssets is the fixed dataset substituted after a retry episode
// exhausts. Values are hand-authored and plausible, not live.
var fallbackAssets = []fallbackAsset{
	{"bitcoin", "BTC", "Bitcoin", "https://assets.coingecko.com/coins/images/1/large/bitcoin.png", 67342.18, 1.24, -0.83, 28714523910, 68102.55, 66411.07, 73738.00, -8.67, 19712346},
	{"ethereum", "ETH", "Ethereum", "https://assets.coingecko.com/coins/images/279/large/ethereum.png", 3211.54, -0.42, 2.17, 14231870554, 3268.91, 3154.02, 4878.26, -34.17, 120176231},
	{"solana", "SOL", "Solana", "https://assets.coingecko.com/coins/images/4128/large/solana.png", 148.73, 2.86, 5.41, 2873401266, 151.20, 142.66, 259.96, -42.79, 462817043},
	{"binancecoin", "BNB", "BNB", "https://assets.coingecko.com/coins/images/825/large/bnb-icon2_2x.png", 584.29, 0.67, -1.12, 1612390447, 591.83, 576.44, 690.93, -15.43, 147583932},
	{"ripple", "XRP", "XRP", "https://assets.coingecko.com/coins/images/44/large/xrp-symbol-white-128.png", 0.5213, -1.38, -3.02, 1104258812, 0.5341, 0.5138, 3.40, -84.66, 55571436994},
	{"dogecoin", "DOGE", "Dogecoin", "https://assets.coingecko.com/coins/images/5/large/dogecoin.png", 0.1284, 3.11, 8.92, 964201553, 0.1312, 0.1229, 0.731578, -82.44, 144583226384},
	{"cardano", "ADA", "Cardano", "https://assets.coingecko.com/coins/images/975/large/cardano.png", 0.4462, -0.21, 1.04, 412087120, 0.4538, 0.4401, 3.09, -85.56, 35045020830},
	{"avalanche-2", "AVAX", "Avalanche", "https://assets.coingecko.com/coins/images/12559/large/Avalanche_Circle_RedWhite_Trans.png", 27.91, -2.54, -6.18, 331904772, 28.97, 27.43, 144.96, -80.74, 394537712},
	{"chainlink", "LINK", "Chainlink", "https://assets.coingecko.com/coins/images/877/large/chainlink-new-logo.png", 14.92, 1.78, 4.36, 389120034, 15.14, 14.55, 52.70, -71.69, 587099970},
	{"sui", "SUI", "Sui", "https://assets.coingecko.com/coins/images/26375/large/sui_asset.jpeg", 1.0743, 0.95, -2.47, 287634901, 1.0961, 1.0512, 2.17, -50.49, 2463217193},
}

// fallbackAsset keeps the table above readable; everything becomes decimals
// in FallbackAssets.
type fallbackAsset struct {
	id     string
	symbol string
	name   string
	image  string
	price  float64
	chg24  float64
	chg7   float64
	volume float64
	high   float64
	low    float64
	ath    float64
	athPct float64
	supply float64
}

// FallbackAssets builds the fixed 10-entry record set. Always complete so
// consumers never observe an empty board.
func FallbackAssets() []market.AssetRecord {
	records := make([]market.AssetRecord, len(fallbackAssets))
	for i, a := range fallbackAssets {
		records[i] = market.AssetRecord{
			ID:                a.id,
			Symbol:            a.symbol,
			Name:              a.name,
			ImageURL:          a.image,
			CurrentPrice:      decimal.NewFromFloat(a.price),
			Change24h:         decimal.NewFromFloat(a.chg24),
			Change7d:          decimal.NewFromFloat(a.chg7),
			Volume24h:         decimal.NewFromFloat(a.volume),
			High24h:           decimal.NewFromFloat(a.high),
			Low24h:            decimal.NewFromFloat(a.low),
			ATHPrice:          decimal.NewFromFloat(a.ath),
			ATHChangePct:      decimal.NewFromFloat(a.athPct),
			CirculatingSupply: decimal.NewFromFloat(a.supply),
		}
	}
	return records
}
