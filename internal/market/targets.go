package market

// Target identifies one tracked asset on the upstream API.
type Target struct {
	ID     string
	Symbol string
}

// Targets is the fixed tracked-asset list. Order is preserved from the
// request through to rendering.
var Targets = []Target{
	{ID: "bitcoin", Symbol: "BTC"},
	{ID: "ethereum", Symbol: "ETH"},
	{ID: "solana", Symbol: "SOL"},
	{ID: "binancecoin", Symbol: "BNB"},
	{ID: "ripple", Symbol: "XRP"},
	{ID: "dogecoin", Symbol: "DOGE"},
	{ID: "cardano", Symbol: "ADA"},
	{ID: "avalanche-2", Symbol: "AVAX"},
	{ID: "chainlink", Symbol: "LINK"},
	{ID: "sui", Symbol: "SUI"},
}

// TargetIDs returns the upstream identifiers in request order.
func TargetIDs() []string {
	ids := make([]string, len(Targets))
	for i, t := range Targets {
		ids[i] = t.ID
	}
	return ids
}

// TargetSymbols returns the tracked symbols in request order.
func TargetSymbols() []string {
	symbols := make([]string, len(Targets))
	for i, t := range Targets {
		symbols[i] = t.Symbol
	}
	return symbols
}
