package types

// IndicatorSet holds the windowed technical statistics computed from a price
// series. It is recomputed on every call and carries no identity.
type IndicatorSet struct {
	// Momentum is the relative price change over the momentum window.
	Momentum float64 `json:"momentum" yaml:"momentum"`
	// Volatility is the population standard deviation of one-step returns.
	Volatility float64 `json:"volatility" yaml:"volatility"`
	// Trend is the relative distance of the last price from its SMA.
	Trend float64 `json:"trend" yaml:"trend"`
	// RSI is the Relative Strength Index in [0, 100].
	RSI float64 `json:"rsi" yaml:"rsi"`
	// PriceChange is the one-step return between the two most recent points.
	PriceChange float64 `json:"price_change" yaml:"price_change"`
	// TechnicalScore is the combined technical score in [-1, 1].
	TechnicalScore float64 `json:"technical_score" yaml:"technical_score"`
}
