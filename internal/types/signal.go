package types

import "time"

type SignalType string

const (
	// SignalTypeBuy recommends opening or holding a long exposure.
	SignalTypeBuy SignalType = "BUY"
	// SignalTypeSell recommends opening or holding a short exposure.
	SignalTypeSell SignalType = "SELL"
	// SignalTypeHold recommends leaving the current position untouched.
	SignalTypeHold SignalType = "HOLD"
)

// Signal is the trading recommendation produced by the signal generator.
// It is immutable once constructed.
type Signal struct {
	// Type is the discrete recommendation.
	Type SignalType `json:"signal_type" yaml:"signal_type"`
	// Confidence is in [0, 1].
	Confidence float64 `json:"confidence" yaml:"confidence"`
	// PriceAtSignal is the instrument price when the signal was generated.
	PriceAtSignal float64 `json:"price_at_signal" yaml:"price_at_signal"`
	// Reasoning is a deterministic human-readable justification.
	Reasoning string `json:"reasoning" yaml:"reasoning"`
	// Timestamp is when the signal was generated.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	// TechnicalScore is the technical component in [-1, 1].
	TechnicalScore float64 `json:"technical_score" yaml:"technical_score"`
	// SentimentScore is the fused sentiment component in [-1, 1].
	SentimentScore float64 `json:"sentiment_score" yaml:"sentiment_score"`
	// CombinedScore is the weighted combination the decision was made on.
	CombinedScore float64 `json:"combined_score" yaml:"combined_score"`
}
