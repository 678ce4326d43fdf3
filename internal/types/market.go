package types

import (
	"sort"
	"time"
)

// PricePoint is a single observation of the instrument price.
type PricePoint struct {
	// Price is the observed price. Must be positive to be meaningful.
	Price float64 `csv:"price" json:"price" yaml:"price"`
	// Timestamp is when the observation was made.
	Timestamp time.Time `csv:"timestamp" json:"timestamp" yaml:"timestamp"`
	// Source labels the market data provider that produced the observation.
	Source string `csv:"source" json:"source" yaml:"source"`
}

// SortPricePoints returns a copy of points sorted ascending by timestamp.
// The sort is stable so equal-timestamp points keep their caller order.
// Callers are not trusted to deliver chronological data.
func SortPricePoints(points []PricePoint) []PricePoint {
	sorted := make([]PricePoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	return sorted
}

// SentimentSummary is the aggregated output of the news sentiment pipeline.
type SentimentSummary struct {
	// OverallSentiment is the aggregated article sentiment in [-1, 1].
	OverallSentiment float64 `json:"overall_sentiment" yaml:"overall_sentiment"`
	// TotalNews is the number of articles aggregated.
	TotalNews int `json:"total_news" yaml:"total_news"`
	// CurrencyRelatedNews is how many of those articles mention the currency,
	// in [0, TotalNews].
	CurrencyRelatedNews int `json:"currency_related_news" yaml:"currency_related_news"`
}

// NeutralSentiment is the fixed stand-in used when no time-aligned sentiment
// history is available, e.g. during backtest replay.
func NeutralSentiment() SentimentSummary {
	return SentimentSummary{
		OverallSentiment:    0,
		TotalNews:           5,
		CurrencyRelatedNews: 3,
	}
}
