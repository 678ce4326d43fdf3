// Package sentiment rescales an aggregated news sentiment summary into a
// bounded score usable alongside the technical score.
package sentiment

import "github.com/arbinova/fxquant/internal/types"

// Fusion turns a SentimentSummary into a single score in [-1, 1]. The raw
// sentiment is discounted twice: by how many of the articles actually relate
// to the currency, and by how many articles back the aggregate at all.
type Fusion struct{}

// NewFusion creates a new sentiment fusion.
func NewFusion() *Fusion {
	return &Fusion{}
}

// Fuse computes the relevance- and confidence-adjusted sentiment score.
// A summary with no news scores 0.
func (f *Fusion) Fuse(summary types.SentimentSummary) float64 {
	var relevance float64
	if summary.TotalNews > 0 {
		relevance = float64(summary.CurrencyRelatedNews) / float64(summary.TotalNews)
		if relevance > 1 {
			relevance = 1
		}
	}

	adjusted := summary.OverallSentiment * (0.5 + 0.5*relevance)

	confidenceFactor := float64(summary.TotalNews) / 10
	if confidenceFactor > 1 {
		confidenceFactor = 1
	}

	score := adjusted * confidenceFactor

	if score > 1 {
		return 1
	}

	if score < -1 {
		return -1
	}

	return score
}
