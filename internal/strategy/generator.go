// Package strategy combines the technical and sentiment scores into a
// discrete trading signal with a deterministic justification.
package strategy

import (
	"fmt"
	"strings"
	"time"

	"github.com/arbinova/fxquant/internal/algorithm"
	"github.com/arbinova/fxquant/internal/indicator"
	"github.com/arbinova/fxquant/internal/sentiment"
	"github.com/arbinova/fxquant/internal/types"
)

// Generator produces trading signals from a price history and a sentiment
// summary. It is pure with respect to its inputs and safe for concurrent use.
type Generator struct {
	engine *indicator.Engine
	fusion *sentiment.Fusion
}

// NewGenerator creates a signal generator with its own indicator engine and
// sentiment fusion.
func NewGenerator() *Generator {
	return &Generator{
		engine: indicator.NewEngine(),
		fusion: sentiment.NewFusion(),
	}
}

// Generate computes indicators and fused sentiment from the raw inputs and
// emits a signal stamped with the given time.
func (g *Generator) Generate(points []types.PricePoint, summary types.SentimentSummary, currentPrice float64, at time.Time, config algorithm.Config) types.Signal {
	set := g.engine.Compute(points, config)
	sentimentScore := g.fusion.Fuse(summary)

	return g.generate(set, summary, sentimentScore, currentPrice, at, config)
}

// GenerateFromIndicators emits a signal from an already-computed indicator
// set and fused sentiment score.
func (g *Generator) GenerateFromIndicators(set types.IndicatorSet, summary types.SentimentSummary, sentimentScore float64, currentPrice float64, at time.Time, config algorithm.Config) types.Signal {
	return g.generate(set, summary, sentimentScore, currentPrice, at, config)
}

func (g *Generator) generate(set types.IndicatorSet, summary types.SentimentSummary, sentimentScore float64, currentPrice float64, at time.Time, config algorithm.Config) types.Signal {
	combined := set.TechnicalScore*config.TechnicalWeight + sentimentScore*config.SentimentWeight

	// Tie order matters: a combined score exactly on the BUY threshold is a
	// BUY, exactly on the SELL threshold is a SELL.
	var (
		signalType types.SignalType
		confidence float64
	)

	switch {
	case combined >= config.BuyThreshold:
		signalType = types.SignalTypeBuy
		confidence = minFloat(0.6+abs(combined)*0.4, 1)
	case combined <= config.SellThreshold:
		signalType = types.SignalTypeSell
		confidence = minFloat(0.6+abs(combined)*0.4, 1)
	default:
		signalType = types.SignalTypeHold
		confidence = 0.5 + abs(combined)*0.2
	}

	return types.Signal{
		Type:           signalType,
		Confidence:     confidence,
		PriceAtSignal:  currentPrice,
		Reasoning:      buildReasoning(signalType, set, summary, set.TechnicalScore, sentimentScore, combined),
		Timestamp:      at,
		TechnicalScore: set.TechnicalScore,
		SentimentScore: sentimentScore,
		CombinedScore:  combined,
	}
}

// buildReasoning assembles the justification text. The output is a pure
// function of its arguments so equal inputs always yield an identical string.
func buildReasoning(signalType types.SignalType, set types.IndicatorSet, summary types.SentimentSummary, technicalScore, sentimentScore, combined float64) string {
	var parts []string

	if abs(technicalScore) > 0.2 {
		direction := "an upward"
		if technicalScore < 0 {
			direction = "a downward"
		}

		parts = append(parts, fmt.Sprintf("Technical analysis indicates %s trend (score: %.3f)", direction, technicalScore))

		if set.Momentum > 0.02 {
			parts = append(parts, "Positive momentum detected")
		} else if set.Momentum < -0.02 {
			parts = append(parts, "Negative momentum detected")
		}

		if set.RSI > 70 {
			parts = append(parts, "RSI indicates overbought conditions")
		} else if set.RSI < 30 {
			parts = append(parts, "RSI indicates oversold conditions")
		}
	}

	if abs(sentimentScore) > 0.1 {
		direction := "positive"
		if sentimentScore < 0 {
			direction = "negative"
		}

		parts = append(parts, fmt.Sprintf("News sentiment is %s (score: %.3f)", direction, sentimentScore))

		if summary.TotalNews > 0 {
			parts = append(parts, fmt.Sprintf("Based on %d news articles (%d currency related)", summary.TotalNews, summary.CurrencyRelatedNews))
		}
	}

	switch signalType {
	case types.SignalTypeBuy:
		parts = append(parts, fmt.Sprintf("BUY recommendation with combined score of %.3f", combined))
	case types.SignalTypeSell:
		parts = append(parts, fmt.Sprintf("SELL recommendation with combined score of %.3f", combined))
	default:
		parts = append(parts, fmt.Sprintf("HOLD recommendation with neutral score of %.3f", combined))
	}

	return strings.Join(parts, ". ") + "."
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}

	return b
}
