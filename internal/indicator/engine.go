// Package indicator computes windowed technical statistics from a price
// series and folds them into a single technical score.
package indicator

import (
	"math"

	"github.com/arbinova/fxquant/internal/algorithm"
	"github.com/arbinova/fxquant/internal/types"
)

// rsiPeriod is the fixed trailing window of signed deltas used by the RSI.
const rsiPeriod = 14

// Engine computes an IndicatorSet from a price series. It is stateless and
// deterministic: identical inputs always produce identical outputs, and
// degenerate inputs fall back to documented defaults instead of failing.
type Engine struct{}

// NewEngine creates a new indicator engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Compute calculates all indicators for the given price series. The series
// is defensively sorted ascending by timestamp before use; caller order is
// not trusted.
func (e *Engine) Compute(points []types.PricePoint, config algorithm.Config) types.IndicatorSet {
	sorted := types.SortPricePoints(points)

	prices := make([]float64, len(sorted))
	for i, p := range sorted {
		prices[i] = p.Price
	}

	set := types.IndicatorSet{
		Momentum:    momentum(prices, config.MomentumWindow),
		Volatility:  volatility(prices, config.VolatilityWindow),
		Trend:       trend(prices, config.TrendWindow),
		RSI:         rsi(prices),
		PriceChange: priceChange(prices),
	}
	set.TechnicalScore = technicalScore(set)

	return set
}

// momentum is the relative price change over the trailing window. Series
// shorter than the window score 0.
func momentum(prices []float64, window int) float64 {
	n := len(prices)
	if window <= 0 || n < window {
		return 0
	}

	past := prices[n-window]
	if past == 0 {
		return 0
	}

	return (prices[n-1] - past) / past
}

// volatility is the population standard deviation of one-step percentage
// returns over the trailing window. Requires at least 2 points, else 0.
func volatility(prices []float64, window int) float64 {
	n := len(prices)
	if window <= 0 || n < 2 {
		return 0
	}

	returns := stepReturns(prices)
	if len(returns) > window {
		returns = returns[len(returns)-window:]
	}

	return populationStdDev(returns)
}

// trend is the relative distance of the last price from its simple moving
// average. Unlike momentum this is full-window only: series shorter than the
// window score 0 rather than falling back to a partial window.
func trend(prices []float64, window int) float64 {
	n := len(prices)
	if window <= 0 || n < window {
		return 0
	}

	// Sum deviations from the last price instead of raw prices: a constant
	// window then sums to exactly zero, so a flat series scores an exact 0
	// rather than accumulation noise.
	last := prices[n-1]

	var sum float64
	for _, p := range prices[n-window:] {
		sum += p - last
	}

	sma := last + sum/float64(window)
	if sma == 0 {
		return 0
	}

	return (last - sma) / sma
}

// rsi is the Relative Strength Index over a trailing window of rsiPeriod
// signed deltas. The zero-division policy is explicit: all-zero deltas
// resolve to 50, gains without losses to 100. Defaults to 50 when the series
// cannot fill the delta window.
func rsi(prices []float64) float64 {
	n := len(prices)
	if n < rsiPeriod+1 {
		return 50
	}

	var gainSum, lossSum float64

	for i := n - rsiPeriod; i < n; i++ {
		delta := prices[i] - prices[i-1]
		if delta > 0 {
			gainSum += delta
		} else {
			lossSum -= delta
		}
	}

	avgGain := gainSum / rsiPeriod
	avgLoss := lossSum / rsiPeriod

	switch {
	case avgLoss == 0 && avgGain > 0:
		return 100
	case avgLoss == 0 && avgGain == 0:
		return 50
	default:
		rs := avgGain / avgLoss
		return 100 - 100/(1+rs)
	}
}

// priceChange is the one-step return between the two most recent points.
func priceChange(prices []float64) float64 {
	n := len(prices)
	if n < 2 {
		return 0
	}

	previous := prices[n-2]
	if previous == 0 {
		return 0
	}

	return (prices[n-1] - previous) / previous
}

// technicalScore folds the individual indicators into a single score in
// [-1, 1]. High volatility damps the score instead of contributing to it.
func technicalScore(set types.IndicatorSet) float64 {
	rsiNorm := (set.RSI - 50) / 50
	momentumNorm := clamp(set.Momentum*10, -1, 1)
	trendNorm := clamp(set.Trend*20, -1, 1)
	volatilityFactor := 1 - math.Min(set.Volatility*100, 0.5)

	score := (momentumNorm*0.4 +
		trendNorm*0.3 +
		rsiNorm*0.2 +
		set.PriceChange*100*0.1) * volatilityFactor

	return clamp(score, -1, 1)
}

// stepReturns computes one-step percentage returns, skipping pairs whose
// base price is zero so no return can be non-finite.
func stepReturns(prices []float64) []float64 {
	returns := make([]float64, 0, len(prices)-1)

	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			continue
		}

		returns = append(returns, (prices[i]-prices[i-1])/prices[i-1])
	}

	return returns
}

func populationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var mean float64
	for _, v := range values {
		mean += v
	}

	mean /= float64(len(values))

	var variance float64
	for _, v := range values {
		deviation := v - mean
		variance += deviation * deviation
	}

	variance /= float64(len(values))

	return math.Sqrt(variance)
}

func clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}

	if value > high {
		return high
	}

	return value
}
