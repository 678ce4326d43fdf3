// Package backtest replays the signal generator over a historical price
// series under a single-position simulation and scores the outcome.
package backtest

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"

	"github.com/arbinova/fxquant/internal/algorithm"
	"github.com/arbinova/fxquant/internal/strategy"
	"github.com/arbinova/fxquant/internal/types"
)

const (
	// minSeriesLength is the minimum number of points a series needs before
	// any replay step runs.
	minSeriesLength = 10
	// lookbackWindow caps how many trailing points each replay step feeds to
	// the signal generator.
	lookbackWindow = 50
)

// Backtester replays a strategy configuration over historical prices. Each
// run is independent: position and trade state live on the stack of Run, so
// a single Backtester may be shared across concurrent runs.
type Backtester struct {
	generator *strategy.Generator
}

// NewBacktester creates a backtester with its own signal generator.
func NewBacktester() *Backtester {
	return &Backtester{generator: strategy.NewGenerator()}
}

// Run replays the configuration over the price series. When no time-aligned
// sentiment history exists the caller passes None and a fixed neutral
// summary is used at every step. Series shorter than minSeriesLength yield a
// zero-metric result. A position still open after the last point is not
// force closed; realized metrics reflect closed trades only.
func (b *Backtester) Run(points []types.PricePoint, sentimentHistory optional.Option[types.SentimentSummary], config algorithm.Config) types.BacktestResult {
	result := types.BacktestResult{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
	}

	if len(points) < minSeriesLength {
		return result
	}

	summary := sentimentHistory.TakeOr(types.NeutralSentiment())

	var (
		position = types.Position{Side: types.PositionSideNone}
		trades   []types.Trade
	)

	for i := minSeriesLength; i < len(points); i++ {
		start := i - lookbackWindow
		if start < 0 {
			start = 0
		}

		window := points[start:i]
		currentPrice := points[i].Price

		signal := b.generator.Generate(window, summary, currentPrice, points[i].Timestamp, config)

		switch {
		case signal.Type == types.SignalTypeBuy && position.Side != types.PositionSideLong:
			if position.Side == types.PositionSideShort {
				trades = append(trades, closeTrade(position, currentPrice))
			}

			position = types.Position{Side: types.PositionSideLong, EntryPrice: currentPrice}

		case signal.Type == types.SignalTypeSell && position.Side != types.PositionSideShort:
			if position.Side == types.PositionSideLong {
				trades = append(trades, closeTrade(position, currentPrice))
			}

			position = types.Position{Side: types.PositionSideShort, EntryPrice: currentPrice}
		}
	}

	fillMetrics(&result, trades)

	return result
}

// closeTrade records the round trip realized by closing the position at the
// given price. A zero entry price yields a zero return rather than a
// non-finite value.
func closeTrade(position types.Position, exitPrice float64) types.Trade {
	profit := exitPrice - position.EntryPrice
	if position.Side == types.PositionSideShort {
		profit = position.EntryPrice - exitPrice
	}

	trade := types.Trade{
		Side:       position.Side,
		EntryPrice: position.EntryPrice,
		ExitPrice:  exitPrice,
		Profit:     profit,
	}

	if position.EntryPrice != 0 {
		trade.Return = profit / position.EntryPrice
	}

	return trade
}

func fillMetrics(result *types.BacktestResult, trades []types.Trade) {
	if len(trades) == 0 {
		return
	}

	returns := make([]float64, len(trades))

	for i, trade := range trades {
		returns[i] = trade.Return

		if trade.Profit > 0 {
			result.ProfitableTrades++
		}

		result.TotalReturn += trade.Return
	}

	result.TotalTrades = len(trades)
	result.WinRate = float64(result.ProfitableTrades) / float64(result.TotalTrades)
	result.AverageReturnPerTrade = result.TotalReturn / float64(result.TotalTrades)
	result.MaxDrawdown = maxDrawdown(returns)
	result.SharpeRatio = sharpeRatio(returns)
}

// maxDrawdown is the largest gap between the running maximum of the
// cumulative return curve and the curve itself.
func maxDrawdown(returns []float64) float64 {
	var (
		cumulative float64
		runningMax = math.Inf(-1)
		drawdown   float64
	)

	for _, r := range returns {
		cumulative += r
		if cumulative > runningMax {
			runningMax = cumulative
		}

		if gap := runningMax - cumulative; gap > drawdown {
			drawdown = gap
		}
	}

	return drawdown
}

// sharpeRatio is mean return over population standard deviation, guarded to
// 0 for fewer than 2 trades or zero variance. No annualization, no risk-free
// rate.
func sharpeRatio(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}

	// Zero variance means every return is identical. Checked directly
	// because rounding in the mean can leave the computed variance a few
	// ulps above zero and blow the ratio up.
	identical := true

	for _, r := range returns[1:] {
		if r != returns[0] {
			identical = false
			break
		}
	}

	if identical {
		return 0
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}

	mean /= float64(len(returns))

	var variance float64
	for _, r := range returns {
		deviation := r - mean
		variance += deviation * deviation
	}

	variance /= float64(len(returns))
	if variance == 0 {
		return 0
	}

	return mean / math.Sqrt(variance)
}
