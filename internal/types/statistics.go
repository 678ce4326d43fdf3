package types

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arbinova/fxquant/pkg/errors"
)

// BacktestResult aggregates the realized performance of a single replay.
// Only closed trades contribute; a position still open at the end of the
// series is ignored rather than force closed.
type BacktestResult struct {
	// ID is the unique identifier for this backtest run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when this backtest run was executed.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	// TotalTrades is the count of closed trades.
	TotalTrades int `yaml:"total_trades" json:"total_trades"`
	// ProfitableTrades is the count of closed trades with positive profit.
	ProfitableTrades int `yaml:"profitable_trades" json:"profitable_trades"`
	// WinRate is ProfitableTrades / TotalTrades, 0 when no trades closed.
	WinRate float64 `yaml:"win_rate" json:"win_rate"`
	// TotalReturn is the sum of per-trade returns.
	TotalReturn float64 `yaml:"total_return" json:"total_return"`
	// MaxDrawdown is the largest peak-to-trough decline of the cumulative
	// return curve.
	MaxDrawdown float64 `yaml:"max_drawdown" json:"max_drawdown"`
	// SharpeRatio is mean return over return standard deviation, without
	// annualization or a risk-free rate. 0 when fewer than 2 trades closed
	// or the returns have zero variance.
	SharpeRatio float64 `yaml:"sharpe_ratio" json:"sharpe_ratio"`
	// AverageReturnPerTrade is TotalReturn / TotalTrades, 0 when no trades.
	AverageReturnPerTrade float64 `yaml:"average_return_per_trade" json:"average_return_per_trade"`
}

// ParameterSet is the tunable slice of the algorithm configuration that the
// grid search optimizes over.
type ParameterSet struct {
	SentimentWeight float64 `yaml:"sentiment_weight" json:"sentiment_weight"`
	TechnicalWeight float64 `yaml:"technical_weight" json:"technical_weight"`
	BuyThreshold    float64 `yaml:"buy_threshold" json:"buy_threshold"`
	SellThreshold   float64 `yaml:"sell_threshold" json:"sell_threshold"`
}

// OptimizationResult is the outcome of a grid search over the parameter space.
type OptimizationResult struct {
	// ID is the unique identifier for this optimization run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when this optimization run was executed.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	// BestParams is the highest-fitness parameter set found.
	BestParams ParameterSet `yaml:"best_params" json:"best_params"`
	// BestFitness is the fitness achieved by BestParams. The grid is coarse
	// and evaluated on the search data itself, so this is not a claim of
	// global optimality.
	BestFitness float64 `yaml:"best_fitness" json:"best_fitness"`
	// Evaluations is the number of grid cells evaluated.
	Evaluations int `yaml:"evaluations" json:"evaluations"`
}

// WriteBacktestResult marshals the result to YAML at the given path.
func WriteBacktestResult(path string, result BacktestResult) error {
	return writeYAML(path, result)
}

// WriteOptimizationResult marshals the result to YAML at the given path.
func WriteOptimizationResult(path string, result OptimizationResult) error {
	return writeYAML(path, result)
}

func writeYAML(path string, value any) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return errors.Wrap(errors.ErrCodeResultWriteFailed, "failed to marshal result to YAML", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(errors.ErrCodeResultWriteFailed, err, "failed to write result to %s", path)
	}

	return nil
}
