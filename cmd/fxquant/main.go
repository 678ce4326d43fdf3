package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/moznion/go-optional"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/arbinova/fxquant/internal/algorithm"
	"github.com/arbinova/fxquant/internal/backtest"
	"github.com/arbinova/fxquant/internal/logger"
	"github.com/arbinova/fxquant/internal/optimizer"
	"github.com/arbinova/fxquant/internal/strategy"
	"github.com/arbinova/fxquant/internal/types"
	"github.com/arbinova/fxquant/pkg/marketdata"
)

func main() {
	log, err := logger.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	cmd := &cli.Command{
		Name:  "fxquant",
		Usage: "sentiment-aware FX signal engine, backtester, and parameter tuner",
		Commands: []*cli.Command{
			signalCommand(log),
			backtestCommand(log),
			optimizeCommand(log),
			configCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal("command failed", zap.Error(err))
	}
}

func dataFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "data",
		Usage:    "path to the price history CSV (price, timestamp, source columns)",
		Required: true,
	}
}

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "config",
		Usage: "path to an algorithm config YAML; defaults apply when omitted",
	}
}

func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "output",
		Usage: "path to write the result YAML to; printed to stdout when omitted",
	}
}

func loadConfig(cmd *cli.Command) (algorithm.Config, error) {
	path := cmd.String("config")
	if path == "" {
		return algorithm.DefaultConfig(), nil
	}

	return algorithm.LoadConfig(path)
}

func signalCommand(log *logger.Logger) *cli.Command {
	return &cli.Command{
		Name:  "signal",
		Usage: "generate a trading signal from a price history and sentiment summary",
		Flags: []cli.Flag{
			dataFlag(),
			configFlag(),
			&cli.FloatFlag{
				Name:  "sentiment",
				Usage: "aggregated news sentiment in [-1,1]",
			},
			&cli.IntFlag{
				Name:  "total-news",
				Usage: "number of aggregated news articles",
			},
			&cli.IntFlag{
				Name:  "currency-news",
				Usage: "number of currency-related news articles",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			points, err := marketdata.LoadPriceHistory(cmd.String("data"))
			if err != nil {
				return err
			}

			summary := types.SentimentSummary{
				OverallSentiment:    cmd.Float("sentiment"),
				TotalNews:           int(cmd.Int("total-news")),
				CurrencyRelatedNews: int(cmd.Int("currency-news")),
			}

			sorted := types.SortPricePoints(points)
			currentPrice := sorted[len(sorted)-1].Price

			signal := strategy.NewGenerator().Generate(points, summary, currentPrice, time.Now().UTC(), config)

			log.Info("signal generated",
				zap.String("type", string(signal.Type)),
				zap.Float64("confidence", signal.Confidence),
				zap.Float64("combined_score", signal.CombinedScore),
			)

			return printYAML(signal)
		},
	}
}

func backtestCommand(log *logger.Logger) *cli.Command {
	return &cli.Command{
		Name:  "backtest",
		Usage: "replay the strategy over a historical price series",
		Flags: []cli.Flag{dataFlag(), configFlag(), outputFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			points, err := marketdata.LoadPriceHistory(cmd.String("data"))
			if err != nil {
				return err
			}

			log.Info("starting backtest", zap.Int("points", len(points)))

			result := backtest.NewBacktester().Run(points, optional.None[types.SentimentSummary](), config)

			log.Info("backtest finished",
				zap.Int("total_trades", result.TotalTrades),
				zap.Float64("win_rate", result.WinRate),
				zap.Float64("total_return", result.TotalReturn),
			)

			if output := cmd.String("output"); output != "" {
				return types.WriteBacktestResult(output, result)
			}

			return printYAML(result)
		},
	}
}

func optimizeCommand(log *logger.Logger) *cli.Command {
	return &cli.Command{
		Name:  "optimize",
		Usage: "grid-search the algorithm parameters against a historical price series",
		Flags: []cli.Flag{
			dataFlag(),
			configFlag(),
			outputFlag(),
			&cli.BoolFlag{
				Name:  "parallel",
				Usage: "evaluate grid cells concurrently",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			points, err := marketdata.LoadPriceHistory(cmd.String("data"))
			if err != nil {
				return err
			}

			parallelism := 1
			if cmd.Bool("parallel") {
				parallelism = runtime.NumCPU()
			}

			bar := progressbar.Default(int64(optimizer.GridSize()), "optimizing")

			opt := optimizer.New(
				optimizer.WithParallelism(parallelism),
				optimizer.WithProgress(func() {
					bar.Add(1) //nolint:errcheck
				}),
			)

			result, err := opt.Optimize(ctx, points, config)
			if err != nil {
				return err
			}

			log.Info("optimization finished",
				zap.Float64("best_fitness", result.BestFitness),
				zap.Float64("sentiment_weight", result.BestParams.SentimentWeight),
				zap.Float64("buy_threshold", result.BestParams.BuyThreshold),
			)

			if output := cmd.String("output"); output != "" {
				return types.WriteOptimizationResult(output, result)
			}

			return printYAML(result)
		},
	}
}

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "inspect the algorithm configuration surface",
		Commands: []*cli.Command{
			{
				Name:  "schema",
				Usage: "print the JSON schema of the algorithm config",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					schema, err := algorithm.DefaultConfig().Schema()
					if err != nil {
						return err
					}

					fmt.Println(schema)

					return nil
				},
			},
			{
				Name:  "default",
				Usage: "print the default algorithm config as YAML",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return printYAML(algorithm.DefaultConfig())
				},
			},
		},
	}
}

func printYAML(value any) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return err
	}

	fmt.Print(string(data))

	return nil
}
