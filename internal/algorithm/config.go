// Package algorithm holds the tunable parameter set shared by the signal
// generator, backtester, and optimizer.
package algorithm

import (
	"encoding/json"
	stderrors "errors"
	"math"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/arbinova/fxquant/internal/types"
	"github.com/arbinova/fxquant/pkg/errors"
)

// weightSumTolerance bounds the float drift allowed when checking that the
// two weights sum to exactly 1.
const weightSumTolerance = 1e-9

// Config is the algorithm parameter set. It is a plain value: cloning is a
// struct copy, and every mutation goes through a validated setter so the
// weight-sum and threshold invariants hold at every write boundary.
type Config struct {
	// SentimentWeight is the weight of the fused sentiment score.
	SentimentWeight float64 `yaml:"sentiment_weight" json:"sentiment_weight" jsonschema:"title=Sentiment Weight,description=Weight of the fused sentiment score in the combined score,minimum=0,maximum=1" validate:"gte=0,lte=1"`
	// TechnicalWeight is the weight of the technical score. Always equals
	// 1 - SentimentWeight.
	TechnicalWeight float64 `yaml:"technical_weight" json:"technical_weight" jsonschema:"title=Technical Weight,description=Weight of the technical score in the combined score,minimum=0,maximum=1" validate:"gte=0,lte=1"`
	// BuyThreshold is the combined score at or above which a BUY is emitted.
	BuyThreshold float64 `yaml:"buy_threshold" json:"buy_threshold" jsonschema:"title=Buy Threshold,minimum=0,maximum=1" validate:"gte=0,lte=1"`
	// SellThreshold is the combined score at or below which a SELL is emitted.
	SellThreshold float64 `yaml:"sell_threshold" json:"sell_threshold" jsonschema:"title=Sell Threshold,minimum=-1,maximum=0" validate:"gte=-1,lte=0"`
	// VolatilityWindow is the trailing window for the volatility indicator.
	VolatilityWindow int `yaml:"volatility_window" json:"volatility_window" jsonschema:"title=Volatility Window,minimum=1" validate:"gt=0"`
	// MomentumWindow is the trailing window for the momentum indicator.
	MomentumWindow int `yaml:"momentum_window" json:"momentum_window" jsonschema:"title=Momentum Window,minimum=1" validate:"gt=0"`
	// TrendWindow is the trailing window for the SMA trend indicator.
	TrendWindow int `yaml:"trend_window" json:"trend_window" jsonschema:"title=Trend Window,minimum=1" validate:"gt=0"`
}

// DefaultConfig returns the parameter set the algorithm ships with.
func DefaultConfig() Config {
	return Config{
		SentimentWeight:  0.4,
		TechnicalWeight:  0.6,
		BuyThreshold:     0.3,
		SellThreshold:    -0.3,
		VolatilityWindow: 20,
		MomentumWindow:   10,
		TrendWindow:      50,
	}
}

// Validate checks field ranges and the cross-field invariants. It returns a
// coded error naming the offending field.
func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return errors.Newf(errors.ErrCodeInvalidConfigField, "config field %s is out of range", fieldErrs[0].Field())
		}

		return errors.Wrap(errors.ErrCodeInvalidConfigField, "invalid config", err)
	}

	if math.Abs(c.SentimentWeight+c.TechnicalWeight-1) > weightSumTolerance {
		return errors.Newf(errors.ErrCodeWeightSumMismatch,
			"sentiment_weight (%.6f) and technical_weight (%.6f) must sum to 1", c.SentimentWeight, c.TechnicalWeight)
	}

	if c.BuyThreshold < c.SellThreshold {
		return errors.Newf(errors.ErrCodeThresholdOverlap,
			"buy_threshold (%.6f) must not be below sell_threshold (%.6f)", c.BuyThreshold, c.SellThreshold)
	}

	return nil
}

// SetSentimentWeight sets the sentiment weight and atomically recomputes the
// technical weight so the weights always sum to 1. The config is untouched
// when the value is out of range.
func (c *Config) SetSentimentWeight(w float64) error {
	if w < 0 || w > 1 {
		return errors.Newf(errors.ErrCodeInvalidConfigField, "sentiment_weight %.6f outside [0,1]", w)
	}

	c.SentimentWeight = w
	c.TechnicalWeight = 1 - w

	return nil
}

// SetBuyThreshold sets the BUY threshold, rejecting values outside [0,1].
func (c *Config) SetBuyThreshold(t float64) error {
	if t < 0 || t > 1 {
		return errors.Newf(errors.ErrCodeInvalidConfigField, "buy_threshold %.6f outside [0,1]", t)
	}

	c.BuyThreshold = t

	return nil
}

// SetSellThreshold sets the SELL threshold, rejecting values outside [-1,0].
func (c *Config) SetSellThreshold(t float64) error {
	if t < -1 || t > 0 {
		return errors.Newf(errors.ErrCodeInvalidConfigField, "sell_threshold %.6f outside [-1,0]", t)
	}

	c.SellThreshold = t

	return nil
}

// SetWindows sets the three indicator windows, rejecting non-positive values.
func (c *Config) SetWindows(volatility, momentum, trend int) error {
	if volatility <= 0 {
		return errors.Newf(errors.ErrCodeInvalidWindow, "volatility_window must be positive, got %d", volatility)
	}

	if momentum <= 0 {
		return errors.Newf(errors.ErrCodeInvalidWindow, "momentum_window must be positive, got %d", momentum)
	}

	if trend <= 0 {
		return errors.Newf(errors.ErrCodeInvalidWindow, "trend_window must be positive, got %d", trend)
	}

	c.VolatilityWindow = volatility
	c.MomentumWindow = momentum
	c.TrendWindow = trend

	return nil
}

// Params returns the tunable slice of the config the optimizer searches over.
func (c Config) Params() types.ParameterSet {
	return types.ParameterSet{
		SentimentWeight: c.SentimentWeight,
		TechnicalWeight: c.TechnicalWeight,
		BuyThreshold:    c.BuyThreshold,
		SellThreshold:   c.SellThreshold,
	}
}

// WithParams returns a copy of the config with the given parameter set
// applied. The receiver is never mutated; the copy is validated before it is
// returned so an invalid candidate can never leak into use.
func (c Config) WithParams(params types.ParameterSet) (Config, error) {
	candidate := c
	candidate.SentimentWeight = params.SentimentWeight
	candidate.TechnicalWeight = params.TechnicalWeight
	candidate.BuyThreshold = params.BuyThreshold
	candidate.SellThreshold = params.SellThreshold

	if err := candidate.Validate(); err != nil {
		return Config{}, err
	}

	return candidate, nil
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfigField, err, "failed to read config file %s", path)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfigField, "failed to parse config YAML", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Save writes the config as YAML to the given path.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfigField, "failed to marshal config to YAML", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfigField, err, "failed to write config to %s", path)
	}

	return nil
}

// Schema generates a JSON schema describing the config surface.
func (c Config) Schema() (string, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct:            true,
		AllowAdditionalProperties: false,
	}

	schema := reflector.Reflect(&c)

	data, err := json.Marshal(schema)
	if err != nil {
		return "", err
	}

	return string(data), nil
}
