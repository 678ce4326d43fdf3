package algorithm

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/arbinova/fxquant/internal/types"
	"github.com/arbinova/fxquant/pkg/errors"
)

type ConfigUnitTestSuite struct {
	suite.Suite
}

func TestConfigUnitSuite(t *testing.T) {
	suite.Run(t, new(ConfigUnitTestSuite))
}

func (suite *ConfigUnitTestSuite) TestDefaultConfigIsValid() {
	config := DefaultConfig()

	suite.NoError(config.Validate())
	suite.InDelta(1.0, config.SentimentWeight+config.TechnicalWeight, 1e-12)
	suite.Equal(0.3, config.BuyThreshold)
	suite.Equal(-0.3, config.SellThreshold)
	suite.Equal(20, config.VolatilityWindow)
	suite.Equal(10, config.MomentumWindow)
	suite.Equal(50, config.TrendWindow)
}

func (suite *ConfigUnitTestSuite) TestSetSentimentWeightRecomputesTechnicalWeight() {
	config := DefaultConfig()

	suite.Require().NoError(config.SetSentimentWeight(0.25))
	suite.Equal(0.25, config.SentimentWeight)
	suite.Equal(0.75, config.TechnicalWeight)
	suite.NoError(config.Validate())
}

func (suite *ConfigUnitTestSuite) TestSetSentimentWeightRejectsOutOfRange() {
	config := DefaultConfig()
	before := config

	err := config.SetSentimentWeight(1.5)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfigField))
	suite.Contains(err.Error(), "sentiment_weight")
	suite.Equal(before, config, "rejected update must not touch any field")
}

func (suite *ConfigUnitTestSuite) TestThresholdSettersRejectOutOfRange() {
	config := DefaultConfig()
	before := config

	err := config.SetBuyThreshold(1.2)
	suite.Require().Error(err)
	suite.Contains(err.Error(), "buy_threshold")
	suite.Equal(before, config)

	err = config.SetSellThreshold(0.1)
	suite.Require().Error(err)
	suite.Contains(err.Error(), "sell_threshold")
	suite.Equal(before, config)
}

func (suite *ConfigUnitTestSuite) TestSetWindowsRejectsNonPositive() {
	config := DefaultConfig()
	before := config

	err := config.SetWindows(0, 10, 50)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidWindow))
	suite.Equal(before, config)

	suite.NoError(config.SetWindows(5, 5, 5))
	suite.Equal(5, config.TrendWindow)
}

func (suite *ConfigUnitTestSuite) TestValidateCatchesWeightMismatch() {
	config := DefaultConfig()
	config.TechnicalWeight = 0.7

	err := config.Validate()
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeWeightSumMismatch))
}

func (suite *ConfigUnitTestSuite) TestValidateCatchesFieldRange() {
	config := DefaultConfig()
	config.BuyThreshold = 1.5

	err := config.Validate()
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfigField))
	suite.Contains(err.Error(), "BuyThreshold")
}

func (suite *ConfigUnitTestSuite) TestWithParamsIsTransactional() {
	config := DefaultConfig()

	candidate, err := config.WithParams(types.ParameterSet{
		SentimentWeight: 0.2,
		TechnicalWeight: 0.8,
		BuyThreshold:    0.25,
		SellThreshold:   -0.25,
	})
	suite.Require().NoError(err)
	suite.Equal(0.2, candidate.SentimentWeight)
	suite.Equal(0.4, config.SentimentWeight, "receiver must not be mutated")

	_, err = config.WithParams(types.ParameterSet{
		SentimentWeight: 0.2,
		TechnicalWeight: 0.9,
		BuyThreshold:    0.25,
		SellThreshold:   -0.25,
	})
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeWeightSumMismatch))
}

func (suite *ConfigUnitTestSuite) TestSaveLoadRoundTrip() {
	path := filepath.Join(suite.T().TempDir(), "config.yaml")

	config := DefaultConfig()
	suite.Require().NoError(config.SetSentimentWeight(0.3))
	suite.Require().NoError(config.Save(path))

	loaded, err := LoadConfig(path)
	suite.Require().NoError(err)
	suite.Equal(config, loaded)
}

func (suite *ConfigUnitTestSuite) TestLoadRejectsInvalidConfig() {
	path := filepath.Join(suite.T().TempDir(), "config.yaml")

	config := DefaultConfig()
	config.TechnicalWeight = 0.9
	suite.Require().NoError(config.Save(path))

	_, err := LoadConfig(path)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeWeightSumMismatch))
}

func (suite *ConfigUnitTestSuite) TestSchema() {
	schema, err := DefaultConfig().Schema()
	suite.Require().NoError(err)
	suite.Contains(schema, "sentiment_weight")
	suite.Contains(schema, "buy_threshold")
}

type StoreUnitTestSuite struct {
	suite.Suite
}

func TestStoreUnitSuite(t *testing.T) {
	suite.Run(t, new(StoreUnitTestSuite))
}

func (suite *StoreUnitTestSuite) TestNewStoreValidates() {
	config := DefaultConfig()
	config.TechnicalWeight = 0.9

	_, err := NewStore(config)
	suite.Require().Error(err)
}

func (suite *StoreUnitTestSuite) TestSnapshotIsACopy() {
	store, err := NewStore(DefaultConfig())
	suite.Require().NoError(err)

	snapshot := store.Snapshot()
	suite.Require().NoError(snapshot.SetSentimentWeight(0.1))

	suite.Equal(0.4, store.Snapshot().SentimentWeight)
}

func (suite *StoreUnitTestSuite) TestUpdateCommitsOnSuccess() {
	store, err := NewStore(DefaultConfig())
	suite.Require().NoError(err)

	suite.Require().NoError(store.Update(func(c *Config) error {
		return c.SetSentimentWeight(0.5)
	}))

	suite.Equal(0.5, store.Snapshot().SentimentWeight)
	suite.Equal(0.5, store.Snapshot().TechnicalWeight)
}

func (suite *StoreUnitTestSuite) TestRejectedUpdateTouchesNothing() {
	store, err := NewStore(DefaultConfig())
	suite.Require().NoError(err)

	before := store.Snapshot()

	updateErr := store.Update(func(c *Config) error {
		if err := c.SetBuyThreshold(0.9); err != nil {
			return err
		}

		return c.SetSentimentWeight(2)
	})

	suite.Require().Error(updateErr)
	suite.Equal(before, store.Snapshot(), "failed update must leave every field untouched")
}

func (suite *StoreUnitTestSuite) TestReplaceValidates() {
	store, err := NewStore(DefaultConfig())
	suite.Require().NoError(err)

	invalid := DefaultConfig()
	invalid.SellThreshold = 0.5

	suite.Error(store.Replace(invalid))
	suite.Equal(DefaultConfig(), store.Snapshot())
}
