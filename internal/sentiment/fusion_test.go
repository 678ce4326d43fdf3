package sentiment

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/arbinova/fxquant/internal/types"
)

type FusionUnitTestSuite struct {
	suite.Suite

	fusion *Fusion
}

func TestFusionUnitSuite(t *testing.T) {
	suite.Run(t, new(FusionUnitTestSuite))
}

func (suite *FusionUnitTestSuite) SetupTest() {
	suite.fusion = NewFusion()
}

func (suite *FusionUnitTestSuite) TestNoNewsScoresZero() {
	score := suite.fusion.Fuse(types.SentimentSummary{OverallSentiment: 0.9})
	suite.Zero(score)
}

func (suite *FusionUnitTestSuite) TestNeutralSentimentScoresZero() {
	score := suite.fusion.Fuse(types.NeutralSentiment())
	suite.Zero(score)
}

func (suite *FusionUnitTestSuite) TestFullRelevanceFullConfidence() {
	// 10+ articles, all currency related: the raw sentiment passes through.
	score := suite.fusion.Fuse(types.SentimentSummary{
		OverallSentiment:    0.8,
		TotalNews:           10,
		CurrencyRelatedNews: 10,
	})
	suite.InDelta(0.8, score, 1e-12)
}

func (suite *FusionUnitTestSuite) TestZeroRelevanceHalvesSentiment() {
	score := suite.fusion.Fuse(types.SentimentSummary{
		OverallSentiment:    0.8,
		TotalNews:           10,
		CurrencyRelatedNews: 0,
	})
	suite.InDelta(0.4, score, 1e-12)
}

func (suite *FusionUnitTestSuite) TestFewArticlesDampenConfidence() {
	// 5 of 10 confidence, 3 of 5 relevance.
	score := suite.fusion.Fuse(types.SentimentSummary{
		OverallSentiment:    1,
		TotalNews:           5,
		CurrencyRelatedNews: 3,
	})
	suite.InDelta(1*(0.5+0.5*0.6)*0.5, score, 1e-12)
}

func (suite *FusionUnitTestSuite) TestScoreAlwaysBounded() {
	summaries := []types.SentimentSummary{
		{OverallSentiment: 1, TotalNews: 1000, CurrencyRelatedNews: 1000},
		{OverallSentiment: -1, TotalNews: 1000, CurrencyRelatedNews: 1000},
		{OverallSentiment: -0.5, TotalNews: 3, CurrencyRelatedNews: 1},
		{OverallSentiment: 0.25, TotalNews: 0, CurrencyRelatedNews: 0},
	}

	for _, summary := range summaries {
		score := suite.fusion.Fuse(summary)
		suite.GreaterOrEqual(score, -1.0)
		suite.LessOrEqual(score, 1.0)
	}
}

func (suite *FusionUnitTestSuite) TestNegativeSentimentMirrorsPositive() {
	positive := suite.fusion.Fuse(types.SentimentSummary{
		OverallSentiment:    0.6,
		TotalNews:           8,
		CurrencyRelatedNews: 4,
	})
	negative := suite.fusion.Fuse(types.SentimentSummary{
		OverallSentiment:    -0.6,
		TotalNews:           8,
		CurrencyRelatedNews: 4,
	})

	suite.InDelta(-positive, negative, 1e-12)
}
