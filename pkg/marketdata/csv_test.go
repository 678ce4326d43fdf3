package marketdata

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/arbinova/fxquant/pkg/errors"
)

type CSVUnitTestSuite struct {
	suite.Suite
}

func TestCSVUnitSuite(t *testing.T) {
	suite.Run(t, new(CSVUnitTestSuite))
}

func (suite *CSVUnitTestSuite) writeFile(content string) string {
	path := filepath.Join(suite.T().TempDir(), "prices.csv")
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0644))

	return path
}

func (suite *CSVUnitTestSuite) TestLoadPriceHistory() {
	path := suite.writeFile(
		"price,timestamp,source\n" +
			"5.4321,2025-06-02T09:00:00Z,b3\n" +
			"5.4388,2025-06-02T09:01:00Z,b3\n")

	points, err := LoadPriceHistory(path)
	suite.Require().NoError(err)
	suite.Require().Len(points, 2)

	suite.InDelta(5.4321, points[0].Price, 1e-12)
	suite.Equal(time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), points[0].Timestamp)
	suite.Equal("b3", points[0].Source)
}

func (suite *CSVUnitTestSuite) TestMissingFile() {
	_, err := LoadPriceHistory(filepath.Join(suite.T().TempDir(), "absent.csv"))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataReadFailed))
}

func (suite *CSVUnitTestSuite) TestEmptyHistory() {
	path := suite.writeFile("price,timestamp,source\n")

	_, err := LoadPriceHistory(path)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeNoDataFound))
}

func (suite *CSVUnitTestSuite) TestMalformedPrice() {
	path := suite.writeFile(
		"price,timestamp,source\n" +
			"not-a-number,2025-06-02T09:00:00Z,b3\n")

	_, err := LoadPriceHistory(path)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataParseFailed))
}

func (suite *CSVUnitTestSuite) TestNonPositivePriceRejected() {
	path := suite.writeFile(
		"price,timestamp,source\n" +
			"0,2025-06-02T09:00:00Z,b3\n")

	_, err := LoadPriceHistory(path)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPrice))
}
