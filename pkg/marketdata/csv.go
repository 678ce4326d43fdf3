// Package marketdata loads price histories from CSV files into the form the
// decision engine consumes.
package marketdata

import (
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/arbinova/fxquant/internal/types"
	"github.com/arbinova/fxquant/pkg/errors"
)

// priceRecord is the on-disk row shape. Price parses through decimal so
// malformed numbers are rejected at load time instead of becoming NaN later.
type priceRecord struct {
	Price     decimal.Decimal `csv:"price"`
	Timestamp time.Time       `csv:"timestamp"`
	Source    string          `csv:"source"`
}

// LoadPriceHistory reads a CSV file with price, timestamp (RFC3339), and
// source columns. Rows with non-positive prices are rejected with a coded
// error. Row order is preserved; consumers sort by timestamp themselves.
func LoadPriceHistory(path string) ([]types.PricePoint, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataReadFailed, err, "failed to open price history %s", path)
	}
	defer file.Close()

	var records []priceRecord
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "failed to parse price history %s", path)
	}

	if len(records) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "price history %s contains no rows", path)
	}

	points := make([]types.PricePoint, len(records))

	for i, record := range records {
		if !record.Price.IsPositive() {
			return nil, errors.Newf(errors.ErrCodeInvalidPrice, "non-positive price %s at row %d", record.Price.String(), i+1)
		}

		points[i] = types.PricePoint{
			Price:     record.Price.InexactFloat64(),
			Timestamp: record.Timestamp,
			Source:    record.Source,
		}
	}

	return points, nil
}
