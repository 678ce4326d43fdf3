package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter    ErrorCode = 100
	ErrCodeInvalidConfigField  ErrorCode = 101
	ErrCodeWeightSumMismatch   ErrorCode = 102
	ErrCodeThresholdOverlap    ErrorCode = 103
	ErrCodeInvalidWindow       ErrorCode = 104
	ErrCodeInvalidSentimentSum ErrorCode = 105

	// Data errors (200-299)
	ErrCodeNoDataFound     ErrorCode = 200
	ErrCodeInvalidPrice    ErrorCode = 201
	ErrCodeDataUnavailable ErrorCode = 202

	// Indicator errors (300-399)
	ErrCodeIndicatorCalculation ErrorCode = 300

	// Signal errors (400-499)
	ErrCodeSignalGeneration ErrorCode = 400

	// Backtest errors (600-649)
	ErrCodeBacktestFailed ErrorCode = 600

	// Optimizer errors (650-699)
	ErrCodeOptimizationCancelled ErrorCode = 650
	ErrCodeOptimizationFailed    ErrorCode = 651

	// Market data errors (700-799)
	ErrCodeMarketDataReadFailed  ErrorCode = 700
	ErrCodeMarketDataParseFailed ErrorCode = 701
	ErrCodeResultWriteFailed     ErrorCode = 702
)
