package types

type PositionSide string

const (
	// PositionSideNone means no exposure is currently open.
	PositionSideNone PositionSide = "NONE"
	// PositionSideLong is an open long exposure.
	PositionSideLong PositionSide = "LONG"
	// PositionSideShort is an open short exposure.
	PositionSideShort PositionSide = "SHORT"
)

// Position is the transient single-position state of a backtest replay.
// It is reset at the start of every run.
type Position struct {
	Side       PositionSide `json:"side" yaml:"side"`
	EntryPrice float64      `json:"entry_price" yaml:"entry_price"`
}

// Open reports whether the position currently holds exposure. The zero
// value of Position counts as closed.
func (p Position) Open() bool {
	return p.Side == PositionSideLong || p.Side == PositionSideShort
}

// Trade is a closed round trip recorded during a backtest replay.
type Trade struct {
	// Side is the side the closed exposure was held on.
	Side PositionSide `json:"side" yaml:"side"`
	// EntryPrice is the price the exposure was opened at.
	EntryPrice float64 `json:"entry_price" yaml:"entry_price"`
	// ExitPrice is the price the exposure was closed at.
	ExitPrice float64 `json:"exit_price" yaml:"exit_price"`
	// Profit is the absolute price difference captured by the trade.
	Profit float64 `json:"profit" yaml:"profit"`
	// Return is Profit relative to EntryPrice.
	Return float64 `json:"return" yaml:"return"`
}
