package indicator

import (
	"github.com/markcheno/go-talib"
	"github.com/raykavin/tempcandle/pkg/core"
)

// Value is one point of an indicator line. Ok is false while the
// indicator is still warming up.
type Value struct {
	Value float64
	Ok    bool
}

// SMA calculates the simple moving average of input
func SMA(input []float64, period int) []float64 {
	return talib.Sma(input, period)
}

// Overlay returns the simple moving average of the candlestick closes,
// aligned with candles
func Overlay(candles []core.Candlestick, period int) []Value {
	values := make([]Value, len(candles))
	if period < 1 || len(candles) < period {
		return values
	}

	sma := SMA(core.Closes(candles), period)
	for i := period - 1; i < len(candles); i++ {
		values[i] = Value{Value: sma[i], Ok: true}
	}

	return values
}
