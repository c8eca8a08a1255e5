package aggregate

import (
	"fmt"

	"github.com/raykavin/tempcandle/pkg/core"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type options struct {
	initialOpen   float64
	openFromClose bool
}

// Option configures how the first candlestick opens
type Option func(*options)

// WithInitialOpen seeds the open of the first candlestick with value
func WithInitialOpen(value float64) Option {
	return func(o *options) {
		o.initialOpen = value
		o.openFromClose = false
	}
}

// WithOpenFromClose makes the first candlestick open at its own close
func WithOpenFromClose() Option {
	return func(o *options) {
		o.openFromClose = true
	}
}

// Candles reduces every bucket of series into a candlestick, in ascending
// bucket order. Each candlestick opens at the close of the previous one;
// the first opens at 0 unless configured otherwise.
func Candles(series *core.GroupedSeries, opts ...Option) ([]core.Candlestick, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	candles := make([]core.Candlestick, 0, series.Len())
	previousClose := o.initialOpen

	var err error
	series.Ascend(func(bucket string, values core.Series[float64]) bool {
		if values.Length() == 0 {
			err = fmt.Errorf("%w: %s", core.ErrEmptyBucket, bucket)
			return false
		}

		candle := summarize(bucket, values.Values())
		if len(candles) == 0 && o.openFromClose {
			previousClose = candle.Close
		}
		candle.Open = previousClose

		candles = append(candles, candle)
		previousClose = candle.Close
		return true
	})
	if err != nil {
		return nil, err
	}

	return candles, nil
}

// summarize computes high, low and close of a single bucket
func summarize(bucket string, values []float64) core.Candlestick {
	return core.NewCandlestick(
		bucket,
		0,
		floats.Max(values),
		floats.Min(values),
		stat.Mean(values, nil),
	)
}
