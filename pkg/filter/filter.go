package filter

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/raykavin/tempcandle/pkg/core"
	"github.com/samber/lo"
)

// ByBucketRange keeps the buckets whose key lies within [low, high],
// compared lexicographically
func ByBucketRange(series *core.GroupedSeries, low, high string) *core.GroupedSeries {
	return byBucket(series, func(bucket string) bool {
		return core.InRange(bucket, low, high)
	})
}

// ByYearRange keeps the buckets whose key, read as a year, lies within
// [from, to]. Buckets that are not numeric are dropped.
func ByYearRange(series *core.GroupedSeries, from, to int) *core.GroupedSeries {
	return byBucket(series, func(bucket string) bool {
		year, err := strconv.Atoi(bucket)
		return err == nil && core.InRange(year, from, to)
	})
}

// ByValueRange keeps the values within [min, max] and drops the buckets
// left without values
func ByValueRange(series *core.GroupedSeries, min, max float64) *core.GroupedSeries {
	result := core.NewGroupedSeries()
	series.Ascend(func(bucket string, values core.Series[float64]) bool {
		if kept := values.Between(min, max); kept.Length() > 0 {
			result.Set(bucket, kept)
		}
		return true
	})
	return result
}

// CandlesByYearRange returns the candlesticks whose year lies within [from, to]
func CandlesByYearRange(candles []core.Candlestick, from, to int) []core.Candlestick {
	return lo.Filter(candles, func(candle core.Candlestick, _ int) bool {
		year, err := strconv.Atoi(candle.Bucket())
		return err == nil && core.InRange(year, from, to)
	})
}

// CandlesByDateRange returns the candlesticks whose date lies within
// [low, high], compared lexicographically
func CandlesByDateRange(candles []core.Candlestick, low, high string) []core.Candlestick {
	return lo.Filter(candles, func(candle core.Candlestick, _ int) bool {
		return core.InRange(candle.Date, low, high)
	})
}

// ValidateYearRange rejects ranges whose start follows their end
func ValidateYearRange(from, to int) error {
	if from > to {
		return fmt.Errorf("%w: start year %d is after end year %d", core.ErrInvalidRange, from, to)
	}
	return nil
}

// ValidateValueRange rejects ranges whose minimum exceeds their maximum
func ValidateValueRange(min, max float64) error {
	if min > max {
		return fmt.Errorf("%w: minimum %g is above maximum %g", core.ErrInvalidRange, min, max)
	}
	return nil
}

func byBucket(series *core.GroupedSeries, keep func(bucket string) bool) *core.GroupedSeries {
	result := core.NewGroupedSeries()
	series.Ascend(func(bucket string, values core.Series[float64]) bool {
		if keep(bucket) {
			result.Set(bucket, slices.Clone(values))
		}
		return true
	})
	return result
}
