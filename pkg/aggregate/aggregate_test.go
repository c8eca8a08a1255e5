package aggregate

import (
	"testing"

	"github.com/raykavin/tempcandle/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeries(buckets map[string][]float64) *core.GroupedSeries {
	series := core.NewGroupedSeries()
	for bucket, values := range buckets {
		series.Append(bucket, values...)
	}
	return series
}

func TestCandles_CarryForward(t *testing.T) {
	series := newSeries(map[string][]float64{
		"1981": {30, 40},
		"1980": {10, 20},
	})

	candles, err := Candles(series)
	require.NoError(t, err)

	require.Equal(t, []core.Candlestick{
		{Date: "1980-01-01", Open: 0, High: 20, Low: 10, Close: 15},
		{Date: "1981-01-01", Open: 15, High: 40, Low: 30, Close: 35},
	}, candles)
}

func TestCandles_OrderInvariance(t *testing.T) {
	permutations := [][]float64{
		{1.5, -4, 12, 7},
		{12, 7, -4, 1.5},
		{7, 1.5, 12, -4},
	}

	var expected []core.Candlestick
	for i, values := range permutations {
		candles, err := Candles(newSeries(map[string][]float64{"2000": values}))
		require.NoError(t, err)

		if i == 0 {
			expected = candles
			continue
		}
		assert.Equal(t, expected[0].High, candles[0].High)
		assert.Equal(t, expected[0].Low, candles[0].Low)
		assert.InDelta(t, expected[0].Close, candles[0].Close, 1e-12)
	}
}

func TestCandles_Invariants(t *testing.T) {
	series := newSeries(map[string][]float64{
		"1990": {-3, 8, 2.5},
		"1991": {30, 31},
		"1992": {-10},
	})

	candles, err := Candles(series)
	require.NoError(t, err)
	require.Len(t, candles, 3)

	for i, candle := range candles {
		assert.LessOrEqual(t, candle.Low, candle.Close)
		assert.LessOrEqual(t, candle.Close, candle.High)
		if i > 0 {
			assert.Equal(t, candles[i-1].Close, candle.Open)
		}
	}

	// open is inherited and may fall outside the bucket range
	assert.Greater(t, candles[2].Open, candles[2].High)
}

func TestCandles_FirstOpen(t *testing.T) {
	series := newSeries(map[string][]float64{"1980": {10, 20}, "1981": {30}})

	candles, err := Candles(series, WithOpenFromClose())
	require.NoError(t, err)
	assert.Equal(t, 15.0, candles[0].Open)
	assert.Equal(t, 15.0, candles[1].Open)

	candles, err = Candles(series, WithInitialOpen(-1))
	require.NoError(t, err)
	assert.Equal(t, -1.0, candles[0].Open)
}

func TestCandles_EmptyBucket(t *testing.T) {
	series := newSeries(map[string][]float64{"1980": {1}})
	series.Set("1981", core.Series[float64]{})

	_, err := Candles(series)
	require.ErrorIs(t, err, core.ErrEmptyBucket)
	assert.Contains(t, err.Error(), "1981")
}

func TestCandles_DoesNotMutateInput(t *testing.T) {
	series := newSeries(map[string][]float64{"1980": {3, 1, 2}})

	_, err := Candles(series)
	require.NoError(t, err)

	values, _ := series.Get("1980")
	assert.Equal(t, core.Series[float64]{3, 1, 2}, values)
}

func TestCandles_Empty(t *testing.T) {
	candles, err := Candles(core.NewGroupedSeries())
	require.NoError(t, err)
	assert.Empty(t, candles)
}
