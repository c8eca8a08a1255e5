package indicator

import (
	"testing"

	"github.com/raykavin/tempcandle/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlay(t *testing.T) {
	candles := []core.Candlestick{
		core.NewCandlestick("1980", 0, 0, 0, 10),
		core.NewCandlestick("1981", 0, 0, 0, 20),
		core.NewCandlestick("1982", 0, 0, 0, 30),
		core.NewCandlestick("1983", 0, 0, 0, 40),
	}

	values := Overlay(candles, 2)
	require.Len(t, values, 4)

	assert.False(t, values[0].Ok)
	assert.True(t, values[1].Ok)
	assert.InDelta(t, 15.0, values[1].Value, 1e-9)
	assert.InDelta(t, 25.0, values[2].Value, 1e-9)
	assert.InDelta(t, 35.0, values[3].Value, 1e-9)
}

func TestOverlay_NotEnoughCandles(t *testing.T) {
	candles := []core.Candlestick{core.NewCandlestick("1980", 0, 0, 0, 10)}

	for _, period := range []int{0, 2} {
		values := Overlay(candles, period)
		require.Len(t, values, 1)
		assert.False(t, values[0].Ok)
	}
}
