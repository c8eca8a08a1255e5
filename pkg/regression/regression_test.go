package regression

import (
	"testing"

	"github.com/raykavin/tempcandle/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestFit_PerfectLine(t *testing.T) {
	model, err := Fit([]int{2000, 2001, 2002}, []float64{10, 11, 12})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, model.Slope, 1e-9)
	assert.InDelta(t, -1990.0, model.Intercept, 1e-9)
	assert.InDelta(t, 1.0, model.RSquared, 1e-9)
	assert.Equal(t, 3, model.N)

	points := Predict(2003, 2004, 1.0, -1990.0)
	require.Len(t, points, 2)
	assert.Equal(t, 2003, points[0].Ordinal)
	assert.InDelta(t, 13.0, points[0].Value, 1e-9)
	assert.Equal(t, 2004, points[1].Ordinal)
	assert.InDelta(t, 14.0, points[1].Value, 1e-9)
}

func TestFit_MatchesGonum(t *testing.T) {
	years := []int{1980, 1981, 1982, 1983, 1984, 1985}
	values := []float64{9.1, 9.4, 8.8, 9.9, 10.2, 9.7}

	model, err := Fit(years, values)
	require.NoError(t, err)

	x := make([]float64, len(years))
	for i, year := range years {
		x[i] = float64(year)
	}
	alpha, beta := stat.LinearRegression(x, values, nil, false)

	assert.InDelta(t, beta, model.Slope, 1e-6)
	assert.InDelta(t, alpha, model.Intercept, 1e-3)
}

func TestFit_InsufficientData(t *testing.T) {
	_, err := Fit(nil, nil)
	require.ErrorIs(t, err, core.ErrInsufficientData)

	_, err = Fit([]int{2000}, []float64{1, 2})
	require.ErrorIs(t, err, core.ErrInsufficientData)
}

func TestFit_Degenerate(t *testing.T) {
	_, err := Fit([]int{2000}, []float64{5})
	require.ErrorIs(t, err, core.ErrDegenerateFit)

	_, err = Fit([]int{2000, 2000, 2000}, []float64{1, 2, 3})
	require.ErrorIs(t, err, core.ErrDegenerateFit)
}

func TestPredict(t *testing.T) {
	assert.Empty(t, Predict(2005, 2004, 1, 0))

	points := Predict(2000, 2000, 0.5, 1)
	require.Len(t, points, 1)
	assert.Equal(t, Point{Ordinal: 2000, Value: 1001}, points[0])

	model := Model{Slope: 2, Intercept: -1}
	assert.Equal(t, 3.0, model.At(2))
	assert.Equal(t, []Point{{1, 1}, {2, 3}, {3, 5}}, model.Predict(1, 3))
}

func TestFitCandles(t *testing.T) {
	candles := []core.Candlestick{
		core.NewCandlestick("2000", 0, 12, 8, 10),
		core.NewCandlestick("2001", 10, 13, 9, 11),
		core.NewCandlestick("2002", 11, 14, 10, 12),
	}

	model, err := FitCandles(candles, core.FieldClose)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, model.Slope, 1e-9)
	assert.InDelta(t, 13.0, model.At(2003), 1e-6)

	model, err = FitCandles(candles, core.FieldHigh)
	require.NoError(t, err)
	assert.InDelta(t, -1988.0, model.Intercept, 1e-9)

	_, err = FitCandles(nil, core.FieldClose)
	require.ErrorIs(t, err, core.ErrInsufficientData)
}
