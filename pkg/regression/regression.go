package regression

import (
	"fmt"

	"github.com/raykavin/tempcandle/pkg/core"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Model is a line fitted by ordinary least squares
type Model struct {
	Slope     float64
	Intercept float64
	N         int
	RSquared  float64
}

// Point is a value predicted for an ordinal
type Point struct {
	Ordinal int
	Value   float64
}

// At evaluates the model at x
func (m Model) At(x int) float64 {
	return m.Slope*float64(x) + m.Intercept
}

// Predict evaluates the model at every ordinal in [start, end]
func (m Model) Predict(start, end int) []Point {
	return Predict(start, end, m.Slope, m.Intercept)
}

// String returns the model equation
func (m Model) String() string {
	return fmt.Sprintf("y = %.4fx %+.4f (n=%d, r²=%.3f)", m.Slope, m.Intercept, m.N, m.RSquared)
}

// Fit fits values against ordinals with the closed-form least squares solution
//
//	slope     = (nΣxy − ΣxΣy) / (nΣx² − (Σx)²)
//	intercept = (Σy − slope·Σx) / n
//
// Fewer than two distinct ordinals make the line undefined and fail with
// core.ErrDegenerateFit.
func Fit(ordinals []int, values []float64) (Model, error) {
	n := len(ordinals)
	if n == 0 || n != len(values) {
		return Model{}, fmt.Errorf("%w: %d ordinals for %d values", core.ErrInsufficientData, n, len(values))
	}

	x := lo.Map(ordinals, func(ordinal int, _ int) float64 {
		return float64(ordinal)
	})

	sumX := floats.Sum(x)
	sumY := floats.Sum(values)
	sumXY := floats.Dot(x, values)
	sumXX := floats.Dot(x, x)

	count := float64(n)
	denominator := count*sumXX - sumX*sumX
	if denominator == 0 || len(lo.Uniq(ordinals)) < 2 {
		return Model{}, fmt.Errorf("%w: %d points over %d distinct ordinals",
			core.ErrDegenerateFit, n, len(lo.Uniq(ordinals)))
	}

	slope := (count*sumXY - sumX*sumY) / denominator
	intercept := (sumY - slope*sumX) / count

	return Model{
		Slope:     slope,
		Intercept: intercept,
		N:         n,
		RSquared:  stat.RSquared(x, values, nil, intercept, slope),
	}, nil
}

// FitCandles fits the selected statistic of each candlestick against its year
func FitCandles(candles []core.Candlestick, field core.Field) (Model, error) {
	years := lo.Map(candles, func(candle core.Candlestick, _ int) int {
		return candle.Year()
	})
	values := lo.Map(candles, func(candle core.Candlestick, _ int) float64 {
		return candle.Value(field)
	})
	return Fit(years, values)
}

// Predict evaluates slope·x + intercept for every integer x in [start, end].
// An inverted range yields no points.
func Predict(start, end int, slope, intercept float64) []Point {
	if start > end {
		return []Point{}
	}

	return lo.Map(lo.RangeFrom(start, end-start+1), func(x int, _ int) Point {
		return Point{Ordinal: x, Value: slope*float64(x) + intercept}
	})
}
