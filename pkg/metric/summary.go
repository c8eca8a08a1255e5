package metric

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds descriptive statistics of a sample
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize describes values. An empty sample yields a zero Summary.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	summary := Summary{
		Count: len(values),
		Min:   floats.Min(values),
		Max:   floats.Max(values),
	}

	if len(values) == 1 {
		summary.Mean = values[0]
		return summary
	}

	summary.Mean, summary.StdDev = stat.MeanStdDev(values, nil)
	return summary
}

// Mean calculates the arithmetic mean of the values
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}
