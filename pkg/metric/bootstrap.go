package metric

import (
	"sort"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

// DefaultResamples is the number of bootstrap resamples used by reports
const DefaultResamples = 2000

// Interval is a confidence interval estimated by resampling
type Interval struct {
	Lower      float64
	Upper      float64
	Mean       float64
	StdDev     float64
	Confidence float64
}

// Contains reports whether v lies inside the interval
func (i Interval) Contains(v float64) bool {
	return v >= i.Lower && v <= i.Upper
}

// Bootstrap estimates a confidence interval of measure over values by
// resampling values with replacement.
// Parameters:
//   - values: the observed sample
//   - measure: statistic computed on every resample
//   - resamples: number of resamples to draw
//   - confidence: confidence level, e.g. 0.95
func Bootstrap(values []float64, measure func([]float64) float64, resamples int,
	confidence float64) Interval {

	if len(values) == 0 || resamples <= 0 {
		return Interval{Confidence: confidence}
	}

	estimates := resample(values, measure, resamples)
	sort.Float64s(estimates)

	tail := 1 - confidence
	mean, stdDev := stat.MeanStdDev(estimates, nil)

	return Interval{
		Lower:      stat.Quantile(tail/2, stat.LinInterp, estimates, nil),
		Upper:      stat.Quantile(1-tail/2, stat.LinInterp, estimates, nil),
		Mean:       mean,
		StdDev:     stdDev,
		Confidence: confidence,
	}
}

// resample draws resamples of len(values) and applies measure to each
func resample(values []float64, measure func([]float64) float64, resamples int) []float64 {
	estimates := make([]float64, 0, resamples)
	sample := make([]float64, len(values))

	for i := 0; i < resamples; i++ {
		for j := range sample {
			sample[j] = lo.Sample(values)
		}
		estimates = append(estimates, measure(sample))
	}

	return estimates
}
