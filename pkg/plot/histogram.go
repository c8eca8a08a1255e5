package plot

import (
	"io"

	"github.com/aybabtme/uniplot/histogram"
)

const (
	DefaultBins  = 15
	DefaultWidth = 40
)

// Histogram writes the distribution of values as a horizontal bar chart
func Histogram(w io.Writer, values []float64, bins, width int) error {
	if len(values) == 0 {
		return nil
	}
	if bins <= 0 {
		bins = DefaultBins
	}
	if width <= 0 {
		width = DefaultWidth
	}

	hist := histogram.Hist(bins, values)
	return histogram.Fprint(w, hist, histogram.Linear(width))
}
