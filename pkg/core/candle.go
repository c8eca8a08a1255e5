package core

import (
	"strconv"
)

// DateSuffix is appended to a bucket key to render a candlestick date
const DateSuffix = "-01-01"

// Candlestick represents the yearly open/high/low/close summary of a bucket
type Candlestick struct {
	Date  string
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// NewCandlestick creates a candlestick for the given bucket key
func NewCandlestick(bucket string, open, high, low, close float64) Candlestick {
	return Candlestick{
		Date:  bucket + DateSuffix,
		Open:  open,
		High:  high,
		Low:   low,
		Close: close,
	}
}

// Bucket returns the bucket key the candlestick was built from
func (c Candlestick) Bucket() string {
	if len(c.Date) < len(DateSuffix) {
		return c.Date
	}
	return c.Date[:len(c.Date)-len(DateSuffix)]
}

// Year returns the calendar year of the candlestick, or 0 when the
// bucket key is not numeric
func (c Candlestick) Year() int {
	year, err := strconv.Atoi(c.Bucket())
	if err != nil {
		return 0
	}
	return year
}

// Value returns the statistic selected by field
func (c Candlestick) Value(field Field) float64 {
	switch field {
	case FieldOpen:
		return c.Open
	case FieldHigh:
		return c.High
	case FieldLow:
		return c.Low
	default:
		return c.Close
	}
}

// ToSlice converts a candlestick to a string slice for tabular output
// with the specified decimal precision
func (c Candlestick) ToSlice(precision int) []string {
	return []string{
		c.Date,
		strconv.FormatFloat(c.Open, 'f', precision, 64),
		strconv.FormatFloat(c.High, 'f', precision, 64),
		strconv.FormatFloat(c.Low, 'f', precision, 64),
		strconv.FormatFloat(c.Close, 'f', precision, 64),
	}
}

// Closes extracts the close values of a candlestick sequence
func Closes(candles []Candlestick) []float64 {
	closes := make([]float64, len(candles))
	for i, candle := range candles {
		closes[i] = candle.Close
	}
	return closes
}
