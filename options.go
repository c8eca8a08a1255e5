package tempcandle

import (
	"github.com/raykavin/tempcandle/pkg/aggregate"
	"github.com/raykavin/tempcandle/pkg/logger"
	"github.com/raykavin/tempcandle/pkg/weather"
)

// Option is a functional option for configuring an Analyzer
type Option func(*Analyzer)

// WithLogger replaces DefaultLog
func WithLogger(log logger.Logger) Option {
	return func(a *Analyzer) {
		a.log = log
	}
}

// WithColumnSuffix changes the suffix appended to the country code to find
// its value column, "_temperature" by default
func WithColumnSuffix(suffix string) Option {
	return func(a *Analyzer) {
		a.parserOptions = append(a.parserOptions, weather.WithColumnSuffix(suffix))
	}
}

// WithDelimiter changes the CSV field delimiter
func WithDelimiter(delimiter rune) Option {
	return func(a *Analyzer) {
		a.parserOptions = append(a.parserOptions, weather.WithDelimiter(delimiter))
	}
}

// WithStrictTimestamps rejects sources whose timestamps do not start with a year
func WithStrictTimestamps() Option {
	return func(a *Analyzer) {
		a.parserOptions = append(a.parserOptions, weather.WithStrictTimestamps())
	}
}

// WithProgress reports file read progress through the writers built by factory
func WithProgress(factory weather.ProgressFactory) Option {
	return func(a *Analyzer) {
		a.parserOptions = append(a.parserOptions, weather.WithProgress(factory))
	}
}

// WithInitialOpen makes the first candlestick open at value
func WithInitialOpen(value float64) Option {
	return func(a *Analyzer) {
		a.aggregateOptions = append(a.aggregateOptions, aggregate.WithInitialOpen(value))
	}
}

// WithOpenFromClose makes the first candlestick open at its own close
func WithOpenFromClose() Option {
	return func(a *Analyzer) {
		a.aggregateOptions = append(a.aggregateOptions, aggregate.WithOpenFromClose())
	}
}

// WithBootstrap sets the resample count and confidence level of the
// mean close interval
func WithBootstrap(resamples int, confidence float64) Option {
	return func(a *Analyzer) {
		a.resamples = resamples
		a.confidence = confidence
	}
}
