// Package tempcandle turns hourly temperature tables into yearly
// candlesticks and extrapolates their trend.
package tempcandle

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/raykavin/tempcandle/pkg/aggregate"
	"github.com/raykavin/tempcandle/pkg/core"
	"github.com/raykavin/tempcandle/pkg/filter"
	"github.com/raykavin/tempcandle/pkg/indicator"
	"github.com/raykavin/tempcandle/pkg/logger"
	"github.com/raykavin/tempcandle/pkg/metric"
	"github.com/raykavin/tempcandle/pkg/regression"
	"github.com/raykavin/tempcandle/pkg/weather"
)

const defaultConfidence = 0.95

// YearRange is an inclusive range of years
type YearRange struct {
	From int
	To   int
}

// ValueRange is an inclusive range of observed values
type ValueRange struct {
	Min float64
	Max float64
}

// Request describes one analysis of a source file
type Request struct {
	Path    string `validate:"required"`
	Country string `validate:"required,len=2,alpha,uppercase"`

	// Years narrows the raw series before aggregation
	Years *YearRange
	// Values drops raw observations outside the range
	Values *ValueRange
	// Display narrows the aggregated candlesticks
	Display *YearRange

	// Field feeds the regression, close when empty
	Field core.Field
	// PredictUntil fits a trend and extrapolates it up to this year when set
	PredictUntil int `validate:"gte=0"`
	// SMAPeriod adds a moving average of the closes when set
	SMAPeriod int `validate:"gte=0"`
}

// Report is the outcome of an analysis
type Report struct {
	Country     string
	CountryName string

	Series  *core.GroupedSeries
	Candles []core.Candlestick
	Stats   weather.Stats

	Summary metric.Summary
	MeanCI  metric.Interval
	SMA     []indicator.Value

	Model       *regression.Model
	Predictions []regression.Point
}

// Analyzer runs the parse, filter, aggregate and fit pipeline
type Analyzer struct {
	countries core.Countries
	log       logger.Logger
	validate  *validator.Validate

	parserOptions    []weather.Option
	aggregateOptions []aggregate.Option

	resamples  int
	confidence float64
}

// New creates an analyzer resolving codes against countries
func New(countries core.Countries, options ...Option) *Analyzer {
	analyzer := &Analyzer{
		countries:  countries,
		log:        DefaultLog,
		validate:   validator.New(),
		resamples:  metric.DefaultResamples,
		confidence: defaultConfidence,
	}

	for _, option := range options {
		option(analyzer)
	}

	return analyzer
}

// Countries returns the lookup table used to resolve codes
func (a *Analyzer) Countries() core.Countries {
	return a.countries
}

// Validate checks a request before anything is read
func (a *Analyzer) Validate(req Request) error {
	return a.check(req)
}

func (a *Analyzer) check(req Request, except ...string) error {
	var err error
	if len(except) > 0 {
		err = a.validate.StructExcept(req, except...)
	} else {
		err = a.validate.Struct(req)
	}
	if err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	if !a.countries.Has(req.Country) {
		return fmt.Errorf("%w: %s", core.ErrUnknownCountry, req.Country)
	}

	for _, years := range []*YearRange{req.Years, req.Display} {
		if years == nil {
			continue
		}
		if err := filter.ValidateYearRange(years.From, years.To); err != nil {
			return err
		}
	}

	if req.Values != nil {
		if err := filter.ValidateValueRange(req.Values.Min, req.Values.Max); err != nil {
			return err
		}
	}

	return nil
}

// Run loads the source of the request and analyzes it
func (a *Analyzer) Run(req Request) (*Report, error) {
	series, stats, err := a.Load(req)
	if err != nil {
		return nil, err
	}
	return a.Analyze(series, stats, req)
}

// Load validates the request and parses the series of its country from its
// source. The returned series can be analyzed any number of times.
func (a *Analyzer) Load(req Request) (*core.GroupedSeries, weather.Stats, error) {
	req.Country = normalizeCountry(req.Country)
	if err := a.Validate(req); err != nil {
		return nil, weather.Stats{}, err
	}

	log := a.log.WithFields(map[string]any{
		"country": req.Country,
		"path":    req.Path,
	})

	var stats weather.Stats

	options := append([]weather.Option{weather.WithStats(&stats)}, a.parserOptions...)
	series, err := weather.ParseFile(req.Path, req.Country, options...)
	if err != nil {
		log.WithError(err).Error("failed to read source")
		return nil, stats, err
	}

	log.WithFields(map[string]any{
		"rows":    stats.Rows,
		"skipped": stats.Skipped,
		"buckets": stats.Buckets,
	}).Debug("source parsed")

	return series, stats, nil
}

// Analyze filters, aggregates and optionally fits a series previously
// returned by Load. The series is never modified and the request path is
// not read.
func (a *Analyzer) Analyze(series *core.GroupedSeries, stats weather.Stats, req Request) (*Report, error) {
	req.Country = normalizeCountry(req.Country)
	if err := a.check(req, "Path"); err != nil {
		return nil, err
	}

	log := a.log.WithFields(map[string]any{
		"country": req.Country,
	})

	series = a.narrow(series, req)

	candles, err := aggregate.Candles(series, a.aggregateOptions...)
	if err != nil {
		log.WithError(err).Error("failed to aggregate")
		return nil, err
	}

	if req.Display != nil {
		candles = filter.CandlesByYearRange(candles, req.Display.From, req.Display.To)
	}

	name, _ := a.countries.Name(req.Country)
	closes := core.Closes(candles)

	report := &Report{
		Country:     req.Country,
		CountryName: name,
		Series:      series,
		Candles:     candles,
		Stats:       stats,
		Summary:     metric.Summarize(closes),
		MeanCI:      metric.Bootstrap(closes, metric.Mean, a.resamples, a.confidence),
	}

	if req.SMAPeriod > 0 {
		report.SMA = indicator.Overlay(candles, req.SMAPeriod)
	}

	if req.PredictUntil > 0 {
		if err := a.predict(report, req); err != nil {
			log.WithError(err).Error("failed to fit trend")
			return nil, err
		}
	}

	log.WithFields(map[string]any{
		"candles":     len(candles),
		"predictions": len(report.Predictions),
	}).Info("analysis finished")

	return report, nil
}

func normalizeCountry(country string) string {
	return strings.ToUpper(strings.TrimSpace(country))
}

// narrow applies the raw series filters, values first
func (a *Analyzer) narrow(series *core.GroupedSeries, req Request) *core.GroupedSeries {
	if req.Values != nil {
		series = filter.ByValueRange(series, req.Values.Min, req.Values.Max)
	}
	if req.Years != nil {
		series = filter.ByYearRange(series, req.Years.From, req.Years.To)
	}
	return series
}

func (a *Analyzer) predict(report *Report, req Request) error {
	field := req.Field
	if field == "" {
		field = core.FieldClose
	}

	model, err := regression.FitCandles(report.Candles, field)
	if err != nil {
		return err
	}

	last := report.Candles[len(report.Candles)-1].Year()
	report.Model = &model
	report.Predictions = model.Predict(last+1, req.PredictUntil)

	return nil
}
