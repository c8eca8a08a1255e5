package tempcandle

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/raykavin/tempcandle/pkg/core"
	"github.com/raykavin/tempcandle/pkg/logger/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `utc_timestamp,GB_temperature,FR_temperature
1980-01-01T00:00:00Z,10,1
1980-06-01T00:00:00Z,20,2
1981-01-01T00:00:00Z,30,3
1981-06-01T00:00:00Z,40,
1982-01-01T00:00:00Z,50,5
`

func newTestAnalyzer(t *testing.T, options ...Option) (*Analyzer, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "weather.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	log, err := zerolog.New(io.Discard, zerolog.Options{Level: "disabled"})
	require.NoError(t, err)

	countries := core.NewCountries(map[string]string{
		"GB": "Great Britain",
		"FR": "France",
	})

	return New(countries, append([]Option{WithLogger(log)}, options...)...), path
}

func TestAnalyzer_Run(t *testing.T) {
	analyzer, path := newTestAnalyzer(t)

	report, err := analyzer.Run(Request{Path: path, Country: "gb", SMAPeriod: 2})
	require.NoError(t, err)

	assert.Equal(t, "GB", report.Country)
	assert.Equal(t, "Great Britain", report.CountryName)
	assert.Equal(t, 5, report.Stats.Rows)
	assert.Equal(t, 3, report.Stats.Buckets)

	require.Len(t, report.Candles, 3)
	assert.Equal(t, core.NewCandlestick("1980", 0, 20, 10, 15), report.Candles[0])
	assert.Equal(t, core.NewCandlestick("1981", 15, 40, 30, 35), report.Candles[1])
	assert.Equal(t, core.NewCandlestick("1982", 35, 50, 50, 50), report.Candles[2])

	assert.Equal(t, 3, report.Summary.Count)
	assert.InDelta(t, 100.0/3, report.Summary.Mean, 1e-9)
	assert.GreaterOrEqual(t, report.MeanCI.Upper, report.MeanCI.Lower)

	require.Len(t, report.SMA, 3)
	assert.False(t, report.SMA[0].Ok)
	assert.InDelta(t, 25.0, report.SMA[1].Value, 1e-9)

	assert.Nil(t, report.Model)
	assert.Empty(t, report.Predictions)
}

func TestAnalyzer_RunSkipsEmptyCells(t *testing.T) {
	analyzer, path := newTestAnalyzer(t)

	report, err := analyzer.Run(Request{Path: path, Country: "FR"})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Stats.Skipped)
	require.Len(t, report.Candles, 3)
	assert.Equal(t, 3.0, report.Candles[1].Close)
}

func TestAnalyzer_RunFilters(t *testing.T) {
	analyzer, path := newTestAnalyzer(t)

	t.Run("values", func(t *testing.T) {
		report, err := analyzer.Run(Request{
			Path:    path,
			Country: "GB",
			Values:  &ValueRange{Min: 0, Max: 25},
		})
		require.NoError(t, err)
		assert.Equal(t, []core.Candlestick{core.NewCandlestick("1980", 0, 20, 10, 15)}, report.Candles)
		assert.Equal(t, []string{"1980"}, report.Series.Buckets())
	})

	t.Run("raw years restart the carry forward", func(t *testing.T) {
		report, err := analyzer.Run(Request{
			Path:    path,
			Country: "GB",
			Years:   &YearRange{From: 1981, To: 1982},
		})
		require.NoError(t, err)
		require.Len(t, report.Candles, 2)
		assert.Equal(t, 0.0, report.Candles[0].Open)
	})

	t.Run("display years keep the carry forward", func(t *testing.T) {
		report, err := analyzer.Run(Request{
			Path:    path,
			Country: "GB",
			Display: &YearRange{From: 1981, To: 1982},
		})
		require.NoError(t, err)
		require.Len(t, report.Candles, 2)
		assert.Equal(t, 15.0, report.Candles[0].Open)
	})
}

func TestAnalyzer_RunPredict(t *testing.T) {
	analyzer, path := newTestAnalyzer(t)

	report, err := analyzer.Run(Request{Path: path, Country: "GB", PredictUntil: 1984})
	require.NoError(t, err)

	require.NotNil(t, report.Model)
	assert.InDelta(t, 17.5, report.Model.Slope, 1e-9)
	assert.Equal(t, 3, report.Model.N)

	require.Len(t, report.Predictions, 2)
	assert.Equal(t, 1983, report.Predictions[0].Ordinal)
	assert.InDelta(t, 100.0/3+35, report.Predictions[0].Value, 1e-9)
	assert.Equal(t, 1984, report.Predictions[1].Ordinal)

	t.Run("past years yield no points", func(t *testing.T) {
		report, err := analyzer.Run(Request{Path: path, Country: "GB", PredictUntil: 1900})
		require.NoError(t, err)
		assert.NotNil(t, report.Model)
		assert.Empty(t, report.Predictions)
	})

	t.Run("other field", func(t *testing.T) {
		report, err := analyzer.Run(Request{Path: path, Country: "GB", PredictUntil: 1983, Field: core.FieldHigh})
		require.NoError(t, err)
		assert.InDelta(t, 15.0, report.Model.Slope, 1e-9)
	})

	t.Run("single year", func(t *testing.T) {
		_, err := analyzer.Run(Request{
			Path:         path,
			Country:      "GB",
			Display:      &YearRange{From: 1980, To: 1980},
			PredictUntil: 1990,
		})
		assert.ErrorIs(t, err, core.ErrDegenerateFit)
	})

	t.Run("no data", func(t *testing.T) {
		_, err := analyzer.Run(Request{
			Path:         path,
			Country:      "GB",
			Values:       &ValueRange{Min: 100, Max: 200},
			PredictUntil: 1990,
		})
		assert.ErrorIs(t, err, core.ErrInsufficientData)
	})
}

func TestAnalyzer_FirstOpen(t *testing.T) {
	t.Run("from close", func(t *testing.T) {
		analyzer, path := newTestAnalyzer(t, WithOpenFromClose())
		report, err := analyzer.Run(Request{Path: path, Country: "GB"})
		require.NoError(t, err)
		assert.Equal(t, 15.0, report.Candles[0].Open)
	})

	t.Run("initial value", func(t *testing.T) {
		analyzer, path := newTestAnalyzer(t, WithInitialOpen(9))
		report, err := analyzer.Run(Request{Path: path, Country: "GB"})
		require.NoError(t, err)
		assert.Equal(t, 9.0, report.Candles[0].Open)
	})
}

func TestAnalyzer_RunErrors(t *testing.T) {
	analyzer, path := newTestAnalyzer(t)

	tests := []struct {
		name string
		req  Request
		err  error
	}{
		{
			name: "unknown country",
			req:  Request{Path: path, Country: "US"},
			err:  core.ErrUnknownCountry,
		},
		{
			name: "missing file",
			req:  Request{Path: filepath.Join(t.TempDir(), "missing.csv"), Country: "GB"},
			err:  core.ErrFileNotFound,
		},
		{
			name: "inverted years",
			req:  Request{Path: path, Country: "GB", Years: &YearRange{From: 1982, To: 1980}},
			err:  core.ErrInvalidRange,
		},
		{
			name: "inverted display",
			req:  Request{Path: path, Country: "GB", Display: &YearRange{From: 1982, To: 1980}},
			err:  core.ErrInvalidRange,
		},
		{
			name: "inverted values",
			req:  Request{Path: path, Country: "GB", Values: &ValueRange{Min: 10, Max: 0}},
			err:  core.ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analyzer.Run(tt.req)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	t.Run("malformed request", func(t *testing.T) {
		_, err := analyzer.Run(Request{Country: "GBR"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid request")
	})
}

func TestAnalyzer_LoadThenAnalyze(t *testing.T) {
	analyzer, path := newTestAnalyzer(t)

	series, stats, err := analyzer.Load(Request{Path: path, Country: "gb"})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Buckets)

	require.NoError(t, os.WriteFile(path, []byte("utc_timestamp,GB_temperature\n2099-01-01T00:00:00Z,99\n"), 0o600))

	report, err := analyzer.Analyze(series, stats, Request{
		Path:    path,
		Country: "GB",
		Values:  &ValueRange{Min: 0, Max: 25},
	})
	require.NoError(t, err)
	require.Len(t, report.Candles, 1)
	assert.Equal(t, "1980", report.Candles[0].Bucket())

	report, err = analyzer.Analyze(series, stats, Request{Country: "GB"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1980", "1981", "1982"}, report.Series.Buckets())
	assert.Equal(t, []float64{10, 20, 30, 40, 50}, series.Values())

	_, err = analyzer.Analyze(series, stats, Request{Country: "XX"})
	assert.ErrorIs(t, err, core.ErrUnknownCountry)
}

func TestAnalyzer_LoadErrors(t *testing.T) {
	analyzer, _ := newTestAnalyzer(t)

	_, _, err := analyzer.Load(Request{Path: filepath.Join(t.TempDir(), "missing.csv"), Country: "GB"})
	assert.ErrorIs(t, err, core.ErrFileNotFound)

	_, _, err = analyzer.Load(Request{Country: "GB"})
	assert.Error(t, err)
}

func TestAnalyzer_Progress(t *testing.T) {
	var total int64
	recorder := &countingWriter{}

	analyzer, path := newTestAnalyzer(t, WithProgress(func(size int64) io.WriteCloser {
		total = size
		return recorder
	}))

	_, err := analyzer.Run(Request{Path: path, Country: "GB"})
	require.NoError(t, err)

	assert.Equal(t, int64(len(sampleCSV)), total)
	assert.Equal(t, len(sampleCSV), recorder.written)
	assert.True(t, recorder.closed)
}

type countingWriter struct {
	written int
	closed  bool
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.written += len(p)
	return len(p), nil
}

func (w *countingWriter) Close() error {
	w.closed = true
	return nil
}
