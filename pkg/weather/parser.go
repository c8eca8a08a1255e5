// Package weather reads column-oriented temperature tables into yearly
// grouped series.
package weather

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/raykavin/tempcandle/pkg/core"
)

const (
	// DefaultColumnSuffix is appended to a series code to name its value column
	DefaultColumnSuffix = "_temperature"
	// DefaultDelimiter separates the fields of a row
	DefaultDelimiter = ','

	yearWidth   = 4
	bom         = "\ufeff"
	maxLineSize = 1024 * 1024
)

// Stats counts what happened to the rows of a parsed source
type Stats struct {
	Rows    int
	Skipped int
	Buckets int
}

// ProgressFactory creates a writer that receives every byte read from a
// file of the given size
type ProgressFactory func(total int64) io.WriteCloser

type options struct {
	suffix    string
	delimiter rune
	strict    bool
	stats     *Stats
	progress  ProgressFactory
}

// Option configures the parser
type Option func(*options)

// WithColumnSuffix changes the suffix used to build the value column name
func WithColumnSuffix(suffix string) Option {
	return func(o *options) {
		o.suffix = suffix
	}
}

// WithDelimiter changes the field delimiter
func WithDelimiter(delimiter rune) Option {
	return func(o *options) {
		o.delimiter = delimiter
	}
}

// WithStrictTimestamps makes rows whose timestamp does not start with a
// four digit year fail the parse instead of producing a garbage bucket
func WithStrictTimestamps() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithStats fills stats with row counters once parsing ends
func WithStats(stats *Stats) Option {
	return func(o *options) {
		o.stats = stats
	}
}

// WithProgress reports read progress of ParseFile to the writer created by factory
func WithProgress(factory ProgressFactory) Option {
	return func(o *options) {
		o.progress = factory
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		suffix:    DefaultColumnSuffix,
		delimiter: DefaultDelimiter,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.stats == nil {
		o.stats = &Stats{}
	}
	return o
}

// ColumnName returns the name of the value column of a series code
func ColumnName(code, suffix string) string {
	return code + suffix
}

// ParseFile opens path and parses the series identified by code
func ParseFile(path, code string, opts ...Option) (*core.GroupedSeries, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", core.ErrFileNotFound, path, err)
	}
	defer file.Close()

	o := newOptions(opts)

	var source io.Reader = file
	if o.progress != nil {
		if info, err := file.Stat(); err == nil {
			progress := o.progress(info.Size())
			defer progress.Close()
			source = io.TeeReader(file, progress)
		}
	}

	return parse(source, code, o)
}

// Parse reads a delimited table from r and groups the values of the series
// identified by code by year. Rows whose value cannot be parsed are skipped.
func Parse(r io.Reader, code string, opts ...Option) (*core.GroupedSeries, error) {
	return parse(r, code, newOptions(opts))
}

func parse(r io.Reader, code string, o *options) (*core.GroupedSeries, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	column := ColumnName(code, o.suffix)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		return nil, fmt.Errorf("%w: %s: empty source", core.ErrColumnNotFound, column)
	}

	header, err := o.split(scanner.Text())
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index, err := ColumnIndex(header, column)
	if err != nil {
		return nil, err
	}

	series := core.NewGroupedSeries()
	for line := 2; scanner.Scan(); line++ {
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		o.stats.Rows++
		record, err := o.split(text)
		if err != nil {
			o.stats.Skipped++
			continue
		}

		if o.strict {
			if err := validateTimestamp(record[0]); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}

		if len(record) <= index {
			o.stats.Skipped++
			continue
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(record[index]), 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			o.stats.Skipped++
			continue
		}

		series.Append(BucketKey(record[0]), value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read row: %w", err)
	}

	o.stats.Buckets = series.Len()
	return series, nil
}

// split parses a single line into fields. Quotes never span lines, so a
// malformed line cannot swallow the ones after it.
func (o *options) split(line string) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(line))
	reader.Comma = o.delimiter
	reader.FieldsPerRecord = -1

	record, err := reader.Read()
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ColumnIndex returns the zero-based position of column in header
func ColumnIndex(header []string, column string) (int, error) {
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, bom)
		}
		if strings.TrimSpace(name) == column {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", core.ErrColumnNotFound, column)
}

// BucketKey derives the year bucket of a timestamp from its first four
// characters. Shorter timestamps are used whole.
func BucketKey(timestamp string) string {
	if len(timestamp) < yearWidth {
		return timestamp
	}
	return timestamp[:yearWidth]
}

// validateTimestamp accepts "YYYY" or "YYYY-..."
func validateTimestamp(timestamp string) error {
	if len(timestamp) < yearWidth {
		return fmt.Errorf("%w: %q", core.ErrMalformedTimestamp, timestamp)
	}
	for _, c := range timestamp[:yearWidth] {
		if c < '0' || c > '9' {
			return fmt.Errorf("%w: %q", core.ErrMalformedTimestamp, timestamp)
		}
	}
	if len(timestamp) > yearWidth && timestamp[yearWidth] != '-' {
		return fmt.Errorf("%w: %q", core.ErrMalformedTimestamp, timestamp)
	}
	return nil
}
