// Package shell runs the interactive prompt session
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/goterm/term"
	"github.com/raykavin/tempcandle"
	"github.com/raykavin/tempcandle/pkg/core"
	"github.com/raykavin/tempcandle/pkg/filter"
	"github.com/raykavin/tempcandle/pkg/plot"
	"github.com/raykavin/tempcandle/pkg/weather"
)

var (
	yearRangeRegexp  = regexp.MustCompile(`^(\d{1,4})\s*(?:-|\s)\s*(\d{1,4})$`)
	valueRangeRegexp = regexp.MustCompile(`^(-?\d+(?:\.\d+)?)\s+(-?\d+(?:\.\d+)?)$`)
)

// Options holds the rendering settings of a session
type Options struct {
	Precision int
	Bins      int
	Width     int
	Chart     *plot.Chart
	Colored   bool
}

type command struct {
	key     string
	label   string
	handler func(*Session) error
}

// Session is one interactive run against a single source file and country
type Session struct {
	analyzer *tempcandle.Analyzer
	options  Options

	in  *bufio.Scanner
	out io.Writer

	request tempcandle.Request
	series  *core.GroupedSeries
	stats   weather.Stats

	commands []command
}

// errQuit ends the session
var errQuit = errors.New("quit")

// New creates a session reading answers from in and writing to out
func New(analyzer *tempcandle.Analyzer, in io.Reader, out io.Writer, options Options) *Session {
	if options.Chart == nil {
		options.Chart = plot.NewChart()
	}

	session := &Session{
		analyzer: analyzer,
		options:  options,
		in:       bufio.NewScanner(in),
		out:      out,
	}

	session.commands = []command{
		{"1", "Candlestick table", (*Session).showTable},
		{"2", "Candlestick chart", (*Session).showChart},
		{"3", "Filter by year range", (*Session).filterYears},
		{"4", "Filter by temperature range", (*Session).filterValues},
		{"5", "Predict", (*Session).predict},
		{"6", "Histogram", (*Session).histogram},
		{"7", "Reset filters", (*Session).reset},
		{"0", "Exit", func(*Session) error { return errQuit }},
	}

	return session
}

// Run asks for the file and country when they are not given, reads the file
// once and then serves the menu until the user exits or the input ends
func (s *Session) Run(path, country string) error {
	var ok bool

	s.request.Path = path
	if s.request.Path == "" {
		if s.request.Path, ok = s.ask("CSV file: "); !ok {
			return nil
		}
	}

	s.request.Country = strings.ToUpper(country)
	for !s.analyzer.Countries().Has(s.request.Country) {
		if country != "" {
			s.fail(fmt.Errorf("%w: %s", core.ErrUnknownCountry, s.request.Country))
		}
		answer, ok := s.ask("Country code: ")
		if !ok {
			return nil
		}
		country = answer
		s.request.Country = strings.ToUpper(answer)
	}

	for {
		var err error
		s.series, s.stats, err = s.analyzer.Load(s.request)
		if err == nil {
			break
		}
		s.fail(err)

		if s.request.Path, ok = s.ask("CSV file: "); !ok {
			return nil
		}
	}

	name, _ := s.analyzer.Countries().Name(s.request.Country)
	fmt.Fprintf(s.out, "Analyzing %s (%s) from %s\n", name, s.request.Country, s.request.Path)

	for {
		s.menu()

		answer, ok := s.ask("> ")
		if !ok {
			return nil
		}

		cmd, found := s.lookup(answer)
		if !found {
			s.fail(fmt.Errorf("unknown option %q", answer))
			continue
		}

		err := cmd.handler(s)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			s.fail(err)
		}
	}
}

func (s *Session) menu() {
	fmt.Fprintln(s.out)
	for _, cmd := range s.commands {
		fmt.Fprintf(s.out, "%s) %s\n", cmd.key, cmd.label)
	}
}

func (s *Session) lookup(answer string) (command, bool) {
	for _, cmd := range s.commands {
		if cmd.key == answer {
			return cmd, true
		}
	}
	return command{}, false
}

// ask prompts and returns the trimmed answer, false once input ends
func (s *Session) ask(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Session) fail(err error) {
	message := "error: " + err.Error()
	if s.options.Colored {
		message = term.Redf("%s", message)
	}
	fmt.Fprintln(s.out, message)
}

// analyze runs req against the series read when the session started
func (s *Session) analyze(req tempcandle.Request) (*tempcandle.Report, error) {
	return s.analyzer.Analyze(s.series, s.stats, req)
}

func (s *Session) showTable() error {
	report, err := s.analyze(s.request)
	if err != nil {
		return err
	}

	plot.Table(s.out, report.Candles, plot.TableOptions{Precision: s.options.Precision})
	plot.SummaryTable(s.out, report.Summary, report.MeanCI, s.options.Precision)
	return nil
}

func (s *Session) showChart() error {
	report, err := s.analyze(s.request)
	if err != nil {
		return err
	}
	return s.options.Chart.Candles(s.out, report.Candles)
}

func (s *Session) filterYears() error {
	answer, ok := s.ask("Years (from to): ")
	if !ok {
		return errQuit
	}

	from, to, err := parseYearRange(answer)
	if err != nil {
		return err
	}

	s.request.Display = &tempcandle.YearRange{From: from, To: to}
	return s.showTable()
}

func (s *Session) filterValues() error {
	answer, ok := s.ask("Temperatures (min max): ")
	if !ok {
		return errQuit
	}

	low, high, err := parseValueRange(answer)
	if err != nil {
		return err
	}

	s.request.Values = &tempcandle.ValueRange{Min: low, Max: high}
	return s.showTable()
}

func (s *Session) predict() error {
	answer, ok := s.ask("Predict until year: ")
	if !ok {
		return errQuit
	}

	until, err := strconv.Atoi(answer)
	if err != nil || until <= 0 {
		return fmt.Errorf("invalid year %q", answer)
	}

	req := s.request
	req.PredictUntil = until

	report, err := s.analyze(req)
	if err != nil {
		return err
	}

	plot.PredictionTable(s.out, *report.Model, report.Predictions, s.options.Precision)
	return s.options.Chart.Predictions(s.out, report.Predictions)
}

func (s *Session) histogram() error {
	report, err := s.analyze(s.request)
	if err != nil {
		return err
	}
	return plot.Histogram(s.out, report.Series.Values(), s.options.Bins, s.options.Width)
}

func (s *Session) reset() error {
	s.request.Display = nil
	s.request.Values = nil
	fmt.Fprintln(s.out, "Filters cleared")
	return nil
}

func parseYearRange(answer string) (int, int, error) {
	match := yearRangeRegexp.FindStringSubmatch(answer)
	if match == nil {
		return 0, 0, fmt.Errorf("invalid year range %q", answer)
	}

	from, _ := strconv.Atoi(match[1])
	to, _ := strconv.Atoi(match[2])
	if err := filter.ValidateYearRange(from, to); err != nil {
		return 0, 0, err
	}

	return from, to, nil
}

func parseValueRange(answer string) (float64, float64, error) {
	match := valueRangeRegexp.FindStringSubmatch(answer)
	if match == nil {
		return 0, 0, fmt.Errorf("invalid temperature range %q", answer)
	}

	low, _ := strconv.ParseFloat(match[1], 64)
	high, _ := strconv.ParseFloat(match[2], 64)
	if err := filter.ValidateValueRange(low, high); err != nil {
		return 0, 0, err
	}

	return low, high, nil
}
