package plot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/google/goterm/term"
	"github.com/raykavin/tempcandle/pkg/core"
	"github.com/raykavin/tempcandle/pkg/regression"
)

const (
	defaultSpacing = 6
	minSpacing     = 3
	axisWidth      = 4
	maxRows        = 1000
)

// ErrUnplottable is returned when the values to draw have no finite vertical range
var ErrUnplottable = errors.New("values cannot be charted")

// Chart renders candlesticks and predictions as text grids, one row per
// integer degree and one column slot per period
type Chart struct {
	min, max int
	fixed    bool
	spacing  int
	colored  bool
}

// Option defines a function type for configuring a Chart instance
type Option func(*Chart)

// WithBounds fixes the vertical range of the chart. Without it the range
// covers the plotted values.
func WithBounds(min, max int) Option {
	return func(chart *Chart) {
		if min <= max {
			chart.min, chart.max, chart.fixed = min, max, true
		}
	}
}

// WithSpacing sets the width of each period column
func WithSpacing(spacing int) Option {
	return func(chart *Chart) {
		chart.spacing = max(spacing, minSpacing)
	}
}

// WithColor paints rising candles green and falling candles red
func WithColor(colored bool) Option {
	return func(chart *Chart) {
		chart.colored = colored
	}
}

// NewChart creates a chart renderer
func NewChart(options ...Option) *Chart {
	chart := &Chart{spacing: defaultSpacing}
	for _, option := range options {
		option(chart)
	}
	return chart
}

// Candles draws each candlestick as a "|" stalk from high to low and a
// "+++" box from open to close
func (c *Chart) Candles(w io.Writer, candles []core.Candlestick) error {
	if len(candles) == 0 {
		return nil
	}

	low, high := candles[0].Low, candles[0].High
	for _, candle := range candles[1:] {
		low = math.Min(low, candle.Low)
		high = math.Max(high, candle.High)
	}

	g, err := c.newGrid(len(candles), low, high)
	if err != nil {
		return err
	}
	for i, candle := range candles {
		column := g.column(i)
		paint := c.paint(candle.Close >= candle.Open)

		for row := g.row(candle.High); row <= g.row(candle.Low); row++ {
			g.set(row, column, '|', paint)
		}

		top, bottom := g.row(math.Max(candle.Open, candle.Close)), g.row(math.Min(candle.Open, candle.Close))
		for row := top; row <= bottom; row++ {
			g.set(row, column-1, '+', paint)
			g.set(row, column, '+', paint)
			g.set(row, column+1, '+', paint)
		}
	}

	labels := make([]string, len(candles))
	for i, candle := range candles {
		labels[i] = candle.Bucket()
	}

	return g.render(w, labels)
}

// Predictions draws each predicted value as a "*"
func (c *Chart) Predictions(w io.Writer, points []regression.Point) error {
	if len(points) == 0 {
		return nil
	}

	low, high := points[0].Value, points[0].Value
	for _, point := range points[1:] {
		low = math.Min(low, point.Value)
		high = math.Max(high, point.Value)
	}

	g, err := c.newGrid(len(points), low, high)
	if err != nil {
		return err
	}
	labels := make([]string, len(points))
	for i, point := range points {
		g.set(g.row(point.Value), g.column(i), '*', c.paint(true))
		labels[i] = strconv.Itoa(point.Ordinal)
	}

	return g.render(w, labels)
}

func (c *Chart) newGrid(periods int, low, high float64) (*grid, error) {
	min, max := c.min, c.max
	if !c.fixed {
		if !finite(low) || !finite(high) {
			return nil, fmt.Errorf("%w: range [%v, %v]", ErrUnplottable, low, high)
		}
		if math.Ceil(high)-math.Floor(low) >= maxRows {
			return nil, fmt.Errorf("%w: range [%v, %v] exceeds %d rows", ErrUnplottable, low, high, maxRows)
		}
		min, max = int(math.Floor(low)), int(math.Ceil(high))
	}

	g := &grid{
		max:     max,
		spacing: c.spacing,
		cells:   make([][]cell, max-min+1),
	}
	for row := range g.cells {
		g.cells[row] = make([]cell, periods*c.spacing)
	}
	return g, nil
}

func finite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

func (c *Chart) paint(rising bool) func(string) string {
	if !c.colored {
		return nil
	}
	if rising {
		return func(s string) string { return term.Greenf("%s", s) }
	}
	return func(s string) string { return term.Redf("%s", s) }
}

type cell struct {
	char  rune
	paint func(string) string
}

type grid struct {
	max     int
	spacing int
	cells   [][]cell
}

// row maps a value to its grid row, clamped into the grid
func (g *grid) row(value float64) int {
	row := g.max - int(math.Round(value))
	return min(max(row, 0), len(g.cells)-1)
}

// column returns the center column of a period slot
func (g *grid) column(period int) int {
	return period*g.spacing + g.spacing/2
}

func (g *grid) set(row, column int, char rune, paint func(string) string) {
	if column < 0 || column >= len(g.cells[row]) {
		return
	}
	g.cells[row][column] = cell{char: char, paint: paint}
}

func (g *grid) render(w io.Writer, labels []string) error {
	var buffer bytes.Buffer

	for row, cells := range g.cells {
		fmt.Fprintf(&buffer, "%*d | ", axisWidth, g.max-row)
		for _, cell := range cells {
			switch {
			case cell.char == 0:
				buffer.WriteByte(' ')
			case cell.paint != nil:
				buffer.WriteString(cell.paint(string(cell.char)))
			default:
				buffer.WriteRune(cell.char)
			}
		}
		buffer.WriteByte('\n')
	}

	axis := bytes.Repeat([]byte(" "), len(labels)*g.spacing+g.spacing)
	for i, label := range labels {
		start := max(g.column(i)-len(label)/2, 0)
		copy(axis[start:], label)
	}
	buffer.WriteString(fmt.Sprintf("%*s   ", axisWidth, ""))
	buffer.Write(bytes.TrimRight(axis, " "))
	buffer.WriteByte('\n')

	_, err := w.Write(buffer.Bytes())
	return err
}
