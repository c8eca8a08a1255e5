package plot

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/raykavin/tempcandle/pkg/core"
	"github.com/raykavin/tempcandle/pkg/indicator"
	"github.com/raykavin/tempcandle/pkg/metric"
	"github.com/raykavin/tempcandle/pkg/regression"
)

// DefaultPrecision is the number of decimals printed for temperatures
const DefaultPrecision = 2

// TableOptions controls the candlestick table
type TableOptions struct {
	Precision int
	// SMA adds a moving average column when it has one value per candle
	SMA       []indicator.Value
	SMAPeriod int
}

// Table writes the candlesticks as a text table
func Table(w io.Writer, candles []core.Candlestick, opts TableOptions) {
	withSMA := len(opts.SMA) == len(candles) && opts.SMAPeriod > 0

	header := []string{"Date", "Open", "High", "Low", "Close"}
	if withSMA {
		header = append(header, fmt.Sprintf("SMA(%d)", opts.SMAPeriod))
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for i, candle := range candles {
		row := candle.ToSlice(opts.Precision)
		if withSMA {
			row = append(row, formatIndicator(opts.SMA[i], opts.Precision))
		}
		table.Append(row)
	}

	table.Render()
}

// SummaryTable writes descriptive statistics of the candlestick closes
func SummaryTable(w io.Writer, summary metric.Summary, interval metric.Interval, precision int) {
	table := tablewriter.NewWriter(w)

	data := [][]string{
		{"Years", strconv.Itoa(summary.Count)},
		{"Mean close", formatFloat(summary.Mean, precision)},
		{"Std. dev.", formatFloat(summary.StdDev, precision)},
		{"Min close", formatFloat(summary.Min, precision)},
		{"Max close", formatFloat(summary.Max, precision)},
	}
	if interval.Confidence > 0 && summary.Count > 0 {
		data = append(data, []string{
			fmt.Sprintf("Mean CI (%.0f%%)", interval.Confidence*100),
			fmt.Sprintf("%s ~ %s", formatFloat(interval.Lower, precision), formatFloat(interval.Upper, precision)),
		})
	}

	table.AppendBulk(data)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	table.Render()
}

// PredictionTable writes the predicted values by year
func PredictionTable(w io.Writer, model regression.Model, points []regression.Point, precision int) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Year", "Predicted"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, point := range points {
		table.Append([]string{strconv.Itoa(point.Ordinal), formatFloat(point.Value, precision)})
	}

	table.SetFooter([]string{"Model", model.String()})
	table.Render()
}

func formatIndicator(value indicator.Value, precision int) string {
	if !value.Ok {
		return "-"
	}
	return formatFloat(value.Value, precision)
}

func formatFloat(value float64, precision int) string {
	return strconv.FormatFloat(value, 'f', precision, 64)
}

// CountryTable writes the known series codes with their country names
func CountryTable(w io.Writer, countries core.Countries) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Code", "Country"})

	for _, code := range countries.Codes() {
		name, _ := countries.Name(code)
		table.Append([]string{code, name})
	}

	table.SetFooter([]string{"Total", strconv.Itoa(countries.Len())})
	table.Render()
}
