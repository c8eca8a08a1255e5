package main

import (
	"time"

	"github.com/raykavin/tempcandle/internal/config"
	"github.com/raykavin/tempcandle/internal/shell"
	"github.com/raykavin/tempcandle/pkg/core"
	"github.com/raykavin/tempcandle/pkg/plot"
	"github.com/spf13/cobra"
)

const defaultHorizon = 10

func buildCandlesCmd(flags *globalFlags) *cobra.Command {
	source := &sourceFlags{}
	var (
		withChart bool
		smaPeriod int
	)

	cmd := &cobra.Command{
		Use:   "candles",
		Short: "Show yearly candlesticks of a country",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(flags)
			if err != nil {
				return err
			}

			req, err := source.request(cmd)
			if err != nil {
				return err
			}
			req.SMAPeriod = smaPeriod

			report, err := a.analyzer.Run(req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			precision := a.cfg.Analysis.Precision

			plot.Table(out, report.Candles, plot.TableOptions{
				Precision: precision,
				SMA:       report.SMA,
				SMAPeriod: smaPeriod,
			})
			plot.SummaryTable(out, report.Summary, report.MeanCI, precision)

			if withChart {
				return a.chart().Candles(out, report.Candles)
			}
			return nil
		},
	}

	addSourceFlags(cmd, source, true)
	addRangeFlags(cmd, source)
	cmd.Flags().BoolVar(&withChart, "chart", false, "Draw the candlesticks below the table")
	cmd.Flags().IntVar(&smaPeriod, "sma", 0, "Add a simple moving average of the closes over N years")

	return cmd
}

func buildPredictCmd(flags *globalFlags) *cobra.Command {
	source := &sourceFlags{}
	var (
		until     int
		fieldName string
		withChart bool
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Fit a linear trend and extrapolate it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			field, err := core.ParseField(fieldName)
			if err != nil {
				return err
			}

			a, err := loadApp(flags)
			if err != nil {
				return err
			}

			req, err := source.request(cmd)
			if err != nil {
				return err
			}
			req.Field = field
			req.PredictUntil = until

			report, err := a.analyzer.Run(req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			plot.PredictionTable(out, *report.Model, report.Predictions, a.cfg.Analysis.Precision)

			if withChart {
				return a.chart().Predictions(out, report.Predictions)
			}
			return nil
		},
	}

	addSourceFlags(cmd, source, true)
	addRangeFlags(cmd, source)
	cmd.Flags().IntVar(&until, "until", time.Now().Year()+defaultHorizon, "Last year to predict")
	cmd.Flags().StringVar(&fieldName, "field", string(core.FieldClose), "Candlestick field to fit: open, high, low or close")
	cmd.Flags().BoolVar(&withChart, "chart", false, "Draw the predictions below the table")

	return cmd
}

func buildHistogramCmd(flags *globalFlags) *cobra.Command {
	source := &sourceFlags{}
	var bins, width int

	cmd := &cobra.Command{
		Use:   "histogram",
		Short: "Show the distribution of the raw temperatures",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(flags)
			if err != nil {
				return err
			}

			req, err := source.request(cmd)
			if err != nil {
				return err
			}

			report, err := a.analyzer.Run(req)
			if err != nil {
				return err
			}

			if bins <= 0 {
				bins = a.cfg.Chart.Bins
			}
			if width <= 0 {
				width = a.cfg.Chart.Width
			}

			return plot.Histogram(cmd.OutOrStdout(), report.Series.Values(), bins, width)
		},
	}

	addSourceFlags(cmd, source, true)
	addRangeFlags(cmd, source)
	cmd.Flags().IntVar(&bins, "bins", 0, "Number of bins (default from config)")
	cmd.Flags().IntVar(&width, "width", 0, "Width of the longest bar (default from config)")

	return cmd
}

func buildCountriesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List the known country codes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}

			plot.CountryTable(cmd.OutOrStdout(), cfg.CountryTable())
			return nil
		},
	}
}

func buildConfigCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}
			return config.Dump(cmd.OutOrStdout(), cfg)
		},
	}
}

func buildShellCmd(flags *globalFlags) *cobra.Command {
	source := &sourceFlags{}

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Explore a source interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(flags)
			if err != nil {
				return err
			}

			session := shell.New(a.analyzer, cmd.InOrStdin(), cmd.OutOrStdout(), shell.Options{
				Precision: a.cfg.Analysis.Precision,
				Bins:      a.cfg.Chart.Bins,
				Width:     a.cfg.Chart.Width,
				Chart:     a.chart(),
				Colored:   a.cfg.Chart.Colored,
			})

			return session.Run(source.path, source.country)
		},
	}

	addSourceFlags(cmd, source, false)

	return cmd
}
