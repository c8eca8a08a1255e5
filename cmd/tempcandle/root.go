package main

import (
	"fmt"
	"io"
	"os"

	"github.com/raykavin/tempcandle"
	"github.com/raykavin/tempcandle/internal/config"
	"github.com/raykavin/tempcandle/pkg/logger/zerolog"
	"github.com/raykavin/tempcandle/pkg/plot"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

const (
	firstOpenZero  = "zero"
	firstOpenClose = "close"
)

// globalFlags are shared by every command
type globalFlags struct {
	configPath string
	progress   bool
	firstOpen  string
}

// sourceFlags select the file and series to analyze
type sourceFlags struct {
	path    string
	country string
	from    int
	to      int
	raw     bool
	min     float64
	max     float64
}

// app bundles what a command needs once configuration is loaded
type app struct {
	cfg      *config.Config
	analyzer *tempcandle.Analyzer
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "tempcandle",
		Short:         "Yearly temperature candlesticks and trends",
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Configuration file (default ./tempcandle.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flags.progress, "progress", false, "Show a progress bar while reading the source")
	rootCmd.PersistentFlags().StringVar(&flags.firstOpen, "first-open", "", "Open of the first candlestick: zero or close (default from config)")

	rootCmd.AddCommand(
		buildCandlesCmd(flags),
		buildPredictCmd(flags),
		buildHistogramCmd(flags),
		buildCountriesCmd(flags),
		buildConfigCmd(flags),
		buildShellCmd(flags),
	)

	return rootCmd
}

// loadApp reads the configuration and builds the analyzer
func loadApp(flags *globalFlags) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	log, err := zerolog.New(os.Stderr, zerolog.Options{
		Level:      cfg.Log.Level,
		TimeFormat: cfg.Log.TimeFormat,
		Colored:    cfg.Log.Colored,
		JSON:       cfg.Log.JSON,
	})
	if err != nil {
		return nil, err
	}

	options := []tempcandle.Option{
		tempcandle.WithLogger(log),
		tempcandle.WithColumnSuffix(cfg.Parser.ColumnSuffix),
		tempcandle.WithDelimiter(cfg.Parser.DelimiterRune()),
		tempcandle.WithBootstrap(cfg.Analysis.Resamples, cfg.Analysis.Confidence),
	}

	if cfg.Parser.StrictTimestamps {
		options = append(options, tempcandle.WithStrictTimestamps())
	}

	if flags.progress {
		options = append(options, tempcandle.WithProgress(newProgressBar))
	}

	firstOpen := cfg.Analysis.FirstOpen
	if flags.firstOpen != "" {
		firstOpen = flags.firstOpen
	}
	switch firstOpen {
	case firstOpenZero:
	case firstOpenClose:
		options = append(options, tempcandle.WithOpenFromClose())
	default:
		return nil, fmt.Errorf("invalid first open %q, expected %s or %s", firstOpen, firstOpenZero, firstOpenClose)
	}

	return &app{
		cfg:      cfg,
		analyzer: tempcandle.New(cfg.CountryTable(), options...),
	}, nil
}

func (a *app) chart() *plot.Chart {
	return plot.NewChart(
		plot.WithSpacing(a.cfg.Chart.Spacing),
		plot.WithColor(a.cfg.Chart.Colored),
	)
}

func newProgressBar(total int64) io.WriteCloser {
	return progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("reading"),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
}

func addSourceFlags(cmd *cobra.Command, source *sourceFlags, required bool) {
	cmd.Flags().StringVarP(&source.path, "file", "f", "", "CSV source file")
	cmd.Flags().StringVarP(&source.country, "country", "c", "", "Country code (e.g. GB)")

	if required {
		cmd.MarkFlagRequired("file")
		cmd.MarkFlagRequired("country")
	}
}

func addRangeFlags(cmd *cobra.Command, source *sourceFlags) {
	cmd.Flags().IntVar(&source.from, "from", 0, "First year to keep")
	cmd.Flags().IntVar(&source.to, "to", 0, "Last year to keep")
	cmd.Flags().BoolVar(&source.raw, "raw", false, "Apply the year range before aggregation")
	cmd.Flags().Float64Var(&source.min, "min", 0, "Lowest temperature to keep")
	cmd.Flags().Float64Var(&source.max, "max", 0, "Highest temperature to keep")
}

// request builds the analyzer request from the source flags
func (s *sourceFlags) request(cmd *cobra.Command) (tempcandle.Request, error) {
	req := tempcandle.Request{Path: s.path, Country: s.country}
	changed := cmd.Flags().Changed

	if changed("from") || changed("to") {
		if !changed("from") || !changed("to") {
			return req, fmt.Errorf("--from and --to must be provided together")
		}

		years := &tempcandle.YearRange{From: s.from, To: s.to}
		if s.raw {
			req.Years = years
		} else {
			req.Display = years
		}
	}

	if changed("min") || changed("max") {
		if !changed("min") || !changed("max") {
			return req, fmt.Errorf("--min and --max must be provided together")
		}
		req.Values = &tempcandle.ValueRange{Min: s.min, Max: s.max}
	}

	return req, nil
}
