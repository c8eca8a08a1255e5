// Package config loads the tempcandle configuration from file, environment
// and defaults using Viper
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/raykavin/tempcandle/pkg/core"
	"github.com/raykavin/tempcandle/pkg/metric"
	"github.com/raykavin/tempcandle/pkg/plot"
	"github.com/raykavin/tempcandle/pkg/weather"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigName = "tempcandle"
	EnvPrefix         = "TEMPCANDLE"
)

//go:embed countries.yaml
var embeddedCountries []byte

// Config holds the application configuration
type Config struct {
	Log       LogConfig         `mapstructure:"log" yaml:"log"`
	Parser    ParserConfig      `mapstructure:"parser" yaml:"parser"`
	Analysis  AnalysisConfig    `mapstructure:"analysis" yaml:"analysis"`
	Chart     ChartConfig       `mapstructure:"chart" yaml:"chart"`
	Countries map[string]string `mapstructure:"countries" yaml:"countries" validate:"required,dive,keys,len=2,alpha,endkeys,required"`
}

// LogConfig controls the stderr logger
type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level" validate:"oneof=trace debug info warn error disabled"`
	TimeFormat string `mapstructure:"time_format" yaml:"time_format" validate:"required"`
	Colored    bool   `mapstructure:"colored" yaml:"colored"`
	JSON       bool   `mapstructure:"json" yaml:"json"`
}

// ParserConfig holds the CSV source settings
type ParserConfig struct {
	ColumnSuffix     string `mapstructure:"column_suffix" yaml:"column_suffix" validate:"required"`
	Delimiter        string `mapstructure:"delimiter" yaml:"delimiter" validate:"len=1"`
	StrictTimestamps bool   `mapstructure:"strict_timestamps" yaml:"strict_timestamps"`
}

// AnalysisConfig holds aggregation and reporting settings
type AnalysisConfig struct {
	FirstOpen  string  `mapstructure:"first_open" yaml:"first_open" validate:"oneof=zero close"`
	Precision  int     `mapstructure:"precision" yaml:"precision" validate:"gte=0,lte=6"`
	Resamples  int     `mapstructure:"resamples" yaml:"resamples" validate:"gte=100"`
	Confidence float64 `mapstructure:"confidence" yaml:"confidence" validate:"gt=0,lt=1"`
}

// ChartConfig holds console rendering settings
type ChartConfig struct {
	Spacing int  `mapstructure:"spacing" yaml:"spacing" validate:"gte=3"`
	Colored bool `mapstructure:"colored" yaml:"colored"`
	Bins    int  `mapstructure:"bins" yaml:"bins" validate:"gte=1"`
	Width   int  `mapstructure:"width" yaml:"width" validate:"gte=10"`
}

// DelimiterRune returns the parser delimiter as a rune
func (c ParserConfig) DelimiterRune() rune {
	return []rune(c.Delimiter)[0]
}

// CountryTable returns the immutable country lookup built from the configuration
func (c *Config) CountryTable() core.Countries {
	return core.NewCountries(c.Countries)
}

// DefaultCountries returns the embedded country table
func DefaultCountries() (map[string]string, error) {
	countries := make(map[string]string)
	if err := yaml.Unmarshal(embeddedCountries, &countries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal embedded countries: %w", err)
	}
	return countries, nil
}

// Load reads the configuration. An empty path searches for tempcandle.yaml in
// the working directory; a missing file there is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	if err := setDefaults(v); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read configuration: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("could not parse configuration: %w", err)
	}

	// viper folds keys to lower case
	codes := make(map[string]string, len(cfg.Countries))
	for code, name := range cfg.Countries {
		codes[strings.ToUpper(code)] = name
	}
	cfg.Countries = codes

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every field against its constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Dump writes the configuration as YAML
func Dump(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("could not encode configuration: %w", err)
	}
	return enc.Close()
}

func setDefaults(v *viper.Viper) error {
	countries, err := DefaultCountries()
	if err != nil {
		return err
	}

	table := make(map[string]any, len(countries))
	for code, name := range countries {
		table[code] = name
	}

	v.SetDefault("log.level", "info")
	v.SetDefault("log.time_format", "2006-01-02 15:04:05")
	v.SetDefault("log.colored", true)
	v.SetDefault("log.json", false)

	v.SetDefault("parser.column_suffix", weather.DefaultColumnSuffix)
	v.SetDefault("parser.delimiter", string(weather.DefaultDelimiter))
	v.SetDefault("parser.strict_timestamps", false)

	v.SetDefault("analysis.first_open", "zero")
	v.SetDefault("analysis.precision", plot.DefaultPrecision)
	v.SetDefault("analysis.resamples", metric.DefaultResamples)
	v.SetDefault("analysis.confidence", 0.95)

	v.SetDefault("chart.spacing", 3)
	v.SetDefault("chart.colored", false)
	v.SetDefault("chart.bins", plot.DefaultBins)
	v.SetDefault("chart.width", plot.DefaultWidth)

	v.SetDefault("countries", table)

	return nil
}
