package zerolog

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/goterm/term"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Options configures the console logger
type Options struct {
	Level      string
	TimeFormat string
	Colored    bool
	JSON       bool
}

// New creates a logger writing to out. JSON mode writes one JSON object
// per entry, otherwise entries are formatted for a terminal.
func New(out io.Writer, opts Options) (*Adapter, error) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	if opts.JSON {
		return NewAdapter(zerolog.New(out).Level(level).With().Timestamp().Logger()), nil
	}

	writer := zerolog.ConsoleWriter{
		Out:             out,
		NoColor:         !opts.Colored,
		TimeFormat:      opts.TimeFormat,
		FormatLevel:     formatLevel(opts.Colored),
		FormatMessage:   formatMessage,
		FormatCaller:    formatCaller,
		FormatTimestamp: formatTimestamp(opts.TimeFormat),
	}

	log := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		CallerWithSkipFrameCount(3).
		Logger()

	return NewAdapter(log), nil
}

func formatLevel(colored bool) zerolog.Formatter {
	return func(i any) string {
		level, _ := i.(string)
		label, paint := levelLabel(level)
		if !colored {
			return label
		}
		return paint("%s", label)
	}
}

func levelLabel(level string) (string, func(string, ...interface{}) string) {
	switch level {
	case zerolog.LevelTraceValue:
		return "[TRC]", term.Cyanf
	case zerolog.LevelDebugValue:
		return "[DBG]", term.Cyanf
	case zerolog.LevelInfoValue:
		return "[INF]", term.Greenf
	case zerolog.LevelWarnValue:
		return "[WAR]", term.Yellowf
	case zerolog.LevelErrorValue:
		return "[ERR]", term.Redf
	default:
		return "[UNK]", term.Whitef
	}
}

func formatMessage(i any) string {
	const width = 48

	msg, ok := i.(string)
	if !ok || len(msg) == 0 {
		return ">"
	}
	if len(msg) < width {
		msg += strings.Repeat(" ", width-len(msg))
	}
	return "> " + msg
}

func formatCaller(i any) string {
	const fileWidth = 14

	caller, ok := i.(string)
	if !ok || len(caller) == 0 {
		return ""
	}

	file, line, found := strings.Cut(filepath.Base(caller), ":")
	if !found {
		return caller
	}
	if len(file) > fileWidth {
		file = file[:fileWidth]
	}

	return fmt.Sprintf("[%-*s:%4s]", fileWidth, file, line)
}

func formatTimestamp(layout string) zerolog.Formatter {
	return func(i any) string {
		value, ok := i.(string)
		if !ok {
			return fmt.Sprintf("[%v]", i)
		}

		ts, err := time.ParseInLocation(zerolog.TimeFieldFormat, value, time.Local)
		if err == nil {
			value = ts.In(time.Local).Format(layout)
		}
		return "[" + value + "]"
	}
}
