package logger

type Level int8

const (
	Disabled   Level = -1   // Disabled turns logging off.
	TraceLevel Level = iota // TraceLevel is used for per-row details.
	DebugLevel              // DebugLevel is used for pipeline stage details.
	InfoLevel               // InfoLevel is used for informational messages.
	WarnLevel               // WarnLevel is used for recoverable problems.
	ErrorLevel              // ErrorLevel is used for errors that end a run.
)

type Logger interface {
	WithField(key string, value any) Logger  // WithField returns a logger with the given key-value pair.
	WithFields(fields map[string]any) Logger // WithFields returns a logger with the given fields.
	WithError(err error) Logger              // WithError returns a logger with the given error.

	Trace(args ...any)
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)

	Tracef(format string, args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)

	SetLevel(level Level) // SetLevel sets the logging level for the logger.
	GetLevel() Level      // GetLevel returns the logging level for the logger.
}
