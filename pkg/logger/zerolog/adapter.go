package zerolog

import (
	"fmt"

	"github.com/raykavin/tempcandle/pkg/logger"
	"github.com/rs/zerolog"
)

// Adapter exposes a zerolog logger through logger.Logger
type Adapter struct {
	log zerolog.Logger
}

// NewAdapter wraps log
func NewAdapter(log zerolog.Logger) *Adapter {
	return &Adapter{log: log}
}

// GetLevel implements logger.Logger.
func (a *Adapter) GetLevel() logger.Level {
	return toLevel(a.log.GetLevel())
}

// SetLevel implements logger.Logger.
func (a *Adapter) SetLevel(level logger.Level) {
	a.log = a.log.Level(toZerologLevel(level))
}

// Trace implements logger.Logger.
func (a *Adapter) Trace(args ...any) {
	a.log.Trace().Msg(fmt.Sprint(args...))
}

// Tracef implements logger.Logger.
func (a *Adapter) Tracef(format string, args ...any) {
	a.log.Trace().Msgf(format, args...)
}

// Debug implements logger.Logger.
func (a *Adapter) Debug(args ...any) {
	a.log.Debug().Msg(fmt.Sprint(args...))
}

// Debugf implements logger.Logger.
func (a *Adapter) Debugf(format string, args ...any) {
	a.log.Debug().Msgf(format, args...)
}

// Info implements logger.Logger.
func (a *Adapter) Info(args ...any) {
	a.log.Info().Msg(fmt.Sprint(args...))
}

// Infof implements logger.Logger.
func (a *Adapter) Infof(format string, args ...any) {
	a.log.Info().Msgf(format, args...)
}

// Warn implements logger.Logger.
func (a *Adapter) Warn(args ...any) {
	a.log.Warn().Msg(fmt.Sprint(args...))
}

// Warnf implements logger.Logger.
func (a *Adapter) Warnf(format string, args ...any) {
	a.log.Warn().Msgf(format, args...)
}

// Error implements logger.Logger.
func (a *Adapter) Error(args ...any) {
	a.log.Error().Msg(fmt.Sprint(args...))
}

// Errorf implements logger.Logger.
func (a *Adapter) Errorf(format string, args ...any) {
	a.log.Error().Msgf(format, args...)
}

// WithError implements logger.Logger.
func (a *Adapter) WithError(err error) logger.Logger {
	return &Adapter{log: a.log.With().Err(err).Logger()}
}

// WithField implements logger.Logger.
func (a *Adapter) WithField(key string, value any) logger.Logger {
	return &Adapter{log: a.log.With().Interface(key, value).Logger()}
}

// WithFields implements logger.Logger.
func (a *Adapter) WithFields(fields map[string]any) logger.Logger {
	return &Adapter{log: a.log.With().Fields(fields).Logger()}
}

var levels = map[zerolog.Level]logger.Level{
	zerolog.Disabled:   logger.Disabled,
	zerolog.TraceLevel: logger.TraceLevel,
	zerolog.DebugLevel: logger.DebugLevel,
	zerolog.InfoLevel:  logger.InfoLevel,
	zerolog.WarnLevel:  logger.WarnLevel,
	zerolog.ErrorLevel: logger.ErrorLevel,
}

// toLevel converts zerolog.Level to logger.Level.
func toLevel(level zerolog.Level) logger.Level {
	if level, ok := levels[level]; ok {
		return level
	}
	return logger.InfoLevel
}

// toZerologLevel converts logger.Level to zerolog.Level.
func toZerologLevel(level logger.Level) zerolog.Level {
	for zl, l := range levels {
		if l == level {
			return zl
		}
	}
	return zerolog.InfoLevel
}
