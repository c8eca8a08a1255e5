package tempcandle

import (
	"os"
	"strconv"

	"github.com/raykavin/tempcandle/pkg/logger"
	"github.com/raykavin/tempcandle/pkg/logger/zerolog"
)

const (
	defaultLogLevel      = "info"
	defaultLogTimeFormat = "2006-01-02 15:04:05"
	defaultLogColored    = "true"
	defaultLogJSON       = "false"
)

// Environment variable names
const (
	envLogLevel      = "TEMPCANDLE_LOG_LEVEL"
	envLogTimeFormat = "TEMPCANDLE_LOG_TIME_FORMAT"
	envLogColor      = "TEMPCANDLE_LOG_COLORED"
	envLogJSON       = "TEMPCANDLE_LOG_JSON"
)

// DefaultLog is used by analyzers created without WithLogger
var DefaultLog logger.Logger

func init() {
	log, err := initLogger()
	if err != nil {
		panic(err)
	}

	DefaultLog = log
}

// initLogger creates the stderr logger configured from environment variables
func initLogger() (*zerolog.Adapter, error) {
	logColored, err := parseBoolEnv(envLogColor, defaultLogColored)
	if err != nil {
		return nil, err
	}

	logJSON, err := parseBoolEnv(envLogJSON, defaultLogJSON)
	if err != nil {
		return nil, err
	}

	return zerolog.New(os.Stderr, zerolog.Options{
		Level:      getEnvWithDefault(envLogLevel, defaultLogLevel),
		TimeFormat: getEnvWithDefault(envLogTimeFormat, defaultLogTimeFormat),
		Colored:    logColored,
		JSON:       logJSON,
	})
}

// getEnvWithDefault returns the value of the environment variable or the default if not set
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// parseBoolEnv gets a boolean environment variable with a default value
func parseBoolEnv(key, defaultValue string) (bool, error) {
	return strconv.ParseBool(getEnvWithDefault(key, defaultValue))
}
