package zerolog

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/raykavin/tempcandle/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var out bytes.Buffer
	log, err := New(&out, Options{Level: "info", JSON: true})
	require.NoError(t, err)

	log.WithFields(map[string]any{"country": "GB", "buckets": 2}).Info("parsed")
	log.Debug("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	assert.Equal(t, "parsed", entry["message"])
	assert.Equal(t, "GB", entry["country"])
	assert.Equal(t, float64(2), entry["buckets"])
	assert.Equal(t, "info", entry["level"])
}

func TestNew_Console(t *testing.T) {
	var out bytes.Buffer
	log, err := New(&out, Options{Level: "debug", TimeFormat: "15:04:05"})
	require.NoError(t, err)

	log.WithError(errors.New("boom")).Warnf("skipped %d rows", 3)

	assert.Contains(t, out.String(), "[WAR]")
	assert.Contains(t, out.String(), "> skipped 3 rows")
	assert.Contains(t, out.String(), "boom")
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, Options{Level: "loud"})
	require.Error(t, err)
}

func TestAdapter_Level(t *testing.T) {
	var out bytes.Buffer
	log, err := New(&out, Options{Level: "info", JSON: true})
	require.NoError(t, err)
	assert.Equal(t, logger.InfoLevel, log.GetLevel())

	log.SetLevel(logger.ErrorLevel)
	assert.Equal(t, logger.ErrorLevel, log.GetLevel())

	log.Warn("filtered")
	assert.Empty(t, out.String())
}
