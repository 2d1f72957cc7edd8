//go:build unit

package logging

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompactFormatter_Format(t *testing.T) {
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Date(2024, 5, 1, 13, 4, 5, 0, time.UTC),
		Level:   logrus.InfoLevel,
		Message: "Configuration written",
		Data: logrus.Fields{
			"component": "rotator",
			"mode":      "ipv6",
			"path":      "haproxy/haproxy.cfg",
			"addresses": 5,
		},
	}

	t.Run("Simple", func(t *testing.T) {
		out, err := (&CompactFormatter{}).Format(entry)
		require.NoError(t, err)
		assert.Equal(t, "[INFO][rotator][ipv6] Configuration written (addresses=5, path=haproxy/haproxy.cfg)\n", string(out))
	})

	t.Run("Compact", func(t *testing.T) {
		out, err := (&CompactFormatter{ShowTime: true}).Format(entry)
		require.NoError(t, err)
		assert.Equal(t, "[13:04:05][INFO][rotator][ipv6] Configuration written (addresses=5, path=haproxy/haproxy.cfg)\n", string(out))
	})

	t.Run("NoFields", func(t *testing.T) {
		bare := &logrus.Entry{Logger: logrus.New(), Level: logrus.WarnLevel, Message: "bare", Data: logrus.Fields{}}
		out, err := (&CompactFormatter{}).Format(bare)
		require.NoError(t, err)
		assert.Equal(t, "[WARNING] bare\n", string(out))
	})
}

func TestInitLogger(t *testing.T) {
	t.Cleanup(func() { Logger = nil })

	t.Run("LevelAndFormat", func(t *testing.T) {
		var buf bytes.Buffer
		initLogger(LogConfig{Level: "debug", Format: "json"}, &buf)
		assert.Equal(t, logrus.DebugLevel, Logger.GetLevel())
		assert.IsType(t, &logrus.JSONFormatter{}, Logger.Formatter)

		buf.Reset()
		WithComponentAndMode("rotator", "ipv4").Info("hello")
		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "rotator", line["component"])
		assert.Equal(t, "ipv4", line["mode"])
		assert.Equal(t, "hello", line["msg"])
	})

	t.Run("InvalidLevelDefaultsToInfo", func(t *testing.T) {
		var buf bytes.Buffer
		initLogger(LogConfig{Level: "loud", Format: "text"}, &buf)
		assert.Equal(t, logrus.InfoLevel, Logger.GetLevel())
		assert.Contains(t, buf.String(), "Invalid log level")
	})

	t.Run("InvalidFormatDefaultsToText", func(t *testing.T) {
		var buf bytes.Buffer
		initLogger(LogConfig{Level: "info", Format: "xml"}, &buf)
		assert.IsType(t, &logrus.TextFormatter{}, Logger.Formatter)
		assert.Contains(t, buf.String(), "Invalid log format")
	})

	t.Run("CompactFormats", func(t *testing.T) {
		var buf bytes.Buffer
		initLogger(LogConfig{Level: "info", Format: "simple"}, &buf)
		assert.Equal(t, &CompactFormatter{ShowTime: false}, Logger.Formatter)

		initLogger(LogConfig{Level: "info", Format: "compact"}, &buf)
		assert.Equal(t, &CompactFormatter{ShowTime: true}, Logger.Formatter)
	})
}

func TestGetLogger_DefaultsWhenUninitialized(t *testing.T) {
	t.Cleanup(func() { Logger = nil })
	Logger = nil

	logger := GetLogger()
	require.NotNil(t, logger)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}
