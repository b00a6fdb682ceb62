package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var testCases = []struct {
		description string
		level       string
		log         func(l Logger)
		expectEmpty bool
		expectLevel string
	}{
		{
			description: "warn is written at info level",
			level:       "info",
			log:         func(l Logger) { l.Warn("snapshot degraded", "url", "mem://localhost/x.yaml") },
			expectLevel: "WARN",
		},
		{
			description: "debug is dropped at info level",
			level:       "",
			log:         func(l Logger) { l.Debug("inert mixin member") },
			expectEmpty: true,
		},
		{
			description: "debug is written at debug level",
			level:       "debug",
			log:         func(l Logger) { l.Debug("inert mixin member") },
			expectLevel: "DEBUG",
		},
	}

	for _, testCase := range testCases {
		buf := &bytes.Buffer{}
		logger := New(testCase.level, buf)
		testCase.log(logger)
		if testCase.expectEmpty {
			assert.Empty(t, buf.String(), testCase.description)
			continue
		}
		record := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record), testCase.description)
		assert.EqualValues(t, testCase.expectLevel, record["level"], testCase.description)
		assert.Contains(t, record, "timestamp", testCase.description)
		assert.EqualValues(t, "tagmeta", record["component"], testCase.description)
	}
}

func TestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, Level("Debug"))
	assert.Equal(t, slog.LevelError, Level("ERROR"))
	assert.Equal(t, slog.LevelInfo, Level("bogus"))
	assert.True(t, New("debug", &bytes.Buffer{}).IsDebugEnabled())
	assert.False(t, Nop().IsDebugEnabled())
}
