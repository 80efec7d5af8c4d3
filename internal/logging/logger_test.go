package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_LevelConfiguration(t *testing.T) {
	tests := []struct {
		name          string
		level         string
		expectedLevel log.Level
	}{
		{name: "debug_level", level: "debug", expectedLevel: log.DebugLevel},
		{name: "info_level", level: "info", expectedLevel: log.InfoLevel},
		{name: "warn_level", level: "warn", expectedLevel: log.WarnLevel},
		{name: "warning_alias", level: "warning", expectedLevel: log.WarnLevel},
		{name: "error_level", level: "error", expectedLevel: log.ErrorLevel},
		{name: "empty_defaults_to_info", level: "", expectedLevel: log.InfoLevel},
		{name: "invalid_defaults_to_info", level: "loud", expectedLevel: log.InfoLevel},
		{name: "case_insensitive", level: "DeBuG", expectedLevel: log.DebugLevel},
	}

	original := Logger
	t.Cleanup(func() { Logger = original })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := InitLogger(Options{Level: tt.level, Output: &bytes.Buffer{}})
			require.NotNil(t, logger)
			assert.Same(t, Logger, logger)
			assert.Equal(t, tt.expectedLevel, logger.GetLevel())
		})
	}
}

func TestInitLogger_JSONFormat(t *testing.T) {
	original := Logger
	t.Cleanup(func() { Logger = original })

	var buf bytes.Buffer
	InitLogger(Options{Level: "info", Format: "json", Output: &buf})

	WithCloud("galaxy").Info("Regenerated", "points", 10)

	line := strings.TrimSpace(buf.String())
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "Regenerated", entry["msg"])
	assert.Equal(t, "galaxy", entry["cloud"])
	assert.Equal(t, float64(10), entry["points"])
}

func TestWithComponent(t *testing.T) {
	original := Logger
	t.Cleanup(func() { Logger = original })

	var buf bytes.Buffer
	InitLogger(Options{Level: "debug", Format: "logfmt", Output: &buf})

	WithComponent("scene").Debug("hello")
	assert.Contains(t, buf.String(), "component=scene")
}

func TestGetLogger_LazyInit(t *testing.T) {
	original := Logger
	t.Cleanup(func() { Logger = original })

	Logger = nil
	assert.NotNil(t, GetLogger())
}
