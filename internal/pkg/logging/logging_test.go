package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/ds124wfegd/jpegify/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	require.NoError(t, configure(logger, config.LogConfig{Level: "warn", Format: "json"}, &buf))

	logger.Info("dropped")
	logger.WithField("image_id", "abc").Warn("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "abc", entry["image_id"])
}

func TestConfigureText(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	require.NoError(t, configure(logger, config.LogConfig{Level: "debug", Format: "text"}, &buf))

	logger.Debug("hello")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestConfigureRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LogConfig
	}{
		{name: "bad level", cfg: config.LogConfig{Level: "loud", Format: "json"}},
		{name: "bad format", cfg: config.LogConfig{Level: "info", Format: "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, configure(logrus.New(), tt.cfg, &bytes.Buffer{}))
		})
	}
}
