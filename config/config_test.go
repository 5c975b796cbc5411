package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsWithoutConfigFile(t *testing.T) {
	v, err := loadFrom(t.TempDir())
	require.NoError(t, err)

	cfg, err := ParseConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "localhost:3000", cfg.Server.Addr())
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, int64(16<<20), cfg.App.MaxUploadBytes)
	assert.Equal(t, int64(1<<24), cfg.App.MaxPixels)
	assert.Equal(t, "/images", cfg.App.ImagesPath)
	assert.Equal(t, []string{"*"}, cfg.App.CORSOrigins)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, "image-stored", cfg.Kafka.Topic)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestConfigFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
server:
  port: "8081"
  mode: "release"
app:
  max_upload_bytes: 1024
  max_pixels: 4096
  images_path: "/pics/"
kafka:
  enabled: true
  brokers: ["kafka:9092"]
log:
  format: "text"
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	v, err := loadFrom(dir)
	require.NoError(t, err)
	cfg, err := ParseConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, int64(1024), cfg.App.MaxUploadBytes)
	assert.Equal(t, int64(4096), cfg.App.MaxPixels)
	assert.Equal(t, "/pics", cfg.App.ImagesPath)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"kafka:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "text", cfg.Log.Format)
	// untouched keys keep their defaults
	assert.Equal(t, "image-stored", cfg.Kafka.Topic)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("LOG_LEVEL", "debug")

	v, err := loadFrom(t.TempDir())
	require.NoError(t, err)
	cfg, err := ParseConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestParseConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{name: "zero upload limit", key: "app.max_upload_bytes", val: 0},
		{name: "zero pixel limit", key: "app.max_pixels", val: 0},
		{name: "negative pixel limit", key: "app.max_pixels", val: -1},
		{name: "relative images path", key: "app.images_path", val: "images"},
		{name: "root images path", key: "app.images_path", val: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := loadFrom(t.TempDir())
			require.NoError(t, err)
			v.Set(tt.key, tt.val)

			_, err = ParseConfig(v)
			assert.Error(t, err)
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("JPEGIFY_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("JPEGIFY_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("JPEGIFY_TEST_UNSET_VALUE", "fallback"))
}
