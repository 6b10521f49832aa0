package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/air-quality-dashboard/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, domain.KeepAll, cfg.DuplicatePolicy)
	assert.Equal(t, 128, cfg.ReportCacheSize)
	assert.Equal(t, 5, cfg.PreviewRows)
	assert.False(t, cfg.SummaryFeedEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "air-quality-monthly", cfg.KafkaSummaryTopic)
	assert.Equal(t, 50, cfg.SummaryBatchSize)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("DATA_DIR", "/srv/prsa")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("DUPLICATE_POLICY", "keep-last")
	t.Setenv("REPORT_CACHE_SIZE", "0")
	t.Setenv("PREVIEW_ROWS", "20")
	t.Setenv("SUMMARY_FEED_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_SUMMARY_TOPIC", "custom-summaries")
	t.Setenv("SUMMARY_BATCH_SIZE", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/prsa", cfg.DataDir)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, domain.KeepLast, cfg.DuplicatePolicy)
	assert.Equal(t, 0, cfg.ReportCacheSize)
	assert.Equal(t, 20, cfg.PreviewRows)
	assert.True(t, cfg.SummaryFeedEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-summaries", cfg.KafkaSummaryTopic)
	assert.Equal(t, 10, cfg.SummaryBatchSize)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /from/file\npreview_rows: 7\nhttp_addr: \":7070\"\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("HTTP_ADDR", ":6060")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/from/file", cfg.DataDir)
	assert.Equal(t, 7, cfg.PreviewRows)
	assert.Equal(t, ":6060", cfg.HTTPAddr, "environment wins over file")
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONFIG_FILE")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		env   string
		value string
	}{
		{"SHUTDOWN_TIMEOUT", "not-a-duration"},
		{"SHUTDOWN_TIMEOUT", "-1s"},
		{"DUPLICATE_POLICY", "first-wins"},
		{"REPORT_CACHE_SIZE", "-1"},
		{"REPORT_CACHE_SIZE", "lots"},
		{"PREVIEW_ROWS", "0"},
		{"PREVIEW_ROWS", "101"},
		{"SUMMARY_BATCH_SIZE", "0"},
		{"SUMMARY_FEED_ENABLED", "maybe"},
		{"LOG_LEVEL", "verbose"},
		{"LOG_FORMAT", "xml"},
	}
	for _, tt := range tests {
		t.Run(tt.env+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.env)
		})
	}
}
