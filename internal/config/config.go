package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/couchcryptid/air-quality-dashboard/internal/domain"
)

// Config holds all service settings, populated from environment variables
// and an optional YAML file named by CONFIG_FILE.
type Config struct {
	DataDir         string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	DuplicatePolicy domain.DuplicatePolicy
	ReportCacheSize int
	PreviewRows     int

	// Monthly summary feed.
	SummaryFeedEnabled bool
	KafkaBrokers       []string
	KafkaSummaryTopic  string
	SummaryBatchSize   int
}

// Load reads configuration from the environment, applying defaults where
// unset. Environment variables take precedence over the config file.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("data_dir", "data")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("duplicate_policy", string(domain.KeepAll))
	v.SetDefault("report_cache_size", "128")
	v.SetDefault("preview_rows", "5")
	v.SetDefault("summary_feed_enabled", "false")
	v.SetDefault("kafka_brokers", "localhost:9092")
	v.SetDefault("kafka_summary_topic", "air-quality-monthly")
	v.SetDefault("summary_batch_size", "50")

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read CONFIG_FILE %s: %w", path, err)
		}
	}

	shutdownTimeout, err := time.ParseDuration(v.GetString("shutdown_timeout"))
	if err != nil || shutdownTimeout <= 0 {
		return nil, errors.New("invalid SHUTDOWN_TIMEOUT")
	}

	policy, err := domain.ParseDuplicatePolicy(v.GetString("duplicate_policy"))
	if err != nil {
		return nil, fmt.Errorf("invalid DUPLICATE_POLICY: %w", err)
	}

	cacheSize, err := parseInt(v, "report_cache_size", 0, 1<<20)
	if err != nil {
		return nil, err
	}
	previewRows, err := parseInt(v, "preview_rows", 1, 100)
	if err != nil {
		return nil, err
	}
	batchSize, err := parseInt(v, "summary_batch_size", 1, 10000)
	if err != nil {
		return nil, err
	}

	feedEnabled, err := strconv.ParseBool(v.GetString("summary_feed_enabled"))
	if err != nil {
		return nil, errors.New("invalid SUMMARY_FEED_ENABLED")
	}

	cfg := &Config{
		DataDir:            v.GetString("data_dir"),
		HTTPAddr:           v.GetString("http_addr"),
		LogLevel:           strings.ToLower(v.GetString("log_level")),
		LogFormat:          strings.ToLower(v.GetString("log_format")),
		ShutdownTimeout:    shutdownTimeout,
		DuplicatePolicy:    policy,
		ReportCacheSize:    cacheSize,
		PreviewRows:        previewRows,
		SummaryFeedEnabled: feedEnabled,
		KafkaBrokers:       parseBrokers(v.GetString("kafka_brokers")),
		KafkaSummaryTopic:  v.GetString("kafka_summary_topic"),
		SummaryBatchSize:   batchSize,
	}

	if cfg.DataDir == "" {
		return nil, errors.New("DATA_DIR is required")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}
	if cfg.SummaryFeedEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when SUMMARY_FEED_ENABLED is true")
		}
		if cfg.KafkaSummaryTopic == "" {
			return nil, errors.New("KAFKA_SUMMARY_TOPIC is required when SUMMARY_FEED_ENABLED is true")
		}
	}

	return cfg, nil
}

// parseInt reads key as an integer within [lo, hi]; the error names the env var.
func parseInt(v *viper.Viper, key string, lo, hi int) (int, error) {
	name := strings.ToUpper(key)
	n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("invalid %s: must be an integer in [%d, %d]", name, lo, hi)
	}
	return n, nil
}

func parseBrokers(s string) []string {
	var out []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
