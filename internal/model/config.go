package model

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is the full runtime configuration.
// Values come from (highest priority first): CLI flags, CLAIMFLOW_* env
// vars, ~/.claimflow/config.yaml, and the defaults below.
type Config struct {
	Ingest      IngestConfig      `yaml:"ingest" mapstructure:"ingest"`
	Router      RouterConfig      `yaml:"router" mapstructure:"router"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// IngestConfig controls document-to-text conversion
type IngestConfig struct {
	DocTimeout   time.Duration `yaml:"doc_timeout" mapstructure:"doc_timeout"`       // per-document limit in batch mode
	MaxFileBytes int64         `yaml:"max_file_bytes" mapstructure:"max_file_bytes"` // refuse larger inputs
}

// RouterConfig holds the business-rule constants
type RouterConfig struct {
	FastTrackThreshold    float64  `yaml:"fast_track_threshold" mapstructure:"fast_track_threshold"`
	FraudKeywords         []string `yaml:"fraud_keywords" mapstructure:"fraud_keywords"`
	InvestigationKeywords []string `yaml:"investigation_keywords" mapstructure:"investigation_keywords"`
}

// ConcurrencyConfig controls batch fan-out
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// CacheConfig controls the converted-text cache
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
	Format  string `yaml:"format" mapstructure:"format"` // json or pretty
}

// LLMConfig configures the optional adjuster-summary generation.
// Disabled unless a provider is set; never affects extraction or routing.
type LLMConfig struct {
	Provider          string  `yaml:"provider" mapstructure:"provider"` // openai or empty
	Model             string  `yaml:"model" mapstructure:"model"`
	APIKey            string  `yaml:"api_key" mapstructure:"api_key"`
	BaseURL           string  `yaml:"base_url" mapstructure:"base_url"`
	Timeout           int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens         int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or console
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Ingest: IngestConfig{
			DocTimeout:   30 * time.Second,
			MaxFileBytes: 20_000_000,
		},
		Router: DefaultRouterConfig(),
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             15 * time.Minute,
			CleanupInterval: 30 * time.Minute,
		},
		Output: OutputConfig{
			Verbose: false,
			Format:  "json",
		},
		LLM: LLMConfig{
			Provider:          "",
			Model:             "gpt-4o-mini",
			Timeout:           30,
			MaxTokens:         1000,
			RequestsPerSecond: 1,
			Burst:             2,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultRouterConfig returns the fixed business-rule tables. The fraud
// keyword set is a subset of the investigation set; scan order follows the
// investigation slice.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		FastTrackThreshold: 25000,
		FraudKeywords: []string{
			"fraud", "inconsistent", "staged", "suspicious", "fabricated",
		},
		InvestigationKeywords: []string{
			"fraud", "inconsistent", "staged", "suspicious", "fabricated",
			"collision", "hit and run",
		},
	}
}

// InitLogger builds the global zap logger from the log configuration
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	zap.ReplaceGlobals(logger)

	return nil
}
