// Package config loads and validates the service configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/quantive/confluence/internal/core"
)

type Config struct {
	Server     ServerConfig               `mapstructure:"server"`
	Storage    StorageConfig              `mapstructure:"storage"`
	Collectors map[string]CollectorConfig `mapstructure:"collectors"`
	Watchlist  []WatchlistItem            `mapstructure:"watchlist"`
	Engine     EngineConfig               `mapstructure:"engine"`
	News       NewsConfig                 `mapstructure:"news"`
	LLM        LLMConfig                  `mapstructure:"llm"`
	Report     ReportConfig               `mapstructure:"report"`
	Metrics    MetricsConfig              `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	Mode   string `mapstructure:"mode"`
	APIKey string `mapstructure:"api_key"`
}

type StorageConfig struct {
	Archive ArchiveConfig `mapstructure:"archive"`
}

// ArchiveConfig selects where analysis snapshots are written.
type ArchiveConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Type    string   `mapstructure:"type"` // "localfs" or "s3"
	Path    string   `mapstructure:"path"` // For localfs
	S3      S3Config `mapstructure:"s3"`   // For S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

type CollectorConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"api_key"`
}

type WatchlistItem struct {
	Symbol string `mapstructure:"symbol"`
	Name   string `mapstructure:"name"`
}

// EngineConfig bounds a single analysis run.
type EngineConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// NewsConfig controls the news provider. Symbols carries per-symbol
// sentiment fed in through config for deployments without a news API;
// when empty, no news provider is installed.
type NewsConfig struct {
	CacheTTL time.Duration              `mapstructure:"cache_ttl"`
	Symbols  map[string]NewsEntryConfig `mapstructure:"symbols"`
}

// NewsEntryConfig is one symbol's configured news sentiment.
type NewsEntryConfig struct {
	Sentiment string   `mapstructure:"sentiment"`
	Score     float64  `mapstructure:"score"`
	Headlines []string `mapstructure:"headlines"`
}

type LLMConfig struct {
	Provider string       `mapstructure:"provider"`
	Claude   ClaudeConfig `mapstructure:"claude"`
	OpenAI   OpenAIConfig `mapstructure:"openai"`
	Ollama   OllamaConfig `mapstructure:"ollama"`
}

type ClaudeConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OllamaConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Model    string `mapstructure:"model"`
}

// ReportConfig controls the narrative report generator.
type ReportConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file. Values of the form ${NAME} are
// replaced with the corresponding environment variable.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Defaults returns a config with sensible defaults.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Mode: "release",
		},
		Storage: StorageConfig{
			Archive: ArchiveConfig{
				Enabled: false,
				Type:    "localfs",
				Path:    "data/archive",
			},
		},
		Engine: EngineConfig{
			Timeout: 30 * time.Second,
		},
		News: NewsConfig{
			CacheTTL: 15 * time.Minute,
		},
		Report: ReportConfig{
			Enabled:     false,
			MaxTokens:   1024,
			Temperature: 0.3,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	if c.Engine.Timeout < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("engine timeout cannot be negative, got %s", c.Engine.Timeout))
	}

	for symbol, entry := range c.News.Symbols {
		switch entry.Sentiment {
		case "bullish", "bearish", "neutral":
		default:
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("unknown news sentiment %q for %s", entry.Sentiment, symbol))
		}
		if entry.Score < 0 || entry.Score > 100 {
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("news score for %s must be 0-100, got %g", symbol, entry.Score))
		}
	}

	if c.Storage.Archive.Enabled {
		switch c.Storage.Archive.Type {
		case "localfs":
			if c.Storage.Archive.Path == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("archive path required for localfs"))
			}
		case "s3":
			if c.Storage.Archive.S3.Bucket == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("s3 bucket required for s3 archive"))
			}
		default:
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("unknown archive type: %s", c.Storage.Archive.Type))
		}
	}

	if c.LLM.Provider != "" {
		switch c.LLM.Provider {
		case "claude":
			if c.LLM.Claude.APIKey == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("claude api_key required when provider is claude"))
			}
		case "openai":
			if c.LLM.OpenAI.APIKey == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("openai api_key required when provider is openai"))
			}
		case "ollama":
			if c.LLM.Ollama.Endpoint == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("ollama endpoint required when provider is ollama"))
			}
		default:
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("unknown LLM provider: %s", c.LLM.Provider))
		}
	}

	if c.Report.Enabled && c.LLM.Provider == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("report requires an llm provider"))
	}

	return nil
}
