package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/westside-labs/rentscout/internal/model"
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig          `yaml:"store" mapstructure:"store"`
	Serper   SerperConfig         `yaml:"serper" mapstructure:"serper"`
	Fetch    FetchConfig          `yaml:"fetch" mapstructure:"fetch"`
	Search   SearchConfig         `yaml:"search" mapstructure:"search"`
	Criteria model.SearchCriteria `yaml:"criteria" mapstructure:"criteria"`
	Log      LogConfig            `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// SerperConfig holds Serper.dev search API settings.
type SerperConfig struct {
	Key        string `yaml:"key" mapstructure:"key"`
	BaseURL    string `yaml:"base_url" mapstructure:"base_url"`
	MaxResults int    `yaml:"max_results" mapstructure:"max_results"`
}

// FetchConfig configures the listing content fetcher.
type FetchConfig struct {
	TimeoutSecs    int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries     int     `yaml:"max_retries" mapstructure:"max_retries"`
	RequestsPerSec float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
	MaxBodyBytes   int64   `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	UserAgent      string  `yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchConfig configures pipeline orchestration behavior.
type SearchConfig struct {
	Concurrency    int     `yaml:"concurrency" mapstructure:"concurrency"`
	QueryDelaySecs float64 `yaml:"query_delay_secs" mapstructure:"query_delay_secs"`
	MinScore       float64 `yaml:"min_score" mapstructure:"min_score"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from config.yaml and RENTSCOUT_ environment
// variables, falling back to the stock West-LA criteria.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("RENTSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "rentscout.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("serper.key", "")
	v.SetDefault("serper.base_url", "https://google.serper.dev")
	v.SetDefault("serper.max_results", 10)
	v.SetDefault("fetch.timeout_secs", 15)
	v.SetDefault("fetch.max_retries", 2)
	v.SetDefault("fetch.requests_per_sec", 2.0)
	v.SetDefault("fetch.max_body_bytes", 512*1024)
	v.SetDefault("fetch.user_agent", "Mozilla/5.0 (compatible; rentscout/1.0)")
	v.SetDefault("search.concurrency", 2)
	v.SetDefault("search.query_delay_secs", 0.5)
	v.SetDefault("search.min_score", 0.0)

	def := model.DefaultCriteria()
	v.SetDefault("criteria.min_rent", def.MinRent)
	v.SetDefault("criteria.max_rent", def.MaxRent)
	v.SetDefault("criteria.bedrooms", def.Bedrooms)
	v.SetDefault("criteria.min_bathrooms", def.MinBathrooms)
	v.SetDefault("criteria.max_bathrooms", def.MaxBathrooms)
	v.SetDefault("criteria.required_amenities", def.RequiredAmenities)
	v.SetDefault("criteria.preferred_features", def.PreferredFeatures)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	// Target areas are structured defaults viper cannot express cleanly;
	// fill them in only when the file provides none.
	if len(cfg.Criteria.TargetAreas) == 0 {
		cfg.Criteria.TargetAreas = def.TargetAreas
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
