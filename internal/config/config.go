package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Sectors   SectorsConfig   `yaml:"sectors" mapstructure:"sectors"`
	Scenarios ScenariosConfig `yaml:"scenarios" mapstructure:"scenarios"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the lead store backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// SectorsConfig points at an external multiple table; empty path uses
// the built-in table.
type SectorsConfig struct {
	TablePath string `yaml:"table_path" mapstructure:"table_path"`
}

// ScenariosConfig tunes the built-in scenario multipliers.
type ScenariosConfig struct {
	ConservativeMultiplier float64 `yaml:"conservative_multiplier" mapstructure:"conservative_multiplier"`
	OptimisticMultiplier   float64 `yaml:"optimistic_multiplier" mapstructure:"optimistic_multiplier"`
}

// ServerConfig configures the JSON API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	RequestsPerSec float64  `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
	Burst          int      `yaml:"burst" mapstructure:"burst"`
}

// RateLimitConfig bounds repeated intake submissions per tax ID.
type RateLimitConfig struct {
	MaxAttempts int           `yaml:"max_attempts" mapstructure:"max_attempts"`
	Window      time.Duration `yaml:"window" mapstructure:"window"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("VALUATION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "leads.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.requests_per_sec", 20)
	v.SetDefault("server.burst", 40)
	v.SetDefault("rate_limit.max_attempts", 5)
	v.SetDefault("rate_limit.window", time.Hour)
	v.SetDefault("scenarios.conservative_multiplier", 0.85)
	v.SetDefault("scenarios.optimistic_multiplier", 1.2)

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
