// Package config loads application configuration from config.yaml and
// ADSCOUT_* environment variables and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Directory DirectoryConfig `yaml:"directory" mapstructure:"directory"`
	Targeting TargetingConfig `yaml:"targeting" mapstructure:"targeting"`
	Suggest   SuggestConfig   `yaml:"suggest" mapstructure:"suggest"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// DirectoryConfig selects where the reference directories are loaded from.
// Driver is "fixture" (JSON files) or "postgres" (single bulk read at start).
type DirectoryConfig struct {
	Driver        string `yaml:"driver" mapstructure:"driver"`
	LocationsPath string `yaml:"locations_path" mapstructure:"locations_path"`
	ChannelsPath  string `yaml:"channels_path" mapstructure:"channels_path"`
	DatabaseURL   string `yaml:"database_url" mapstructure:"database_url"`
}

// TargetingConfig tunes zone resolution and cluster detection.
type TargetingConfig struct {
	DefaultRadiusKM float64       `yaml:"default_radius_km" mapstructure:"default_radius_km"`
	ReachMultiplier int           `yaml:"reach_multiplier" mapstructure:"reach_multiplier"`
	Cluster         ClusterConfig `yaml:"cluster" mapstructure:"cluster"`
}

// ClusterConfig injects the customer-cluster predicate.
type ClusterConfig struct {
	Label     string   `yaml:"label" mapstructure:"label"`
	Interests []string `yaml:"interests" mapstructure:"interests"`
}

// SuggestConfig tunes channel suggestion.
type SuggestConfig struct {
	DefaultTopN int `yaml:"default_top_n" mapstructure:"default_top_n"`
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// ServerConfig configures the serve facade.
type ServerConfig struct {
	Port         int     `yaml:"port" mapstructure:"port"`
	RateLimitRPS float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	RateBurst    int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from config.yaml in the working directory,
// environment variables, and built-in defaults.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ADSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("directory.driver", "fixture")
	v.SetDefault("directory.locations_path", "data/locations.json")
	v.SetDefault("directory.channels_path", "data/channels.json")
	v.SetDefault("targeting.default_radius_km", 5.0)
	v.SetDefault("targeting.reach_multiplier", 1000)
	v.SetDefault("targeting.cluster.label", "High-Income Tech Enthusiasts")
	v.SetDefault("targeting.cluster.interests", []string{"technology", "gadgets"})
	v.SetDefault("suggest.default_top_n", 5)
	v.SetDefault("suggest.concurrency", 0)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit_rps", 20.0)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read config file")
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
