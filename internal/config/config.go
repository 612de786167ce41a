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
	Source  SourceConfig  `yaml:"source" mapstructure:"source"`
	Rules   RulesConfig   `yaml:"rules" mapstructure:"rules"`
	Scan    ScanConfig    `yaml:"scan" mapstructure:"scan"`
	Report  ReportConfig  `yaml:"report" mapstructure:"report"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// SourceConfig selects where location records are read from.
type SourceConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // postgres, sqlite, csv, xlsx
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	Path        string `yaml:"path" mapstructure:"path"`             // csv/xlsx input file
	KeepOrder   bool   `yaml:"keep_order" mapstructure:"keep_order"` // skip name sort for file sources
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
}

// RulesConfig points at an optional catalog override file.
type RulesConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ScanConfig configures the batch runner.
type ScanConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// ReportConfig configures the report sink.
type ReportConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // text, csv, json, xlsx
	Output string `yaml:"output" mapstructure:"output"` // "-" for stdout
}

// MetricsConfig configures the Prometheus textfile written after a scan.
type MetricsConfig struct {
	Textfile string `yaml:"textfile" mapstructure:"textfile"`
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
	v.SetEnvPrefix("SCREEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The web app's DATABASE_URL works without the prefix.
	if err := v.BindEnv("source.database_url", "SCREEN_SOURCE_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, eris.Wrap(err, "config: bind database url")
	}

	// Defaults
	v.SetDefault("source.driver", "postgres")
	v.SetDefault("source.path", "")
	v.SetDefault("source.keep_order", false)
	v.SetDefault("source.max_conns", 4)
	v.SetDefault("rules.path", "")
	v.SetDefault("scan.concurrency", 8)
	v.SetDefault("report.format", "text")
	v.SetDefault("report.output", "unsuitable_locations_report.txt")
	v.SetDefault("metrics.textfile", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

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

// Validate checks that the fields a command needs are present.
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "scan":
		switch c.Source.Driver {
		case "postgres", "sqlite":
			if c.Source.DatabaseURL == "" {
				errs = append(errs, "source.database_url is required (SCREEN_SOURCE_DATABASE_URL or DATABASE_URL)")
			}
		case "csv", "xlsx":
			if c.Source.Path == "" {
				errs = append(errs, "source.path is required (SCREEN_SOURCE_PATH)")
			}
		default:
			return eris.Errorf("config: unsupported source driver %q", c.Source.Driver)
		}
		if c.Report.Output == "" {
			errs = append(errs, "report.output is required (SCREEN_REPORT_OUTPUT)")
		}
		if c.Scan.Concurrency < 1 {
			errs = append(errs, "scan.concurrency must be >= 1")
		}
	case "classify", "rules":
	default:
		return eris.Errorf("config: unknown validation mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.Errorf("config: invalid for %s: %s", mode, strings.Join(errs, "; "))
	}
	return nil
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
