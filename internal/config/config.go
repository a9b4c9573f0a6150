package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("invalid configuration")

// Config 程序配置
// 可以来自 YAML 文件，环境变量覆盖 YAML，命令行参数再覆盖两者
// 连接串只能来自环境变量或命令行
type Config struct {
	OutputDir string   `yaml:"output_dir" env:"FRAUDDICT_OUTPUT_DIR" env-default:"./data_dictionaries"`
	LogLevel  string   `yaml:"log_level" env:"FRAUDDICT_LOG_LEVEL" env-default:"info"`
	LogFormat string   `yaml:"log_format" env:"FRAUDDICT_LOG_FORMAT" env-default:"console"`
	Markdown  bool     `yaml:"markdown" env:"FRAUDDICT_MARKDOWN" env-default:"false"`
	Exclude   []string `yaml:"exclude" env:"FRAUDDICT_EXCLUDE" env-separator:","`

	Source SourceConfig `yaml:"source"`
}

// SourceConfig 数据源配置
type SourceConfig struct {
	// Type: csv/mysql/sqlserver/postgres/sqlite
	Type      string `yaml:"type" env:"FRAUDDICT_SOURCE_TYPE" env-default:"csv"`
	DSN       string `yaml:"-" env:"FRAUDDICT_SOURCE_DSN"`
	Table     string `yaml:"table" env:"FRAUDDICT_SOURCE_TABLE"`
	Query     string `yaml:"query" env:"FRAUDDICT_SOURCE_QUERY"`
	Path      string `yaml:"path" env:"FRAUDDICT_SOURCE_PATH"`
	Delimiter string `yaml:"delimiter" env:"FRAUDDICT_SOURCE_DELIMITER" env-default:","`
}

// Load 读取配置；path 为空时只读取环境变量
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return cfg, nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output_dir is required", ErrInvalidConfig)
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("%w: log_format must be json or console, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return c.Source.Validate()
}

// Validate 校验数据源配置
func (s *SourceConfig) Validate() error {
	switch strings.ToLower(s.Type) {
	case "csv":
		if s.Path == "" {
			return fmt.Errorf("%w: csv source requires path", ErrInvalidConfig)
		}
		if len([]rune(s.Delimiter)) != 1 {
			return fmt.Errorf("%w: delimiter must be a single character", ErrInvalidConfig)
		}
	case "mysql", "sqlserver", "postgres", "sqlite":
		if s.DSN == "" {
			return fmt.Errorf("%w: %s source requires a DSN (FRAUDDICT_SOURCE_DSN or --dsn)", ErrInvalidConfig, s.Type)
		}
		if s.Table == "" && s.Query == "" {
			return fmt.Errorf("%w: %s source requires table or query", ErrInvalidConfig, s.Type)
		}
	default:
		return fmt.Errorf("%w: unsupported source type %q", ErrInvalidConfig, s.Type)
	}
	return nil
}
