package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fraud-dictionary/internal/config"
	"fraud-dictionary/internal/dataset"
)

var (
	// ErrUnsupportedSource 不支持的数据源类型
	ErrUnsupportedSource = errors.New("unsupported source type")
	// ErrEmptyInput 输入没有表头
	ErrEmptyInput = errors.New("empty input")
)

// Source 数据源接口
type Source interface {
	// Load 读取完整数据集
	Load(ctx context.Context) (*dataset.Dataset, error)

	// Close 关闭连接
	Close() error
}

// Open 根据配置创建数据源
func Open(ctx context.Context, cfg config.SourceConfig) (Source, error) {
	switch strings.ToLower(cfg.Type) {
	case "csv":
		delim := ','
		if r := []rune(cfg.Delimiter); len(r) == 1 {
			delim = r[0]
		}
		return NewCSVSource(cfg.Path, delim), nil
	case "mysql":
		return NewMySQLSource(ctx, cfg.DSN, cfg.Table, cfg.Query)
	case "sqlserver":
		return NewSQLServerSource(ctx, cfg.DSN, cfg.Table, cfg.Query)
	case "postgres":
		return NewPostgresSource(ctx, cfg.DSN, cfg.Table, cfg.Query)
	case "sqlite":
		return NewSQLiteSource(ctx, cfg.DSN, cfg.Table, cfg.Query)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedSource, cfg.Type)
}
