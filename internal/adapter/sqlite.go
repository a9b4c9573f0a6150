package adapter

import (
	"context"
	"strings"

	_ "modernc.org/sqlite"
)

// NewSQLiteSource 创建 SQLite 数据源，dsn 为数据库文件路径
func NewSQLiteSource(ctx context.Context, dsn, table, query string) (*SQLSource, error) {
	return openSQL(ctx, "sqlite", dsn, table, query, quoteDouble)
}

func quoteDouble(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
