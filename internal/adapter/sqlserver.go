package adapter

import (
	"context"
	"strings"

	_ "github.com/denisenkom/go-mssqldb"
)

// NewSQLServerSource 创建 SQL Server 数据源
func NewSQLServerSource(ctx context.Context, dsn, table, query string) (*SQLSource, error) {
	return openSQL(ctx, "sqlserver", dsn, table, query, quoteBracket)
}

func quoteBracket(ident string) string {
	return "[" + strings.ReplaceAll(ident, "]", "]]") + "]"
}
