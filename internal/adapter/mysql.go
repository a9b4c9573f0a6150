package adapter

import (
	"context"
	"strings"

	_ "github.com/go-sql-driver/mysql"
)

// NewMySQLSource 创建 MySQL 数据源
// 建议在 DSN 中加上 parseTime=true，否则时间列以字符串返回后再解析
func NewMySQLSource(ctx context.Context, dsn, table, query string) (*SQLSource, error) {
	return openSQL(ctx, "mysql", dsn, table, query, quoteBacktick)
}

func quoteBacktick(ident string) string {
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}
