package adapter

import (
	"context"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// NewPostgresSource 创建 PostgreSQL 数据源（pgx 驱动）
func NewPostgresSource(ctx context.Context, dsn, table, query string) (*SQLSource, error) {
	return openSQL(ctx, "pgx", dsn, table, query, quoteDouble)
}
