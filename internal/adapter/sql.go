package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"fraud-dictionary/internal/dataset"
)

// SQLSource 基于 database/sql 的通用数据源
type SQLSource struct {
	db    *sql.DB
	table string
	query string
	quote func(ident string) string
}

func openSQL(ctx context.Context, driver, dsn, table, query string, quote func(string) string) (*SQLSource, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLSource{db: db, table: table, query: query, quote: quote}, nil
}

// Query 实际执行的查询
func (s *SQLSource) Query() string {
	if s.query != "" {
		return s.query
	}
	parts := strings.Split(s.table, ".")
	for i, p := range parts {
		parts[i] = s.quote(p)
	}
	return "SELECT * FROM " + strings.Join(parts, ".")
}

// Load 读取查询结果
func (s *SQLSource) Load(ctx context.Context) (*dataset.Dataset, error) {
	rows, err := s.db.QueryContext(ctx, s.Query())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRows(rows)
}

// Close 关闭连接
func (s *SQLSource) Close() error {
	return s.db.Close()
}

func scanRows(rows *sql.Rows) (*dataset.Dataset, error) {
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	columns := make([]*dataset.Column, len(types))
	for i, ct := range types {
		columns[i] = &dataset.Column{
			ColumnDescriptor: dataset.ColumnDescriptor{
				Name: ct.Name(),
				Type: MapSQLType(ct.DatabaseTypeName()),
			},
		}
	}

	raw := make([]any, len(types))
	dest := make([]any, len(types))
	for i := range raw {
		dest[i] = &raw[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		for i, v := range raw {
			columns[i].Values = append(columns[i].Values, normalizeSQLValue(v, columns[i].Type))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return dataset.New(columns...)
}

var (
	integerSQLTypes = map[string]bool{
		"INT": true, "INTEGER": true, "BIGINT": true, "SMALLINT": true, "TINYINT": true,
		"MEDIUMINT": true, "INT2": true, "INT4": true, "INT8": true, "SERIAL": true, "BIGSERIAL": true,
	}
	floatSQLTypes = map[string]bool{
		"FLOAT": true, "FLOAT4": true, "FLOAT8": true, "DOUBLE": true, "REAL": true,
		"DECIMAL": true, "NUMERIC": true, "MONEY": true, "SMALLMONEY": true,
	}
	textSQLTypes = map[string]bool{
		"VARCHAR": true, "NVARCHAR": true, "CHAR": true, "NCHAR": true, "TEXT": true, "NTEXT": true,
		"BPCHAR": true, "TINYTEXT": true, "MEDIUMTEXT": true, "LONGTEXT": true, "CITEXT": true,
		"UUID": true, "UNIQUEIDENTIFIER": true, "JSON": true, "JSONB": true, "ENUM": true, "CLOB": true,
	}
	datetimeSQLTypes = map[string]bool{
		"DATE": true, "DATETIME": true, "DATETIME2": true, "SMALLDATETIME": true,
		"DATETIMEOFFSET": true, "TIMESTAMP": true, "TIMESTAMPTZ": true,
	}
)

// MapSQLType 把数据库类型名映射为声明类型
func MapSQLType(name string) dataset.DeclaredType {
	t := strings.ToUpper(strings.TrimSpace(name))
	if i := strings.Index(t, "("); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	t = strings.TrimPrefix(t, "UNSIGNED ")

	switch {
	case integerSQLTypes[t]:
		return dataset.Integer
	case floatSQLTypes[t]:
		return dataset.Float
	case textSQLTypes[t]:
		return dataset.Text
	case datetimeSQLTypes[t]:
		return dataset.Datetime
	}
	return dataset.Other
}

// normalizeSQLValue 把驱动返回的值转换为数据集单元格
func normalizeSQLValue(v any, t dataset.DeclaredType) any {
	if v == nil {
		return nil
	}
	if b, ok := v.([]byte); ok {
		v = string(b)
	}

	switch x := v.(type) {
	case int64, float64, bool, time.Time:
		return x
	case int32:
		return int64(x)
	case int:
		return int64(x)
	case uint64:
		if x > math.MaxInt64 {
			return float64(x)
		}
		return int64(x)
	case float32:
		return float64(x)
	case string:
		return parseSQLString(x, t)
	}
	return fmt.Sprint(v)
}

func parseSQLString(s string, t dataset.DeclaredType) any {
	switch t {
	case dataset.Integer:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	case dataset.Float:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	case dataset.Datetime:
		if tm, ok := parseTime(s); ok {
			return tm
		}
	}
	return s
}
