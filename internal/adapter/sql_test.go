package adapter

import (
	"context"
	"database/sql"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraud-dictionary/internal/dataset"
)

func TestMapSQLType(t *testing.T) {
	tests := map[string]dataset.DeclaredType{
		"INT":              dataset.Integer,
		"bigint":           dataset.Integer,
		"UNSIGNED INT":     dataset.Integer,
		"INT4":             dataset.Integer,
		"DECIMAL(10,2)":    dataset.Float,
		"float8":           dataset.Float,
		"MONEY":            dataset.Float,
		"VARCHAR(255)":     dataset.Text,
		"NVARCHAR":         dataset.Text,
		"UNIQUEIDENTIFIER": dataset.Text,
		"DATETIME2":        dataset.Datetime,
		"timestamptz":      dataset.Datetime,
		"BIT":              dataset.Other,
		"":                 dataset.Other,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, MapSQLType(in))
		})
	}
}

func TestNormalizeSQLValue(t *testing.T) {
	ts := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		typ  dataset.DeclaredType
		want any
	}{
		{"null", nil, dataset.Integer, nil},
		{"bytes as integer", []byte("12"), dataset.Integer, int64(12)},
		{"decimal bytes", []byte("3.50"), dataset.Float, 3.5},
		{"text bytes", []byte("abc"), dataset.Text, "abc"},
		{"datetime string", "2024-01-01 10:00:00", dataset.Datetime, ts},
		{"native time", ts, dataset.Datetime, ts},
		{"int32", int32(7), dataset.Integer, int64(7)},
		{"float32", float32(1.5), dataset.Float, 1.5},
		{"unparseable integer", "n/a", dataset.Integer, "n/a"},
		{"small uint64", uint64(42), dataset.Integer, int64(42)},
		{"uint64 above int64 range", uint64(math.MaxUint64), dataset.Integer, float64(math.MaxUint64)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeSQLValue(tt.in, tt.typ))
		})
	}
}

func TestQueryQuoting(t *testing.T) {
	s := &SQLSource{table: "dbo.accounts", quote: quoteBracket}
	assert.Equal(t, "SELECT * FROM [dbo].[accounts]", s.Query())

	s = &SQLSource{table: "fraud.accounts", quote: quoteBacktick}
	assert.Equal(t, "SELECT * FROM `fraud`.`accounts`", s.Query())

	s = &SQLSource{table: `we"ird`, quote: quoteDouble}
	assert.Equal(t, `SELECT * FROM "we""ird"`, s.Query())

	s = &SQLSource{table: "ignored", query: "SELECT 1", quote: quoteDouble}
	assert.Equal(t, "SELECT 1", s.Query())
}

func seedSQLite(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fraud.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE accounts (
		profile_id INTEGER,
		txn_amt_wk1 REAL,
		account_status TEXT,
		date_tagged DATETIME
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO accounts VALUES
		(1, 10.5, 'ACTIVE', '2024-01-01 10:00:00'),
		(2, NULL, 'RESTRICTED', NULL),
		(3, 7.25, 'ACTIVE', '2024-03-05 08:30:00')`)
	require.NoError(t, err)
	return path
}

func TestSQLiteSource(t *testing.T) {
	path := seedSQLite(t)
	ctx := context.Background()

	t.Run("table", func(t *testing.T) {
		src, err := NewSQLiteSource(ctx, path, "accounts", "")
		require.NoError(t, err)
		defer src.Close()

		ds, err := src.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, 3, ds.Len())
		assert.Equal(t, []dataset.ColumnDescriptor{
			{Name: "profile_id", Type: dataset.Integer},
			{Name: "txn_amt_wk1", Type: dataset.Float},
			{Name: "account_status", Type: dataset.Text},
			{Name: "date_tagged", Type: dataset.Datetime},
		}, ds.Schema())

		ids, _ := ds.Column("profile_id")
		assert.Equal(t, []any{int64(1), int64(2), int64(3)}, ids.Values)

		amounts, _ := ds.Column("txn_amt_wk1")
		assert.Equal(t, []any{10.5, nil, 7.25}, amounts.Values)

		dates, _ := ds.Column("date_tagged")
		first, ok := dates.Values[0].(time.Time)
		require.True(t, ok)
		assert.Equal(t, 2024, first.Year())
		assert.Equal(t, time.January, first.Month())
		assert.Nil(t, dates.Values[1])
	})

	t.Run("query", func(t *testing.T) {
		src, err := NewSQLiteSource(ctx, path, "", "SELECT profile_id, account_status FROM accounts WHERE account_status = 'ACTIVE'")
		require.NoError(t, err)
		defer src.Close()

		ds, err := src.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, ds.Len())
		assert.Equal(t, []string{"profile_id", "account_status"}, ds.Names())
	})

	t.Run("missing table", func(t *testing.T) {
		src, err := NewSQLiteSource(ctx, path, "nope", "")
		require.NoError(t, err)
		defer src.Close()

		_, err = src.Load(ctx)
		assert.Error(t, err)
	})
}
