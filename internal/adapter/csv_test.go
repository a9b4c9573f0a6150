package adapter

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang/snappy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraud-dictionary/internal/config"
	"fraud-dictionary/internal/dataset"
)

const sampleCSV = "profile_id,txn_amt_wk1,account_status,date_tagged,is_active\n" +
	"1,10.5,ACTIVE,2024-01-01,true\n" +
	"2,,RESTRICTED,2024-02-01 10:00:00,FALSE\n" +
	"3,7,NA,,true\n"

func assertSample(t *testing.T, ds *dataset.Dataset) {
	t.Helper()
	require.Equal(t, 3, ds.Len())
	assert.Equal(t, []dataset.ColumnDescriptor{
		{Name: "profile_id", Type: dataset.Integer},
		{Name: "txn_amt_wk1", Type: dataset.Float},
		{Name: "account_status", Type: dataset.Text},
		{Name: "date_tagged", Type: dataset.Datetime},
		{Name: "is_active", Type: dataset.Other},
	}, ds.Schema())

	ids, _ := ds.Column("profile_id")
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, ids.Values)

	amounts, _ := ds.Column("txn_amt_wk1")
	assert.Equal(t, []any{10.5, nil, 7.0}, amounts.Values)

	status, _ := ds.Column("account_status")
	assert.Equal(t, []any{"ACTIVE", "RESTRICTED", nil}, status.Values)

	dates, _ := ds.Column("date_tagged")
	assert.Equal(t, time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC), dates.Values[1])
	assert.Nil(t, dates.Values[2])

	flags, _ := ds.Column("is_active")
	assert.Equal(t, []any{true, false, true}, flags.Values)
}

func TestReadCSV(t *testing.T) {
	ds, err := ReadCSV(context.Background(), strings.NewReader(sampleCSV), ',')
	require.NoError(t, err)
	assertSample(t, ds)
}

func TestReadCSVEdgeCases(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := ReadCSV(context.Background(), strings.NewReader(""), ',')
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("header only", func(t *testing.T) {
		ds, err := ReadCSV(context.Background(), strings.NewReader("a,b\n"), ',')
		require.NoError(t, err)
		assert.Equal(t, 0, ds.Len())
		assert.Equal(t, []string{"a", "b"}, ds.Names())
	})

	t.Run("short rows padded with nulls", func(t *testing.T) {
		ds, err := ReadCSV(context.Background(), strings.NewReader("a,b\n1,x\n2\n"), ',')
		require.NoError(t, err)
		b, _ := ds.Column("b")
		assert.Equal(t, []any{"x", nil}, b.Values)
	})

	t.Run("custom delimiter", func(t *testing.T) {
		ds, err := ReadCSV(context.Background(), strings.NewReader("a;b\n1;2.5\n"), ';')
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, ds.Names())
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := ReadCSV(ctx, strings.NewReader(sampleCSV), ',')
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestInferType(t *testing.T) {
	tests := []struct {
		name     string
		cells    []string
		expected dataset.DeclaredType
	}{
		{"integers", []string{"1", "-2", " 3"}, dataset.Integer},
		{"floats", []string{"1", "2.5"}, dataset.Float},
		{"booleans", []string{"true", "FALSE"}, dataset.Other},
		{"dates", []string{"2024-01-01", "2024-01-02T10:00:00"}, dataset.Datetime},
		{"mixed", []string{"a", "1"}, dataset.Text},
		{"all null", []string{"", "NA", "null"}, dataset.Float},
		{"no rows", nil, dataset.Float},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InferType(tt.cells))
		})
	}
}

func TestCSVSourceLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("plain", func(t *testing.T) {
		path := filepath.Join(dir, "accounts.csv")
		require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))

		src := NewCSVSource(path, ',')
		defer src.Close()
		ds, err := src.Load(context.Background())
		require.NoError(t, err)
		assertSample(t, ds)
	})

	t.Run("snappy", func(t *testing.T) {
		path := filepath.Join(dir, "accounts.csv.sz")
		f, err := os.Create(path)
		require.NoError(t, err)
		w := snappy.NewBufferedWriter(f)
		_, err = w.Write([]byte(sampleCSV))
		require.NoError(t, err)
		require.NoError(t, w.Close())
		require.NoError(t, f.Close())

		ds, err := NewCSVSource(path, ',').Load(context.Background())
		require.NoError(t, err)
		assertSample(t, ds)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewCSVSource(filepath.Join(dir, "nope.csv"), ',').Load(context.Background())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestOpen(t *testing.T) {
	src, err := Open(context.Background(), config.SourceConfig{Type: "CSV", Path: "x.csv", Delimiter: "|"})
	require.NoError(t, err)
	csvSrc, ok := src.(*CSVSource)
	require.True(t, ok)
	assert.Equal(t, "x.csv", csvSrc.Path())
	assert.Equal(t, '|', csvSrc.delimiter)

	_, err = Open(context.Background(), config.SourceConfig{Type: "oracle"})
	assert.ErrorIs(t, err, ErrUnsupportedSource)
}
