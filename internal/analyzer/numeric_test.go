package analyzer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraud-dictionary/internal/dataset"
)

func newDataset(t *testing.T, cols ...*dataset.Column) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(cols...)
	require.NoError(t, err)
	return ds
}

func column(name string, typ dataset.DeclaredType, values ...any) *dataset.Column {
	return &dataset.Column{ColumnDescriptor: dataset.ColumnDescriptor{Name: name, Type: typ}, Values: values}
}

func TestComputeNumeric(t *testing.T) {
	ds := newDataset(t,
		column("txn_count_30d", dataset.Integer, int64(3), int64(1), int64(5), int64(2), int64(4)),
		column("txn_amt_week1", dataset.Float, nil, 10.0, nil, 20.0, nil),
	)

	records := ComputeNumeric(ds, []string{"txn_count_30d", "txn_amt_week1"}, NewDescriber())
	require.Len(t, records, 2)

	counts := records[0]
	assert.Equal(t, "txn_count_30d", counts.FeatureName)
	assert.Equal(t, "integer", counts.DataType)
	assert.Equal(t, 0, counts.NullCount)
	assert.Equal(t, 5, counts.UniqueCount)
	require.NotNil(t, counts.Summary)
	s := counts.Summary
	assert.Equal(t, 5.0, s.Count)
	assert.InDelta(t, 3.0, s.Mean, 1e-9)
	assert.InDelta(t, math.Sqrt(2.5), s.Std, 1e-9)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 2.0, s.P25)
	assert.Equal(t, 3.0, s.P50)
	assert.Equal(t, 4.0, s.P75)
	assert.Equal(t, 5.0, s.Max)

	amounts := records[1]
	assert.Equal(t, 3, amounts.NullCount)
	assert.Equal(t, 2, amounts.UniqueCount)
	require.NotNil(t, amounts.Summary)
	assert.Equal(t, 2.0, amounts.Summary.Count)
	assert.InDelta(t, 15.0, amounts.Summary.Mean, 1e-9)
	assert.InDelta(t, math.Sqrt(50), amounts.Summary.Std, 1e-9)
	assert.InDelta(t, 12.5, amounts.Summary.P25, 1e-9)
	assert.InDelta(t, 15.0, amounts.Summary.P50, 1e-9)
	assert.InDelta(t, 17.5, amounts.Summary.P75, 1e-9)
}

func TestComputeNumericWithoutValues(t *testing.T) {
	ds := newDataset(t,
		column("empty_metric", dataset.Float, nil, nil),
		column("account_age", dataset.Text, "new", "old"),
		column("single", dataset.Float, 7.0, nil),
	)

	records := ComputeNumeric(ds, []string{"empty_metric", "account_age", "single", "missing"}, NewDescriber())
	require.Len(t, records, 3)

	assert.Nil(t, records[0].Summary)
	assert.Equal(t, 2, records[0].NullCount)
	assert.Nil(t, records[1].Summary)

	require.NotNil(t, records[2].Summary)
	assert.Equal(t, 1.0, records[2].Summary.Count)
	assert.True(t, math.IsNaN(records[2].Summary.Std))
	assert.Equal(t, 7.0, records[2].Summary.P25)
	assert.Equal(t, 7.0, records[2].Summary.Max)
}

func TestComputeNumericEmptyNames(t *testing.T) {
	ds := newDataset(t, column("a", dataset.Integer, int64(1)))
	records := ComputeNumeric(ds, nil, NewDescriber())
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	assert.InDelta(t, 1.75, quantile(sorted, 0.25), 1e-9)
	assert.InDelta(t, 2.5, quantile(sorted, 0.5), 1e-9)
	assert.InDelta(t, 3.25, quantile(sorted, 0.75), 1e-9)
	assert.Equal(t, 1.0, quantile(sorted, 0))
	assert.Equal(t, 4.0, quantile(sorted, 1))
}
