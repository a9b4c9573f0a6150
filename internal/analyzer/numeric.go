package analyzer

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"fraud-dictionary/internal/dataset"
)

// ComputeNumeric 计算数值特征元数据
// 数据集中不存在的列直接跳过
func ComputeNumeric(ds *dataset.Dataset, names []string, d *Describer) []NumericRecord {
	records := make([]NumericRecord, 0, len(names))
	for _, name := range names {
		col, ok := ds.Column(name)
		if !ok {
			continue
		}
		records = append(records, NumericRecord{
			FeatureInfo: featureInfo(col, d),
			Summary:     summarize(numericValues(col)),
		})
	}
	return records
}

// numericValues 提取可转换为数字的非空值
func numericValues(col *dataset.Column) []float64 {
	values := make([]float64, 0, len(col.Values))
	for _, v := range col.Values {
		if f, ok := toFloat(v); ok {
			values = append(values, f)
		}
	}
	return values
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		if math.IsNaN(x) {
			return 0, false
		}
		return x, true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func summarize(values []float64) *NumericSummary {
	if len(values) == 0 {
		return nil
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	if len(sorted) < 2 {
		std = math.NaN()
	}
	return &NumericSummary{
		Count: float64(len(sorted)),
		Mean:  mean,
		Std:   std,
		Min:   floats.Min(sorted),
		P25:   quantile(sorted, 0.25),
		P50:   quantile(sorted, 0.50),
		P75:   quantile(sorted, 0.75),
		Max:   floats.Max(sorted),
	}
}

// quantile 对已排序数据按相邻秩线性插值
func quantile(sorted []float64, p float64) float64 {
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
