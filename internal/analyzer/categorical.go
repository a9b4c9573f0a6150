package analyzer

import (
	"sort"
	"time"

	"fraud-dictionary/internal/dataset"
)

// ComputeCategorical 计算分类特征元数据
// 文本列统计高频值，数值/时间列统计取值范围
func ComputeCategorical(ds *dataset.Dataset, names []string, d *Describer) []CategoricalRecord {
	records := make([]CategoricalRecord, 0, len(names))
	for _, name := range names {
		col, ok := ds.Column(name)
		if !ok {
			continue
		}
		rec := CategoricalRecord{FeatureInfo: featureInfo(col, d)}
		switch col.Type {
		case dataset.Integer, dataset.Float, dataset.Datetime:
			rec.Range = valueRange(col)
		default:
			rec.TopValues, rec.OtherCategoriesCount = topValues(col, TopValuesLimit)
		}
		records = append(records, rec)
	}
	return records
}

// topValues 返回出现次数最多的前 limit 个值以及剩余的不同值数量
// 次数相同时按首次出现顺序
func topValues(col *dataset.Column, limit int) ([]ValueCount, int) {
	counts := make(map[any]int)
	var order []any
	display := make(map[any]string)
	for _, v := range col.Values {
		if v == nil {
			continue
		}
		k := dataset.Key(v)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
			display[k] = dataset.FormatValue(v)
		}
		counts[k]++
	}

	all := make([]ValueCount, len(order))
	for i, k := range order {
		all[i] = ValueCount{Value: display[k], Count: counts[k]}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Count > all[j].Count })

	if len(all) > limit {
		return all[:limit], len(all) - limit
	}
	return all, 0
}

// valueRange 计算最小值、最大值及跨度
// 只有最小值和最大值都存在时才计算跨度；全部为空时返回 nil
func valueRange(col *dataset.Column) *ValueRange {
	switch col.Type {
	case dataset.Datetime:
		return timeRange(col)
	case dataset.Integer:
		if rg, ok := intRange(col); ok {
			return rg
		}
	}

	var minV, maxV float64
	found := false
	for _, v := range col.Values {
		f, ok := toFloat(v)
		if !ok {
			continue
		}
		if !found || f < minV {
			minV = f
		}
		if !found || f > maxV {
			maxV = f
		}
		found = true
	}
	if !found {
		return nil
	}
	span := maxV - minV
	return &ValueRange{
		MinValue:   dataset.FormatValue(minV),
		MaxValue:   dataset.FormatValue(maxV),
		ValueRange: &span,
	}
}

// intRange 纯整数列按 int64 计算，避免超过 2^53 的编码失真
// 列中出现非 int64 值时返回 false
func intRange(col *dataset.Column) (*ValueRange, bool) {
	var minV, maxV int64
	found := false
	for _, v := range col.Values {
		if v == nil {
			continue
		}
		n, ok := v.(int64)
		if !ok {
			return nil, false
		}
		if !found || n < minV {
			minV = n
		}
		if !found || n > maxV {
			maxV = n
		}
		found = true
	}
	if !found {
		return nil, true
	}
	span := float64(maxV) - float64(minV)
	return &ValueRange{
		MinValue:   dataset.FormatValue(minV),
		MaxValue:   dataset.FormatValue(maxV),
		ValueRange: &span,
	}, true
}

func timeRange(col *dataset.Column) *ValueRange {
	var minT, maxT time.Time
	found := false
	for _, v := range col.Values {
		t, ok := v.(time.Time)
		if !ok {
			continue
		}
		if !found || t.Before(minT) {
			minT = t
		}
		if !found || t.After(maxT) {
			maxT = t
		}
		found = true
	}
	if !found {
		return nil
	}
	days := daysBetween(minT, maxT)
	return &ValueRange{
		MinValue:      dataset.FormatValue(minT),
		MaxValue:      dataset.FormatValue(maxT),
		DateRangeDays: &days,
	}
}

// daysBetween 只按日期部分计算相差天数
func daysBetween(from, to time.Time) int {
	y1, m1, d1 := from.Date()
	y2, m2, d2 := to.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int((b.Unix() - a.Unix()) / 86400)
}
