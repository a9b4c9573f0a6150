package analyzer

import (
	"fraud-dictionary/internal/dataset"
)

// ComputeIdentifier 计算标识符特征元数据
func ComputeIdentifier(ds *dataset.Dataset, names []string, d *Describer) []IdentifierRecord {
	records := make([]IdentifierRecord, 0, len(names))
	total := ds.Len()
	for _, name := range names {
		col, ok := ds.Column(name)
		if !ok {
			continue
		}
		info := featureInfo(col, d)

		ratio := 0.0
		if total > 0 {
			ratio = float64(info.UniqueCount) / float64(total)
		}
		dup := duplicateCount(col)

		records = append(records, IdentifierRecord{
			FeatureInfo:     info,
			TotalCount:      total,
			UniquenessRatio: ratio,
			DuplicateCount:  dup,
			IsPrimaryKey:    dup == 0 && info.NullCount == 0,
		})
	}
	return records
}

// duplicateCount 非首次出现的行数（空值也参与判重）
func duplicateCount(col *dataset.Column) int {
	seen := make(map[any]struct{}, len(col.Values))
	nullSeen := false
	dup := 0
	for _, v := range col.Values {
		if v == nil {
			if nullSeen {
				dup++
			}
			nullSeen = true
			continue
		}
		k := dataset.Key(v)
		if _, ok := seen[k]; ok {
			dup++
			continue
		}
		seen[k] = struct{}{}
	}
	return dup
}
