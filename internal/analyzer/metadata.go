package analyzer

import (
	"fraud-dictionary/internal/dataset"
)

// TopValuesLimit 分类特征保留的高频值数量
const TopValuesLimit = 10

// FeatureInfo 各角色共有的元数据
type FeatureInfo struct {
	FeatureName string `json:"feature_name"`
	DataType    string `json:"data_type"`
	Description string `json:"description"`
	NullCount   int    `json:"null_count"`
	UniqueCount int    `json:"unique_count"`
}

// NumericSummary 数值分布摘要
// Std 在非空值少于两个时为 NaN
type NumericSummary struct {
	Count float64
	Mean  float64
	Std   float64
	Min   float64
	P25   float64
	P50   float64
	P75   float64
	Max   float64
}

// NumericRecord 数值特征元数据，Summary 为 nil 表示无法计算
type NumericRecord struct {
	FeatureInfo
	Summary *NumericSummary
}

// ValueCount 值计数
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ValueRange 可排序分类特征的取值范围
// DateRangeDays 与 ValueRange 二选一
type ValueRange struct {
	MinValue      string
	MaxValue      string
	DateRangeDays *int
	ValueRange    *float64
}

// CategoricalRecord 分类特征元数据
type CategoricalRecord struct {
	FeatureInfo
	TopValues            []ValueCount
	OtherCategoriesCount int
	Range                *ValueRange
}

// IsFreeText 是否为文本型（高频值）记录
func (r CategoricalRecord) IsFreeText() bool {
	return r.Range == nil && r.TopValues != nil
}

// IdentifierRecord 标识符特征元数据
type IdentifierRecord struct {
	FeatureInfo
	TotalCount      int
	UniquenessRatio float64
	DuplicateCount  int
	IsPrimaryKey    bool
}

func featureInfo(col *dataset.Column, d *Describer) FeatureInfo {
	return FeatureInfo{
		FeatureName: col.Name,
		DataType:    col.Type.String(),
		Description: d.Describe(col.Name, col.Type),
		NullCount:   col.NullCount(),
		UniqueCount: col.UniqueCount(),
	}
}
