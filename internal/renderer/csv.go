package renderer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"fraud-dictionary/internal/analyzer"
	"fraud-dictionary/internal/dataset"
)

// 导出文件名
const (
	NumericFile     = "numeric_data_dictionary.csv"
	CategoricalFile = "categorical_data_dictionary.csv"
	IdentifierFile  = "identifier_data_dictionary.csv"
)

var (
	commonHeader = []string{"feature_name", "data_type", "description", "null_count", "unique_count"}

	numericHeader = append(append([]string{}, commonHeader...),
		"count", "mean", "std", "min", "25%", "50%", "75%", "max")

	categoricalHeader = append(append([]string{}, commonHeader...),
		"top_values", "other_categories_count", "min_value", "max_value", "date_range_days", "value_range")

	identifierHeader = append(append([]string{}, commonHeader...),
		"total_count", "uniqueness_ratio", "duplicate_count", "is_primary_key")
)

// Exporter 数据字典 CSV 导出器
type Exporter struct{}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export 写出三个数据字典文件（覆盖已有文件），返回输出目录
// 某个文件写入失败时，之前写成功的文件保留
func (e *Exporter) Export(
	numeric []analyzer.NumericRecord,
	categorical []analyzer.CategoricalRecord,
	identifier []analyzer.IdentifierRecord,
	dir string,
) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	files := []struct {
		name string
		rows [][]string
	}{
		{NumericFile, numericRows(numeric)},
		{CategoricalFile, categoricalRows(categorical)},
		{IdentifierFile, identifierRows(identifier)},
	}

	for _, f := range files {
		if err := writeCSV(filepath.Join(dir, f.name), f.rows); err != nil {
			return "", err
		}
	}
	return dir, nil
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}

	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	return nil
}

func commonCells(info analyzer.FeatureInfo) []string {
	return []string{
		info.FeatureName,
		info.DataType,
		info.Description,
		strconv.Itoa(info.NullCount),
		strconv.Itoa(info.UniqueCount),
	}
}

func numericRows(records []analyzer.NumericRecord) [][]string {
	rows := [][]string{numericHeader}
	for _, r := range records {
		row := commonCells(r.FeatureInfo)
		if s := r.Summary; s != nil {
			row = append(row,
				dataset.FormatFloat(s.Count),
				dataset.FormatFloat(s.Mean),
				dataset.FormatFloat(s.Std),
				dataset.FormatFloat(s.Min),
				dataset.FormatFloat(s.P25),
				dataset.FormatFloat(s.P50),
				dataset.FormatFloat(s.P75),
				dataset.FormatFloat(s.Max),
			)
		} else {
			row = append(row, "", "", "", "", "", "", "", "")
		}
		rows = append(rows, row)
	}
	return rows
}

func categoricalRows(records []analyzer.CategoricalRecord) [][]string {
	rows := [][]string{categoricalHeader}
	for _, r := range records {
		row := commonCells(r.FeatureInfo)

		top, other := "", ""
		if r.Range == nil {
			top = encodeTopValues(r.TopValues)
			other = strconv.Itoa(r.OtherCategoriesCount)
		}
		row = append(row, top, other)

		minV, maxV, days, span := "", "", "", ""
		if rg := r.Range; rg != nil {
			minV, maxV = rg.MinValue, rg.MaxValue
			if rg.DateRangeDays != nil {
				days = strconv.Itoa(*rg.DateRangeDays)
			}
			if rg.ValueRange != nil {
				span = dataset.FormatFloat(*rg.ValueRange)
			}
		}
		rows = append(rows, append(row, minV, maxV, days, span))
	}
	return rows
}

func encodeTopValues(values []analyzer.ValueCount) string {
	if values == nil {
		values = []analyzer.ValueCount{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return ""
	}
	return string(b)
}

func identifierRows(records []analyzer.IdentifierRecord) [][]string {
	rows := [][]string{identifierHeader}
	for _, r := range records {
		row := append(commonCells(r.FeatureInfo),
			strconv.Itoa(r.TotalCount),
			dataset.FormatFloat(r.UniquenessRatio),
			strconv.Itoa(r.DuplicateCount),
			strconv.FormatBool(r.IsPrimaryKey),
		)
		rows = append(rows, row)
	}
	return rows
}
