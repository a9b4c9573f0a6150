package adapter

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/golang/snappy"

	"fraud-dictionary/internal/dataset"
)

// checkEvery 每读取多少行检查一次 ctx
const checkEvery = 4096

// 视为空值的文本
var nullTokens = map[string]bool{
	"": true, "null": true, "na": true, "n/a": true, "nan": true, "none": true,
}

var timeLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006/01/02",
	"2006/01/02 15:04:05",
}

// CSVSource CSV 文件数据源
// 扩展名为 .sz 或 .snappy 时按 snappy framed 格式解压
type CSVSource struct {
	path      string
	delimiter rune
}

// NewCSVSource 创建 CSV 数据源
func NewCSVSource(path string, delimiter rune) *CSVSource {
	return &CSVSource{path: path, delimiter: delimiter}
}

// Path 文件路径
func (s *CSVSource) Path() string {
	return s.path
}

// Load 读取 CSV 并推断每列的声明类型
func (s *CSVSource) Load(ctx context.Context) (*dataset.Dataset, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".sz", ".snappy":
		r = snappy.NewReader(f)
	}
	return ReadCSV(ctx, r, s.delimiter)
}

// Close 无需释放资源
func (s *CSVSource) Close() error {
	return nil
}

// ReadCSV 从 reader 读取带表头的 CSV
func ReadCSV(ctx context.Context, r io.Reader, delimiter rune) (*dataset.Dataset, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("error reading header: %w", err)
	}

	raw := make([][]string, len(headers))
	for n := 0; ; n++ {
		if n%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		for j := range headers {
			cell := ""
			if j < len(row) {
				cell = row[j]
			}
			raw[j] = append(raw[j], cell)
		}
	}

	columns := make([]*dataset.Column, len(headers))
	for j, h := range headers {
		t := InferType(raw[j])
		values := make([]any, len(raw[j]))
		for i, cell := range raw[j] {
			values[i] = convertCell(cell, t)
		}
		columns[j] = &dataset.Column{
			ColumnDescriptor: dataset.ColumnDescriptor{Name: strings.TrimSpace(h), Type: t},
			Values:           values,
		}
	}
	return dataset.New(columns...)
}

func isNull(cell string) bool {
	return nullTokens[strings.ToLower(strings.TrimSpace(cell))]
}

// InferType 推断列类型：integer → float → bool(other) → datetime → text
// 全部为空时视为 float
func InferType(cells []string) dataset.DeclaredType {
	isInt, isFloat, isBool, isTime := true, true, true, true
	for _, cell := range cells {
		if isNull(cell) {
			continue
		}
		v := strings.TrimSpace(cell)
		if isInt {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				isFloat = false
			}
		}
		if isBool {
			if l := strings.ToLower(v); l != "true" && l != "false" {
				isBool = false
			}
		}
		if isTime {
			if _, ok := parseTime(v); !ok {
				isTime = false
			}
		}
		if !isInt && !isFloat && !isBool && !isTime {
			return dataset.Text
		}
	}

	switch {
	case isInt && isFloat && isBool && isTime:
		return dataset.Float
	case isInt:
		return dataset.Integer
	case isFloat:
		return dataset.Float
	case isBool:
		return dataset.Other
	case isTime:
		return dataset.Datetime
	}
	return dataset.Text
}

func convertCell(cell string, t dataset.DeclaredType) any {
	if isNull(cell) {
		return nil
	}
	v := strings.TrimSpace(cell)
	switch t {
	case dataset.Integer:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	case dataset.Float:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	case dataset.Other:
		return strings.ToLower(v) == "true"
	case dataset.Datetime:
		tm, _ := parseTime(v)
		return tm
	}
	return cell
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
