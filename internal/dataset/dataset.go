package dataset

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DeclaredType 列的声明类型（来自数据源 schema）
type DeclaredType int

const (
	Other DeclaredType = iota
	Integer
	Float
	Text
	Datetime
)

// String 导出数据字典时使用的类型名
func (t DeclaredType) String() string {
	switch t {
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Text:
		return "text"
	case Datetime:
		return "datetime"
	default:
		return "other"
	}
}

// IsNumeric 是否为数值类型
func (t DeclaredType) IsNumeric() bool {
	return t == Integer || t == Float
}

// ParseDeclaredType 解析类型名，未知类型返回 Other
func ParseDeclaredType(s string) DeclaredType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "integer", "int", "int64":
		return Integer
	case "float", "float64", "double":
		return Float
	case "text", "string", "object":
		return Text
	case "datetime", "timestamp", "datetime64[ns]":
		return Datetime
	default:
		return Other
	}
}

// ColumnDescriptor 列描述
type ColumnDescriptor struct {
	Name string
	Type DeclaredType
}

// Column 列数据
// Values 元素为 nil（空值）、int64、float64、string、time.Time 或 bool
// New 会把其他类型转换为以上类型之一
type Column struct {
	ColumnDescriptor
	Values []any
}

// NullCount 空值数量
func (c *Column) NullCount() int {
	n := 0
	for _, v := range c.Values {
		if v == nil {
			n++
		}
	}
	return n
}

// UniqueCount 非空唯一值数量
func (c *Column) UniqueCount() int {
	seen := make(map[any]struct{})
	for _, v := range c.Values {
		if v == nil {
			continue
		}
		seen[Key(v)] = struct{}{}
	}
	return len(seen)
}

type timeKey struct {
	sec  int64
	nsec int
}

// Key 返回可作为 map 键的值（时间按时刻比较）
func Key(v any) any {
	if t, ok := v.(time.Time); ok {
		return timeKey{t.Unix(), t.Nanosecond()}
	}
	return v
}

// Dataset 内存中的表格数据集
type Dataset struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// New 创建数据集，各列长度必须一致且列名唯一
func New(columns ...*Column) (*Dataset, error) {
	ds := &Dataset{index: make(map[string]int, len(columns))}
	for i, c := range columns {
		if _, dup := ds.index[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column %q", c.Name)
		}
		if i == 0 {
			ds.rows = len(c.Values)
		} else if len(c.Values) != ds.rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", c.Name, len(c.Values), ds.rows)
		}
		ds.index[c.Name] = i
		ds.columns = append(ds.columns, normalize(c))
	}
	return ds, nil
}

// normalize 复制列，把 NaN 视为空值，并把单元格统一为可比较的类型
func normalize(c *Column) *Column {
	out := &Column{ColumnDescriptor: c.ColumnDescriptor, Values: make([]any, len(c.Values))}
	for i, v := range c.Values {
		out.Values[i] = normalizeCell(v)
	}
	return out
}

func normalizeCell(v any) any {
	switch x := v.(type) {
	case nil, int64, string, bool, time.Time:
		return x
	case float64:
		if math.IsNaN(x) {
			return nil
		}
		return x
	case []byte:
		return string(x)
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case float32:
		return normalizeCell(float64(x))
	}
	return fmt.Sprint(v)
}

// Len 行数
func (d *Dataset) Len() int {
	return d.rows
}

// Schema 按列顺序返回列描述
func (d *Dataset) Schema() []ColumnDescriptor {
	schema := make([]ColumnDescriptor, len(d.columns))
	for i, c := range d.columns {
		schema[i] = c.ColumnDescriptor
	}
	return schema
}

// Names 按列顺序返回列名
func (d *Dataset) Names() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

// Column 按名称查找列
func (d *Dataset) Column(name string) (*Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.columns[i], true
}

// Drop 返回去掉指定列后的新数据集（忽略不存在的列）
func (d *Dataset) Drop(names ...string) *Dataset {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	var keep []*Column
	for _, c := range d.columns {
		if !drop[c.Name] {
			keep = append(keep, c)
		}
	}
	return d.with(keep)
}

// Select 按给定顺序返回只包含指定列的新数据集
func (d *Dataset) Select(names ...string) *Dataset {
	var keep []*Column
	for _, n := range names {
		if c, ok := d.Column(n); ok {
			keep = append(keep, c)
		}
	}
	return d.with(keep)
}

func (d *Dataset) with(columns []*Column) *Dataset {
	out := &Dataset{index: make(map[string]int, len(columns)), rows: d.rows}
	for i, c := range columns {
		out.index[c.Name] = i
		out.columns = append(out.columns, c)
	}
	return out
}
