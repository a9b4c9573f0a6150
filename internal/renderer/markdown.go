package renderer

import (
	"fmt"
	"strings"

	"fraud-dictionary/internal/analyzer"
	"fraud-dictionary/internal/dataset"
)

// MarkdownFile Markdown 数据字典文件名
const MarkdownFile = "data_dictionary.md"

// MarkdownRenderer Markdown 数据字典渲染器
type MarkdownRenderer struct{}

// NewMarkdownRenderer 创建渲染器
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render 渲染为 Markdown 格式
func (m *MarkdownRenderer) Render(
	numeric []analyzer.NumericRecord,
	categorical []analyzer.CategoricalRecord,
	identifier []analyzer.IdentifierRecord,
) string {
	var sb strings.Builder

	sb.WriteString("# Data Dictionary\n\n")
	sb.WriteString(fmt.Sprintf("Numeric: %d | Categorical: %d | Identifier: %d\n\n",
		len(numeric), len(categorical), len(identifier)))

	m.renderIdentifiers(&sb, identifier)
	m.renderNumeric(&sb, numeric)
	m.renderCategorical(&sb, categorical)

	return sb.String()
}

func (m *MarkdownRenderer) renderIdentifiers(sb *strings.Builder, records []analyzer.IdentifierRecord) {
	sb.WriteString("## Identifier Features\n\n")
	if len(records) == 0 {
		sb.WriteString("_None_\n\n")
		return
	}

	sb.WriteString("| Feature | Type | Description | Nulls | Unique | Uniqueness | Duplicates | PK |\n")
	sb.WriteString("|---------|------|-------------|-------|--------|------------|------------|----|\n")
	for _, r := range records {
		pk := ""
		if r.IsPrimaryKey {
			pk = "✓"
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %d | %d | %.1f%% | %d | %s |\n",
			cell(r.FeatureName), r.DataType, cell(r.Description),
			r.NullCount, r.UniqueCount, r.UniquenessRatio*100, r.DuplicateCount, pk))
	}
	sb.WriteString("\n")
}

func (m *MarkdownRenderer) renderNumeric(sb *strings.Builder, records []analyzer.NumericRecord) {
	sb.WriteString("## Numeric Features\n\n")
	if len(records) == 0 {
		sb.WriteString("_None_\n\n")
		return
	}

	sb.WriteString("| Feature | Type | Description | Nulls | Mean | Std | Min | Median | Max |\n")
	sb.WriteString("|---------|------|-------------|-------|------|-----|-----|--------|-----|\n")
	for _, r := range records {
		mean, std, minV, median, maxV := "-", "-", "-", "-", "-"
		if s := r.Summary; s != nil {
			mean, std = short(s.Mean), short(s.Std)
			minV, median, maxV = short(s.Min), short(s.P50), short(s.Max)
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %d | %s | %s | %s | %s | %s |\n",
			cell(r.FeatureName), r.DataType, cell(r.Description), r.NullCount,
			mean, std, minV, median, maxV))
	}
	sb.WriteString("\n")
}

func (m *MarkdownRenderer) renderCategorical(sb *strings.Builder, records []analyzer.CategoricalRecord) {
	sb.WriteString("## Categorical Features\n\n")
	if len(records) == 0 {
		sb.WriteString("_None_\n\n")
		return
	}

	sb.WriteString("| Feature | Type | Description | Nulls | Unique | Values |\n")
	sb.WriteString("|---------|------|-------------|-------|--------|--------|\n")
	for _, r := range records {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %d | %d | %s |\n",
			cell(r.FeatureName), r.DataType, cell(r.Description),
			r.NullCount, r.UniqueCount, cell(valuesSummary(r))))
	}
	sb.WriteString("\n")
}

// valuesSummary 文本列列出前三个高频值，可排序列给出范围
func valuesSummary(r analyzer.CategoricalRecord) string {
	if rg := r.Range; rg != nil {
		s := fmt.Sprintf("%s → %s", rg.MinValue, rg.MaxValue)
		if rg.DateRangeDays != nil {
			s += fmt.Sprintf(" (%d days)", *rg.DateRangeDays)
		}
		return s
	}
	if len(r.TopValues) == 0 {
		return "-"
	}

	n := len(r.TopValues)
	if n > 3 {
		n = 3
	}
	parts := make([]string, 0, n+1)
	for _, v := range r.TopValues[:n] {
		parts = append(parts, fmt.Sprintf("`%s` (%d)", v.Value, v.Count))
	}
	if rest := len(r.TopValues) - n + r.OtherCategoriesCount; rest > 0 {
		parts = append(parts, fmt.Sprintf("+%d more", rest))
	}
	return strings.Join(parts, ", ")
}

func short(f float64) string {
	s := dataset.FormatFloat(f)
	if s == "" {
		return "-"
	}
	return fmt.Sprintf("%.4g", f)
}

// cell 转义表格单元格中的竖线与换行
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
