package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fraud-dictionary/internal/analyzer"
	"fraud-dictionary/internal/dataset"
	"fraud-dictionary/internal/renderer"
)

// Result 一次运行的结果
type Result struct {
	RunID       uuid.UUID
	Dir         string
	Partition   analyzer.Partition
	Numeric     []analyzer.NumericRecord
	Categorical []analyzer.CategoricalRecord
	Identifier  []analyzer.IdentifierRecord
}

// Option 配置项
type Option func(*Pipeline)

// WithMarkdown 额外输出 Markdown 数据字典
func WithMarkdown(enabled bool) Option {
	return func(p *Pipeline) { p.markdown = enabled }
}

// Pipeline 数据字典生成流程
type Pipeline struct {
	logger      *zap.Logger
	describer   *analyzer.Describer
	partitioner *analyzer.Partitioner
	exporter    *renderer.Exporter
	markdown    bool
}

// New 创建流程
func New(logger *zap.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		logger:      logger.Named("pipeline"),
		describer:   analyzer.NewDescriber(),
		partitioner: analyzer.NewPartitioner(),
		exporter:    renderer.NewExporter(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run 分组、计算元数据并导出到 outputDir
func (p *Pipeline) Run(ds *dataset.Dataset, outputDir string) (*Result, error) {
	runID := uuid.New()
	log := p.logger.With(zap.String("run_id", runID.String()))

	log.Info("Generating data dictionary",
		zap.Int("rows", ds.Len()),
		zap.Int("columns", len(ds.Names())),
		zap.String("output_dir", outputDir))

	part := p.partitioner.Partition(ds.Schema())
	log.Info("Partitioned features",
		zap.Int("numeric", len(part.Numeric)),
		zap.Int("categorical", len(part.Categorical)),
		zap.Int("identifier", len(part.Identifier)))
	log.Debug("Feature groups",
		zap.Strings("numeric", part.Numeric),
		zap.Strings("categorical", part.Categorical),
		zap.Strings("identifier", part.Identifier))

	result := &Result{
		RunID:       runID,
		Partition:   part,
		Numeric:     analyzer.ComputeNumeric(ds, part.Numeric, p.describer),
		Categorical: analyzer.ComputeCategorical(ds, part.Categorical, p.describer),
		Identifier:  analyzer.ComputeIdentifier(ds, part.Identifier, p.describer),
	}

	dir, err := p.exporter.Export(result.Numeric, result.Categorical, result.Identifier, outputDir)
	if err != nil {
		log.Error("Export failed", zap.Error(err))
		return nil, fmt.Errorf("export data dictionaries: %w", err)
	}
	result.Dir = dir

	path := filepath.Join(dir, renderer.MarkdownFile)
	if p.markdown {
		md := renderer.NewMarkdownRenderer().Render(result.Numeric, result.Categorical, result.Identifier)
		if err := os.WriteFile(path, []byte(md), 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", renderer.MarkdownFile, err)
		}
		log.Debug("Wrote markdown dictionary", zap.String("path", path))
	} else if err := os.Remove(path); err == nil {
		// 上次运行留下的 Markdown 已与新的 CSV 不一致
		log.Debug("Removed stale markdown dictionary", zap.String("path", path))
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("remove stale %s: %w", renderer.MarkdownFile, err)
	}

	log.Info("Data dictionary exported", zap.String("dir", dir))
	return result, nil
}

// Classify 只分组并生成描述，不计算统计量
func (p *Pipeline) Classify(schema []dataset.ColumnDescriptor) []ColumnSummary {
	out := make([]ColumnSummary, len(schema))
	for i, col := range schema {
		out[i] = ColumnSummary{
			Name:        col.Name,
			DataType:    col.Type.String(),
			Role:        p.partitioner.Classify(col),
			Description: p.describer.Describe(col.Name, col.Type),
			Rule:        p.describer.RuleName(col.Name),
		}
	}
	return out
}

// ColumnSummary 列的分组与描述
type ColumnSummary struct {
	Name        string        `json:"name" yaml:"name"`
	DataType    string        `json:"data_type" yaml:"data_type"`
	Role        analyzer.Role `json:"role" yaml:"role"`
	Description string        `json:"description" yaml:"description"`
	Rule        string        `json:"rule,omitempty" yaml:"rule,omitempty"`
}
