package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"fraud-dictionary/internal/adapter"
	"fraud-dictionary/internal/analyzer"
	"fraud-dictionary/internal/config"
	"fraud-dictionary/internal/dataset"
	"fraud-dictionary/internal/logging"
	"fraud-dictionary/internal/pipeline"
)

var (
	configPath   string
	sourceType   string
	dsn          string
	table        string
	query        string
	inputPath    string
	delimiter    string
	outputDir    string
	exclude      []string
	markdown     bool
	logLevel     string
	logFormat    string
	outputFormat string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "fraud-dictionary",
		Short:         "Fraud model data dictionary generator",
		Long:          "Classifies dataset columns into numeric, categorical and identifier features and writes data dictionaries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (env FRAUDDICT_* overrides it)")
	rootCmd.PersistentFlags().StringVar(&sourceType, "type", "", "source type (csv/mysql/sqlserver/postgres/sqlite)")
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "database connection string")
	rootCmd.PersistentFlags().StringVar(&table, "table", "", "table to read")
	rootCmd.PersistentFlags().StringVar(&query, "query", "", "custom SELECT instead of a table")
	rootCmd.PersistentFlags().StringVar(&inputPath, "input", "", "CSV file (.csv, .csv.sz)")
	rootCmd.PersistentFlags().StringVar(&delimiter, "delimiter", "", "CSV delimiter")
	rootCmd.PersistentFlags().StringSliceVar(&exclude, "exclude", nil, "columns to leave out of the dictionary")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug/info/warn/error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "console/json")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate numeric, categorical and identifier data dictionaries",
		RunE:  runGenerate,
	}
	generateCmd.Flags().StringVar(&outputDir, "output", "", "output directory")
	generateCmd.Flags().BoolVar(&markdown, "markdown", false, "also write data_dictionary.md")

	classifyCmd := &cobra.Command{
		Use:   "classify",
		Short: "Print each column's role and description without computing statistics",
		RunE:  runClassify,
	}
	classifyCmd.Flags().StringVar(&outputFormat, "format", "yaml", "yaml/json")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate dictionaries whenever the CSV input changes",
		RunE:  runWatch,
	}
	watchCmd.Flags().StringVar(&outputDir, "output", "", "output directory")
	watchCmd.Flags().BoolVar(&markdown, "markdown", false, "also write data_dictionary.md")

	rootCmd.AddCommand(generateCmd, classifyCmd, watchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig 读取配置并应用命令行参数
func loadConfig(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	flags := cmd.Flags()
	set := func(name string, dst *string, val string) {
		if flags.Changed(name) {
			*dst = val
		}
	}
	set("type", &cfg.Source.Type, sourceType)
	set("dsn", &cfg.Source.DSN, dsn)
	set("table", &cfg.Source.Table, table)
	set("query", &cfg.Source.Query, query)
	set("input", &cfg.Source.Path, inputPath)
	set("delimiter", &cfg.Source.Delimiter, delimiter)
	set("output", &cfg.OutputDir, outputDir)
	set("log-level", &cfg.LogLevel, logLevel)
	set("log-format", &cfg.LogFormat, logFormat)
	if flags.Changed("exclude") {
		cfg.Exclude = exclude
	}
	if flags.Changed("markdown") {
		cfg.Markdown = markdown
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// loadDataset 从数据源读取数据并去掉排除列
func loadDataset(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*dataset.Dataset, error) {
	logger.Info("Loading dataset",
		zap.String("type", cfg.Source.Type),
		zap.String("dsn", logging.SanitizeConnectionString(cfg.Source.DSN)),
		zap.String("table", cfg.Source.Table),
		zap.String("path", cfg.Source.Path))

	src, err := adapter.Open(ctx, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("open source: %s", logging.SanitizeError(err))
	}
	defer src.Close()

	ds, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %s", logging.SanitizeError(err))
	}

	names := ds.Names()
	for _, ex := range cfg.Exclude {
		if _, ok := ds.Column(ex); ok {
			continue
		}
		if s, ok := analyzer.SuggestColumn(ex, names); ok {
			logger.Warn("Excluded column not found", zap.String("column", ex), zap.String("did_you_mean", s))
		} else {
			logger.Warn("Excluded column not found", zap.String("column", ex))
		}
	}
	return ds.Drop(cfg.Exclude...), nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ds, err := loadDataset(ctx, cfg, logger)
	if err != nil {
		return err
	}

	result, err := pipeline.New(logger, pipeline.WithMarkdown(cfg.Markdown)).Run(ds, cfg.OutputDir)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Dir)
	return nil
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ds, err := loadDataset(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	summary := pipeline.New(logger).Classify(ds.Schema())
	out := cmd.OutOrStdout()
	switch outputFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	case "yaml":
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(summary)
	}
	return fmt.Errorf("unsupported format %q", outputFormat)
}
