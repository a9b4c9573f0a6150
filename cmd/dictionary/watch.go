package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fraud-dictionary/internal/pipeline"
)

// debounce 文件连续写入时合并为一次生成
const debounce = 500 * time.Millisecond

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if !strings.EqualFold(cfg.Source.Type, "csv") {
		return fmt.Errorf("watch only supports csv sources, got %q", cfg.Source.Type)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	target, err := filepath.Abs(cfg.Source.Path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// 监听目录：编辑器常用改名替换的方式保存文件
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	p := pipeline.New(logger, pipeline.WithMarkdown(cfg.Markdown))
	generate := func() {
		ds, err := loadDataset(ctx, cfg, logger)
		if err != nil {
			logger.Error("Reload failed", zap.Error(err))
			return
		}
		if _, err := p.Run(ds, cfg.OutputDir); err != nil {
			logger.Error("Generation failed", zap.Error(err))
		}
	}

	generate()
	logger.Info("Watching for changes", zap.String("path", target))

	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", zap.Error(err))
		case <-timer.C:
			logger.Info("Input changed, regenerating", zap.String("path", target))
			generate()
		}
	}
}
