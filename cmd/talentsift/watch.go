package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/extract"
	"github.com/talentsift/talentsift/internal/subjectid"
	"github.com/talentsift/talentsift/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the configured drop-in directories and ingest resumes as they arrive",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if len(cfg.Watch.Directories) == 0 {
			return fmt.Errorf("no watch directories configured (watch.directories)")
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		pipeline, closeAll, err := buildPipeline(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer closeAll()

		extractor := extract.NewExtractor()
		onIngest := func(path string) {
			if _, err := ingestFile(ctx, pipeline, extractor, path, logger); err != nil {
				logger.Error("ingest failed", zap.String("path", path), zap.Error(err))
			}
		}
		onRemove := func(path string) {
			subject := subjectid.FromPath(path)
			pipeline.DeleteSubject(ctx, subject)
			logger.Info("resume removed", zap.String("path", path), zap.String("subject", subject))
		}

		w := watcher.NewWatcher(
			cfg.Watch.Directories,
			cfg.Watch.Extensions,
			cfg.Watch.RecursiveOrDefault(),
			onIngest,
			onRemove,
			watcher.WithLogger(logger),
		)
		if err := w.Start(ctx); err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		defer w.Stop()
		w.SyncExistingFiles()

		logger.Info("watching for resumes",
			zap.Strings("directories", w.Directories()),
			zap.Strings("extensions", cfg.Watch.Extensions))

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sig:
		case <-ctx.Done():
		}
		logger.Info("shutting down")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
