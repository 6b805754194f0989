// Package main is the talentsift CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/chunker"
	"github.com/talentsift/talentsift/internal/config"
	"github.com/talentsift/talentsift/internal/embedding"
	"github.com/talentsift/talentsift/internal/llm"
	"github.com/talentsift/talentsift/internal/retrieval"
	"github.com/talentsift/talentsift/internal/vector"
	"github.com/talentsift/talentsift/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/talentsift/config.yaml"

var (
	configPath string
	debugFlag  bool

	rootCmd = &cobra.Command{
		Use:   "talentsift",
		Short: "talentsift screens resumes against job requirements using retrieval-grounded LLM evaluation",
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "verbose/debug output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig loads config from path. When path is the default, it first
// looks for config.yaml in the current directory (for development); if that
// exists it is used. Returns the config and the path that was actually
// loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// setup loads config and builds the logger shared by every command.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, resolvedPath, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := utils.NewLogger(cfg.Debug || debugFlag)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	logger.Debug("config loaded", zap.String("config_path", resolvedPath))
	return cfg, logger, nil
}

// buildPipeline assembles the screening pipeline from config. The returned
// func closes the pipeline's backends.
func buildPipeline(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*retrieval.Pipeline, func(), error) {
	backend, err := embedding.NewEmbedder(ctx, embedding.Config{
		Provider:   cfg.Embedding.Provider,
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Timeout:    secondsDuration(cfg.Embedding.TimeoutSeconds),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create embedder: %w", err)
	}
	gateway := embedding.NewGateway(backend,
		embedding.WithMaxBatch(cfg.Embedding.MaxBatch),
		embedding.WithCache(cfg.Embedding.CacheSize),
		embedding.WithLogger(logger),
	)

	var store vector.Store
	if cfg.Vector.Type != "none" {
		if cfg.Vector.Path != "" {
			_ = os.MkdirAll(filepath.Dir(cfg.Vector.Path), 0755)
		}
		store, err = vector.NewStore(cfg.Vector.Type, backend.Dimensions(), cfg.Vector.Path,
			vector.WithLogger(logger))
		if err != nil {
			// A broken vector backend degrades to storage-skipped mode.
			logger.Warn("vector store unavailable, running without retrieval storage", zap.Error(err))
			store = nil
		}
	}

	client, err := llm.NewClient(ctx, llm.Config{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Model:    cfg.LLM.Model,
		Timeout:  secondsDuration(cfg.LLM.TimeoutSeconds),
	})
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		_ = gateway.Close()
		return nil, nil, fmt.Errorf("create llm client: %w", err)
	}

	pipeline := retrieval.NewPipeline(
		chunker.New(cfg.Retrieval.MaxChunkSize, chunker.WithLogger(logger)),
		gateway,
		store,
		client,
		retrieval.WithTopK(cfg.Retrieval.TopK),
		retrieval.WithPromptVersion(cfg.Retrieval.PromptVersion),
		retrieval.WithClaimFields(cfg.Retrieval.ClaimFields),
		retrieval.WithLogger(logger),
	)
	closeAll := func() {
		if store != nil {
			_ = store.Close()
		}
		_ = client.Close()
		_ = gateway.Close()
	}
	return pipeline, closeAll, nil
}

func secondsDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}
