package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/extract"
	"github.com/talentsift/talentsift/internal/retrieval"
	"github.com/talentsift/talentsift/internal/subjectid"
)

// ingester is the slice of the pipeline the ingest and watch commands use.
type ingester interface {
	IngestResume(ctx context.Context, subject, text string) (*retrieval.IngestResult, error)
}

var ingestCmd = &cobra.Command{
	Use:   "ingest <file|dir>",
	Short: "Extract, chunk, and index resumes into the vector store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx := cmd.Context()
		pipeline, closeAll, err := buildPipeline(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer closeAll()

		paths, err := collectResumePaths(args[0], cfg.Watch.Extensions)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no resume files found at %s", args[0])
		}

		extractor := extract.NewExtractor()
		enc := json.NewEncoder(os.Stdout)
		var failed int
		for _, path := range paths {
			result, err := ingestFile(ctx, pipeline, extractor, path, logger)
			if err != nil {
				failed++
				logger.Error("ingest failed", zap.String("path", path), zap.Error(err))
				continue
			}
			_ = enc.Encode(result)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d resumes failed to ingest", failed, len(paths))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

// ingestFile runs extract + chunk + embed + store for one resume file.
func ingestFile(ctx context.Context, pipeline ingester, extractor *extract.Extractor, path string, logger *zap.Logger) (*ingestOutput, error) {
	text, err := extractor.Extract(path)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}
	subject := subjectid.FromPath(path)
	result, err := pipeline.IngestResume(ctx, subject, text)
	if err != nil {
		return nil, err
	}
	logger.Info("resume ingested",
		zap.String("path", path),
		zap.String("subject", subject),
		zap.Int("chunks", result.ChunkCount),
		zap.Bool("stored", result.Stored))
	return &ingestOutput{Path: path, Subject: subject, ChunkCount: result.ChunkCount, Stored: result.Stored}, nil
}

type ingestOutput struct {
	Path       string `json:"path"`
	Subject    string `json:"subject"`
	ChunkCount int    `json:"chunk_count"`
	Stored     bool   `json:"stored"`
}

// collectResumePaths expands path into the list of resume files to ingest:
// the file itself, or every matching file under a directory.
func collectResumePaths(path string, extensions []string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	var paths []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if matchesExtension(p, extensions) {
			paths = append(paths, p)
		}
		return nil
	})
	return paths, err
}

func matchesExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
