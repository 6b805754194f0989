package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/talentsift/talentsift/internal/extract"
	"github.com/talentsift/talentsift/internal/retrieval"
	"github.com/talentsift/talentsift/internal/subjectid"
)

var (
	screenQuery   string
	screenJobFile string
	screenTopK    int
)

var screenCmd = &cobra.Command{
	Use:   "screen <resume-file>",
	Short: "Screen a resume against a job requirement and print the structured evaluation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := resolveQuery()
		if err != nil {
			return err
		}

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

		extractor := extract.NewExtractor()
		text, err := extractor.Extract(args[0])
		if err != nil {
			return fmt.Errorf("extract %s: %w", args[0], err)
		}
		subject := subjectid.FromPath(args[0])
		if _, err := pipeline.IngestResume(ctx, subject, text); err != nil {
			return fmt.Errorf("ingest %s: %w", args[0], err)
		}

		result, err := pipeline.Screen(ctx, subject, retrieval.ScreenRequest{
			Query: query,
			TopK:  screenTopK,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	rootCmd.AddCommand(screenCmd)
	screenCmd.Flags().StringVarP(&screenQuery, "query", "q", "", "job requirement to screen against")
	screenCmd.Flags().StringVar(&screenJobFile, "job", "", "file containing the job description")
	screenCmd.Flags().IntVarP(&screenTopK, "top-k", "k", 0, "number of resume chunks to retrieve (default from config)")
}

// resolveQuery returns the screening query from --query or --job.
func resolveQuery() (string, error) {
	if screenQuery != "" && screenJobFile != "" {
		return "", fmt.Errorf("--query and --job are mutually exclusive")
	}
	if screenQuery != "" {
		return screenQuery, nil
	}
	if screenJobFile != "" {
		data, err := os.ReadFile(screenJobFile)
		if err != nil {
			return "", fmt.Errorf("read job file: %w", err)
		}
		query := strings.TrimSpace(string(data))
		if query == "" {
			return "", fmt.Errorf("job file %s is empty", screenJobFile)
		}
		return query, nil
	}
	return "", fmt.Errorf("either --query or --job is required")
}
