package cmd

import (
	"fmt"

	"github.com/inkbar/formscan/internal/batch"
	"github.com/spf13/cobra"
)

// batchCmd represents the batch command.
var batchCmd = &cobra.Command{
	Use:   "batch <path>...",
	Short: "Decode every form image under one or more directories",
	Long: `Discover and decode form images under the given directories
(and/or individual files), applying include/exclude glob patterns and
optionally recursing into subdirectories.

Examples:
  formscan batch forms/ --layout layout.yaml --recursive
  formscan batch forms/ --layout layout.yaml --include "*.jpg" --exclude "*_draft.*"`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runBatchCommand,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	addScanFlags(batchCmd)
	batchCmd.Flags().BoolP("recursive", "r", false, "recurse into subdirectories")
	batchCmd.Flags().Bool("progress", false, "show a progress indicator while scanning")
}

func runBatchCommand(cmd *cobra.Command, args []string) error {
	layoutPath, _ := cmd.Flags().GetString("layout")
	layout, err := loadLayoutFile(layoutPath)
	if err != nil {
		return err
	}

	cfg, err := buildBatchConfig(cmd)
	if err != nil {
		return err
	}
	cfg.ShowProgress, _ = cmd.Flags().GetBool("progress")

	result, err := batch.ProcessBatch(args, layout, cfg)
	if err != nil {
		return fmt.Errorf("batch scan failed: %w", err)
	}

	if err := result.SaveResults(cfg.Format, cfg.OutputFile, cfg.Quiet); err != nil {
		return err
	}
	result.PrintStats(cfg.Quiet)
	return nil
}
