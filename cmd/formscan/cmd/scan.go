package cmd

import (
	"fmt"

	"github.com/inkbar/formscan/internal/batch"
	"github.com/spf13/cobra"
)

// scanCmd represents the scan command.
var scanCmd = &cobra.Command{
	Use:   "scan <image>...",
	Short: "Decode one or more photographed/scanned form images",
	Long: `Decode one or more form images against a layout, printing the
recovered field values.

Examples:
  formscan scan form.jpg --layout layout.yaml
  formscan scan page1.jpg page2.jpg --layout layout.yaml --format json`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runScanCommand,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	addScanFlags(scanCmd)
}

// defaultImagePatterns matches the file extensions recognized as form images.
var defaultImagePatterns = []string{"*.jpg", "*.jpeg", "*.png", "*.bmp", "*.tiff"}

// addScanFlags registers the flags shared by scan and batch.
func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().String("layout", "", "path to the layout YAML file (required)")
	cmd.Flags().Uint8("dark-threshold", 0, "override the dark/light pixel threshold (0 = use config default)")
	cmd.Flags().Int("canonical-size", 0, "override the canonical rectified frame size (0 = use config default)")
	cmd.Flags().Bool("continue-on-error", true, "keep decoding remaining files after one fails")
	cmd.Flags().Int("workers", 0, "number of files to load concurrently (0 = use config default)")
	cmd.Flags().String("format", "text", "output format: text, json, or csv")
	cmd.Flags().String("output", "", "write results to this file instead of stdout")
	cmd.Flags().Bool("quiet", false, "suppress progress and summary output")
	cmd.Flags().StringSlice("include", defaultImagePatterns, "file patterns to include")
	cmd.Flags().StringSlice("exclude", nil, "file patterns to exclude")
	_ = cmd.MarkFlagRequired("layout")
}

func runScanCommand(cmd *cobra.Command, args []string) error {
	layoutPath, _ := cmd.Flags().GetString("layout")
	layout, err := loadLayoutFile(layoutPath)
	if err != nil {
		return err
	}

	cfg, err := buildBatchConfig(cmd)
	if err != nil {
		return err
	}

	result, err := batch.ProcessBatch(args, layout, cfg)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if err := result.SaveResults(cfg.Format, cfg.OutputFile, cfg.Quiet); err != nil {
		return err
	}
	result.PrintStats(cfg.Quiet)
	return nil
}

// buildBatchConfig assembles a batch.Config from flags, config defaults,
// and global overrides, following the same "flag overrides default"
// pattern used throughout this CLI.
func buildBatchConfig(cmd *cobra.Command) (*batch.Config, error) {
	appCfg := GetConfig()

	darkThreshold, _ := cmd.Flags().GetUint8("dark-threshold")
	if darkThreshold == 0 {
		darkThreshold = appCfg.Scan.DarkThreshold
	}
	canonicalSize, _ := cmd.Flags().GetInt("canonical-size")
	if canonicalSize == 0 {
		canonicalSize = appCfg.Scan.CanonicalSize
	}
	workers, _ := cmd.Flags().GetInt("workers")
	if workers == 0 {
		workers = appCfg.Batch.Workers
	}
	continueOnError, _ := cmd.Flags().GetBool("continue-on-error")
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	quiet, _ := cmd.Flags().GetBool("quiet")

	var recursive bool
	if cmd.Flags().Lookup("recursive") != nil {
		recursive, _ = cmd.Flags().GetBool("recursive")
	}
	include, _ := cmd.Flags().GetStringSlice("include")
	exclude, _ := cmd.Flags().GetStringSlice("exclude")

	if format != "text" && format != "json" && format != "csv" {
		return nil, fmt.Errorf("invalid format %q: must be text, json, or csv", format)
	}

	return &batch.Config{
		DarkThreshold:   darkThreshold,
		CanonicalSize:   canonicalSize,
		Recursive:       recursive,
		IncludePatterns: include,
		ExcludePatterns: exclude,
		ContinueOnError: continueOnError,
		Workers:         workers,
		Quiet:           quiet,
		Format:          format,
		OutputFile:      output,
	}, nil
}
