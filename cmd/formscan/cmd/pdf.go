package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/inkbar/formscan/internal/decode"
	"github.com/inkbar/formscan/internal/pdf"
	"github.com/inkbar/formscan/internal/pipeline"
	"github.com/spf13/cobra"
)

// pdfCmd represents the pdf command.
var pdfCmd = &cobra.Command{
	Use:   "pdf <file.pdf>",
	Short: "Decode the form pages embedded in a scanned PDF",
	Long: `Extract each page image from a PDF of scanned forms and decode
it against a layout, one page at a time.

Examples:
  formscan pdf forms.pdf --layout layout.yaml
  formscan pdf forms.pdf --layout layout.yaml --pages 1-5,8
  formscan pdf secure.pdf --layout layout.yaml --password secret`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runPDFCommand,
}

func init() {
	rootCmd.AddCommand(pdfCmd)
	pdfCmd.Flags().String("layout", "", "path to the layout YAML file (required)")
	pdfCmd.Flags().String("pages", "", "page range to decode, e.g. \"1-5,8\" (default: all pages)")
	pdfCmd.Flags().Uint8("dark-threshold", 0, "override the dark/light pixel threshold (0 = use config default)")
	pdfCmd.Flags().Int("canonical-size", 0, "override the canonical rectified frame size (0 = use config default)")
	pdfCmd.Flags().String("password", "", "user password for an encrypted PDF")
	pdfCmd.Flags().Bool("no-decrypt", false, "fail instead of attempting to decrypt an encrypted PDF")
	pdfCmd.Flags().String("format", "json", "output format: json or text")
	pdfCmd.Flags().String("output", "", "write results to this file instead of stdout")
	_ = pdfCmd.MarkFlagRequired("layout")
}

func runPDFCommand(cmd *cobra.Command, args []string) error {
	filename := args[0]

	layoutPath, _ := cmd.Flags().GetString("layout")
	layout, err := loadLayoutFile(layoutPath)
	if err != nil {
		return err
	}

	appCfg := GetConfig()
	darkThreshold, _ := cmd.Flags().GetUint8("dark-threshold")
	if darkThreshold == 0 {
		darkThreshold = appCfg.Scan.DarkThreshold
	}
	canonicalSize, _ := cmd.Flags().GetInt("canonical-size")
	if canonicalSize == 0 {
		canonicalSize = appCfg.Scan.CanonicalSize
	}
	noDecrypt, _ := cmd.Flags().GetBool("no-decrypt")

	processor := pdf.NewProcessorWithConfig(layout, &pdf.ProcessorConfig{
		AllowPasswords: !noDecrypt,
		Scan:           pipeline.Config{DarkThreshold: darkThreshold, CanonicalSize: canonicalSize},
	})

	pageRange, _ := cmd.Flags().GetString("pages")
	password, _ := cmd.Flags().GetString("password")

	var doc *pdf.DocumentResult
	if password != "" {
		doc, err = processor.ProcessFileWithCredentials(filename, pageRange, &pdf.PasswordCredentials{UserPassword: password})
	} else {
		doc, err = processor.ProcessFile(filename, pageRange)
	}
	if err != nil {
		return fmt.Errorf("pdf scan failed: %w", err)
	}

	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	return writePDFResult(cmd, doc, format, output)
}

func writePDFResult(cmd *cobra.Command, doc *pdf.DocumentResult, format, output string) error {
	var rendered string
	switch format {
	case "json":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format results: %w", err)
		}
		rendered = string(data) + "\n"
	case "text":
		rendered = formatPDFText(doc)
	default:
		return fmt.Errorf("invalid format %q: must be json or text", format)
	}

	if output != "" {
		if err := os.WriteFile(output, []byte(rendered), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Results written to %s\n", output)
		return err
	}

	_, err := fmt.Fprint(cmd.OutOrStdout(), rendered)
	return err
}

func formatPDFText(doc *pdf.DocumentResult) string {
	out := fmt.Sprintf("%s: %d page(s)\n", doc.Filename, doc.TotalPages)
	for _, page := range doc.Pages {
		if page.Err != "" {
			out += fmt.Sprintf("  page %d: error: %s\n", page.PageNumber, page.Err)
			continue
		}
		out += fmt.Sprintf("  page %d: %d field(s) (%dms)\n", page.PageNumber, len(page.Fields), page.DecodeMs)
		for _, f := range page.Fields {
			out += fmt.Sprintf("    %s\n", fieldText(f))
		}
	}
	return out
}

// fieldText renders one decoded field value for text-format output.
func fieldText(f decode.FieldResult) string {
	switch f.Kind {
	case decode.BooleanResult:
		return fmt.Sprintf("boolean=%t", f.Boolean)
	case decode.NumberResult:
		return fmt.Sprintf("number=%d", f.Number)
	default:
		return "unknown"
	}
}
