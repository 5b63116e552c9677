package cmd

import (
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/inkbar/formscan/internal/render"
	"github.com/inkbar/formscan/internal/sheet"
	"github.com/spf13/cobra"
)

// renderCmd represents the render command.
var renderCmd = &cobra.Command{
	Use:   "render <layout.yaml> <output>",
	Short: "Render a form layout to a printable PNG or SVG",
	Long: `Render a YAML page description into a printable form: a PNG
raster suitable for printing and later photographing, or an SVG vector
document.

Examples:
  formscan render layout.yaml form.png
  formscan render layout.yaml form.svg --svg`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runRenderCommand,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().Bool("svg", false, "write an SVG document instead of a PNG raster")
	renderCmd.Flags().Int("size", 1000, "PNG canvas size in pixels (square)")
}

func runRenderCommand(cmd *cobra.Command, args []string) error {
	layoutPath, outPath := args[0], args[1]

	asSVG, _ := cmd.Flags().GetBool("svg")
	size, _ := cmd.Flags().GetInt("size")
	if size <= 0 {
		return fmt.Errorf("invalid size: %d (must be positive)", size)
	}
	if strings.EqualFold(filepath.Ext(outPath), ".svg") {
		asSVG = true
	}

	layout, err := loadLayoutFile(layoutPath)
	if err != nil {
		return err
	}

	if asSVG {
		return os.WriteFile(outPath, []byte(sheet.WriteSVG(layout)), 0o600)
	}

	img := render.Preview(layout, size)
	f, err := os.Create(outPath) //nolint:gosec // output path is user-supplied by design
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer func() { _ = f.Close() }()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Rendered %q (%d fields) to %s\n", layout.Title, len(layout.Entries), outPath)
	return err
}

// loadLayoutFile reads a YAML page description from path and builds its layout.
func loadLayoutFile(path string) (sheet.Layout, error) {
	if path == "" {
		return sheet.Layout{}, errors.New("no layout file provided")
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is user-supplied by design
	if err != nil {
		return sheet.Layout{}, fmt.Errorf("failed to read layout file %s: %w", path, err)
	}
	desc, err := sheet.LoadPageDescription(data)
	if err != nil {
		return sheet.Layout{}, err
	}
	return sheet.Build(desc), nil
}
