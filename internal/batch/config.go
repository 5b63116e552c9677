package batch

import (
	"fmt"
	"os"
	"time"

	"github.com/inkbar/formscan/internal/decode"
)

// Config holds all configuration for batch scanning a directory or file
// list of scanned forms against one layout.
type Config struct {
	// Scan tunables, passed through to pipeline.Scan for every file.
	DarkThreshold uint8
	CanonicalSize int

	// File discovery settings.
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	// ContinueOnError keeps scanning remaining files after one fails
	// instead of aborting the whole batch.
	ContinueOnError bool

	// Workers bounds how many files are read and decoded from disk
	// concurrently. Decoding itself still runs one page at a time per
	// spec.md §5; Workers only overlaps the I/O-bound load step.
	Workers int

	// Progress/output settings.
	ShowProgress bool
	Quiet        bool
	Format       string
	OutputFile   string
}

// FileResult is one file's scan outcome within a batch.
type FileResult struct {
	Path     string
	Fields   decode.LayoutResult
	Err      string
	DecodeMs int64
}

// Result holds the result of batch scanning.
type Result struct {
	Results     []FileResult
	Duration    time.Duration
	WorkerCount int
}

// FormatResults formats the batch results in the given format (text,
// json, or csv).
func (r *Result) FormatResults(format string) (string, error) {
	return formatBatchResults(r.Results, format)
}

// SaveResults writes the formatted results to outputFile, or stdout if
// outputFile is empty.
func (r *Result) SaveResults(format, outputFile string, quiet bool) error {
	output, err := r.FormatResults(format)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(output), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !quiet {
			_, _ = fmt.Fprintf(os.Stdout, "Results written to %s\n", outputFile)
		}
		return nil
	}

	_, _ = fmt.Fprint(os.Stdout, output)
	return nil
}

// PrintStats prints a short summary of the batch run.
func (r *Result) PrintStats(quiet bool) {
	if quiet {
		return
	}

	failed := 0
	for _, res := range r.Results {
		if res.Err != "" {
			failed++
		}
	}

	_, _ = fmt.Fprintf(os.Stdout, "\nBatch summary:\n")
	_, _ = fmt.Fprintf(os.Stdout, "  Total files: %d\n", len(r.Results))
	_, _ = fmt.Fprintf(os.Stdout, "  Failed: %d\n", failed)
	_, _ = fmt.Fprintf(os.Stdout, "  Duration: %v\n", r.Duration.Round(time.Millisecond))
	if len(r.Results) > 0 {
		avg := r.Duration / time.Duration(len(r.Results))
		_, _ = fmt.Fprintf(os.Stdout, "  Avg per file: %v\n", avg.Round(time.Millisecond))
	}
}
