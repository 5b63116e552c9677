// Package batch scans a directory or explicit file list of scanned
// forms against one sheet layout, sequentially decoding each file per
// spec.md §5's single-threaded decoding contract.
package batch

import (
	"errors"
	"fmt"
	"time"

	"github.com/inkbar/formscan/internal/pipeline"
	"github.com/inkbar/formscan/internal/sheet"
)

// ProcessBatch discovers image files under paths and scans each against
// layout, using the given configuration.
func ProcessBatch(paths []string, layout sheet.Layout, config *Config) (*Result, error) {
	files, err := discoverImageFiles(paths, config.Recursive, config.IncludePatterns, config.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to discover image files: %w", err)
	}

	if len(files) == 0 {
		return nil, errors.New("no image files found")
	}

	cfg := pipeline.Config{DarkThreshold: config.DarkThreshold, CanonicalSize: config.CanonicalSize}

	start := time.Now()
	results, err := scanFiles(files, layout, cfg, config.Workers, config.ContinueOnError)
	duration := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("batch scan failed: %w", err)
	}

	return &Result{
		Results:     results,
		Duration:    duration,
		WorkerCount: config.Workers,
	}, nil
}
