package batch

import (
	"fmt"
	"image"
	"sync"

	"github.com/inkbar/formscan/internal/pipeline"
	"github.com/inkbar/formscan/internal/raster"
	"github.com/inkbar/formscan/internal/sheet"
	"github.com/inkbar/formscan/internal/utils"
)

// loadedFile is one file's decoded image, or the error that occurred
// loading it.
type loadedFile struct {
	path string
	img  image.Image
	err  error
}

// loadAndValidateImage loads path as a supported image file.
func loadAndValidateImage(path string) (image.Image, error) {
	if !utils.IsSupportedImage(path) {
		return nil, fmt.Errorf("unsupported image format: %s", path)
	}

	img, _, err := utils.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return img, nil
}

// loadFilesConcurrently loads every path, bounded to workers concurrent
// reads, preserving paths' order in the returned slice. Loading is the
// only concurrent stage; decoding runs sequentially afterward.
func loadFilesConcurrently(paths []string, workers int) []loadedFile {
	if workers < 1 {
		workers = 1
	}

	results := make([]loadedFile, len(paths))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()
			img, err := loadAndValidateImage(path)
			results[i] = loadedFile{path: path, img: img, err: err}
		}(i, path)
	}
	wg.Wait()

	return results
}

// scanFile converts a loaded image to the packed raster and runs it
// through the scan pipeline against layout.
func scanFile(loaded loadedFile, layout sheet.Layout, cfg pipeline.Config) FileResult {
	if loaded.err != nil {
		return FileResult{Path: loaded.path, Err: loaded.err.Error()}
	}

	raw, err := raster.FromStdImage(loaded.img)
	if err != nil {
		return FileResult{Path: loaded.path, Err: err.Error()}
	}

	fields, err := pipeline.Scan(raw, layout, cfg)
	if err != nil {
		return FileResult{Path: loaded.path, Err: err.Error()}
	}

	return FileResult{Path: loaded.path, Fields: fields}
}

// scanFiles loads files (concurrently, bounded by workers) then decodes
// each sequentially against layout, in path order. With
// continueOnError false, the first decode failure aborts the batch.
func scanFiles(paths []string, layout sheet.Layout, cfg pipeline.Config,
	workers int, continueOnError bool,
) ([]FileResult, error) {
	loaded := loadFilesConcurrently(paths, workers)

	results := make([]FileResult, 0, len(loaded))
	for _, lf := range loaded {
		res := scanFile(lf, layout, cfg)
		if res.Err != "" && !continueOnError {
			return nil, fmt.Errorf("scanning %s: %s", res.Path, res.Err)
		}
		results = append(results, res)
	}
	return results, nil
}
