package batch

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/inkbar/formscan/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, width, height int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			img.Set(x, y, color.White)
		}
	}
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, png.Encode(file, img))
}

func TestLoadAndValidateImage_ValidImage(t *testing.T) {
	tempDir := t.TempDir()
	imagePath := filepath.Join(tempDir, "test.png")
	writePNG(t, imagePath, 100, 100)

	loadedImg, err := loadAndValidateImage(imagePath)
	require.NoError(t, err)
	require.NotNil(t, loadedImg)
	assert.Equal(t, 100, loadedImg.Bounds().Dx())
	assert.Equal(t, 100, loadedImg.Bounds().Dy())
}

func TestLoadAndValidateImage_UnsupportedFormat(t *testing.T) {
	tempDir := t.TempDir()
	imagePath := filepath.Join(tempDir, "test.txt")
	require.NoError(t, os.WriteFile(imagePath, []byte("not an image"), 0o600))

	loadedImg, err := loadAndValidateImage(imagePath)
	require.Error(t, err)
	assert.Nil(t, loadedImg)
	assert.Contains(t, err.Error(), "unsupported image format")
}

func TestLoadAndValidateImage_NonExistentFile(t *testing.T) {
	loadedImg, err := loadAndValidateImage("/nonexistent/file.png")
	require.Error(t, err)
	assert.Nil(t, loadedImg)
}

func TestLoadFilesConcurrently_PreservesOrder(t *testing.T) {
	tempDir := t.TempDir()
	paths := make([]string, 3)
	for i := range paths {
		paths[i] = filepath.Join(tempDir, string(rune('a'+i))+".png")
		writePNG(t, paths[i], 20, 20)
	}

	loaded := loadFilesConcurrently(paths, 2)
	require.Len(t, loaded, 3)
	for i, lf := range loaded {
		assert.Equal(t, paths[i], lf.path)
		require.NoError(t, lf.err)
	}
}

func TestLoadFilesConcurrently_MissingFile(t *testing.T) {
	loaded := loadFilesConcurrently([]string{"/nonexistent/file.png"}, 1)
	require.Len(t, loaded, 1)
	assert.Error(t, loaded[0].err)
}

func TestScanFile_LoadError(t *testing.T) {
	res := scanFile(loadedFile{path: "missing.png", err: assertError("boom")}, testLayout(), pipeline.DefaultConfig())
	assert.Equal(t, "missing.png", res.Path)
	assert.Equal(t, "boom", res.Err)
}

type assertError string

func (e assertError) Error() string { return string(e) }

func TestScanFiles_ContinueOnError(t *testing.T) {
	tempDir := t.TempDir()
	blankPath := filepath.Join(tempDir, "blank.png")
	writePNG(t, blankPath, 64, 64)

	results, err := scanFiles([]string{blankPath}, testLayout(), pipeline.DefaultConfig(), 1, true)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.NotEmpty(t, results[0].Err)
}

func TestScanFiles_AbortsOnError(t *testing.T) {
	tempDir := t.TempDir()
	blankPath := filepath.Join(tempDir, "blank.png")
	writePNG(t, blankPath, 64, 64)

	results, err := scanFiles([]string{blankPath}, testLayout(), pipeline.DefaultConfig(), 1, false)
	require.Error(t, err)
	assert.Nil(t, results)
}
