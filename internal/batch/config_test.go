package batch

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/inkbar/formscan/internal/decode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockFileResult(path string, boolVal bool) FileResult {
	return FileResult{
		Path:   path,
		Fields: decode.LayoutResult{{Kind: decode.BooleanResult, Boolean: boolVal}},
	}
}

func TestResult_FormatResults_Text(t *testing.T) {
	result := &Result{
		Results: []FileResult{
			mockFileResult("/path/image1.png", true),
			mockFileResult("/path/image2.png", false),
		},
		Duration:    time.Second * 5,
		WorkerCount: 2,
	}

	output, err := result.FormatResults("text")
	require.NoError(t, err)
	assert.Contains(t, output, "# /path/image1.png")
	assert.Contains(t, output, "# /path/image2.png")
	assert.Contains(t, output, "boolean = true")
	assert.Contains(t, output, "boolean = false")
}

func TestResult_FormatResults_JSON(t *testing.T) {
	result := &Result{
		Results:     []FileResult{mockFileResult("/path/image1.png", true)},
		Duration:    time.Second * 5,
		WorkerCount: 1,
	}

	output, err := result.FormatResults("json")
	require.NoError(t, err)
	assert.Contains(t, output, `"file": "/path/image1.png"`)
	assert.Contains(t, output, `"kind": "boolean"`)

	var jsonResult any
	require.NoError(t, json.Unmarshal([]byte(output), &jsonResult))
}

func TestResult_FormatResults_CSV(t *testing.T) {
	result := &Result{
		Results:     []FileResult{mockFileResult("/path/image1.png", true)},
		Duration:    time.Second * 5,
		WorkerCount: 1,
	}

	output, err := result.FormatResults("csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	assert.Len(t, lines, 2) // header + 1 data row
	assert.Contains(t, lines[0], "file")
	assert.Contains(t, lines[1], "/path/image1.png")
	assert.Contains(t, lines[1], "boolean")
}

func TestResult_FormatResults_InvalidFormatDefaultsToText(t *testing.T) {
	result := &Result{Results: []FileResult{}, Duration: time.Second, WorkerCount: 1}

	output, err := result.FormatResults("invalid")
	require.NoError(t, err)
	assert.Empty(t, output)
}

func TestResult_SaveResults_ToFile(t *testing.T) {
	tempDir := t.TempDir()
	outputFile := filepath.Join(tempDir, "results.txt")

	result := &Result{
		Results:     []FileResult{mockFileResult("/path/test.png", true)},
		Duration:    time.Second * 2,
		WorkerCount: 1,
	}

	require.NoError(t, result.SaveResults("text", outputFile, true))

	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "boolean = true")
}

func TestResult_SaveResults_Stdout(t *testing.T) {
	result := &Result{
		Results:     []FileResult{mockFileResult("/path/console.png", false)},
		Duration:    time.Second * 3,
		WorkerCount: 1,
	}

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	err = result.SaveResults("text", "", true)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "/path/console.png")
}

func TestResult_SaveResults_WriteError(t *testing.T) {
	invalidPath := "/nonexistent/deep/path/results.txt"

	result := &Result{Results: []FileResult{mockFileResult("/path/test.png", true)}, Duration: time.Second, WorkerCount: 1}

	err := result.SaveResults("text", invalidPath, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write output file")
}

func TestResult_PrintStats_WithResults(t *testing.T) {
	result := &Result{
		Results: []FileResult{
			mockFileResult("img1.png", true),
			{Path: "img2.png", Err: "decode failed"},
		},
		Duration:    time.Millisecond * 1500,
		WorkerCount: 2,
	}

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	result.PrintStats(false)

	require.NoError(t, w.Close())
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Total files: 2")
	assert.Contains(t, output, "Failed: 1")
	assert.Contains(t, output, "Duration:")
	assert.Contains(t, output, "Avg per file:")
}

func TestResult_PrintStats_Quiet(t *testing.T) {
	result := &Result{Results: []FileResult{mockFileResult("img.png", true)}, Duration: time.Second, WorkerCount: 1}

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	result.PrintStats(true)

	require.NoError(t, w.Close())
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}
