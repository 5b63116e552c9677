package pdf

import (
	"encoding/json"
	"testing"

	"github.com/inkbar/formscan/internal/decode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageResult_Serialization(t *testing.T) {
	pageResult := PageResult{
		PageNumber: 1,
		Width:      200,
		Height:     300,
		DecodeMs:   42,
		Fields: decode.LayoutResult{
			{Kind: decode.BooleanResult, Boolean: true},
			{Kind: decode.NumberResult, Number: 7},
		},
	}

	data, err := json.Marshal(pageResult)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"page_number":1`)
	assert.Contains(t, string(data), `"width":200`)
	assert.Contains(t, string(data), `"decode_ms":42`)

	var unmarshaled PageResult
	require.NoError(t, json.Unmarshal(data, &unmarshaled))
	assert.Equal(t, pageResult.PageNumber, unmarshaled.PageNumber)
	assert.Len(t, unmarshaled.Fields, 2)
}

func TestPageResult_ErrorOmitsFields(t *testing.T) {
	pageResult := PageResult{PageNumber: 3, Err: "raster: unsupported color type/bit depth: *image.Gray"}

	data, err := json.Marshal(pageResult)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"error":`)
	assert.NotContains(t, string(data), `"fields"`)
}

func TestDocumentResult_Serialization(t *testing.T) {
	documentResult := DocumentResult{
		Filename:   "test.pdf",
		TotalPages: 2,
		Pages: []PageResult{
			{PageNumber: 1, Width: 200, Height: 300},
			{PageNumber: 2, Width: 200, Height: 300, Err: "decode failed"},
		},
		Processing: ProcessingInfo{ExtractionTimeMs: 200, TotalTimeMs: 350},
	}

	data, err := json.Marshal(documentResult)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"filename":"test.pdf"`)
	assert.Contains(t, string(data), `"total_pages":2`)
	assert.Contains(t, string(data), `"extraction_time_ms":200`)

	var unmarshaled DocumentResult
	require.NoError(t, json.Unmarshal(data, &unmarshaled))
	assert.Len(t, unmarshaled.Pages, 2)
	assert.Equal(t, documentResult.Processing.TotalTimeMs, unmarshaled.Processing.TotalTimeMs)
}

func TestDocumentResult_EmptyPages(t *testing.T) {
	documentResult := DocumentResult{Filename: "empty.pdf", Pages: []PageResult{}}

	data, err := json.Marshal(documentResult)
	require.NoError(t, err)

	var unmarshaled DocumentResult
	require.NoError(t, json.Unmarshal(data, &unmarshaled))
	assert.Equal(t, "empty.pdf", unmarshaled.Filename)
	assert.Empty(t, unmarshaled.Pages)
}
