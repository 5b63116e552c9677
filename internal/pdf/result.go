package pdf

import "github.com/inkbar/formscan/internal/decode"

// PageResult is the decoded outcome for a single PDF page. Err is set (and
// Fields left nil) when the page either failed to decode as an image or the
// pipeline itself returned an error for that page; errors on one page never
// abort the rest of the document.
type PageResult struct {
	PageNumber int                `json:"page_number"`
	Width      int                `json:"width"`
	Height     int                `json:"height"`
	Fields     decode.LayoutResult `json:"fields,omitempty"`
	Err        string             `json:"error,omitempty"`
	DecodeMs   int64              `json:"decode_ms"`
}

// DocumentResult is the decoded outcome for every page of one PDF file.
type DocumentResult struct {
	Filename   string         `json:"filename"`
	TotalPages int            `json:"total_pages"`
	Pages      []PageResult   `json:"pages"`
	Processing ProcessingInfo `json:"processing"`
}

// ProcessingInfo reports how long document-level extraction took.
type ProcessingInfo struct {
	ExtractionTimeMs int64 `json:"extraction_time_ms"`
	TotalTimeMs      int64 `json:"total_time_ms"`
}
