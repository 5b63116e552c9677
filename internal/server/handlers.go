package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/inkbar/formscan/internal/common"
	"github.com/inkbar/formscan/internal/decode"
	"github.com/inkbar/formscan/internal/pipeline"
	"github.com/inkbar/formscan/internal/raster"
	"github.com/inkbar/formscan/internal/sheet"
)

// scanImage runs the two-pass decode pipeline over img. Extracted as a
// package-level function so the HTTP and WebSocket handlers share one
// call site.
func scanImage(img raster.Image, layout sheet.Layout, cfg pipeline.Config) (decode.LayoutResult, error) {
	return pipeline.Scan(img, layout, cfg)
}

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status: "healthy",
		Time:   time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("failed to encode health response", "error", err)
	}
}

// scanHandler processes a single-image form-scan request: multipart
// field "image" in, decoded fields out.
func (s *Server) scanHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	img, err := s.parseScanRequest(w, r)
	if err != nil {
		scanRequestsTotal.WithLabelValues("http", "error").Inc()
		return // error already written
	}

	timer := common.NewNamedTimer("http-scan")
	result, err := scanImage(img, s.layout, s.scanConfig)
	duration := timer.Stop()

	if err != nil {
		scanRequestsTotal.WithLabelValues("http", "error").Inc()
		s.writeScanError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	scanRequestsTotal.WithLabelValues("http", "success").Inc()
	scanDecodeDuration.WithLabelValues("http").Observe(duration.Seconds())
	scanFieldsDecoded.WithLabelValues("http").Observe(float64(len(result)))

	s.writeScanResponse(w, ScanResponse{
		Fields:    toFieldResponses(result),
		Width:     img.Width,
		Height:    img.Height,
		ProcessMs: duration.Milliseconds(),
	})
}

func (s *Server) parseScanRequest(w http.ResponseWriter, r *http.Request) (raster.Image, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadMB*1024*1024)

	if err := r.ParseMultipartForm(s.maxUploadMB * 1024 * 1024); err != nil {
		s.writeScanError(w, "failed to parse form data", http.StatusBadRequest)
		return raster.Image{}, err
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		s.writeScanError(w, "no image file provided", http.StatusBadRequest)
		return raster.Image{}, err
	}
	defer func() { _ = file.Close() }()

	if header.Size > s.maxUploadMB*1024*1024 {
		s.writeScanError(w, "file too large", http.StatusRequestEntityTooLarge)
		return raster.Image{}, fmt.Errorf("file too large: %d bytes", header.Size)
	}
	uploadSizeBytes.Observe(float64(header.Size))

	img, err := raster.Decode(file)
	if err != nil {
		s.writeScanError(w, "invalid image format", http.StatusBadRequest)
		return raster.Image{}, err
	}

	return img, nil
}

func (s *Server) writeScanResponse(w http.ResponseWriter, res ScanResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		slog.Error("failed to encode scan response", "error", err)
	}
}

func (s *Server) writeScanError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ScanErrorResponse{Error: message}); err != nil {
		slog.Error("failed to encode scan error response", "error", err)
	}
}

// toFieldResponses adapts a decode.LayoutResult to its JSON view.
func toFieldResponses(result decode.LayoutResult) []ScanFieldResponse {
	out := make([]ScanFieldResponse, len(result))
	for i, f := range result {
		switch f.Kind {
		case decode.BooleanResult:
			out[i] = ScanFieldResponse{Kind: "boolean", Boolean: f.Boolean}
		case decode.NumberResult:
			out[i] = ScanFieldResponse{Kind: "number", Number: f.Number}
		}
	}
	return out
}
