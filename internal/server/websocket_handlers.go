package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/inkbar/formscan/internal/common"
	"github.com/inkbar/formscan/internal/raster"
)

// upgrader has reasonable defaults and accepts every origin; corsMiddleware
// only sets the CORS response headers and does not reject any origin.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ScanMessage is a client-sent request over the /ws/scan connection.
type ScanMessage struct {
	Type  string `json:"type"` // "scan"
	Image []byte `json:"image,omitempty"`
}

// ScanStreamResponse is a server-sent progress/result message.
type ScanStreamResponse struct {
	Status    string        `json:"status"` // "processing", "completed", "error"
	Progress  float64       `json:"progress,omitempty"`
	Result    *ScanResponse `json:"result,omitempty"`
	Error     string        `json:"error,omitempty"`
	RequestID string        `json:"request_id,omitempty"`
}

// scanWebSocketHandler upgrades the connection and streams scan
// progress/results for each incoming message.
func (s *Server) scanWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade connection to websocket", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("websocket connection established", "remote_addr", r.RemoteAddr)
	s.handleWebSocketConnection(conn)
}

func (s *Server) handleWebSocketConnection(conn *websocket.Conn) {
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
				return
			}
		}
	}()

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("websocket error", "error", err)
			}
			break
		}

		websocketMessagesTotal.WithLabelValues("received").Inc()

		if messageType == websocket.TextMessage {
			s.handleWebSocketMessage(conn, data)
		}
	}
}

func (s *Server) handleWebSocketMessage(conn wsConnWriter, data []byte) {
	var msg ScanMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendWebSocketError(conn, "", fmt.Sprintf("failed to parse request: %v", err))
		return
	}

	requestID := strconv.FormatInt(time.Now().UnixNano(), 10)

	if msg.Type != "scan" {
		s.sendWebSocketError(conn, requestID, "unsupported request type: "+msg.Type)
		return
	}
	if len(msg.Image) == 0 {
		s.sendWebSocketError(conn, requestID, "no image data provided")
		return
	}

	s.sendWebSocketResponse(conn, ScanStreamResponse{Status: "processing", Progress: 0.0, RequestID: requestID})

	img, err := raster.Decode(bytes.NewReader(msg.Image))
	if err != nil {
		scanRequestsTotal.WithLabelValues("websocket", "error").Inc()
		s.sendWebSocketError(conn, requestID, fmt.Sprintf("failed to decode image: %v", err))
		return
	}

	s.sendWebSocketResponse(conn, ScanStreamResponse{Status: "processing", Progress: 0.5, RequestID: requestID})

	timer := common.NewNamedTimer(requestID)
	result, err := scanImage(img, s.layout, s.scanConfig)
	duration := timer.Stop()

	if err != nil {
		scanRequestsTotal.WithLabelValues("websocket", "error").Inc()
		s.sendWebSocketError(conn, requestID, fmt.Sprintf("scan failed: %v", err))
		return
	}

	scanRequestsTotal.WithLabelValues("websocket", "success").Inc()
	scanDecodeDuration.WithLabelValues("websocket").Observe(duration.Seconds())
	scanFieldsDecoded.WithLabelValues("websocket").Observe(float64(len(result)))

	s.sendWebSocketResponse(conn, ScanStreamResponse{
		Status:   "completed",
		Progress: 1.0,
		Result: &ScanResponse{
			Fields:    toFieldResponses(result),
			Width:     img.Width,
			Height:    img.Height,
			ProcessMs: duration.Milliseconds(),
		},
		RequestID: requestID,
	})
}

// wsConnWriter is the subset of *websocket.Conn the response helpers
// need, narrowed out for testability.
type wsConnWriter interface {
	WriteMessage(messageType int, data []byte) error
}

func (s *Server) sendWebSocketResponse(conn wsConnWriter, response ScanStreamResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		slog.Error("failed to marshal websocket response", "error", err)
		return
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Error("failed to send websocket message", "error", err)
		return
	}

	websocketMessagesTotal.WithLabelValues("sent").Inc()
}

func (s *Server) sendWebSocketError(conn wsConnWriter, requestID, message string) {
	s.sendWebSocketResponse(conn, ScanStreamResponse{Status: "error", Error: message, RequestID: requestID})
}
