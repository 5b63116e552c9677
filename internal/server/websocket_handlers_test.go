package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/inkbar/formscan/internal/render"
	"github.com/inkbar/formscan/internal/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawPNGBytes renders layout and PNG-encodes it, for tests that send raw
// image bytes over the websocket rather than a multipart upload.
func rawPNGBytes(t *testing.T, layout sheet.Layout) []byte {
	t.Helper()
	img := render.Preview(layout, 500)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// mockWebSocketConn records writes instead of hitting a real connection.
type mockWebSocketConn struct {
	sentMessages []sentMessage
}

type sentMessage struct {
	messageType int
	data        []byte
}

func (m *mockWebSocketConn) WriteMessage(messageType int, data []byte) error {
	m.sentMessages = append(m.sentMessages, sentMessage{messageType: messageType, data: data})
	return nil
}

func TestServer_SendWebSocketResponse(t *testing.T) {
	mockConn := &mockWebSocketConn{}
	server := &Server{}

	response := ScanStreamResponse{
		Status:    "completed",
		Progress:  1.0,
		RequestID: "test-request-id",
	}

	server.sendWebSocketResponse(mockConn, response)

	require.Len(t, mockConn.sentMessages, 1)

	var received ScanStreamResponse
	require.NoError(t, json.Unmarshal(mockConn.sentMessages[0].data, &received))

	assert.Equal(t, websocket.TextMessage, mockConn.sentMessages[0].messageType)
	assert.Equal(t, response, received)
}

func TestServer_SendWebSocketError(t *testing.T) {
	mockConn := &mockWebSocketConn{}
	server := &Server{}

	server.sendWebSocketError(mockConn, "test-request-id", "something broke")

	require.Len(t, mockConn.sentMessages, 1)

	var response ScanStreamResponse
	require.NoError(t, json.Unmarshal(mockConn.sentMessages[0].data, &response))

	assert.Equal(t, websocket.TextMessage, mockConn.sentMessages[0].messageType)
	assert.Equal(t, "error", response.Status)
	assert.Equal(t, "something broke", response.Error)
	assert.Equal(t, "test-request-id", response.RequestID)
}

func TestWebSocketUpgrader(t *testing.T) {
	t.Run("check origin allows any origin", func(t *testing.T) {
		allowed := upgrader.CheckOrigin(&http.Request{
			Header: http.Header{"Origin": []string{"http://example.com"}},
		})
		assert.True(t, allowed)
	})

	t.Run("buffer sizes", func(t *testing.T) {
		assert.Equal(t, 1024, upgrader.ReadBufferSize)
		assert.Equal(t, 1024, upgrader.WriteBufferSize)
	})
}

func TestHandleWebSocketMessage_UnsupportedType(t *testing.T) {
	mockConn := &mockWebSocketConn{}
	server := &Server{}

	data, err := json.Marshal(ScanMessage{Type: "ocr", Image: []byte{1, 2, 3}})
	require.NoError(t, err)

	server.handleWebSocketMessage(mockConn, data)

	require.Len(t, mockConn.sentMessages, 1)
	var response ScanStreamResponse
	require.NoError(t, json.Unmarshal(mockConn.sentMessages[0].data, &response))
	assert.Equal(t, "error", response.Status)
	assert.Contains(t, response.Error, "unsupported request type")
}

func TestHandleWebSocketMessage_NoImageData(t *testing.T) {
	mockConn := &mockWebSocketConn{}
	server := &Server{}

	data, err := json.Marshal(ScanMessage{Type: "scan"})
	require.NoError(t, err)

	server.handleWebSocketMessage(mockConn, data)

	require.Len(t, mockConn.sentMessages, 1)
	var response ScanStreamResponse
	require.NoError(t, json.Unmarshal(mockConn.sentMessages[0].data, &response))
	assert.Equal(t, "error", response.Status)
	assert.Contains(t, response.Error, "no image data")
}

func TestHandleWebSocketMessage_InvalidJSON(t *testing.T) {
	mockConn := &mockWebSocketConn{}
	server := &Server{}

	server.handleWebSocketMessage(mockConn, []byte("not json"))

	require.Len(t, mockConn.sentMessages, 1)
	var response ScanStreamResponse
	require.NoError(t, json.Unmarshal(mockConn.sentMessages[0].data, &response))
	assert.Equal(t, "error", response.Status)
	assert.Contains(t, response.Error, "failed to parse request")
}

func TestHandleWebSocketMessage_InvalidImageBytes(t *testing.T) {
	mockConn := &mockWebSocketConn{}
	server := &Server{}

	data, err := json.Marshal(ScanMessage{Type: "scan", Image: []byte("not a real image")})
	require.NoError(t, err)

	server.handleWebSocketMessage(mockConn, data)

	require.Len(t, mockConn.sentMessages, 2)

	var progress ScanStreamResponse
	require.NoError(t, json.Unmarshal(mockConn.sentMessages[0].data, &progress))
	assert.Equal(t, "processing", progress.Status)

	var failure ScanStreamResponse
	require.NoError(t, json.Unmarshal(mockConn.sentMessages[1].data, &failure))
	assert.Equal(t, "error", failure.Status)
	assert.Contains(t, failure.Error, "failed to decode image")
}

func TestHandleWebSocketMessage_ValidScan(t *testing.T) {
	layout := boolOnlyLayout()
	server := testServer(t, layout)
	mockConn := &mockWebSocketConn{}

	msg := ScanMessage{Type: "scan", Image: rawPNGBytes(t, layout)}
	data, err := json.Marshal(msg)
	require.NoError(t, err)

	server.handleWebSocketMessage(mockConn, data)

	require.GreaterOrEqual(t, len(mockConn.sentMessages), 3)

	var final ScanStreamResponse
	require.NoError(t, json.Unmarshal(mockConn.sentMessages[len(mockConn.sentMessages)-1].data, &final))
	assert.Equal(t, "completed", final.Status)
	require.NotNil(t, final.Result)
	require.Len(t, final.Result.Fields, 1)
	assert.Equal(t, "boolean", final.Result.Fields[0].Kind)
}
