package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/mindcarehq/peerchat-server/internal/config"
	"github.com/mindcarehq/peerchat-server/internal/core"
	"github.com/mindcarehq/peerchat-server/internal/proto"
)

func startTestServer(t *testing.T, cfg config.Config) (*httptest.Server, *core.Directory) {
	t.Helper()

	logger := zerolog.Nop()
	registry := core.NewRegistry(&logger)
	directory := core.NewDirectory()
	presence := core.NewPresence(registry, directory, &logger)
	router := core.NewRouter(registry, directory, &logger)

	server := NewServer(presence, router, directory, cfg, &logger)
	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts, directory
}

func dialWS(t *testing.T, ctx context.Context, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	t.Cleanup(func() { _ = conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

func sendFrame(t *testing.T, ctx context.Context, conn *websocket.Conn, frameType string, data any) {
	t.Helper()

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal %s: %v", frameType, err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: frameType, Data: payload}); err != nil {
		t.Fatalf("send %s: %v", frameType, err)
	}
}

type outboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	Error *proto.Error    `json:"error,omitempty"`
}

// readFrame returns the next frame and asserts its event name; use it
// where the exact ordering matters.
func readFrame(t *testing.T, ctx context.Context, conn *websocket.Conn, event string) json.RawMessage {
	t.Helper()

	var frame outboundFrame
	if err := wsjson.Read(ctx, conn, &frame); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if frame.Event != event {
		t.Fatalf("expected %s frame, got %+v", event, frame)
	}
	return frame.Data
}

// readErrorFrame expects the next frame to be a protocol error.
func readErrorFrame(t *testing.T, ctx context.Context, conn *websocket.Conn) *proto.Error {
	t.Helper()

	var frame outboundFrame
	if err := wsjson.Read(ctx, conn, &frame); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if frame.Event != proto.EventError || frame.Error == nil {
		t.Fatalf("expected error frame, got %+v", frame)
	}
	return frame.Error
}

func decodeInto(t *testing.T, raw json.RawMessage, v any) {
	t.Helper()

	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("unmarshal %s: %v", string(raw), err)
	}
}
