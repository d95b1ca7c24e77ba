package http

import (
	"context"
	"errors"
	"io"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mindcarehq/peerchat-server/internal/config"
	"github.com/mindcarehq/peerchat-server/internal/core"
	"github.com/mindcarehq/peerchat-server/internal/proto"
)

// WSHandler is the gateway between the WebSocket transport and the
// core layer. It assigns the opaque connection id, turns inbound frames
// into presence/router calls, and serializes core events back out. It
// is also the component that invokes disconnect exactly once when the
// socket dies, however abruptly.
type WSHandler struct {
	presence    *core.Presence
	router      *core.Router
	defaultRoom string
	eventBuffer int
	messageRate int
	log         *zerolog.Logger
}

// NewWSHandler builds the gateway.
func NewWSHandler(presence *core.Presence, router *core.Router, cfg config.Config, logger *zerolog.Logger) *WSHandler {
	return &WSHandler{
		presence:    presence,
		router:      router,
		defaultRoom: cfg.DefaultRoom,
		eventBuffer: cfg.EventBuffer,
		messageRate: cfg.MessageRateLimit,
		log:         logger,
	}
}

// Handle upgrades the request and runs the connection until either side
// closes it.
func (h *WSHandler) Handle(c *gin.Context) {
	ctx := c.Request.Context()

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	client := core.NewConn(uuid.NewString(), h.eventBuffer)
	h.presence.Connect(client)
	defer h.presence.Disconnect(client.ID)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, client)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Str("conn_id", client.ID).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *core.Conn) error {
	limiter := newMessageLimiter(h.messageRate)

	for {
		var inbound proto.Inbound
		if err := wsjson.Read(ctx, conn, &inbound); err != nil {
			return err
		}

		protoErr, err := h.dispatch(client, limiter, inbound)
		if err != nil {
			h.log.Warn().Err(err).Str("conn_id", client.ID).Msg("failed to decode inbound frame")
			return err
		}
		if protoErr != nil {
			if writeErr := wsjson.Write(ctx, conn, proto.Outbound{
				Event: proto.EventError,
				Error: protoErr,
			}); writeErr != nil {
				return writeErr
			}
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *core.Conn) error {
	for {
		select {
		case event, ok := <-client.Events:
			if !ok {
				return nil
			}
			if err := wsjson.Write(ctx, conn, outboundFromEvent(event)); err != nil {
				h.log.Error().Err(err).Str("conn_id", client.ID).Msg("write ws event")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
