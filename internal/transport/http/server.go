package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mindcarehq/peerchat-server/internal/config"
	"github.com/mindcarehq/peerchat-server/internal/core"
)

// NewServer builds the HTTP server hosting the health probe, the
// presence API, and the WebSocket gateway.
func NewServer(presence *core.Presence, router *core.Router, directory *core.Directory, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), LoggerMiddleware(logger))

	engine.GET("/health", healthHandler)

	api := NewAPIHandlers(directory, logger)
	engine.GET("/api/rooms", api.ListRooms)
	engine.GET("/api/rooms/:room/count", api.RoomCount)

	ws := NewWSHandler(presence, router, cfg, logger)
	engine.GET("/ws", ws.Handle)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           engine,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
