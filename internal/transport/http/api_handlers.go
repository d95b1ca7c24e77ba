package http

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mindcarehq/peerchat-server/internal/core"
)

// APIHandlers exposes a read-only presence view over REST. Counts come
// straight from the in-memory directory; there is nothing persisted to
// query.
type APIHandlers struct {
	directory *core.Directory
	log       *zerolog.Logger
}

// NewAPIHandlers creates the handlers.
func NewAPIHandlers(directory *core.Directory, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{
		directory: directory,
		log:       logger,
	}
}

// RoomResponse is one active room in API responses.
type RoomResponse struct {
	Room      string `json:"room"`
	UserCount int    `json:"user_count"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListRooms returns every room with at least one member.
// GET /api/rooms
func (h *APIHandlers) ListRooms(c *gin.Context) {
	counts := h.directory.Rooms()

	rooms := make([]RoomResponse, 0, len(counts))
	for room, count := range counts {
		rooms = append(rooms, RoomResponse{Room: room, UserCount: count})
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Room < rooms[j].Room })

	c.JSON(http.StatusOK, rooms)
}

// RoomCount returns the live member count for one room, 0 when the room
// does not currently exist.
// GET /api/rooms/:room/count
func (h *APIHandlers) RoomCount(c *gin.Context) {
	room := c.Param("room")
	c.JSON(http.StatusOK, RoomResponse{
		Room:      room,
		UserCount: h.directory.Count(room),
	})
}
