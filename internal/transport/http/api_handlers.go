package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/QuangTrung1996/small100-chat-server/internal/core"
	"github.com/QuangTrung1996/small100-chat-server/internal/languages"
)

// APIHandlers provides the informational REST endpoints. They only read
// manager state; all mutations go through the websocket protocol.
type APIHandlers struct {
	manager *core.Manager
	log     *zerolog.Logger
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(manager *core.Manager, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{
		manager: manager,
		log:     logger,
	}
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RoomInfoResponse is the public view of a live room.
type RoomInfoResponse struct {
	Name         string `json:"name"`
	Code         string `json:"code"`
	MemberCount  int    `json:"memberCount"`
	MessageCount int    `json:"messageCount"`
	CreatedAt    string `json:"createdAt"`
}

// Root handles the service banner.
// GET /
func (h *APIHandlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "Small100 Translation Chat Server",
		"version": "1.0.0",
		"status":  "running",
	})
}

// Health handles the health check.
// GET /api/health
func (h *APIHandlers) Health(c *gin.Context) {
	stats := h.manager.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"connections": stats.Connections,
		"rooms":       stats.Rooms,
	})
}

// Languages lists the supported display languages.
// GET /api/languages
func (h *APIHandlers) Languages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"languages": languages.List()})
}

// RoomByCode resolves a room code to public room info.
// GET /api/rooms/:code
func (h *APIHandlers) RoomByCode(c *gin.Context) {
	info, ok := h.manager.LookupRoom(c.Param("code"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
		return
	}

	c.JSON(http.StatusOK, RoomInfoResponse{
		Name:         info.Name,
		Code:         info.Code,
		MemberCount:  info.MemberCount,
		MessageCount: info.MessageCount,
		CreatedAt:    info.CreatedAt.Format(time.RFC3339),
	})
}

// Stats reports server-wide counters.
// GET /api/stats
func (h *APIHandlers) Stats(c *gin.Context) {
	stats := h.manager.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"activeConnections": stats.Connections,
		"activeRooms":       stats.Rooms,
		"totalMessages":     stats.TotalMessages,
	})
}
