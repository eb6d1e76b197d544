package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/QuangTrung1996/small100-chat-server/internal/config"
	"github.com/QuangTrung1996/small100-chat-server/internal/core"
)

// NewServer builds the HTTP server: informational REST endpoints plus the
// websocket chat endpoint.
func NewServer(manager *core.Manager, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	api := NewAPIHandlers(manager, logger)
	router.GET("/", api.Root)
	router.GET("/api/health", api.Health)
	router.GET("/api/languages", api.Languages)
	router.GET("/api/rooms/:code", api.RoomByCode)
	router.GET("/api/stats", api.Stats)

	// The websocket upgrade hijacks the connection, which gin's pooled
	// response writer does not support, so /ws mounts on a plain mux in
	// front of the router.
	mux := stdhttp.NewServeMux()
	mux.Handle("/ws", NewWSHandler(manager, cfg.MaxMessageBytes, logger))
	mux.Handle("/", router)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
