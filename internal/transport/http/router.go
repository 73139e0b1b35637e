package http

import (
	"github.com/gin-gonic/gin"
	"github.com/iamasit07/quadtoe/internal/transport/http/middleware"
	"github.com/rs/zerolog"
)

// NewRouter returns a gin engine with recovery, request logging, CORS and
// the REST routes installed.
func NewRouter(h *Handler, allowedOrigins []string, logger zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORSMiddleware(allowedOrigins, logger))
	h.Register(router)
	return router
}
