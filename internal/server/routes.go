package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pyrosense/sentinel/internal/app"
)

func (s *Server) SetupRoutes(app *app.App) {
	// Health check endpoint
	s.ginEngine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiV1 := s.ginEngine.Group("/api/v1")

	apiV1.GET("/status", handlerWrapper(app, getStatus))
	apiV1.GET("/metrics", handlerWrapper(app, getMetrics))
	apiV1.GET("/events", handlerWrapper(app, streamEvents))
}

func handlerWrapper(app *app.App, f func(c *gin.Context)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set("app", app)
		f(ctx)
	}
}
