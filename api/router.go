// Package api wires the gin router over the feed services.
package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CuriouslyCory/snippit.fyi/api/handlers"
)

// NewRouter builds the gin engine with all routes registered.
func NewRouter(db *gorm.DB) *gin.Engine {
	h := handlers.NewHandler(db)

	r := gin.Default()

	// Ping endpoint for health check
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", h.Register)
		v1.POST("/auth/login", h.Login)

		// The focus feed is open to anonymous readers.
		v1.GET("/feed/next", h.OptionalAuth(), h.GetNextSnipit)

		protected := v1.Group("", h.RequireAuth())
		{
			protected.POST("/snipits", h.CreateSnipit)
			protected.GET("/snipits/:id", h.GetSnipit)
			protected.DELETE("/snipits/:id", h.DeleteSnipit)
			protected.POST("/snipits/:id/check", h.CheckSnipit)
			protected.POST("/snipits/:id/skip", h.SkipSnipit)
		}
	}

	return r
}
