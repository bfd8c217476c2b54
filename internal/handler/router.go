package handler

import (
	"net/http"

	"github.com/CageChen/dirpager/internal/config"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires the API routes onto a fresh gin engine.
func NewRouter(cfg *config.Config, log *zap.Logger) *gin.Engine {
	listHandler := NewListHandler(cfg, log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	api := r.Group("/api")
	{
		api.GET("/list", listHandler.ListAll)
		api.GET("/list/directories", listHandler.ListDirectories)
		api.GET("/list/files", listHandler.ListFiles)
		api.GET("/folders", listHandler.GetFolders)
	}

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
