package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"classforge/internal/handlers"
)

func RegisterRoutes(router *gin.Engine, generateHandler *handlers.GenerateHandler, diagramHandler *handlers.DiagramHandler, suggestHandler *handlers.SuggestHandler) {
	api := router.Group("/api/v1")

	generateRoutes := NewGenerateRoutes(generateHandler)
	generateRoutes.RegisterRoutes(api)

	diagramRoutes := NewDiagramRoutes(diagramHandler)
	diagramRoutes.RegisterRoutes(api)

	suggestRoutes := NewSuggestRoutes(suggestHandler)
	suggestRoutes.RegisterRoutes(api)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
