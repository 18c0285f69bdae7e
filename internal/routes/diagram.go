package routes

import (
	"github.com/gin-gonic/gin"

	"classforge/internal/handlers"
)

type DiagramRoutes struct {
	handler *handlers.DiagramHandler
}

func NewDiagramRoutes(handler *handlers.DiagramHandler) *DiagramRoutes {
	return &DiagramRoutes{handler: handler}
}

func (r *DiagramRoutes) RegisterRoutes(router *gin.RouterGroup) {
	diagrams := router.Group("/diagrams")
	{
		diagrams.POST("", r.handler.CreateDiagram)
		diagrams.GET("", r.handler.ListDiagrams)
		diagrams.GET("/:id", r.handler.GetDiagram)
		diagrams.PUT("/:id", r.handler.UpdateDiagram)
		diagrams.DELETE("/:id", r.handler.DeleteDiagram)
		diagrams.POST("/:id/share", r.handler.ShareDiagram)
		diagrams.GET("/:id/export", r.handler.ExportDiagram)
	}

	router.GET("/shared/:token", r.handler.GetSharedDiagram)
}
