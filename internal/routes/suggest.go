package routes

import (
	"github.com/gin-gonic/gin"

	"classforge/internal/handlers"
)

type SuggestRoutes struct {
	handler *handlers.SuggestHandler
}

func NewSuggestRoutes(handler *handlers.SuggestHandler) *SuggestRoutes {
	return &SuggestRoutes{handler: handler}
}

func (r *SuggestRoutes) RegisterRoutes(router *gin.RouterGroup) {
	suggest := router.Group("/suggest")
	{
		suggest.POST("/relation", r.handler.SuggestRelation)
		suggest.POST("/attributes", r.handler.SuggestAttributes)
	}
}
