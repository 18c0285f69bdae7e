package routes

import (
	"github.com/gin-gonic/gin"

	"classforge/internal/handlers"
)

type GenerateRoutes struct {
	handler *handlers.GenerateHandler
}

func NewGenerateRoutes(handler *handlers.GenerateHandler) *GenerateRoutes {
	return &GenerateRoutes{handler: handler}
}

func (r *GenerateRoutes) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/generate", r.handler.Generate)
}
