package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"classforge/internal/responses"
	"classforge/internal/services"
)

// SuggestHandler serves the canvas assistance endpoints.
type SuggestHandler struct {
	suggestService *services.SuggestService
}

func NewSuggestHandler(suggestService *services.SuggestService) *SuggestHandler {
	return &SuggestHandler{suggestService: suggestService}
}

type suggestRelationRequest struct {
	Source string `json:"source" binding:"required"`
	Target string `json:"target" binding:"required"`
	Kind   string `json:"kind"`
}

// SuggestRelation handles POST /api/v1/suggest/relation
func (h *SuggestHandler) SuggestRelation(c *gin.Context) {
	var req suggestRelationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	suggestion := h.suggestService.SuggestRelation(c.Request.Context(), req.Source, req.Target, req.Kind)
	responses.Success(c, http.StatusOK, suggestion, "Relation suggested successfully")
}

type suggestAttributesRequest struct {
	Name string `json:"name" binding:"required"`
}

// SuggestAttributes handles POST /api/v1/suggest/attributes
func (h *SuggestHandler) SuggestAttributes(c *gin.Context) {
	var req suggestAttributesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	attributes := h.suggestService.SuggestAttributes(c.Request.Context(), req.Name)
	responses.Success(c, http.StatusOK, gin.H{"attributes": attributes}, "Attributes suggested successfully")
}
