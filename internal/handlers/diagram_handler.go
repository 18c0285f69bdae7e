package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"classforge/compiler/load"
	"classforge/internal/responses"
	"classforge/internal/services"
)

// DiagramHandler serves stored-diagram CRUD, sharing and export.
type DiagramHandler struct {
	diagramService  *services.DiagramService
	generateService *services.GenerateService
}

func NewDiagramHandler(diagramService *services.DiagramService, generateService *services.GenerateService) *DiagramHandler {
	return &DiagramHandler{
		diagramService:  diagramService,
		generateService: generateService,
	}
}

// CreateDiagram handles POST /api/v1/diagrams
func (h *DiagramHandler) CreateDiagram(c *gin.Context) {
	var req services.SaveDiagramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	diagram, err := h.diagramService.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err, "Failed to create diagram")
		return
	}
	responses.Success(c, http.StatusCreated, diagram, "Diagram created successfully")
}

// ListDiagrams handles GET /api/v1/diagrams
func (h *DiagramHandler) ListDiagrams(c *gin.Context) {
	diagrams, err := h.diagramService.List(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to list diagrams")
		return
	}
	responses.Success(c, http.StatusOK, diagrams, "Diagrams retrieved successfully")
}

// GetDiagram handles GET /api/v1/diagrams/:id
func (h *DiagramHandler) GetDiagram(c *gin.Context) {
	diagram, err := h.diagramService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "Diagram not found")
		return
	}
	responses.Success(c, http.StatusOK, diagram, "Diagram retrieved successfully")
}

// UpdateDiagram handles PUT /api/v1/diagrams/:id
func (h *DiagramHandler) UpdateDiagram(c *gin.Context) {
	var req services.SaveDiagramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	diagram, err := h.diagramService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		fail(c, err, "Failed to update diagram")
		return
	}
	responses.Success(c, http.StatusOK, diagram, "Diagram updated successfully")
}

// DeleteDiagram handles DELETE /api/v1/diagrams/:id
func (h *DiagramHandler) DeleteDiagram(c *gin.Context) {
	if err := h.diagramService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "Failed to delete diagram")
		return
	}
	responses.Success(c, http.StatusOK, nil, "Diagram deleted successfully")
}

// ShareDiagram handles POST /api/v1/diagrams/:id/share
func (h *DiagramHandler) ShareDiagram(c *gin.Context) {
	token, err := h.diagramService.Share(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "Failed to share diagram")
		return
	}
	responses.Success(c, http.StatusOK, gin.H{"share_token": token}, "Diagram shared successfully")
}

// GetSharedDiagram handles GET /api/v1/shared/:token
func (h *DiagramHandler) GetSharedDiagram(c *gin.Context) {
	diagram, err := h.diagramService.GetShared(c.Request.Context(), c.Param("token"))
	if err != nil {
		fail(c, err, "Shared diagram not found")
		return
	}
	responses.Success(c, http.StatusOK, diagram, "Diagram retrieved successfully")
}

// ExportDiagram handles GET /api/v1/diagrams/:id/export. It generates the
// stored diagram and streams the project archive.
func (h *DiagramHandler) ExportDiagram(c *gin.Context) {
	stored, err := h.diagramService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "Diagram not found")
		return
	}

	diagram, err := load.Parse(stored.Snapshot)
	if err != nil {
		fail(c, err, "Stored diagram is not generatable")
		return
	}

	data, graph, err := h.generateService.GenerateArchive(c.Request.Context(), diagram, generateOptions(c)...)
	if err != nil {
		fail(c, err, "Failed to generate project")
		return
	}
	writeArchive(c, graph.Config.ArtifactID, data)
}
