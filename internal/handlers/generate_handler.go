package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"classforge/compiler/gen"
	"classforge/compiler/load"
	"classforge/internal/responses"
	"classforge/internal/services"
)

// GenerateHandler turns a submitted diagram document into a downloadable
// backend project.
type GenerateHandler struct {
	generateService *services.GenerateService
}

func NewGenerateHandler(generateService *services.GenerateService) *GenerateHandler {
	return &GenerateHandler{generateService: generateService}
}

// Generate handles POST /api/v1/generate. The body is the diagram document
// (JSON or YAML); ?format=zip (default) streams the archive, ?format=json
// returns the file map.
func (h *GenerateHandler) Generate(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Failed to read request body")
		return
	}

	diagram, err := load.Parse(body)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid diagram document")
		return
	}

	opts := generateOptions(c)
	switch c.DefaultQuery("format", "zip") {
	case "json":
		project, graph, err := h.generateService.Generate(c.Request.Context(), diagram, opts...)
		if err != nil {
			fail(c, err, "Failed to generate project")
			return
		}
		responses.Success(c, http.StatusOK, projectPayload(project, graph), "Project generated successfully")
	case "zip":
		data, graph, err := h.generateService.GenerateArchive(c.Request.Context(), diagram, opts...)
		if err != nil {
			fail(c, err, "Failed to generate project")
			return
		}
		writeArchive(c, graph.Config.ArtifactID, data)
	default:
		responses.Fail(c, http.StatusBadRequest, nil, "Unknown format, expected zip or json")
	}
}

// generateOptions lifts generator settings off the query string.
func generateOptions(c *gin.Context) []gen.Option {
	var opts []gen.Option
	if v := c.Query("artifact"); v != "" {
		opts = append(opts, gen.WithArtifactID(v))
	}
	if v := c.Query("group"); v != "" {
		opts = append(opts, gen.WithGroupID(v))
	}
	if v := c.Query("package"); v != "" {
		opts = append(opts, gen.WithBasePackage(v))
	}
	return opts
}

func projectPayload(project gen.Project, graph *gen.Graph) gin.H {
	files := make(map[string]string, len(project))
	for _, path := range project.Paths() {
		files[path] = string(project[path])
	}
	return gin.H{
		"files":    files,
		"warnings": graph.Warnings,
	}
}

func writeArchive(c *gin.Context, name string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".zip"))
	c.Data(http.StatusOK, "application/zip", data)
}
