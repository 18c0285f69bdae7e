package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"classforge"
	"classforge/compiler/gen"
	"classforge/internal/responses"
	"classforge/internal/services"
)

// fail maps service errors onto HTTP statuses: missing resources are 404,
// rejected input is 400, everything else is 500.
func fail(c *gin.Context, err error, message string) {
	switch {
	case classforge.IsNotFound(err):
		responses.Fail(c, http.StatusNotFound, err, message)
	case errors.Is(err, services.ErrInvalidSnapshot),
		errors.Is(err, gen.ErrNoClasses),
		errors.Is(err, gen.ErrInvalidDiagram),
		gen.IsSchemaError(err),
		gen.IsConfigError(err):
		responses.Fail(c, http.StatusBadRequest, err, message)
	default:
		responses.Fail(c, http.StatusInternalServerError, err, message)
	}
}
