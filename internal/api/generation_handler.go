package api

import (
	"errors"
	"net/http"

	"pcfit/routines-service/internal/generator"

	"github.com/gin-gonic/gin"
)

// GenerationHandler holds the routine materializer dependency.
type GenerationHandler struct {
	materializer *generator.Materializer
}

// NewGenerationHandler creates a new GenerationHandler.
func NewGenerationHandler(materializer *generator.Materializer) *GenerationHandler {
	return &GenerationHandler{materializer: materializer}
}

// GenerateSmartRoutine handles POST /generate-smart-routine/. The caller's
// bearer token is forwarded to the users and exercises collaborators.
func (h *GenerationHandler) GenerateSmartRoutine(c *gin.Context) {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	routine, err := h.materializer.GenerateSmartRoutine(c.Request.Context(), principal.UserID, principal.Token)
	if err != nil {
		switch {
		case errors.Is(err, generator.ErrUpstreamUnavailable):
			abortWithError(c, http.StatusServiceUnavailable, "User profile service is unavailable.")
		case errors.Is(err, generator.ErrBadTemplate):
			abortWithError(c, http.StatusBadRequest, "No routine template matches the user profile.")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate routine.")
		}
		return
	}
	c.JSON(http.StatusCreated, MapRoutineToResponse(routine))
}

// GenerateLegacyRoutine handles POST /generate-routine/, the original
// fixed weekly split.
func (h *GenerationHandler) GenerateLegacyRoutine(c *gin.Context) {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	routine, err := h.materializer.GenerateLegacyRoutine(c.Request.Context(), principal.UserID, principal.Token)
	if err != nil {
		var insufficient *generator.InsufficientCatalogError
		switch {
		case errors.Is(err, generator.ErrUpstreamUnavailable):
			abortWithError(c, http.StatusServiceUnavailable, "User profile service is unavailable.")
		case errors.As(err, &insufficient):
			abortWithError(c, http.StatusBadRequest, insufficient.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate routine.")
		}
		return
	}
	c.JSON(http.StatusCreated, MapRoutineToResponse(routine))
}
