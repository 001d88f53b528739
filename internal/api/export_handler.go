package api

import (
	"errors"
	"net/http"

	"pcfit/routines-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExportHandler holds the export service dependency.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportRoutine handles GET /routines/:id/export.
func (h *ExportHandler) ExportRoutine(c *gin.Context) {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	routineID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid routine ID format.")
		return
	}

	envelope, err := h.exportService.Export(c.Request.Context(), principal.UserID, routineID)
	if err != nil {
		if errors.Is(err, service.ErrRoutineNotFound) {
			abortWithError(c, http.StatusNotFound, "Routine not found.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to export routine.")
		}
		return
	}
	c.JSON(http.StatusOK, envelope)
}

// ImportRoutine handles POST /routines/import.
func (h *ExportHandler) ImportRoutine(c *gin.Context) {
	var envelope service.ExportEnvelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	routine, err := h.exportService.Import(c.Request.Context(), principal.UserID, &envelope)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadExportFormat):
			abortWithError(c, http.StatusBadRequest, "Unsupported export format.")
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, "Export payload is incomplete.")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to import routine.")
		}
		return
	}
	c.JSON(http.StatusCreated, MapRoutineToResponse(routine))
}

// ArchiveRoutineExport handles POST /routines/:id/export/archive.
func (h *ExportHandler) ArchiveRoutineExport(c *gin.Context) {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	routineID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid routine ID format.")
		return
	}

	result, err := h.exportService.ArchiveExport(c.Request.Context(), principal.UserID, routineID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoutineNotFound):
			abortWithError(c, http.StatusNotFound, "Routine not found.")
		case errors.Is(err, service.ErrArchivingDisabled):
			abortWithError(c, http.StatusNotImplemented, "Export archiving is not configured.")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to archive export.")
		}
		return
	}
	c.JSON(http.StatusCreated, result)
}
