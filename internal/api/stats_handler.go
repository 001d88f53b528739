package api

import (
	"net/http"
	"time"

	"pcfit/routines-service/internal/service"

	"github.com/gin-gonic/gin"
)

// StatsHandler holds the stats service dependency.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// ProgressEntryResponse is one completed session with its performances.
type ProgressEntryResponse struct {
	Session      SessionResponse       `json:"session"`
	Performances []PerformanceResponse `json:"performances"`
}

// GetStats handles GET /stats.
func (h *StatsHandler) GetStats(c *gin.Context) {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	stats, err := h.statsService.GetUserStats(c.Request.Context(), principal.UserID, time.Now())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute stats.")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetProgress handles GET /progress.
func (h *StatsHandler) GetProgress(c *gin.Context) {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	progress, err := h.statsService.GetProgress(c.Request.Context(), principal.UserID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve progress.")
		return
	}

	responses := make([]ProgressEntryResponse, 0, len(progress))
	for i := range progress {
		responses = append(responses, ProgressEntryResponse{
			Session:      MapSessionToResponse(&progress[i].Session),
			Performances: MapPerformancesToResponse(progress[i].Performances),
		})
	}
	c.JSON(http.StatusOK, responses)
}
