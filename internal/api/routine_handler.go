package api

import (
	"errors"
	"net/http"
	"time"

	"pcfit/routines-service/internal/domain"
	"pcfit/routines-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoutineHandler holds the routine service dependency.
type RoutineHandler struct {
	routineService service.RoutineService
}

// NewRoutineHandler creates a new RoutineHandler.
func NewRoutineHandler(routineService service.RoutineService) *RoutineHandler {
	return &RoutineHandler{routineService: routineService}
}

// --- DTOs for API (Data Transfer Objects) ---

// RoutineRequest defines the expected JSON for creating or updating a routine.
type RoutineRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	RoutineType   string   `json:"routine_type" binding:"omitempty,oneof=full_body upper_lower push_pull_legs custom"`
	Difficulty    string   `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Days          []string `json:"days"`
	WeeksDuration int      `json:"weeks_duration" binding:"omitempty,min=1,max=52"`
	IsTemplate    bool     `json:"is_template"`
}

// RoutineResponse is the DTO for returning routine details.
type RoutineResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	RoutineType   string    `json:"routine_type"`
	Difficulty    string    `json:"difficulty,omitempty"`
	Days          []string  `json:"days"`
	WeeksDuration int       `json:"weeks_duration"`
	IsActive      bool      `json:"is_active"`
	IsTemplate    bool      `json:"is_template"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RoutineDetailResponse nests the full day and exercise graph.
type RoutineDetailResponse struct {
	RoutineResponse
	WorkoutDays []DayDetailResponse `json:"workout_days"`
}

// TodayResponse is the active routine's slice for the current weekday.
type TodayResponse struct {
	Routine RoutineResponse    `json:"routine"`
	Day     *DayDetailResponse `json:"day,omitempty"`
	Session *SessionResponse   `json:"session,omitempty"`
	RestDay bool               `json:"rest_day"`
}

// MapRoutineToResponse converts a domain.Routine to RoutineResponse DTO.
func MapRoutineToResponse(r *domain.Routine) RoutineResponse {
	if r == nil {
		return RoutineResponse{}
	}
	days := r.Days
	if days == nil {
		days = []string{}
	}
	return RoutineResponse{
		ID:            r.ID.Hex(),
		Name:          r.Name,
		Description:   r.Description,
		RoutineType:   string(r.RoutineType),
		Difficulty:    string(r.Difficulty),
		Days:          days,
		WeeksDuration: r.WeeksDuration,
		IsActive:      r.IsActive,
		IsTemplate:    r.IsTemplate,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// MapRoutinesToResponse converts a slice of domain.Routine to DTOs.
func MapRoutinesToResponse(routines []domain.Routine) []RoutineResponse {
	responses := make([]RoutineResponse, len(routines))
	for i := range routines {
		responses[i] = MapRoutineToResponse(&routines[i])
	}
	return responses
}

func mapRoutineDetail(detail *service.RoutineDetail) RoutineDetailResponse {
	resp := RoutineDetailResponse{
		RoutineResponse: MapRoutineToResponse(&detail.Routine),
		WorkoutDays:     make([]DayDetailResponse, 0, len(detail.Days)),
	}
	for i := range detail.Days {
		resp.WorkoutDays = append(resp.WorkoutDays, mapDayDetail(&detail.Days[i]))
	}
	return resp
}

func routineInputFromRequest(req RoutineRequest) service.RoutineInput {
	return service.RoutineInput{
		Name:          req.Name,
		Description:   req.Description,
		RoutineType:   domain.RoutineType(req.RoutineType),
		Difficulty:    domain.Experience(req.Difficulty),
		Days:          req.Days,
		WeeksDuration: req.WeeksDuration,
		IsTemplate:    req.IsTemplate,
	}
}

// --- Handler Methods ---

// CreateRoutine handles POST /routines.
func (h *RoutineHandler) CreateRoutine(c *gin.Context) {
	var req RoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	routine, err := h.routineService.CreateRoutine(c.Request.Context(), principal.UserID, routineInputFromRequest(req))
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create routine.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapRoutineToResponse(routine))
}

// ListRoutines handles GET /routines. Pass ?all=true to see deactivated
// routines too.
func (h *RoutineHandler) ListRoutines(c *gin.Context) {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	includeInactive := c.Query("all") == "true"

	routines, err := h.routineService.ListRoutines(c.Request.Context(), principal.UserID, includeInactive)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve routines.")
		return
	}
	c.JSON(http.StatusOK, MapRoutinesToResponse(routines))
}

// GetRoutine handles GET /routines/:id, returning the full graph.
func (h *RoutineHandler) GetRoutine(c *gin.Context) {
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

	detail, err := h.routineService.GetRoutineDetail(c.Request.Context(), principal.UserID, routineID)
	if err != nil {
		if errors.Is(err, service.ErrRoutineNotFound) {
			abortWithError(c, http.StatusNotFound, "Routine not found.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve routine.")
		}
		return
	}
	c.JSON(http.StatusOK, mapRoutineDetail(detail))
}

// UpdateRoutine handles PUT /routines/:id.
func (h *RoutineHandler) UpdateRoutine(c *gin.Context) {
	var req RoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
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

	routine, err := h.routineService.UpdateRoutine(c.Request.Context(), principal.UserID, routineID, routineInputFromRequest(req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoutineNotFound):
			abortWithError(c, http.StatusNotFound, "Routine not found.")
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update routine.")
		}
		return
	}
	c.JSON(http.StatusOK, MapRoutineToResponse(routine))
}

// DeleteRoutine handles DELETE /routines/:id.
func (h *RoutineHandler) DeleteRoutine(c *gin.Context) {
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

	if err := h.routineService.DeleteRoutine(c.Request.Context(), principal.UserID, routineID); err != nil {
		if errors.Is(err, service.ErrRoutineNotFound) {
			abortWithError(c, http.StatusNotFound, "Routine not found.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete routine.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// ActivateRoutine handles POST /routines/:id/activate.
func (h *RoutineHandler) ActivateRoutine(c *gin.Context) {
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

	routine, err := h.routineService.ActivateRoutine(c.Request.Context(), principal.UserID, routineID)
	if err != nil {
		if errors.Is(err, service.ErrRoutineNotFound) {
			abortWithError(c, http.StatusNotFound, "Routine not found.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to activate routine.")
		}
		return
	}
	c.JSON(http.StatusOK, MapRoutineToResponse(routine))
}

// TodayRoutine handles GET /today.
func (h *RoutineHandler) TodayRoutine(c *gin.Context) {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	view, err := h.routineService.TodayRoutine(c.Request.Context(), principal.UserID, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrNoActiveRoutine) {
			abortWithError(c, http.StatusNotFound, "No active routine.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to resolve today's workout.")
		}
		return
	}

	resp := TodayResponse{
		Routine: MapRoutineToResponse(view.Routine),
		RestDay: view.Day == nil,
	}
	if view.Day != nil {
		day := mapDayDetail(view.Day)
		resp.Day = &day
	}
	if view.Session != nil {
		session := MapSessionToResponse(view.Session)
		resp.Session = &session
	}
	c.JSON(http.StatusOK, resp)
}
