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

// DayHandler holds the routine service dependency for day routes.
type DayHandler struct {
	routineService service.RoutineService
}

// NewDayHandler creates a new DayHandler.
func NewDayHandler(routineService service.RoutineService) *DayHandler {
	return &DayHandler{routineService: routineService}
}

// DayRequest defines the expected JSON for creating or updating a day.
type DayRequest struct {
	DayName          string `json:"day_name" binding:"required"`
	DayOfWeek        string `json:"day_of_week" binding:"omitempty,oneof=lunes martes miercoles jueves viernes sabado domingo"`
	WarmupDuration   int    `json:"warmup_duration" binding:"omitempty,min=0"`
	WorkoutDuration  int    `json:"workout_duration" binding:"omitempty,min=0"`
	CooldownDuration int    `json:"cooldown_duration" binding:"omitempty,min=0"`
	Notes            string `json:"notes"`
}

// DayResponse is the DTO for returning workout day details.
type DayResponse struct {
	ID               string    `json:"id"`
	RoutineID        string    `json:"routine_id"`
	DayName          string    `json:"day_name"`
	DayOfWeek        string    `json:"day_of_week,omitempty"`
	Order            int       `json:"order"`
	WarmupDuration   int       `json:"warmup_duration"`
	WorkoutDuration  int       `json:"workout_duration"`
	CooldownDuration int       `json:"cooldown_duration"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DayDetailResponse nests the day's exercise slots.
type DayDetailResponse struct {
	DayResponse
	Exercises []ExerciseResponse `json:"exercises"`
}

// MapDayToResponse converts a domain.WorkoutDay to DayResponse DTO.
func MapDayToResponse(d *domain.WorkoutDay) DayResponse {
	if d == nil {
		return DayResponse{}
	}
	return DayResponse{
		ID:               d.ID.Hex(),
		RoutineID:        d.RoutineID.Hex(),
		DayName:          d.DayName,
		DayOfWeek:        d.DayOfWeek,
		Order:            d.Order,
		WarmupDuration:   d.WarmupDuration,
		WorkoutDuration:  d.WorkoutDuration,
		CooldownDuration: d.CooldownDuration,
		Notes:            d.Notes,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

// MapDaysToResponse converts a slice of domain.WorkoutDay to DTOs.
func MapDaysToResponse(days []domain.WorkoutDay) []DayResponse {
	responses := make([]DayResponse, len(days))
	for i := range days {
		responses[i] = MapDayToResponse(&days[i])
	}
	return responses
}

func mapDayDetail(detail *service.DayDetail) DayDetailResponse {
	return DayDetailResponse{
		DayResponse: MapDayToResponse(&detail.Day),
		Exercises:   MapExercisesToResponse(detail.Exercises),
	}
}

func dayInputFromRequest(req DayRequest) service.DayInput {
	return service.DayInput{
		DayName:          req.DayName,
		DayOfWeek:        req.DayOfWeek,
		WarmupDuration:   req.WarmupDuration,
		WorkoutDuration:  req.WorkoutDuration,
		CooldownDuration: req.CooldownDuration,
		Notes:            req.Notes,
	}
}

// AddDay handles POST /routines/:id/days.
func (h *DayHandler) AddDay(c *gin.Context) {
	var req DayRequest
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

	day, err := h.routineService.AddDay(c.Request.Context(), principal.UserID, routineID, dayInputFromRequest(req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoutineNotFound):
			abortWithError(c, http.StatusNotFound, "Routine not found.")
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to add workout day.")
		}
		return
	}
	c.JSON(http.StatusCreated, MapDayToResponse(day))
}

// ListDays handles GET /routines/:id/days.
func (h *DayHandler) ListDays(c *gin.Context) {
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

	days, err := h.routineService.ListDays(c.Request.Context(), principal.UserID, routineID)
	if err != nil {
		if errors.Is(err, service.ErrRoutineNotFound) {
			abortWithError(c, http.StatusNotFound, "Routine not found.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workout days.")
		}
		return
	}
	c.JSON(http.StatusOK, MapDaysToResponse(days))
}

// GetDay handles GET /days/:id.
func (h *DayHandler) GetDay(c *gin.Context) {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	dayID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid day ID format.")
		return
	}

	detail, err := h.routineService.GetDay(c.Request.Context(), principal.UserID, dayID)
	if err != nil {
		if errors.Is(err, service.ErrDayNotFound) {
			abortWithError(c, http.StatusNotFound, "Workout day not found.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workout day.")
		}
		return
	}
	c.JSON(http.StatusOK, mapDayDetail(detail))
}

// UpdateDay handles PUT /days/:id.
func (h *DayHandler) UpdateDay(c *gin.Context) {
	var req DayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	dayID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid day ID format.")
		return
	}

	day, err := h.routineService.UpdateDay(c.Request.Context(), principal.UserID, dayID, dayInputFromRequest(req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDayNotFound):
			abortWithError(c, http.StatusNotFound, "Workout day not found.")
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update workout day.")
		}
		return
	}
	c.JSON(http.StatusOK, MapDayToResponse(day))
}

// DeleteDay handles DELETE /days/:id.
func (h *DayHandler) DeleteDay(c *gin.Context) {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	dayID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid day ID format.")
		return
	}

	if err := h.routineService.DeleteDay(c.Request.Context(), principal.UserID, dayID); err != nil {
		if errors.Is(err, service.ErrDayNotFound) {
			abortWithError(c, http.StatusNotFound, "Workout day not found.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete workout day.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}
