package api

import (
	"errors"
	"net/http"

	"pcfit/routines-service/internal/domain"
	"pcfit/routines-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseHandler holds the routine service dependency for exercise
// slot routes.
type ExerciseHandler struct {
	routineService service.RoutineService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(routineService service.RoutineService) *ExerciseHandler {
	return &ExerciseHandler{routineService: routineService}
}

// ExerciseRequest defines the expected JSON for creating or updating an
// exercise slot.
type ExerciseRequest struct {
	ExerciseID         string   `json:"exercise_id"`
	ExerciseName       string   `json:"exercise_name" binding:"required"`
	ExerciseMuscleGrp  string   `json:"exercise_muscle_group"`
	ExerciseDifficulty string   `json:"exercise_difficulty"`
	ExerciseEquipment  string   `json:"exercise_equipment"`
	ImageURL           string   `json:"image_url" binding:"omitempty,url"`
	Sets               int      `json:"sets" binding:"required,min=1,max=20"`
	Reps               string   `json:"reps" binding:"required"`
	RestSeconds        int      `json:"rest_seconds" binding:"omitempty,min=0"`
	SetType            string   `json:"set_type" binding:"omitempty,oneof=straight pyramid drop superset"`
	TargetWeight       *float64 `json:"target_weight"`
	TargetRPE          *float64 `json:"target_rpe" binding:"omitempty"`
	Notes              string   `json:"notes"`
	CoachingTips       string   `json:"coaching_tips"`
}

// ReorderRequest carries the desired exercise id sequence for one day.
type ReorderRequest struct {
	ExerciseIDs []string `json:"exercise_ids" binding:"required,min=1"`
}

// ExerciseResponse is the DTO for returning exercise slot details.
type ExerciseResponse struct {
	ID                 string   `json:"id"`
	DayID              string   `json:"day_id"`
	RoutineID          string   `json:"routine_id"`
	ExerciseID         string   `json:"exercise_id,omitempty"`
	ExerciseName       string   `json:"exercise_name"`
	ExerciseMuscleGrp  string   `json:"exercise_muscle_group,omitempty"`
	ExerciseDifficulty string   `json:"exercise_difficulty,omitempty"`
	ExerciseEquipment  string   `json:"exercise_equipment,omitempty"`
	ImageURL           string   `json:"image_url,omitempty"`
	Order              int      `json:"order"`
	Sets               int      `json:"sets"`
	Reps               string   `json:"reps"`
	RestSeconds        int      `json:"rest_seconds"`
	SetType            string   `json:"set_type"`
	TargetWeight       *float64 `json:"target_weight,omitempty"`
	TargetRPE          *float64 `json:"target_rpe,omitempty"`
	Notes              string   `json:"notes,omitempty"`
	CoachingTips       string   `json:"coaching_tips,omitempty"`
}

// MapExerciseToResponse converts a domain.RoutineExercise to its DTO.
func MapExerciseToResponse(ex *domain.RoutineExercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:                 ex.ID.Hex(),
		DayID:              ex.DayID.Hex(),
		RoutineID:          ex.RoutineID.Hex(),
		ExerciseID:         ex.ExerciseID,
		ExerciseName:       ex.ExerciseName,
		ExerciseMuscleGrp:  ex.ExerciseMuscleGrp,
		ExerciseDifficulty: ex.ExerciseDifficulty,
		ExerciseEquipment:  ex.ExerciseEquipment,
		ImageURL:           ex.ImageURL,
		Order:              ex.Order,
		Sets:               ex.Sets,
		Reps:               ex.Reps,
		RestSeconds:        ex.RestSeconds,
		SetType:            string(ex.SetType),
		TargetWeight:       ex.TargetWeight,
		TargetRPE:          ex.TargetRPE,
		Notes:              ex.Notes,
		CoachingTips:       ex.CoachingTips,
	}
}

// MapExercisesToResponse converts a slice of domain.RoutineExercise to DTOs.
func MapExercisesToResponse(exercises []domain.RoutineExercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	return responses
}

func exerciseInputFromRequest(req ExerciseRequest) service.ExerciseInput {
	return service.ExerciseInput{
		ExerciseID:         req.ExerciseID,
		ExerciseName:       req.ExerciseName,
		ExerciseMuscleGrp:  req.ExerciseMuscleGrp,
		ExerciseDifficulty: req.ExerciseDifficulty,
		ExerciseEquipment:  req.ExerciseEquipment,
		ImageURL:           req.ImageURL,
		Sets:               req.Sets,
		Reps:               req.Reps,
		RestSeconds:        req.RestSeconds,
		SetType:            domain.SetType(req.SetType),
		TargetWeight:       req.TargetWeight,
		TargetRPE:          req.TargetRPE,
		Notes:              req.Notes,
		CoachingTips:       req.CoachingTips,
	}
}

// AddExercise handles POST /days/:id/exercises.
func (h *ExerciseHandler) AddExercise(c *gin.Context) {
	var req ExerciseRequest
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

	exercise, err := h.routineService.AddExercise(c.Request.Context(), principal.UserID, dayID, exerciseInputFromRequest(req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDayNotFound):
			abortWithError(c, http.StatusNotFound, "Workout day not found.")
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to add exercise.")
		}
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// ListExercises handles GET /days/:id/exercises.
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
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

	exercises, err := h.routineService.ListExercises(c.Request.Context(), principal.UserID, dayID)
	if err != nil {
		if errors.Is(err, service.ErrDayNotFound) {
			abortWithError(c, http.StatusNotFound, "Workout day not found.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises.")
		}
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// GetExercise handles GET /exercises/:id.
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	exercise, err := h.routineService.GetExercise(c.Request.Context(), principal.UserID, exerciseID)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, "Exercise not found.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercise.")
		}
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// UpdateExercise handles PUT /exercises/:id.
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	exercise, err := h.routineService.UpdateExercise(c.Request.Context(), principal.UserID, exerciseID, exerciseInputFromRequest(req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExerciseNotFound):
			abortWithError(c, http.StatusNotFound, "Exercise not found.")
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update exercise.")
		}
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// DeleteExercise handles DELETE /exercises/:id.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	if err := h.routineService.DeleteExercise(c.Request.Context(), principal.UserID, exerciseID); err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, "Exercise not found.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete exercise.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// ReorderExercises handles PUT /days/:id/exercises/reorder.
func (h *ExerciseHandler) ReorderExercises(c *gin.Context) {
	var req ReorderRequest
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

	orderedIDs := make([]primitive.ObjectID, 0, len(req.ExerciseIDs))
	for _, raw := range req.ExerciseIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format: "+raw)
			return
		}
		orderedIDs = append(orderedIDs, id)
	}

	exercises, err := h.routineService.ReorderExercises(c.Request.Context(), principal.UserID, dayID, orderedIDs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDayNotFound):
			abortWithError(c, http.StatusNotFound, "Workout day not found.")
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, "Exercise ids must cover the day exactly once.")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to reorder exercises.")
		}
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}
