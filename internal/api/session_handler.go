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

// SessionHandler holds the session service dependency.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// SessionRequest defines the expected JSON for manually creating a session.
type SessionRequest struct {
	RoutineID     string     `json:"routine_id" binding:"required"`
	DayID         string     `json:"day_id" binding:"required"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	Notes         string     `json:"notes"`
}

// CompleteSessionRequest carries the closing details of a session.
type CompleteSessionRequest struct {
	Rating *int   `json:"rating" binding:"omitempty,min=1,max=5"`
	Notes  string `json:"notes"`
}

// PerformanceRequest defines the expected JSON for recording one
// exercise's sets.
type PerformanceRequest struct {
	RoutineExerciseID string             `json:"routine_exercise_id" binding:"required"`
	SetsData          []domain.SetRecord `json:"sets_data" binding:"required,min=1"`
	Feedback          string             `json:"feedback"`
	PainLevel         *int               `json:"pain_level" binding:"omitempty,min=0,max=10"`
}

// SessionResponse is the DTO for returning session details.
type SessionResponse struct {
	ID            string     `json:"id"`
	RoutineID     string     `json:"routine_id"`
	DayID         string     `json:"day_id"`
	ScheduledDate time.Time  `json:"scheduled_date"`
	ActualDate    *time.Time `json:"actual_date,omitempty"`
	StartTime     *time.Time `json:"start_time,omitempty"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	Status        string     `json:"status"`
	Rating        *int       `json:"rating,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// PerformanceResponse is the DTO for returning performance records.
type PerformanceResponse struct {
	ID                string             `json:"id"`
	SessionID         string             `json:"session_id"`
	RoutineExerciseID string             `json:"routine_exercise_id"`
	SetsData          []domain.SetRecord `json:"sets_data"`
	TotalVolume       float64            `json:"total_volume"`
	AvgRPE            float64            `json:"avg_rpe"`
	PRAchieved        bool               `json:"pr_achieved"`
	PRNote            string             `json:"pr_note,omitempty"`
	Feedback          string             `json:"feedback,omitempty"`
	PainLevel         *int               `json:"pain_level,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
}

// MapSessionToResponse converts a domain.WorkoutSession to its DTO.
func MapSessionToResponse(s *domain.WorkoutSession) SessionResponse {
	if s == nil {
		return SessionResponse{}
	}
	return SessionResponse{
		ID:            s.ID.Hex(),
		RoutineID:     s.RoutineID.Hex(),
		DayID:         s.DayID.Hex(),
		ScheduledDate: s.ScheduledDate,
		ActualDate:    s.ActualDate,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		Status:        string(s.Status),
		Rating:        s.Rating,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// MapSessionsToResponse converts a slice of domain.WorkoutSession to DTOs.
func MapSessionsToResponse(sessions []domain.WorkoutSession) []SessionResponse {
	responses := make([]SessionResponse, len(sessions))
	for i := range sessions {
		responses[i] = MapSessionToResponse(&sessions[i])
	}
	return responses
}

// MapPerformanceToResponse converts a domain.ExercisePerformance to its DTO.
func MapPerformanceToResponse(p *domain.ExercisePerformance) PerformanceResponse {
	if p == nil {
		return PerformanceResponse{}
	}
	return PerformanceResponse{
		ID:                p.ID.Hex(),
		SessionID:         p.SessionID.Hex(),
		RoutineExerciseID: p.RoutineExerciseID.Hex(),
		SetsData:          p.SetsData,
		TotalVolume:       p.TotalVolume,
		AvgRPE:            p.AvgRPE,
		PRAchieved:        p.PRAchieved,
		PRNote:            p.PRNote,
		Feedback:          p.Feedback,
		PainLevel:         p.PainLevel,
		CreatedAt:         p.CreatedAt,
	}
}

// MapPerformancesToResponse converts a slice of performances to DTOs.
func MapPerformancesToResponse(perfs []domain.ExercisePerformance) []PerformanceResponse {
	responses := make([]PerformanceResponse, len(perfs))
	for i := range perfs {
		responses[i] = MapPerformanceToResponse(&perfs[i])
	}
	return responses
}

// sessionError maps service errors onto HTTP statuses shared by the
// session handlers.
func sessionError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		abortWithError(c, http.StatusNotFound, "Session not found.")
	case errors.Is(err, service.ErrDayNotFound):
		abortWithError(c, http.StatusNotFound, "Workout day not found.")
	case errors.Is(err, service.ErrExerciseNotFound):
		abortWithError(c, http.StatusNotFound, "Exercise not found.")
	case errors.Is(err, service.ErrNoActiveRoutine):
		abortWithError(c, http.StatusNotFound, "No active routine.")
	case errors.Is(err, service.ErrInvalidTransition):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

// CreateSession handles POST /sessions.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	routineID, err := primitive.ObjectIDFromHex(req.RoutineID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid routine ID format.")
		return
	}
	dayID, err := primitive.ObjectIDFromHex(req.DayID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid day ID format.")
		return
	}

	input := service.SessionInput{RoutineID: routineID, DayID: dayID, Notes: req.Notes}
	if req.ScheduledDate != nil {
		input.ScheduledDate = *req.ScheduledDate
	}
	session, err := h.sessionService.CreateSession(c.Request.Context(), principal.UserID, input)
	if err != nil {
		sessionError(c, err, "Failed to create session.")
		return
	}
	c.JSON(http.StatusCreated, MapSessionToResponse(session))
}

// ListSessions handles GET /sessions.
func (h *SessionHandler) ListSessions(c *gin.Context) {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	sessions, err := h.sessionService.ListSessions(c.Request.Context(), principal.UserID, 0)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve sessions.")
		return
	}
	c.JSON(http.StatusOK, MapSessionsToResponse(sessions))
}

// GetSession handles GET /sessions/:id.
func (h *SessionHandler) GetSession(c *gin.Context) {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	sessionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format.")
		return
	}

	session, err := h.sessionService.GetSession(c.Request.Context(), principal.UserID, sessionID)
	if err != nil {
		sessionError(c, err, "Failed to retrieve session.")
		return
	}
	c.JSON(http.StatusOK, MapSessionToResponse(session))
}

// StartSession handles POST /sessions/:id/start.
func (h *SessionHandler) StartSession(c *gin.Context) {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	sessionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format.")
		return
	}

	session, err := h.sessionService.StartSession(c.Request.Context(), principal.UserID, sessionID)
	if err != nil {
		sessionError(c, err, "Failed to start session.")
		return
	}
	c.JSON(http.StatusOK, MapSessionToResponse(session))
}

// CompleteSession handles POST /sessions/:id/complete.
func (h *SessionHandler) CompleteSession(c *gin.Context) {
	var req CompleteSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	sessionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format.")
		return
	}

	session, err := h.sessionService.CompleteSession(c.Request.Context(), principal.UserID, sessionID, service.CompleteInput{
		Rating: req.Rating,
		Notes:  req.Notes,
	})
	if err != nil {
		sessionError(c, err, "Failed to complete session.")
		return
	}
	c.JSON(http.StatusOK, MapSessionToResponse(session))
}

// SkipSession handles POST /sessions/:id/skip.
func (h *SessionHandler) SkipSession(c *gin.Context) {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	sessionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format.")
		return
	}

	session, err := h.sessionService.SkipSession(c.Request.Context(), principal.UserID, sessionID)
	if err != nil {
		sessionError(c, err, "Failed to skip session.")
		return
	}
	c.JSON(http.StatusOK, MapSessionToResponse(session))
}

// DeleteSession handles DELETE /sessions/:id.
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	sessionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format.")
		return
	}

	if err := h.sessionService.DeleteSession(c.Request.Context(), principal.UserID, sessionID); err != nil {
		sessionError(c, err, "Failed to delete session.")
		return
	}
	c.Status(http.StatusNoContent)
}

// ScheduleWeek handles POST /sessions/schedule-week.
func (h *SessionHandler) ScheduleWeek(c *gin.Context) {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	sessions, err := h.sessionService.ScheduleWeek(c.Request.Context(), principal.UserID, time.Now())
	if err != nil {
		sessionError(c, err, "Failed to schedule the week.")
		return
	}
	c.JSON(http.StatusCreated, MapSessionsToResponse(sessions))
}

// RecordPerformance handles POST /sessions/:id/performances.
func (h *SessionHandler) RecordPerformance(c *gin.Context) {
	var req PerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	sessionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format.")
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(req.RoutineExerciseID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	perf, err := h.sessionService.RecordPerformance(c.Request.Context(), principal.UserID, sessionID, service.PerformanceInput{
		RoutineExerciseID: exerciseID,
		SetsData:          req.SetsData,
		Feedback:          req.Feedback,
		PainLevel:         req.PainLevel,
	})
	if err != nil {
		sessionError(c, err, "Failed to record performance.")
		return
	}
	c.JSON(http.StatusCreated, MapPerformanceToResponse(perf))
}

// ListPerformances handles GET /sessions/:id/performances.
func (h *SessionHandler) ListPerformances(c *gin.Context) {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	sessionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format.")
		return
	}

	perfs, err := h.sessionService.ListPerformances(c.Request.Context(), principal.UserID, sessionID)
	if err != nil {
		sessionError(c, err, "Failed to retrieve performances.")
		return
	}
	c.JSON(http.StatusOK, MapPerformancesToResponse(perfs))
}

// GetPerformance handles GET /performances/:id.
func (h *SessionHandler) GetPerformance(c *gin.Context) {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	performanceID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid performance ID format.")
		return
	}

	perf, err := h.sessionService.GetPerformance(c.Request.Context(), principal.UserID, performanceID)
	if err != nil {
		if errors.Is(err, service.ErrPerformanceNotFound) {
			abortWithError(c, http.StatusNotFound, "Performance record not found.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve performance.")
		}
		return
	}
	c.JSON(http.StatusOK, MapPerformanceToResponse(perf))
}
