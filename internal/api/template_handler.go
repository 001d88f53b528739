package api

import (
	"errors"
	"net/http"

	"pcfit/routines-service/internal/domain"
	"pcfit/routines-service/internal/generator"

	"github.com/gin-gonic/gin"
)

// TemplateHandler serves the admin view of the routine template catalog.
type TemplateHandler struct{}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler() *TemplateHandler {
	return &TemplateHandler{}
}

// QuotaResponse is one muscle group requirement within a template day.
type QuotaResponse struct {
	MuscleGroup string `json:"muscle_group"`
	Count       int    `json:"count"`
}

// TemplateDayResponse is the skeleton of one template day.
type TemplateDayResponse struct {
	Name             string          `json:"name"`
	DayOfWeek        string          `json:"day_of_week"`
	WarmupDuration   int             `json:"warmup_duration"`
	WorkoutDuration  int             `json:"workout_duration"`
	CooldownDuration int             `json:"cooldown_duration"`
	Quotas           []QuotaResponse `json:"quotas"`
}

// TemplateResponse is the DTO for one catalog template.
type TemplateResponse struct {
	Experience    string                `json:"experience"`
	Sex           string                `json:"sex"`
	Name          string                `json:"name"`
	Description   string                `json:"description,omitempty"`
	RoutineType   string                `json:"routine_type"`
	Days          []string              `json:"days"`
	WeeksDuration int                   `json:"weeks_duration"`
	WorkoutDays   []TemplateDayResponse `json:"workout_days"`
}

func mapTemplate(experience domain.Experience, sex domain.Sex, tpl generator.Template) TemplateResponse {
	resp := TemplateResponse{
		Experience:    string(experience),
		Sex:           string(sex),
		Name:          tpl.Name,
		Description:   tpl.Description,
		RoutineType:   string(tpl.RoutineType),
		Days:          tpl.Days,
		WeeksDuration: tpl.WeeksDuration,
		WorkoutDays:   make([]TemplateDayResponse, 0, len(tpl.DayTemplates)),
	}
	for _, day := range tpl.DayTemplates {
		quotas := make([]QuotaResponse, 0, len(day.Quotas))
		for _, q := range day.Quotas {
			quotas = append(quotas, QuotaResponse{MuscleGroup: q.MuscleGroup, Count: q.Count})
		}
		resp.WorkoutDays = append(resp.WorkoutDays, TemplateDayResponse{
			Name:             day.Name,
			DayOfWeek:        day.DayOfWeek,
			WarmupDuration:   day.WarmupDuration,
			WorkoutDuration:  day.WorkoutDuration,
			CooldownDuration: day.CooldownDuration,
			Quotas:           quotas,
		})
	}
	return resp
}

// ListTemplates handles GET /templates.
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	entries := generator.Templates()
	responses := make([]TemplateResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, mapTemplate(entry.Experience, entry.Sex, entry.Template))
	}
	c.JSON(http.StatusOK, responses)
}

// GetTemplate handles GET /templates/:experience/:sex.
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	experience := domain.Experience(c.Param("experience"))
	sex := domain.Sex(c.Param("sex"))

	tpl, err := generator.LookupTemplate(experience, sex)
	if err != nil {
		if errors.Is(err, generator.ErrUnknownExperience) {
			abortWithError(c, http.StatusNotFound, "No template for that experience level.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to resolve template.")
		}
		return
	}
	c.JSON(http.StatusOK, mapTemplate(experience, sex, tpl))
}
