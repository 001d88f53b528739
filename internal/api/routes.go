package api

import (
	"context"
	"net/http"
	"time"

	"pcfit/routines-service/internal/config"
	"pcfit/routines-service/internal/generator"
	"pcfit/routines-service/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the full HTTP surface under /api/v1. The health
// check stays outside the authenticated group so load balancers can
// probe without a token.
func SetupRoutes(
	router *gin.Engine,
	cfg config.Config,
	routineService service.RoutineService,
	sessionService service.SessionService,
	statsService service.StatsService,
	exportService service.ExportService,
	materializer *generator.Materializer,
	healthCheck func(ctx context.Context) error,
) {
	routineHandler := NewRoutineHandler(routineService)
	dayHandler := NewDayHandler(routineService)
	exerciseHandler := NewExerciseHandler(routineService)
	sessionHandler := NewSessionHandler(sessionService)
	statsHandler := NewStatsHandler(statsService)
	exportHandler := NewExportHandler(exportService)
	generationHandler := NewGenerationHandler(materializer)
	templateHandler := NewTemplateHandler()

	authMiddleware := AuthMiddleware(cfg.JWT.Secret)
	adminMiddleware := AdminMiddleware(cfg.Admin.CredentialHash)

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := healthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiV1 := router.Group("/api/v1")

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Generation ---
		protected.POST("/generate-smart-routine/", generationHandler.GenerateSmartRoutine)
		protected.POST("/generate-routine/", generationHandler.GenerateLegacyRoutine)

		protected.GET("/today", routineHandler.TodayRoutine)

		// --- Routines ---
		routineGroup := protected.Group("/routines")
		{
			routineGroup.POST("", routineHandler.CreateRoutine)
			routineGroup.GET("", routineHandler.ListRoutines)
			routineGroup.POST("/import", exportHandler.ImportRoutine)
			routineGroup.GET("/:id", routineHandler.GetRoutine)
			routineGroup.PUT("/:id", routineHandler.UpdateRoutine)
			routineGroup.DELETE("/:id", routineHandler.DeleteRoutine)
			routineGroup.POST("/:id/activate", routineHandler.ActivateRoutine)
			routineGroup.POST("/:id/days", dayHandler.AddDay)
			routineGroup.GET("/:id/days", dayHandler.ListDays)
			routineGroup.GET("/:id/export", exportHandler.ExportRoutine)
			routineGroup.POST("/:id/export/archive", exportHandler.ArchiveRoutineExport)
		}

		// --- Workout Days ---
		dayGroup := protected.Group("/days")
		{
			dayGroup.GET("/:id", dayHandler.GetDay)
			dayGroup.PUT("/:id", dayHandler.UpdateDay)
			dayGroup.DELETE("/:id", dayHandler.DeleteDay)
			dayGroup.POST("/:id/exercises", exerciseHandler.AddExercise)
			dayGroup.GET("/:id/exercises", exerciseHandler.ListExercises)
			dayGroup.PUT("/:id/exercises/reorder", exerciseHandler.ReorderExercises)
		}

		// --- Exercise Slots ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.PUT("/:id", exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)
		}

		// --- Sessions ---
		sessionGroup := protected.Group("/sessions")
		{
			sessionGroup.POST("", sessionHandler.CreateSession)
			sessionGroup.GET("", sessionHandler.ListSessions)
			sessionGroup.POST("/schedule-week", sessionHandler.ScheduleWeek)
			sessionGroup.GET("/:id", sessionHandler.GetSession)
			sessionGroup.DELETE("/:id", sessionHandler.DeleteSession)
			sessionGroup.POST("/:id/start", sessionHandler.StartSession)
			sessionGroup.POST("/:id/complete", sessionHandler.CompleteSession)
			sessionGroup.POST("/:id/skip", sessionHandler.SkipSession)
			sessionGroup.POST("/:id/performances", sessionHandler.RecordPerformance)
			sessionGroup.GET("/:id/performances", sessionHandler.ListPerformances)
		}

		protected.GET("/performances/:id", sessionHandler.GetPerformance)

		// --- Stats ---
		protected.GET("/stats", statsHandler.GetStats)
		protected.GET("/progress", statsHandler.GetProgress)

		// --- Template Administration ---
		templateGroup := protected.Group("/templates")
		templateGroup.Use(adminMiddleware)
		{
			templateGroup.GET("", templateHandler.ListTemplates)
			templateGroup.GET("/:experience/:sex", templateHandler.GetTemplate)
		}
	}
}
