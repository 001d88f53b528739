package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pcfit/routines-service/internal/api"
	"pcfit/routines-service/internal/clients"
	"pcfit/routines-service/internal/config"
	"pcfit/routines-service/internal/generator"
	"pcfit/routines-service/internal/repository/mongo"
	"pcfit/routines-service/internal/service"
	"pcfit/routines-service/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Routines Service...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() { // Run index creation concurrently/in background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureRoutineIndexes(ctx, appDB.Collection("routines"))
		mongo.EnsureWorkoutDayIndexes(ctx, appDB.Collection("workout_days"))
		mongo.EnsureRoutineExerciseIndexes(ctx, appDB.Collection("routine_exercises"))
		mongo.EnsureSessionIndexes(ctx, appDB.Collection("workout_sessions"))
		mongo.EnsurePerformanceIndexes(ctx, appDB.Collection("exercise_performances"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage (optional) ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled {
		log.Println("Initializing file storage service...")
		fileStorage, err = storage.NewS3Storage(cfg.S3)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
		}
	} else {
		log.Println("File storage disabled; export archiving unavailable.")
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	routineRepo := mongo.NewMongoRoutineRepository(appDB)
	dayRepo := mongo.NewMongoWorkoutDayRepository(appDB)
	exerciseRepo := mongo.NewMongoRoutineExerciseRepository(appDB)
	sessionRepo := mongo.NewMongoSessionRepository(appDB)
	performanceRepo := mongo.NewMongoPerformanceRepository(appDB)
	txManager := mongo.NewMongoTxManager(dbClient)

	// --- Initialize Collaborator Clients ---
	log.Println("Initializing collaborator clients...")
	usersClient := clients.NewUsersClient(cfg.Services.UsersURL, cfg.Services.Timeout)
	exercisesClient := clients.NewExercisesClient(cfg.Services.ExercisesURL, cfg.Services.Timeout)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	materializer := generator.NewMaterializer(usersClient, exercisesClient, routineRepo, dayRepo, exerciseRepo, txManager, rng)
	routineService := service.NewRoutineService(routineRepo, dayRepo, exerciseRepo, sessionRepo, txManager)
	sessionService := service.NewSessionService(sessionRepo, performanceRepo, routineRepo, dayRepo, exerciseRepo, txManager)
	statsService := service.NewStatsService(sessionRepo, performanceRepo, exerciseRepo)
	exportService := service.NewExportService(routineRepo, dayRepo, exerciseRepo, txManager, fileStorage)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg, routineService, sessionService, statsService, exportService, materializer, func(ctx context.Context) error {
		return mongo.Ping(ctx, dbClient)
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
