package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitlink/coaching-app/internal/api"
	"fitlink/coaching-app/internal/config"
	"fitlink/coaching-app/internal/repository/mongo"
	"fitlink/coaching-app/internal/service"
	"fitlink/coaching-app/internal/storage"

	"github.com/gin-gonic/gin"
)

// @title Coaching App API
// @version 1.0
// @description API for trainer and client coaching: connection requests, workout programs, check-ins, messaging and video sessions.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting coaching app server...")

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
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		if err := mongo.EnsureProfileIndexes(ctx, appDB); err != nil {
			log.Printf("WARN: profile index creation: %v", err)
		}
		if err := mongo.EnsureRequestIndexes(ctx, appDB.Collection("trainer_requests")); err != nil {
			log.Printf("WARN: request index creation: %v", err)
		}
		if err := mongo.EnsureProgramIndexes(ctx, appDB.Collection("workout_programs")); err != nil {
			log.Printf("WARN: program index creation: %v", err)
		}
		if err := mongo.EnsureCheckInIndexes(ctx, appDB.Collection("check_ins")); err != nil {
			log.Printf("WARN: check-in index creation: %v", err)
		}
		if err := mongo.EnsureMessageIndexes(ctx, appDB.Collection("messages")); err != nil {
			log.Printf("WARN: message index creation: %v", err)
		}
		if err := mongo.EnsureSessionIndexes(ctx, appDB.Collection("video_sessions")); err != nil {
			log.Printf("WARN: session index creation: %v", err)
		}
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	profileRepo := mongo.NewMongoProfileRepository(appDB)
	requestRepo := mongo.NewMongoRequestRepository(appDB)
	programRepo := mongo.NewMongoProgramRepository(appDB)
	checkInRepo := mongo.NewMongoCheckInRepository(appDB)
	messageRepo := mongo.NewMongoMessageRepository(appDB)
	sessionRepo := mongo.NewMongoSessionRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(profileRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	profileService := service.NewProfileService(profileRepo, fileStorage)
	connectionService := service.NewConnectionService(requestRepo, profileRepo)
	programService := service.NewProgramService(programRepo, profileRepo)
	checkInService := service.NewCheckInService(checkInRepo, profileRepo, fileStorage)
	messageService := service.NewMessageService(messageRepo, profileRepo)
	sessionService := service.NewSessionService(sessionRepo, profileRepo)

	// --- Initialize Gin Engine ---
	router := gin.Default()

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret,
		authService, profileService, connectionService,
		programService, checkInService, messageService, sessionService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

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
