package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/lifeweeks-backend/internal/data/repos"
	"github.com/yungbote/lifeweeks-backend/internal/db"
	"github.com/yungbote/lifeweeks-backend/internal/http/handlers"
	"github.com/yungbote/lifeweeks-backend/internal/observability"
	"github.com/yungbote/lifeweeks-backend/internal/pkg/logger"
	"github.com/yungbote/lifeweeks-backend/internal/server"
	"github.com/yungbote/lifeweeks-backend/internal/services"
	"github.com/yungbote/lifeweeks-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing (opt-in)
	shutdownOtel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "lifeweeks-backend",
		Environment: utils.GetEnv("DEPLOY_ENV", "local", log),
		Version:     utils.GetEnv("SERVICE_VERSION", "dev", log),
	})
	if shutdownOtel != nil {
		defer func() { _ = shutdownOtel(context.Background()) }()
	}

	// Database
	dbService, err := db.NewService(log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Error("Database migration failed", "error", err)
		os.Exit(1)
	}
	theDB := dbService.DB()

	// Repos
	log.Info("Setting up repos...")
	profileRepo := repos.NewProfileRepo(theDB, log)
	weekNoteRepo := repos.NewWeekNoteRepo(theDB, log)

	// Services
	log.Info("Setting up services...")
	speechProvider, err := services.NewSpeechProvider(log)
	if err != nil {
		log.Error("Could not init SpeechProvider", "error", err)
		os.Exit(1)
	}
	defer speechProvider.Close()

	profileService := services.NewProfileService(theDB, log, profileRepo)
	calendarService := services.NewCalendarService(theDB, log, profileRepo, weekNoteRepo)
	noteService := services.NewNoteService(theDB, log, weekNoteRepo, speechProvider)

	// Handlers
	log.Info("Setting up handlers...")
	healthHandler := handlers.NewHealthHandler()
	profileHandler := handlers.NewProfileHandler(profileService)
	calendarHandler := handlers.NewCalendarHandler(calendarService)
	weekNoteHandler := handlers.NewWeekNoteHandler(noteService)

	// Router
	log.Info("Setting up router...")
	router := server.NewRouter(server.RouterConfig{
		Log:             log,
		HealthHandler:   healthHandler,
		ProfileHandler:  profileHandler,
		CalendarHandler: calendarHandler,
		WeekNoteHandler: weekNoteHandler,
	})

	port := utils.GetEnv("PORT", "8000", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
