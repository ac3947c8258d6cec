package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/productzak/fairway-tracker/internal/adapters/ai"
	"github.com/productzak/fairway-tracker/internal/adapters/cache"
	"github.com/productzak/fairway-tracker/internal/adapters/courseapi"
	adapterHTTP "github.com/productzak/fairway-tracker/internal/adapters/handler/http"
	"github.com/productzak/fairway-tracker/internal/adapters/repository"
	"github.com/productzak/fairway-tracker/internal/adapters/transcriber"
	"github.com/productzak/fairway-tracker/internal/core/domain"
	"github.com/productzak/fairway-tracker/internal/core/services"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	startTime := time.Now()

	_ = godotenv.Load()

	serverPort := getEnv("PORT", "5000")
	dataDir := getEnv("DATA_DIR", "data")

	var sessionRepo domain.SessionRepository
	var teeStore domain.CustomTeeStore
	var db *sqlx.DB

	backend := getEnv("STORAGE_BACKEND", "file")

	switch backend {
	case "postgres":
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
			getEnv("DB_HOST", "localhost"), getEnv("DB_PORT", "5432"),
			os.Getenv("DB_NAME"))

		log.Println("Connecting to database...")

		var err error
		db, err = sqlx.Connect("pgx", dsn)
		if err != nil {
			log.Fatalf("Critical: Failed to connect to database: %v", err)
		}
		defer db.Close()

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		log.Println("Database connected successfully.")

		sessionRepo = repository.NewPostgresSessionRepository(db)

		// Custom tees stay on disk; they are tiny and rarely written.
		fts, err := repository.NewFileTeeStore(dataDir)
		if err != nil {
			log.Fatalf("Critical: Failed to prepare data dir %s: %v", dataDir, err)
		}
		teeStore = fts

	case "file":
		fileRepo, err := repository.NewFileSessionRepository(dataDir)
		if err != nil {
			log.Fatalf("Critical: Failed to prepare data dir %s: %v", dataDir, err)
		}
		sessionRepo = fileRepo

		fts, err := repository.NewFileTeeStore(dataDir)
		if err != nil {
			log.Fatalf("Critical: Failed to prepare data dir %s: %v", dataDir, err)
		}
		teeStore = fts

	default:
		log.Fatalf("Critical: Unknown STORAGE_BACKEND %q (want file or postgres)", backend)
	}

	var redisClient *redis.Client
	if host := os.Getenv("REDIS_HOST"); host != "" {
		rdb, err := cache.NewRedisClient(host, getEnv("REDIS_PORT", "6379"), os.Getenv("REDIS_PASSWORD"), 0)
		if err != nil {
			log.Printf("Redis unavailable, continuing without cache: %v", err)
		} else {
			redisClient = rdb
			defer redisClient.Close()
			log.Println("Redis connected successfully.")
		}
	}

	var courseCache domain.CourseCache
	if redisClient != nil {
		courseCache = cache.NewRedisCourseCache(redisClient)
	}

	var notesParser services.NotesParser
	var memoParser services.MemoParser
	var completer services.Completer
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		anthropic := ai.NewClient(key)
		notesParser = anthropic
		memoParser = anthropic
		completer = anthropic
	} else {
		log.Println("ANTHROPIC_API_KEY not set, AI features disabled.")
	}

	courseClient := courseapi.NewClient(os.Getenv("GOLF_COURSE_API_KEY"))

	sessionService := services.NewSessionService(sessionRepo, notesParser)
	statsService := services.NewStatsService(sessionRepo)
	courseService := services.NewCourseService(courseClient, courseCache, teeStore)
	coachService := services.NewCoachService(sessionRepo, completer)
	transcribeService := services.NewTranscribeService(transcriber.NewWhisperTranscriber(), memoParser)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		SessionHandler:    adapterHTTP.NewSessionHandler(sessionService),
		StatsHandler:      adapterHTTP.NewStatsHandler(statsService),
		CourseHandler:     adapterHTTP.NewCourseHandler(courseService),
		CoachHandler:      adapterHTTP.NewCoachHandler(coachService),
		TranscribeHandler: adapterHTTP.NewTranscribeHandler(transcribeService),
		FrontendURL:       os.Getenv("FRONTEND_URL"),
		StorageBackend:    backend,
		Redis:             redisClient,
		StartTime:         startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Fairway Tracker API running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
