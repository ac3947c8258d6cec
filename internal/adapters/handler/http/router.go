package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/productzak/fairway-tracker/internal/adapters/handler/http/middleware"
)

type RouterDependencies struct {
	SessionHandler    *SessionHandler
	StatsHandler      *StatsHandler
	CourseHandler     *CourseHandler
	CoachHandler      *CoachHandler
	TranscribeHandler *TranscribeHandler

	FrontendURL    string
	StorageBackend string
	Redis          *redis.Client
	StartTime      time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.Default()

	allowedOrigins := map[string]bool{"http://localhost:3000": true}
	if deps.FrontendURL != "" {
		allowedOrigins[deps.FrontendURL] = true
	}

	router.Use(func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); allowedOrigins[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	if deps.Redis != nil {
		router.Use(middleware.RateLimiterMiddleware(deps.Redis, 100, 1*time.Minute))
	}

	router.GET("/health", func(c *gin.Context) {
		redisStatus := "disabled"
		if deps.Redis != nil {
			redisStatus = "connected"
			if deps.Redis.Ping(c.Request.Context()).Err() != nil {
				redisStatus = "unreachable"
			}
		}

		storage := deps.StorageBackend
		if storage == "" {
			storage = "file"
		}

		c.JSON(200, gin.H{
			"status":  "ok",
			"storage": storage,
			"redis":   redisStatus,
			"uptime":  time.Since(deps.StartTime).String(),
		})
	})

	api := router.Group("/api")

	deps.SessionHandler.RegisterRoutes(api)
	deps.StatsHandler.RegisterRoutes(api)
	deps.CourseHandler.RegisterRoutes(api)
	deps.CoachHandler.RegisterRoutes(api)

	if deps.TranscribeHandler != nil {
		deps.TranscribeHandler.RegisterRoutes(api)
	}

	return router
}
