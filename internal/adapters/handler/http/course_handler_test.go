package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/productzak/fairway-tracker/internal/adapters/courseapi"
	"github.com/productzak/fairway-tracker/internal/core/services"
)

func setupCourseRouter(t *testing.T, apiKey string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := services.NewCourseService(courseapi.NewClient(apiKey), nil, nil)
	handler := NewCourseHandler(svc)

	router := gin.New()
	api := router.Group("/api")
	handler.RegisterRoutes(api)
	return router
}

func TestCourseHandler_MissingAPIKey(t *testing.T) {
	router := setupCourseRouter(t, "")

	t.Run("search degrades to an empty list with an explanation", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/courses/search?q=pebble", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "course API key is not configured")
		assert.Contains(t, w.Body.String(), `"courses":[]`)
	})

	t.Run("details degrade to an error payload", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/courses/42", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "course API key is not configured")
	})
}

func TestCourseHandler_Search_ShortQuery(t *testing.T) {
	router := setupCourseRouter(t, "some-key")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/courses/search?q=p", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestCourseHandler_SaveCustomTee_MissingName(t *testing.T) {
	router := setupCourseRouter(t, "some-key")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/courses/42/custom-tees", nil)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "tee name is required")
}
