package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/productzak/fairway-tracker/internal/adapters/repository"
	"github.com/productzak/fairway-tracker/internal/core/domain"
	"github.com/productzak/fairway-tracker/internal/core/services"
)

func setupSessionRouter(t *testing.T) (*gin.Engine, *repository.InMemorySessionRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewInMemorySessionRepository()
	handler := NewSessionHandler(services.NewSessionService(repo, nil))

	router := gin.New()
	api := router.Group("/api")
	handler.RegisterRoutes(api)

	return router, repo
}

func TestSessionHandler_Create(t *testing.T) {
	t.Run("creates a range session", func(t *testing.T) {
		router, _ := setupSessionRouter(t)

		body := `{"date": "2026-03-01", "type": "range", "areas": ["driver"], "ball_count": 60, "feel_rating": 4}`
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/sessions", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var session domain.Session
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
		assert.NotEmpty(t, session.ID)
		assert.Equal(t, "2026-03-01", session.Date)
		assert.Equal(t, domain.SessionTypeRange, session.Type)
		assert.Equal(t, []string{"driver"}, session.Areas)
		require.NotNil(t, session.BallCount)
		assert.Equal(t, 60, *session.BallCount)
	})

	t.Run("creates a round session with scoring fields", func(t *testing.T) {
		router, _ := setupSessionRouter(t)

		body := `{
			"date": "2026-03-02", "type": "round",
			"course": "Pine Hollow", "course_par": 72,
			"score": 88, "fairways_hit": 6, "greens_in_regulation": 7,
			"total_putts": 34, "conditions": {"weather": "sunny"}
		}`
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/sessions", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var session domain.Session
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
		assert.True(t, session.IsRound())
		assert.Equal(t, "Pine Hollow", session.Course)
		require.NotNil(t, session.Score)
		assert.Equal(t, 88, *session.Score)
		require.NotNil(t, session.Conditions)
		assert.Equal(t, "sunny", session.Conditions.Weather)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		router, _ := setupSessionRouter(t)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/sessions", bytes.NewBufferString("{oops"))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects an unknown session type", func(t *testing.T) {
		router, _ := setupSessionRouter(t)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/sessions", bytes.NewBufferString(`{"type": "simulator"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid session type")
	})

	t.Run("rejects a bad date", func(t *testing.T) {
		router, _ := setupSessionRouter(t)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/sessions", bytes.NewBufferString(`{"date": "03/01/2026"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSessionHandler_ListAndDelete(t *testing.T) {
	router, _ := setupSessionRouter(t)

	create := func(body string) domain.Session {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/sessions", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		var session domain.Session
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
		return session
	}

	first := create(`{"date": "2026-03-01"}`)
	second := create(`{"date": "2026-03-02"}`)

	t.Run("list returns all sessions", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/sessions", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var sessions []domain.Session
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sessions))
		assert.Len(t, sessions, 2)
	})

	t.Run("delete removes the session", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/sessions/"+first.ID, nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		req, _ = http.NewRequest("GET", "/api/sessions", nil)
		router.ServeHTTP(w, req)

		var sessions []domain.Session
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sessions))
		require.Len(t, sessions, 1)
		assert.Equal(t, second.ID, sessions[0].ID)
	})

	t.Run("delete of an unknown id is a 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/sessions/"+first.ID, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
