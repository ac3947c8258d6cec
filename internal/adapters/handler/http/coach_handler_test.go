package http

import (
	"context"
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

type stubCompleter struct {
	reply string
	err   error
}

func (s *stubCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	return s.reply, s.err
}

func setupCoachRouter(t *testing.T, repo domain.SessionRepository, ai services.Completer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := NewCoachHandler(services.NewCoachService(repo, ai))

	router := gin.New()
	api := router.Group("/api")
	handler.RegisterRoutes(api)
	return router
}

func TestCoachHandler_Advice(t *testing.T) {
	t.Run("onboarding reply with no sessions", func(t *testing.T) {
		router := setupCoachRouter(t, repository.NewInMemorySessionRepository(), nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/coaching/advice", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Log a few practice sessions")
	})

	t.Run("missing API key", func(t *testing.T) {
		repo := repository.NewInMemorySessionRepository()
		require.NoError(t, repo.Create(context.Background(), domain.NewSession("2026-03-01", domain.SessionTypeRange)))

		router := setupCoachRouter(t, repo, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/coaching/advice", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "ANTHROPIC_API_KEY is not set")
	})

	t.Run("returns the model reply", func(t *testing.T) {
		repo := repository.NewInMemorySessionRepository()
		require.NoError(t, repo.Create(context.Background(), domain.NewSession("2026-03-01", domain.SessionTypeRange)))

		router := setupCoachRouter(t, repo, &stubCompleter{reply: "Spend more time on wedges."})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/coaching/advice", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Spend more time on wedges.")
	})
}

func TestCoachHandler_Summary(t *testing.T) {
	router := setupCoachRouter(t, repository.NewInMemorySessionRepository(), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/coaching/summary", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No sessions logged yet")
}
