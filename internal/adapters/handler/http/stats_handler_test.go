package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/productzak/fairway-tracker/internal/adapters/repository"
	"github.com/productzak/fairway-tracker/internal/core/domain"
	"github.com/productzak/fairway-tracker/internal/core/services"
)

func TestStatsHandler_GetStats(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := repository.NewInMemorySessionRepository()
	handler := NewStatsHandler(services.NewStatsService(repo))

	router := gin.New()
	api := router.Group("/api")
	handler.RegisterRoutes(api)

	getStats := func() map[string]any {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/stats", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
		return payload
	}

	t.Run("empty store serializes null averages and empty lists", func(t *testing.T) {
		payload := getStats()

		assert.EqualValues(t, 0, payload["total_sessions"])
		assert.Nil(t, payload["avg_feel"])
		assert.Nil(t, payload["best_score"])

		trend, ok := payload["score_trend"].([]any)
		require.True(t, ok, "score_trend must be a JSON array, not null")
		assert.Empty(t, trend)
	})

	t.Run("reflects stored sessions", func(t *testing.T) {
		ctx := context.Background()

		feel := 4
		s := domain.NewSession("2026-03-01", domain.SessionTypeRange)
		s.FeelRating = &feel
		s.CreatedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		require.NoError(t, repo.Create(ctx, s))

		score, par := 88, 72
		r := domain.NewSession("2026-03-02", domain.SessionTypeRound)
		r.Score = &score
		r.CoursePar = &par
		r.CreatedAt = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
		require.NoError(t, repo.Create(ctx, r))

		payload := getStats()

		assert.EqualValues(t, 2, payload["total_sessions"])
		assert.EqualValues(t, 1, payload["range_sessions"])
		assert.EqualValues(t, 1, payload["rounds_played"])
		assert.EqualValues(t, 4, payload["avg_feel"])
		assert.EqualValues(t, 88, payload["best_score"])
		assert.EqualValues(t, 16, payload["best_vs_par"])
	})
}
