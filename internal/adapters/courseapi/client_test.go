package courseapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/productzak/fairway-tracker/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-key")
	client.baseURL = server.URL
	return client
}

func TestClient_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := NewClient("").Search(ctx, "pebble")
		assert.ErrorIs(t, err, domain.ErrCourseAPIKeyMissing)
	})

	t.Run("wrapped response with auth header", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Key test-key", r.Header.Get("Authorization"))
			assert.Equal(t, "pebble beach", r.URL.Query().Get("search_query"))

			w.Write([]byte(`{"courses": [
				{"id": 1, "club_name": "Pebble Beach Golf Links", "course_name": "Pebble Beach",
				 "location": {"city": "Pebble Beach", "state": "CA"}}
			]}`))
		})

		results, err := client.Search(ctx, "pebble beach")
		require.NoError(t, err)

		require.Len(t, results, 1)
		assert.Equal(t, 1, results[0].ID)
		assert.Equal(t, "Pebble Beach Golf Links", results[0].Name)
		assert.Equal(t, "CA", results[0].State)
		assert.Equal(t, 18, results[0].Holes, "missing hole count defaults to 18")
	})

	t.Run("bare list response", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"id": 2, "course_name": "Bethpage Black", "holes": 18}]`))
		})

		results, err := client.Search(ctx, "bethpage")
		require.NoError(t, err)

		require.Len(t, results, 1)
		assert.Equal(t, "Bethpage Black", results[0].Name, "club name falls back to course name")
	})

	t.Run("upstream failure degrades to empty", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		results, err := client.Search(ctx, "anything")
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestClient_CourseRaw(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the raw payload", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/courses/42", r.URL.Path)
			w.Write([]byte(`{"course": {"club_name": "Pine Hollow"}}`))
		})

		raw, err := client.CourseRaw(ctx, "42")
		require.NoError(t, err)

		course, ok := raw["course"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Pine Hollow", course["club_name"])
	})

	t.Run("404 maps to not found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := client.CourseRaw(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrCourseNotFound)
	})
}
