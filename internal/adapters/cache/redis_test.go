package cache

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/productzak/fairway-tracker/internal/core/domain"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestRedisCourseCache_Integration(t *testing.T) {
	_ = godotenv.Load("../../../.env")

	host := getEnv("REDIS_HOST", "localhost")
	port := getEnv("REDIS_PORT", "6379")

	rdb, err := NewRedisClient(host, port, os.Getenv("REDIS_PASSWORD"), 1)
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}
	defer rdb.Close()

	ctx := context.Background()
	require.NoError(t, rdb.FlushDB(ctx).Err())

	cc := NewRedisCourseCache(rdb)

	t.Run("search miss then hit", func(t *testing.T) {
		_, ok := cc.GetSearch(ctx, "pebble")
		assert.False(t, ok)

		results := []domain.CourseSummary{
			{ID: 1, Name: "Pebble Beach Golf Links", City: "Pebble Beach", State: "CA", Holes: 18},
		}
		cc.SetSearch(ctx, "pebble", results)

		got, ok := cc.GetSearch(ctx, "pebble")
		require.True(t, ok)
		assert.Equal(t, results, got)
	})

	t.Run("course round trip", func(t *testing.T) {
		par := 72
		course := &domain.Course{
			ID:    "101",
			Name:  "Test National",
			Holes: 18,
			Par:   domain.ParData{Total: &par},
			Tees: []domain.Tee{
				{Name: "Blue", Color: "#0000FF", TotalYardage: 6800},
			},
		}
		cc.SetCourse(ctx, "101", course)

		got, ok := cc.GetCourse(ctx, "101")
		require.True(t, ok)
		assert.Equal(t, course, got)
	})

	t.Run("invalidate removes course entry", func(t *testing.T) {
		course := &domain.Course{ID: "202", Name: "Gone Soon"}
		cc.SetCourse(ctx, "202", course)

		cc.InvalidateCourse(ctx, "202")

		_, ok := cc.GetCourse(ctx, "202")
		assert.False(t, ok)
	})

	t.Run("corrupted entry is treated as miss and removed", func(t *testing.T) {
		require.NoError(t, rdb.Set(ctx, "course:303", "{not json", 0).Err())

		_, ok := cc.GetCourse(ctx, "303")
		assert.False(t, ok)

		exists, err := rdb.Exists(ctx, "course:303").Result()
		require.NoError(t, err)
		assert.Zero(t, exists)
	})
}
