package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/productzak/fairway-tracker/internal/core/domain"
)

const (
	searchTTL = 5 * time.Minute

	// Course layouts are near-static.
	courseTTL = 30 * 24 * time.Hour
)

var _ domain.CourseCache = (*RedisCourseCache)(nil)

// RedisCourseCache stores upstream golf course API responses in redis. Cache
// failures are logged and treated as misses; the API call is the fallback.
type RedisCourseCache struct {
	client *redis.Client
}

func NewRedisCourseCache(client *redis.Client) *RedisCourseCache {
	return &RedisCourseCache{client: client}
}

func (c *RedisCourseCache) searchKey(query string) string {
	return fmt.Sprintf("course_search:%s", query)
}

func (c *RedisCourseCache) courseKey(courseID string) string {
	return fmt.Sprintf("course:%s", courseID)
}

func (c *RedisCourseCache) GetSearch(ctx context.Context, query string) ([]domain.CourseSummary, bool) {
	val, err := c.client.Get(ctx, c.searchKey(query)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[CACHE] Redis read error: %v", err)
		}
		return nil, false
	}

	var results []domain.CourseSummary
	if err := json.Unmarshal([]byte(val), &results); err != nil {
		log.Printf("[CACHE] Corrupted search entry for %q, cleaning up", query)
		c.client.Del(ctx, c.searchKey(query))
		return nil, false
	}
	return results, true
}

func (c *RedisCourseCache) SetSearch(ctx context.Context, query string, results []domain.CourseSummary) {
	data, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.searchKey(query), data, searchTTL).Err(); err != nil {
		log.Printf("[CACHE] Redis set error: %v", err)
	}
}

func (c *RedisCourseCache) GetCourse(ctx context.Context, courseID string) (*domain.Course, bool) {
	val, err := c.client.Get(ctx, c.courseKey(courseID)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[CACHE] Redis read error: %v", err)
		}
		return nil, false
	}

	var course domain.Course
	if err := json.Unmarshal([]byte(val), &course); err != nil {
		log.Printf("[CACHE] Corrupted course entry for %s, cleaning up", courseID)
		c.client.Del(ctx, c.courseKey(courseID))
		return nil, false
	}
	return &course, true
}

func (c *RedisCourseCache) SetCourse(ctx context.Context, courseID string, course *domain.Course) {
	data, err := json.Marshal(course)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.courseKey(courseID), data, courseTTL).Err(); err != nil {
		log.Printf("[CACHE] Redis set error: %v", err)
	}
}

func (c *RedisCourseCache) InvalidateCourse(ctx context.Context, courseID string) {
	if err := c.client.Del(ctx, c.courseKey(courseID)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate course %s: %v", courseID, err)
	}
}
