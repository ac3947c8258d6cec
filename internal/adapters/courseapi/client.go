package courseapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/productzak/fairway-tracker/internal/core/domain"
)

const defaultBaseURL = "https://api.golfcourseapi.com"

// Client talks to GolfCourseAPI.com. Search results are normalized here; the
// loosely shaped course detail payload is returned raw for the service layer
// to interpret.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type searchCourse struct {
	ID         int    `json:"id"`
	ClubName   string `json:"club_name"`
	CourseName string `json:"course_name"`
	Holes      int    `json:"holes"`
	Location   struct {
		City  string `json:"city"`
		State string `json:"state"`
	} `json:"location"`
}

func (c *Client) Search(ctx context.Context, query string) ([]domain.CourseSummary, error) {
	if c.apiKey == "" {
		return nil, domain.ErrCourseAPIKeyMissing
	}

	endpoint := fmt.Sprintf("%s/v1/search?search_query=%s", c.baseURL, url.QueryEscape(query))
	data, status, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		log.Printf("[Course search] query=%q status=%d", query, status)
		return []domain.CourseSummary{}, nil
	}

	// The API has returned both a bare list and a {"courses": [...]} wrapper.
	var raw []searchCourse
	if err := json.Unmarshal(data, &raw); err != nil {
		var wrapper struct {
			Courses []searchCourse `json:"courses"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, fmt.Errorf("course API: failed to decode search response: %w", err)
		}
		raw = wrapper.Courses
	}

	results := make([]domain.CourseSummary, 0, len(raw))
	for _, course := range raw {
		name := course.ClubName
		if name == "" {
			name = course.CourseName
		}
		holes := course.Holes
		if holes == 0 {
			holes = 18
		}
		results = append(results, domain.CourseSummary{
			ID:         course.ID,
			Name:       name,
			CourseName: course.CourseName,
			City:       course.Location.City,
			State:      course.Location.State,
			Holes:      holes,
		})
	}
	return results, nil
}

func (c *Client) CourseRaw(ctx context.Context, courseID string) (map[string]any, error) {
	if c.apiKey == "" {
		return nil, domain.ErrCourseAPIKeyMissing
	}

	endpoint := fmt.Sprintf("%s/v1/courses/%s", c.baseURL, url.PathEscape(courseID))
	data, status, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, domain.ErrCourseNotFound
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("course API returned %d", status)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("course API: failed to decode course response: %w", err)
	}
	return raw, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Key "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("course API request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("course API: failed to read response: %w", err)
	}
	return data, resp.StatusCode, nil
}
