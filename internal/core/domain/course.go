package domain

import (
	"context"
	"errors"
)

var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrTeeNameEmpty        = errors.New("tee name is required")
	ErrCourseAPIKeyMissing = errors.New("course API key is not configured")
)

// CourseSummary is a search result row, normalized from the upstream API.
type CourseSummary struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	CourseName string `json:"course_name"`
	City       string `json:"city"`
	State      string `json:"state"`
	Holes      int    `json:"holes"`
}

// ParData describes par for a course: totals plus per-hole values.
type ParData struct {
	Total *int  `json:"total"`
	Front *int  `json:"front,omitempty"`
	Back  *int  `json:"back,omitempty"`
	Holes []int `json:"holes,omitempty"`
}

// Tee is one tee box with yardages and difficulty ratings. Slope and Rating
// stay pointers since the upstream data frequently omits them.
type Tee struct {
	Name         string   `json:"name"`
	Color        string   `json:"color"`
	TotalYardage int      `json:"total_yardage"`
	FrontYardage int      `json:"front_yardage"`
	BackYardage  int      `json:"back_yardage"`
	HoleYardages []int    `json:"hole_yardages"`
	Slope        *int     `json:"slope"`
	Rating       *float64 `json:"rating"`
	Par          *int     `json:"par,omitempty"`
	AddedByUser  bool     `json:"added_by_user,omitempty"`
}

// Course is the normalized detail payload: identity, par layout, tee boxes
// sorted longest first, and per-hole handicaps when known.
type Course struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	CourseName string  `json:"course_name"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	Holes      int     `json:"holes"`
	Par        ParData `json:"par"`
	Tees       []Tee   `json:"tees"`
	Handicap   []*int  `json:"handicap"`
}

// CustomTee is user-entered tee data layered over the upstream course detail.
type CustomTee struct {
	Name        string   `json:"name"`
	Yardage     *int     `json:"yardage"`
	Slope       *int     `json:"slope"`
	Rating      *float64 `json:"rating"`
	AddedByUser bool     `json:"added_by_user"`
}

// CourseCache stores upstream API responses. Search results expire quickly,
// course details are kept for weeks to stay within upstream rate limits.
type CourseCache interface {
	GetSearch(ctx context.Context, query string) ([]CourseSummary, bool)
	SetSearch(ctx context.Context, query string, results []CourseSummary)

	GetCourse(ctx context.Context, courseID string) (*Course, bool)
	SetCourse(ctx context.Context, courseID string, course *Course)
	InvalidateCourse(ctx context.Context, courseID string)
}

// CustomTeeStore persists user-entered tees per course.
type CustomTeeStore interface {
	ListByCourse(ctx context.Context, courseID string) ([]CustomTee, error)
	Save(ctx context.Context, courseID, courseName string, tee CustomTee) error
}
