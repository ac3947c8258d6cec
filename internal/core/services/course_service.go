package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/productzak/fairway-tracker/internal/core/domain"
)

// CourseAPI is the upstream golf course database.
type CourseAPI interface {
	Search(ctx context.Context, query string) ([]domain.CourseSummary, error)

	// CourseRaw returns the undecoded detail payload for a course. The
	// upstream schema is loose enough that normalization happens here in
	// the service rather than in the client.
	CourseRaw(ctx context.Context, courseID string) (map[string]any, error)
}

type CourseService struct {
	api   CourseAPI
	cache domain.CourseCache
	tees  domain.CustomTeeStore
}

func NewCourseService(api CourseAPI, cache domain.CourseCache, tees domain.CustomTeeStore) *CourseService {
	return &CourseService{
		api:   api,
		cache: cache,
		tees:  tees,
	}
}

// Search looks up courses by name. Queries under two characters return an
// empty list without hitting the upstream API; results are cached briefly.
func (s *CourseService) Search(ctx context.Context, query string) ([]domain.CourseSummary, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return []domain.CourseSummary{}, nil
	}

	cacheKey := strings.ToLower(query)
	if s.cache != nil {
		if results, ok := s.cache.GetSearch(ctx, cacheKey); ok {
			return results, nil
		}
	}

	results, err := s.api.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetSearch(ctx, cacheKey, results)
	}

	return results, nil
}

// Details fetches and normalizes full course data (tees, par, handicap),
// serving from cache when fresh and layering user-saved custom tees on top.
func (s *CourseService) Details(ctx context.Context, courseID string) (*domain.Course, error) {
	if s.cache != nil {
		if course, ok := s.cache.GetCourse(ctx, courseID); ok {
			return s.mergeCustomTees(ctx, courseID, course), nil
		}
	}

	raw, err := s.api.CourseRaw(ctx, courseID)
	if err != nil {
		return nil, err
	}

	course := normalizeCourse(courseID, raw)

	if s.cache != nil {
		s.cache.SetCourse(ctx, courseID, course)
	}

	return s.mergeCustomTees(ctx, courseID, course), nil
}

// Raw returns the upstream payload untouched, for debugging tee parsing.
func (s *CourseService) Raw(ctx context.Context, courseID string) (map[string]any, error) {
	return s.api.CourseRaw(ctx, courseID)
}

// SaveCustomTee stores user-entered tee data and invalidates the cached
// course detail so the next fetch merges fresh.
func (s *CourseService) SaveCustomTee(ctx context.Context, courseID, courseName string, tee domain.CustomTee) error {
	if strings.TrimSpace(tee.Name) == "" {
		return domain.ErrTeeNameEmpty
	}

	tee.AddedByUser = true
	if err := s.tees.Save(ctx, courseID, courseName, tee); err != nil {
		return fmt.Errorf("course service: failed to save custom tee: %w", err)
	}

	if s.cache != nil {
		s.cache.InvalidateCourse(ctx, courseID)
	}

	return nil
}

func (s *CourseService) mergeCustomTees(ctx context.Context, courseID string, course *domain.Course) *domain.Course {
	if s.tees == nil {
		return course
	}

	custom, err := s.tees.ListByCourse(ctx, courseID)
	if err != nil {
		log.Printf("[COURSE] Failed to load custom tees for %s: %v", courseID, err)
		return course
	}

	for _, ct := range custom {
		name := strings.ToLower(ct.Name)
		found := false

		for i := range course.Tees {
			if strings.ToLower(course.Tees[i].Name) != name {
				continue
			}
			found = true
			if ct.Slope != nil && course.Tees[i].Slope == nil {
				course.Tees[i].Slope = ct.Slope
			}
			if ct.Rating != nil && course.Tees[i].Rating == nil {
				course.Tees[i].Rating = ct.Rating
			}
			if ct.Yardage != nil && course.Tees[i].TotalYardage == 0 {
				course.Tees[i].TotalYardage = *ct.Yardage
			}
			break
		}

		if !found {
			tee := domain.Tee{
				Name:        ct.Name,
				Color:       guessTeeColor(ct.Name),
				Slope:       ct.Slope,
				Rating:      ct.Rating,
				AddedByUser: true,
			}
			if ct.Yardage != nil {
				tee.TotalYardage = *ct.Yardage
			}
			course.Tees = append(course.Tees, tee)
		}
	}

	return course
}

// normalizeCourse turns the upstream detail payload into a Course. The API
// wraps data in a "course" key, splits tees by gender with per-hole arrays,
// and sometimes carries slope/rating only in a separate teeBoxes field or a
// printable scorecard blob; all three sources are merged.
func normalizeCourse(courseID string, raw map[string]any) *domain.Course {
	courseObj := raw
	if inner, ok := raw["course"].(map[string]any); ok {
		courseObj = inner
	}

	location, _ := courseObj["location"].(map[string]any)

	course := &domain.Course{
		ID:         courseID,
		Name:       asString(courseObj["club_name"]),
		CourseName: asString(courseObj["course_name"]),
		City:       asString(location["city"]),
		State:      asString(location["state"]),
		Holes:      18,
	}
	if course.Name == "" {
		course.Name = course.CourseName
	}

	teeBoxInfo := parseTeeBoxes(courseObj)

	finalTees := make(map[string]domain.Tee)
	var teeOrder []string
	var coursePar *int

	teesRaw, _ := courseObj["tees"].(map[string]any)
	for _, gender := range []string{"male", "female"} {
		genderTees, _ := teesRaw[gender].([]any)
		for _, tRaw := range genderTees {
			t, _ := tRaw.(map[string]any)
			if t == nil {
				continue
			}

			teeName := cleanTeeName(asString(t["tee_name"]))
			if teeName == "" {
				teeName = "Unknown"
			}
			key := strings.ToLower(teeName)
			if _, exists := finalTees[key]; exists {
				continue
			}

			holesArr, _ := t["holes"].([]any)
			var holeYardages, holePars []int
			var holeHandicaps []*int
			for _, hRaw := range holesArr {
				h, _ := hRaw.(map[string]any)
				y, _ := asInt(h["yardage"])
				p, _ := asInt(h["par"])
				holeYardages = append(holeYardages, y)
				holePars = append(holePars, p)
				if hc, ok := asInt(h["handicap"]); ok {
					v := hc
					holeHandicaps = append(holeHandicaps, &v)
				} else {
					holeHandicaps = append(holeHandicaps, nil)
				}
			}

			totalYards, ok := asInt(t["total_yards"])
			if !ok || totalYards == 0 {
				for _, y := range holeYardages {
					totalYards += y
				}
			}
			if n, ok := asInt(t["number_of_holes"]); ok && n > 0 {
				course.Holes = n
			} else if len(holesArr) > 0 {
				course.Holes = len(holesArr)
			}

			frontYds, backYds := 0, 0
			for i, y := range holeYardages {
				if i < 9 {
					frontYds += y
				} else {
					backYds += y
				}
			}

			tee := domain.Tee{
				Name:         teeName,
				Color:        guessTeeColor(teeName),
				TotalYardage: totalYards,
				FrontYardage: frontYds,
				BackYardage:  backYds,
				HoleYardages: holeYardages,
			}
			if slope, ok := asInt(t["slope_rating"]); ok && slope != 0 {
				tee.Slope = &slope
			} else if slope, ok := asInt(t["slope"]); ok && slope != 0 {
				tee.Slope = &slope
			}
			if rating, ok := asFloat(t["course_rating"]); ok && rating != 0 {
				tee.Rating = &rating
			} else if rating, ok := asFloat(t["rating"]); ok && rating != 0 {
				tee.Rating = &rating
			}
			if parTotal, ok := asInt(t["par_total"]); ok && parTotal != 0 {
				v := parTotal
				tee.Par = &v
				if coursePar == nil {
					coursePar = &v
				}
			}

			finalTees[key] = tee
			teeOrder = append(teeOrder, key)

			// Par and handicap layouts come from the first tee that
			// actually carries hole data.
			if course.Par.Total == nil && hasPositive(holePars) {
				parFront, parBack := 0, 0
				for i, p := range holePars {
					if i < 9 {
						parFront += p
					} else {
						parBack += p
					}
				}
				parTotal, ok := asInt(t["par_total"])
				if !ok || parTotal == 0 {
					parTotal = parFront + parBack
				}
				course.Par = domain.ParData{Total: &parTotal, Holes: holePars}
				if parFront > 0 {
					course.Par.Front = &parFront
				}
				if parBack > 0 {
					course.Par.Back = &parBack
				}
				coursePar = &parTotal
			}
			if course.Handicap == nil && hasHandicap(holeHandicaps) {
				course.Handicap = holeHandicaps
			}
		}
	}

	// Layer teeBoxes slope/rating onto tees that are missing them.
	for key, tb := range teeBoxInfo {
		tee, ok := finalTees[key]
		if !ok {
			continue
		}
		if tb.slope != nil && tee.Slope == nil {
			tee.Slope = tb.slope
		}
		if tb.rating != nil && tee.Rating == nil {
			tee.Rating = tb.rating
		}
		finalTees[key] = tee
	}

	// Scorecard blob fills whatever the tee sections left out.
	if sc := parseScorecard(courseObj["scorecard"]); sc != nil {
		if course.Par.Total == nil {
			course.Par = sc.Par
			coursePar = sc.Par.Total
		}
		if course.Handicap == nil {
			course.Handicap = sc.Handicap
		}

		for teeName, yd := range sc.TeeYardages {
			key := strings.ToLower(teeName)
			if tee, ok := finalTees[key]; ok {
				if len(tee.HoleYardages) == 0 {
					tee.HoleYardages = yd.HoleYardages
					tee.FrontYardage = yd.FrontYardage
					tee.BackYardage = yd.BackYardage
					finalTees[key] = tee
				}
			} else {
				finalTees[key] = domain.Tee{
					Name:         teeName,
					Color:        guessTeeColor(teeName),
					TotalYardage: yd.TotalYardage,
					FrontYardage: yd.FrontYardage,
					BackYardage:  yd.BackYardage,
					HoleYardages: yd.HoleYardages,
				}
				teeOrder = append(teeOrder, key)
			}
		}
	}

	if course.Par.Total == nil && coursePar != nil {
		course.Par.Total = coursePar
	}

	course.Tees = make([]domain.Tee, 0, len(finalTees))
	seen := make(map[string]bool)
	for _, key := range teeOrder {
		if seen[key] {
			continue
		}
		seen[key] = true
		course.Tees = append(course.Tees, finalTees[key])
	}
	sort.SliceStable(course.Tees, func(i, j int) bool {
		return course.Tees[i].TotalYardage > course.Tees[j].TotalYardage
	})

	return course
}

type teeBoxRatings struct {
	slope  *int
	rating *float64
}

func parseTeeBoxes(courseObj map[string]any) map[string]teeBoxRatings {
	info := make(map[string]teeBoxRatings)

	raw := courseObj["teeBoxes"]
	if raw == nil {
		raw = courseObj["tee_boxes"]
	}

	var boxes []any
	switch v := raw.(type) {
	case string:
		boxes = decodeJSONList(v)
	case []any:
		boxes = v
	default:
		return info
	}

	for _, bRaw := range boxes {
		tb, _ := bRaw.(map[string]any)
		if tb == nil {
			continue
		}

		name := asString(tb["name"])
		if name == "" {
			name = asString(tb["tee_name"])
		}
		key := strings.ToLower(cleanTeeName(name))
		if key == "" {
			continue
		}

		ratings := teeBoxRatings{}
		if slope, ok := asInt(tb["slope"]); ok && slope != 0 {
			ratings.slope = &slope
		} else if slope, ok := asInt(tb["slope_rating"]); ok && slope != 0 {
			ratings.slope = &slope
		}
		if rating, ok := asFloat(tb["rating"]); ok && rating != 0 {
			ratings.rating = &rating
		} else if rating, ok := asFloat(tb["course_rating"]); ok && rating != 0 {
			ratings.rating = &rating
		}
		info[key] = ratings
	}

	return info
}

func hasPositive(values []int) bool {
	for _, v := range values {
		if v > 0 {
			return true
		}
	}
	return false
}

func hasHandicap(values []*int) bool {
	for _, v := range values {
		if v != nil {
			return true
		}
	}
	return false
}
