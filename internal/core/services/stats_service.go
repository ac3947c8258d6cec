package services

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/productzak/fairway-tracker/internal/core/domain"
)

type StatsService struct {
	repo domain.SessionRepository
}

func NewStatsService(repo domain.SessionRepository) *StatsService {
	return &StatsService{repo: repo}
}

func (s *StatsService) GetStats(ctx context.Context) (*domain.Stats, error) {
	sessions, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := ComputeStats(sessions, time.Now().UTC())
	return &stats, nil
}

// ComputeStats derives the full dashboard report from a session snapshot.
// It is a pure function: the only clock input is the injected today, which
// anchors the streak calculation. The input order does not matter and the
// input is never mutated.
func ComputeStats(sessions []*domain.Session, today time.Time) domain.Stats {
	sorted := make([]*domain.Session, len(sessions))
	copy(sorted, sessions)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := sorted[i].DateValue(), sorted[j].DateValue()
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	var ranges, rounds []*domain.Session
	for _, s := range sorted {
		if s.IsRound() {
			rounds = append(rounds, s)
		} else {
			ranges = append(ranges, s)
		}
	}

	stats := domain.Stats{
		TotalSessions: len(sorted),
		RangeSessions: len(ranges),
		RoundsPlayed:  len(rounds),

		WeeklyCounts:      []domain.WeekCount{},
		FeelTrend:         []domain.FeelPoint{},
		FocusDistribution: []domain.FocusSlice{},
		ScoreTrend:        []domain.ScorePoint{},
		FIRTrend:          []domain.RoundStatPoint{},
		GIRTrend:          []domain.RoundStatPoint{},
		PuttsTrend:        []domain.RoundStatPoint{},
		Confidence:        []domain.ConfidencePoint{},
		RecurringIssues:   []string{},
		CourseStats:       []domain.CourseStat{},
	}

	// Feel ratings span both session types.
	feelSum, feelCount := 0, 0
	for _, s := range sorted {
		if s.FeelRating != nil {
			feelSum += *s.FeelRating
			feelCount++
			stats.FeelTrend = append(stats.FeelTrend, domain.FeelPoint{Date: s.Date, Rating: *s.FeelRating})
		}
	}
	if feelCount > 0 {
		avg := round1(float64(feelSum) / float64(feelCount))
		stats.AvgFeel = &avg
	}

	for _, s := range ranges {
		if s.BallCount != nil {
			stats.TotalBalls += *s.BallCount
		}
	}

	stats.BestScore, stats.LatestScore, stats.BestVsPar = scoreAggregates(rounds)
	stats.Streak = calculateStreak(sorted, today)
	stats.WeeklyCounts = weeklyCounts(sorted)
	stats.FocusDistribution = focusDistribution(ranges)
	stats.ScoreTrend = scoreTrend(rounds)

	stats.AvgFIR = averageOf(rounds, func(s *domain.Session) *int { return s.FairwaysHit })
	stats.AvgGIR = averageOf(rounds, func(s *domain.Session) *int { return s.GreensInRegulation })
	stats.AvgPutts = averageOf(rounds, func(s *domain.Session) *int { return s.TotalPutts })
	stats.AvgPenalties = averageOf(rounds, func(s *domain.Session) *int { return s.Penalties })

	if stats.AvgFIR != nil {
		pct := int(math.Round(*stats.AvgFIR / 14 * 100))
		stats.AvgFIRPct = &pct
	}
	if stats.AvgGIR != nil {
		pct := int(math.Round(*stats.AvgGIR / 18 * 100))
		stats.AvgGIRPct = &pct
	}

	stats.ScramblingPct = scramblingPct(rounds)

	stats.FIRTrend = roundStatTrend(rounds, func(s *domain.Session) *int { return s.FairwaysHit })
	stats.GIRTrend = roundStatTrend(rounds, func(s *domain.Session) *int { return s.GreensInRegulation })
	stats.PuttsTrend = roundStatTrend(rounds, func(s *domain.Session) *int { return s.TotalPutts })

	for _, s := range sorted {
		if len(s.Confidence) > 0 {
			stats.Confidence = append(stats.Confidence, domain.ConfidencePoint{Date: s.Date, Ratings: s.Confidence})
		}
	}

	stats.RecurringIssues = recurringIssues(sorted)
	stats.CourseStats = courseStats(rounds)

	return stats
}

// calculateStreak counts consecutive logged days walking backward from today.
// A session today or yesterday keeps the streak alive; otherwise it is 0 no
// matter how long a historical run exists. Distinct days count, not sessions.
func calculateStreak(sessions []*domain.Session, today time.Time) int {
	days := make(map[string]bool)
	for _, s := range sessions {
		if !s.DateValue().IsZero() {
			days[s.Date] = true
		}
	}
	if len(days) == 0 {
		return 0
	}

	anchor := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if !days[anchor.Format(domain.DateLayout)] {
		anchor = anchor.AddDate(0, 0, -1)
	}

	streak := 0
	for days[anchor.Format(domain.DateLayout)] {
		streak++
		anchor = anchor.AddDate(0, 0, -1)
	}
	return streak
}

// weeklyCounts buckets sessions into ISO calendar weeks (Monday start). Only
// weeks containing at least one session appear, ordered chronologically, each
// labeled by the Monday that starts it.
func weeklyCounts(sessions []*domain.Session) []domain.WeekCount {
	buckets := make(map[string]int)
	for _, s := range sessions {
		d := s.DateValue()
		if d.IsZero() {
			continue
		}
		monday := d.AddDate(0, 0, -((int(d.Weekday()) + 6) % 7))
		buckets[monday.Format(domain.DateLayout)]++
	}

	weeks := make([]string, 0, len(buckets))
	for w := range buckets {
		weeks = append(weeks, w)
	}
	sort.Strings(weeks)

	counts := make([]domain.WeekCount, 0, len(weeks))
	for _, w := range weeks {
		counts = append(counts, domain.WeekCount{Week: w, Sessions: buckets[w]})
	}
	return counts
}

func scoreAggregates(rounds []*domain.Session) (best, latest, bestVsPar *int) {
	var latestRound *domain.Session

	for _, s := range rounds {
		if s.Score == nil {
			continue
		}
		if best == nil || *s.Score < *best {
			v := *s.Score
			best = &v
		}
		if latestRound == nil || laterRound(s, latestRound) {
			latestRound = s
		}
		if s.CoursePar != nil {
			diff := *s.Score - *s.CoursePar
			if bestVsPar == nil || diff < *bestVsPar {
				v := diff
				bestVsPar = &v
			}
		}
	}

	if latestRound != nil {
		v := *latestRound.Score
		latest = &v
	}
	return best, latest, bestVsPar
}

// laterRound reports whether a should replace b as the most recent round.
// Date wins; equal dates fall back to creation time, latest wins.
func laterRound(a, b *domain.Session) bool {
	da, db := a.DateValue(), b.DateValue()
	if !da.Equal(db) {
		return da.After(db)
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func focusDistribution(ranges []*domain.Session) []domain.FocusSlice {
	counts := make(map[string]int)
	for _, s := range ranges {
		for _, area := range s.Areas {
			counts[area]++
		}
	}

	dist := make([]domain.FocusSlice, 0, len(counts))
	for name, value := range counts {
		dist = append(dist, domain.FocusSlice{Name: name, Value: value})
	}
	sort.Slice(dist, func(i, j int) bool {
		if dist[i].Value != dist[j].Value {
			return dist[i].Value > dist[j].Value
		}
		return dist[i].Name < dist[j].Name
	})
	return dist
}

func scoreTrend(rounds []*domain.Session) []domain.ScorePoint {
	trend := []domain.ScorePoint{}
	for _, s := range rounds {
		if s.Score == nil {
			continue
		}
		point := domain.ScorePoint{Date: s.Date, Score: *s.Score}
		if s.CoursePar != nil {
			par := *s.CoursePar
			vsPar := *s.Score - par
			point.Par = &par
			point.VsPar = &vsPar
		}
		trend = append(trend, point)
	}
	return trend
}

// roundStatTrend builds a per-round time series for one stat. A single data
// point is not graphable as a trend, so fewer than two points yields an
// empty series.
func roundStatTrend(rounds []*domain.Session, field func(*domain.Session) *int) []domain.RoundStatPoint {
	trend := []domain.RoundStatPoint{}
	for _, s := range rounds {
		if v := field(s); v != nil {
			trend = append(trend, domain.RoundStatPoint{Date: s.Date, Value: *v})
		}
	}
	if len(trend) < 2 {
		return []domain.RoundStatPoint{}
	}
	return trend
}

func averageOf(rounds []*domain.Session, field func(*domain.Session) *int) *float64 {
	sum, count := 0, 0
	for _, s := range rounds {
		if v := field(s); v != nil {
			sum += *v
			count++
		}
	}
	if count == 0 {
		return nil
	}
	avg := round1(float64(sum) / float64(count))
	return &avg
}

// scramblingPct aggregates up-and-down conversions over missed-green
// opportunities across all qualifying rounds. A round qualifies when it has
// both up_and_downs and greens_in_regulation, with GIR below 18 (otherwise
// there were no missed greens to scramble from). The ratio is computed over
// the pooled sums rather than averaged per round.
func scramblingPct(rounds []*domain.Session) *float64 {
	made, opportunities := 0, 0
	for _, s := range rounds {
		if s.UpAndDowns == nil || s.GreensInRegulation == nil || *s.GreensInRegulation >= 18 {
			continue
		}
		made += *s.UpAndDowns
		opportunities += 18 - *s.GreensInRegulation
	}
	if opportunities == 0 {
		return nil
	}
	pct := round1(float64(made) / float64(opportunities) * 100)
	return &pct
}

// recurringIssues surfaces AI-extracted issue strings that appear more than
// once across sessions. Grouping is case-insensitive exact match; the first
// seen casing is kept for display. Ordered by descending frequency, ties
// alphabetical.
func recurringIssues(sessions []*domain.Session) []string {
	counts := make(map[string]int)
	display := make(map[string]string)

	for _, s := range sessions {
		if s.AIParsed == nil {
			continue
		}
		for _, issue := range s.AIParsed.Issues {
			key := strings.ToLower(strings.TrimSpace(issue))
			if key == "" {
				continue
			}
			if _, seen := display[key]; !seen {
				display[key] = strings.TrimSpace(issue)
			}
			counts[key]++
		}
	}

	keys := make([]string, 0, len(counts))
	for key, n := range counts {
		if n > 1 {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	issues := []string{}
	for _, key := range keys {
		issues = append(issues, display[key])
	}
	return issues
}

func courseStats(rounds []*domain.Session) []domain.CourseStat {
	type acc struct {
		rounds int
		total  int
		best   int
	}
	byCourse := make(map[string]*acc)

	for _, s := range rounds {
		if s.Course == "" || s.Score == nil {
			continue
		}
		a, ok := byCourse[s.Course]
		if !ok {
			a = &acc{best: *s.Score}
			byCourse[s.Course] = a
		}
		a.rounds++
		a.total += *s.Score
		if *s.Score < a.best {
			a.best = *s.Score
		}
	}

	list := make([]domain.CourseStat, 0, len(byCourse))
	for name, a := range byCourse {
		list = append(list, domain.CourseStat{
			Course:    name,
			Rounds:    a.rounds,
			AvgScore:  round1(float64(a.total) / float64(a.rounds)),
			BestScore: a.best,
		})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Rounds != list[j].Rounds {
			return list[i].Rounds > list[j].Rounds
		}
		return list[i].Course < list[j].Course
	})
	return list
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
