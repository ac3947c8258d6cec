package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/productzak/fairway-tracker/internal/core/domain"
)

// Completer sends a system+user prompt pair to an AI model and returns the
// text reply.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// The coach sees the most recent sessions only; older history adds tokens
// without adding signal.
const coachingHistoryLimit = 30

const adviceOnboardingMessage = "I don't have any sessions to analyze yet! Log a few practice sessions or rounds, and I'll be able to give you personalized advice."

const summaryOnboardingMessage = "No sessions logged yet. Start tracking your practice and rounds, and I'll provide a detailed summary of your game!"

const adviceSystemPrompt = "You are a supportive, knowledgeable golf coach analyzing a player's " +
	"practice and play history. You have access to their session data including " +
	"practice areas, round stats (FIR, GIR, putts, penalties, scrambling), feel " +
	"ratings, confidence levels across different parts of their game, pre-session " +
	"intentions, playing conditions, and equipment changes. Give specific, " +
	"actionable advice based on patterns you see. Compare their intentions to " +
	"their actual sessions — are they following through? Look at confidence " +
	"trends — where are they gaining or losing confidence? Analyze their round " +
	"stats to identify the biggest scoring opportunities (e.g., if they're losing " +
	"strokes to penalties or putting). Be encouraging but honest. Keep your " +
	"response to 3-4 short paragraphs. Use a conversational, coach-like tone. " +
	"Reference specific data points from their sessions."

const summarySystemPrompt = "You are a golf analytics assistant providing a comprehensive game summary. " +
	"Analyze the player's data including: practice frequency and focus areas, " +
	"round scoring trends, fairways hit and greens in regulation percentages, " +
	"putting averages, penalty frequency, scrambling rate, confidence trends " +
	"across different game areas, how conditions affected their scores, and any " +
	"equipment changes. Provide a clear, data-driven summary organized around: " +
	"overall trajectory, strengths, areas for improvement, and notable patterns. " +
	"Keep it to 3-4 short paragraphs."

type CoachService struct {
	repo domain.SessionRepository
	ai   Completer
}

func NewCoachService(repo domain.SessionRepository, ai Completer) *CoachService {
	return &CoachService{
		repo: repo,
		ai:   ai,
	}
}

// Advice returns personalized coaching advice from the session history.
func (s *CoachService) Advice(ctx context.Context) (string, error) {
	return s.ask(ctx, adviceSystemPrompt, adviceOnboardingMessage,
		"Here is my recent practice history:\n\n%s\n\nWhat should I work on?")
}

// Summary returns an analytical game summary from the session history.
func (s *CoachService) Summary(ctx context.Context) (string, error) {
	return s.ask(ctx, summarySystemPrompt, summaryOnboardingMessage,
		"Here is my recent practice and play history:\n\n%s\n\nPlease give me a game summary.")
}

func (s *CoachService) ask(ctx context.Context, system, onboarding, userTemplate string) (string, error) {
	sessions, err := s.repo.List(ctx)
	if err != nil {
		return "", err
	}
	if len(sessions) == 0 {
		return onboarding, nil
	}

	if s.ai == nil {
		return "", domain.ErrAIKeyMissing
	}

	history := formatCoachingHistory(sessions, coachingHistoryLimit)
	return s.ai.Complete(ctx, system, fmt.Sprintf(userTemplate, history))
}

// formatCoachingHistory renders the newest sessions as one line each, packing
// everything the coach prompt expects: areas or course context, scoring,
// confidence, conditions, and the structured note insights.
func formatCoachingHistory(sessions []*domain.Session, limit int) string {
	recent := make([]*domain.Session, len(sessions))
	copy(recent, sessions)
	sort.Slice(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > limit {
		recent = recent[:limit]
	}

	lines := make([]string, 0, len(recent))
	for _, s := range recent {
		if s.IsRound() {
			lines = append(lines, formatRoundLine(s))
		} else {
			lines = append(lines, formatRangeLine(s))
		}
	}

	return strings.Join(lines, "\n")
}

func formatRangeLine(s *domain.Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[Range] %s — Areas: %s | Balls: %s | Feel: %s/5",
		s.Date, strings.Join(s.Areas, ", "), intOrUnknown(s.BallCount), intOrUnknown(s.FeelRating))

	writeCommonSuffix(&b, s)

	if s.Notes != "" {
		fmt.Fprintf(&b, " | Notes: %s", truncate(s.Notes, 200))
	}
	if s.AIParsed != nil {
		if len(s.AIParsed.Positives) > 0 {
			fmt.Fprintf(&b, " | Positives: %s", strings.Join(s.AIParsed.Positives, ", "))
		}
		if len(s.AIParsed.Issues) > 0 {
			fmt.Fprintf(&b, " | Issues: %s", strings.Join(s.AIParsed.Issues, ", "))
		}
	}

	return b.String()
}

func formatRoundLine(s *domain.Session) string {
	courseInfo := s.Course
	if courseInfo == "" {
		courseInfo = "?"
	}
	if s.CoursePar != nil {
		courseInfo += fmt.Sprintf(" (Par %d", *s.CoursePar)
		if s.TeeSlope != nil {
			courseInfo += fmt.Sprintf(", Slope %d", *s.TeeSlope)
		}
		if s.TeeRating != nil {
			courseInfo += fmt.Sprintf(", Rating %g", *s.TeeRating)
		}
		if s.TeeYardage != nil {
			courseInfo += fmt.Sprintf(", %dyds", *s.TeeYardage)
		}
		courseInfo += ")"
	}

	scoreStr := intOrUnknown(s.Score)
	if s.ScoreToPar != nil {
		scoreStr += fmt.Sprintf(" (%+d vs par)", *s.ScoreToPar)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[Round] %s — Course: %s | Score: %s (F9: %s, B9: %s) | Feel: %s/5",
		s.Date, courseInfo, scoreStr, intOrUnknown(s.FrontNine), intOrUnknown(s.BackNine), intOrUnknown(s.FeelRating))

	writeCommonSuffix(&b, s)

	if s.TeesPlayed != "" {
		fmt.Fprintf(&b, " | Tees: %s", s.TeesPlayed)
	}
	if s.FairwaysHit != nil {
		fmt.Fprintf(&b, " | FIR: %d/14", *s.FairwaysHit)
	}
	if s.GreensInRegulation != nil {
		fmt.Fprintf(&b, " | GIR: %d/18", *s.GreensInRegulation)
	}
	if s.TotalPutts != nil {
		fmt.Fprintf(&b, " | Putts: %d", *s.TotalPutts)
	}
	if s.Penalties != nil {
		fmt.Fprintf(&b, " | Penalties: %d", *s.Penalties)
	}
	if s.UpAndDowns != nil {
		fmt.Fprintf(&b, " | Up&Downs: %d", *s.UpAndDowns)
	}

	if s.Conditions != nil {
		var parts []string
		if s.Conditions.Weather != "" {
			parts = append(parts, s.Conditions.Weather)
		}
		if s.Conditions.Wind != "" {
			parts = append(parts, "wind:"+s.Conditions.Wind)
		}
		if s.Conditions.CourseCondition != "" {
			parts = append(parts, "course:"+s.Conditions.CourseCondition)
		}
		if len(parts) > 0 {
			fmt.Fprintf(&b, " | Conditions: %s", strings.Join(parts, ", "))
		}
	}

	if s.Highlights != "" {
		fmt.Fprintf(&b, " | Highlights: %s", truncate(s.Highlights, 150))
	}
	if s.TroubleSpots != "" {
		fmt.Fprintf(&b, " | Trouble: %s", truncate(s.TroubleSpots, 150))
	}
	if s.Notes != "" {
		fmt.Fprintf(&b, " | Notes: %s", truncate(s.Notes, 200))
	}

	return b.String()
}

func writeCommonSuffix(b *strings.Builder, s *domain.Session) {
	if s.Intention != "" {
		fmt.Fprintf(b, " | Intention: %s", s.Intention)
	}

	if len(s.Confidence) > 0 {
		labels := []struct{ key, label string }{
			{domain.ConfidenceDriver, "Driver"},
			{domain.ConfidenceIrons, "Irons"},
			{domain.ConfidenceShortGame, "Short Game"},
			{domain.ConfidencePutting, "Putting"},
			{domain.ConfidenceCourseMgmt, "Course Mgmt"},
		}
		var parts []string
		for _, l := range labels {
			if v, ok := s.Confidence[l.key]; ok && v > 0 {
				parts = append(parts, fmt.Sprintf("%s:%d/5", l.label, v))
			}
		}
		if len(parts) > 0 {
			fmt.Fprintf(b, " | Confidence: %s", strings.Join(parts, ", "))
		}
	}

	if s.EquipmentNotes != "" {
		fmt.Fprintf(b, " | Equipment: %s", s.EquipmentNotes)
	}
}

func intOrUnknown(v *int) string {
	if v == nil {
		return "?"
	}
	return fmt.Sprintf("%d", *v)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
