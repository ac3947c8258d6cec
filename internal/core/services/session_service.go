package services

import (
	"context"
	"log"
	"sort"

	"github.com/productzak/fairway-tracker/internal/core/domain"
)

// NotesParser extracts structured insights from free-text session notes.
// Implementations may be unavailable (no API key); Create degrades silently.
type NotesParser interface {
	ParseNotes(ctx context.Context, notes string) (*domain.AIParsed, error)
}

// Notes shorter than this are not worth an AI round trip.
const minNotesLenForParsing = 20

type SessionService struct {
	repo   domain.SessionRepository
	parser NotesParser
}

func NewSessionService(repo domain.SessionRepository, parser NotesParser) *SessionService {
	return &SessionService{
		repo:   repo,
		parser: parser,
	}
}

type CreateSessionInput struct {
	Date      string
	Type      string
	Intention string

	Areas     []string
	BallCount *int

	FeelRating *int
	Confidence map[string]int

	Notes          string
	EquipmentNotes string

	Course             string
	CourseID           *int
	CourseCity         string
	CourseState        string
	CoursePar          *int
	TeeYardage         *int
	TeeSlope           *int
	TeeRating          *float64
	Score              *int
	FrontNine          *int
	BackNine           *int
	TeesPlayed         string
	FairwaysHit        *int
	GreensInRegulation *int
	TotalPutts         *int
	Penalties          *int
	UpAndDowns         *int
	Highlights         string
	TroubleSpots       string
	ScoreToPar         *int
	Conditions         *domain.Conditions

	AIParsed *domain.AIParsed
}

func (s *SessionService) Create(ctx context.Context, input CreateSessionInput) (*domain.Session, error) {
	session := domain.NewSession(input.Date, input.Type)
	session.Intention = input.Intention
	if input.Areas != nil {
		session.Areas = input.Areas
	}
	session.BallCount = input.BallCount
	session.FeelRating = input.FeelRating
	session.Confidence = input.Confidence
	session.Notes = input.Notes
	session.EquipmentNotes = input.EquipmentNotes
	session.Course = input.Course
	session.CourseID = input.CourseID
	session.CourseCity = input.CourseCity
	session.CourseState = input.CourseState
	session.CoursePar = input.CoursePar
	session.TeeYardage = input.TeeYardage
	session.TeeSlope = input.TeeSlope
	session.TeeRating = input.TeeRating
	session.Score = input.Score
	session.FrontNine = input.FrontNine
	session.BackNine = input.BackNine
	session.TeesPlayed = input.TeesPlayed
	session.FairwaysHit = input.FairwaysHit
	session.GreensInRegulation = input.GreensInRegulation
	session.TotalPutts = input.TotalPutts
	session.Penalties = input.Penalties
	session.UpAndDowns = input.UpAndDowns
	session.Highlights = input.Highlights
	session.TroubleSpots = input.TroubleSpots
	session.ScoreToPar = input.ScoreToPar
	session.Conditions = input.Conditions
	session.AIParsed = input.AIParsed

	if err := session.Validate(); err != nil {
		return nil, err
	}

	// Long notes get parsed into structured insights, unless the client
	// already attached a parse (e.g., from a transcribed voice memo).
	if s.parser != nil && session.AIParsed == nil && len(session.Notes) > minNotesLenForParsing {
		parsed, err := s.parser.ParseNotes(ctx, session.Notes)
		if err != nil {
			log.Printf("[AI] note parsing failed, storing session without insights: %v", err)
		} else if parsed != nil {
			session.AIParsed = parsed
		}
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// List returns all sessions, newest first by creation time.
func (s *SessionService) List(ctx context.Context) ([]*domain.Session, error) {
	sessions, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})

	return sessions, nil
}

func (s *SessionService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
