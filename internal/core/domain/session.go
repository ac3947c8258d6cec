package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidSessionType = errors.New("invalid session type (must be range or round)")
	ErrInvalidSessionDate = errors.New("invalid session date (must be YYYY-MM-DD)")
	ErrInvalidFeelRating  = errors.New("feel rating must be between 1 and 5")
	ErrNegativeValue      = errors.New("value cannot be negative")

	// ErrAIKeyMissing is returned by AI-backed features when no API key is
	// configured.
	ErrAIKeyMissing = errors.New("AI API key is not configured")
)

const (
	SessionTypeRange = "range"
	SessionTypeRound = "round"

	DateLayout = "2006-01-02"
)

// Confidence keys the frontend and the memo parser use. Ratings are 1-5.
const (
	ConfidenceDriver     = "driver"
	ConfidenceIrons      = "irons"
	ConfidenceShortGame  = "short_game"
	ConfidencePutting    = "putting"
	ConfidenceCourseMgmt = "course_management"
)

// AIParsed holds the structured insights extracted from free-text notes.
type AIParsed struct {
	KeyFocus      string   `json:"key_focus,omitempty"`
	Positives     []string `json:"positives,omitempty"`
	Issues        []string `json:"issues,omitempty"`
	SwingThoughts []string `json:"swing_thoughts,omitempty"`
	Equipment     []string `json:"equipment,omitempty"`
}

// Conditions describes playing conditions for a round.
type Conditions struct {
	Weather         string `json:"weather,omitempty"`
	Wind            string `json:"wind,omitempty"`
	CourseCondition string `json:"course_condition,omitempty"`
}

// Session is a single logged practice session or round. The Type field gates
// which optional fields are meaningful: Areas and BallCount belong to range
// sessions, the course and scoring fields to rounds. Optional numerics are
// pointers so that absent is distinct from zero.
type Session struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Type      string `json:"type"`
	Intention string `json:"intention"`

	// Range fields.
	Areas     []string `json:"areas"`
	BallCount *int     `json:"ball_count"`

	FeelRating *int           `json:"feel_rating"`
	Confidence map[string]int `json:"confidence"`

	Notes          string `json:"notes"`
	EquipmentNotes string `json:"equipment_notes"`

	// Round fields.
	Course             string      `json:"course"`
	CourseID           *int        `json:"course_id"`
	CourseCity         string      `json:"course_city"`
	CourseState        string      `json:"course_state"`
	CoursePar          *int        `json:"course_par"`
	TeeYardage         *int        `json:"tee_yardage"`
	TeeSlope           *int        `json:"tee_slope"`
	TeeRating          *float64    `json:"tee_rating"`
	Score              *int        `json:"score"`
	FrontNine          *int        `json:"front_nine"`
	BackNine           *int        `json:"back_nine"`
	TeesPlayed         string      `json:"tees_played"`
	FairwaysHit        *int        `json:"fairways_hit"`
	GreensInRegulation *int        `json:"greens_in_regulation"`
	TotalPutts         *int        `json:"total_putts"`
	Penalties          *int        `json:"penalties"`
	UpAndDowns         *int        `json:"up_and_downs"`
	Highlights         string      `json:"highlights"`
	TroubleSpots       string      `json:"trouble_spots"`
	ScoreToPar         *int        `json:"score_to_par"`
	Conditions         *Conditions `json:"conditions"`

	AIParsed  *AIParsed `json:"ai_parsed"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSession assigns identity and creation time. The date defaults to today
// when empty, matching form behavior.
func NewSession(date, sessionType string) *Session {
	now := time.Now().UTC()

	if date == "" {
		date = now.Format(DateLayout)
	}
	if sessionType == "" {
		sessionType = SessionTypeRange
	}

	return &Session{
		ID:        uuid.NewString(),
		Date:      date,
		Type:      sessionType,
		Areas:     []string{},
		CreatedAt: now,
	}
}

func (s *Session) Validate() error {
	switch s.Type {
	case SessionTypeRange, SessionTypeRound:
	default:
		return ErrInvalidSessionType
	}

	if _, err := time.Parse(DateLayout, strings.TrimSpace(s.Date)); err != nil {
		return ErrInvalidSessionDate
	}

	if s.FeelRating != nil && (*s.FeelRating < 1 || *s.FeelRating > 5) {
		return ErrInvalidFeelRating
	}

	for _, v := range []*int{s.BallCount, s.TotalPutts, s.Penalties, s.UpAndDowns} {
		if v != nil && *v < 0 {
			return ErrNegativeValue
		}
	}

	return nil
}

// IsRound reports whether round-only fields are meaningful for this session.
func (s *Session) IsRound() bool {
	return s.Type == SessionTypeRound
}

// DateValue parses the session date. The zero time is returned for dates that
// fail to parse; callers sorting by date treat those as earliest.
func (s *Session) DateValue() time.Time {
	t, err := time.Parse(DateLayout, s.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}
