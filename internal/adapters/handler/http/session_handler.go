package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/productzak/fairway-tracker/internal/core/domain"
	"github.com/productzak/fairway-tracker/internal/core/services"
)

type SessionHandler struct {
	svc *services.SessionService
}

func NewSessionHandler(svc *services.SessionService) *SessionHandler {
	return &SessionHandler{
		svc: svc,
	}
}

type createSessionRequest struct {
	Date      string `json:"date"`
	Type      string `json:"type"`
	Intention string `json:"intention"`

	Areas     []string `json:"areas"`
	BallCount *int     `json:"ball_count"`

	FeelRating *int           `json:"feel_rating"`
	Confidence map[string]int `json:"confidence"`

	Notes          string `json:"notes"`
	EquipmentNotes string `json:"equipment_notes"`

	Course             string             `json:"course"`
	CourseID           *int               `json:"course_id"`
	CourseCity         string             `json:"course_city"`
	CourseState        string             `json:"course_state"`
	CoursePar          *int               `json:"course_par"`
	TeeYardage         *int               `json:"tee_yardage"`
	TeeSlope           *int               `json:"tee_slope"`
	TeeRating          *float64           `json:"tee_rating"`
	Score              *int               `json:"score"`
	FrontNine          *int               `json:"front_nine"`
	BackNine           *int               `json:"back_nine"`
	TeesPlayed         string             `json:"tees_played"`
	FairwaysHit        *int               `json:"fairways_hit"`
	GreensInRegulation *int               `json:"greens_in_regulation"`
	TotalPutts         *int               `json:"total_putts"`
	Penalties          *int               `json:"penalties"`
	UpAndDowns         *int               `json:"up_and_downs"`
	Highlights         string             `json:"highlights"`
	TroubleSpots       string             `json:"trouble_spots"`
	ScoreToPar         *int               `json:"score_to_par"`
	Conditions         *domain.Conditions `json:"conditions"`

	AIParsed *domain.AIParsed `json:"ai_parsed"`
}

func (h *SessionHandler) RegisterRoutes(router *gin.RouterGroup) {
	sessions := router.Group("/sessions")
	{
		sessions.GET("", h.List)
		sessions.POST("", h.Create)
		sessions.DELETE("/:id", h.Delete)
	}
}

func (h *SessionHandler) Create(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	input := services.CreateSessionInput{
		Date:               req.Date,
		Type:               req.Type,
		Intention:          req.Intention,
		Areas:              req.Areas,
		BallCount:          req.BallCount,
		FeelRating:         req.FeelRating,
		Confidence:         req.Confidence,
		Notes:              req.Notes,
		EquipmentNotes:     req.EquipmentNotes,
		Course:             req.Course,
		CourseID:           req.CourseID,
		CourseCity:         req.CourseCity,
		CourseState:        req.CourseState,
		CoursePar:          req.CoursePar,
		TeeYardage:         req.TeeYardage,
		TeeSlope:           req.TeeSlope,
		TeeRating:          req.TeeRating,
		Score:              req.Score,
		FrontNine:          req.FrontNine,
		BackNine:           req.BackNine,
		TeesPlayed:         req.TeesPlayed,
		FairwaysHit:        req.FairwaysHit,
		GreensInRegulation: req.GreensInRegulation,
		TotalPutts:         req.TotalPutts,
		Penalties:          req.Penalties,
		UpAndDowns:         req.UpAndDowns,
		Highlights:         req.Highlights,
		TroubleSpots:       req.TroubleSpots,
		ScoreToPar:         req.ScoreToPar,
		Conditions:         req.Conditions,
		AIParsed:           req.AIParsed,
	}

	session, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

func (h *SessionHandler) List(c *gin.Context) {
	sessions, err := h.svc.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

func (h *SessionHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, domain.ErrCourseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})

	case errors.Is(err, domain.ErrInvalidSessionType) ||
		errors.Is(err, domain.ErrInvalidSessionDate) ||
		errors.Is(err, domain.ErrInvalidFeelRating) ||
		errors.Is(err, domain.ErrNegativeValue) ||
		errors.Is(err, domain.ErrTeeNameEmpty):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrInvalidSessionData):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stored session data is corrupted"})

	default:
		log.Printf("[ERROR] Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)

		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
