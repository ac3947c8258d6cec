package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/productzak/fairway-tracker/internal/core/domain"
	"github.com/productzak/fairway-tracker/internal/core/services"
)

type CoachHandler struct {
	svc *services.CoachService
}

func NewCoachHandler(svc *services.CoachService) *CoachHandler {
	return &CoachHandler{svc: svc}
}

func (h *CoachHandler) RegisterRoutes(router *gin.RouterGroup) {
	coaching := router.Group("/coaching")
	{
		coaching.GET("/advice", h.Advice)
		coaching.GET("/summary", h.Summary)
	}
}

func (h *CoachHandler) Advice(c *gin.Context) {
	advice, err := h.svc.Advice(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrAIKeyMissing) {
			c.JSON(http.StatusInternalServerError, gin.H{"advice": "ANTHROPIC_API_KEY is not set. Please set it to use AI coaching."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"advice": "Error getting coaching advice: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"advice": advice})
}

func (h *CoachHandler) Summary(c *gin.Context) {
	summary, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrAIKeyMissing) {
			c.JSON(http.StatusInternalServerError, gin.H{"summary": "ANTHROPIC_API_KEY is not set. Please set it to use AI features."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"summary": "Error generating summary: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
