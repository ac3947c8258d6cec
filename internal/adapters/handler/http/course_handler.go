package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/productzak/fairway-tracker/internal/core/domain"
	"github.com/productzak/fairway-tracker/internal/core/services"
)

type CourseHandler struct {
	svc *services.CourseService
}

func NewCourseHandler(svc *services.CourseService) *CourseHandler {
	return &CourseHandler{svc: svc}
}

type saveCustomTeeRequest struct {
	Name       string   `json:"name" binding:"required"`
	CourseName string   `json:"course_name"`
	Yardage    *int     `json:"yardage"`
	Slope      *int     `json:"slope"`
	Rating     *float64 `json:"rating"`
}

func (h *CourseHandler) RegisterRoutes(router *gin.RouterGroup) {
	courses := router.Group("/courses")
	{
		courses.GET("/search", h.Search)
		courses.GET("/:id", h.Details)
		courses.GET("/:id/raw", h.Raw)
		courses.POST("/:id/custom-tees", h.SaveCustomTee)
	}
}

func (h *CourseHandler) Search(c *gin.Context) {
	results, err := h.svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		// Missing keys and upstream failures degrade to an empty result
		// (with an explanation) so the form keeps working.
		if errors.Is(err, domain.ErrCourseAPIKeyMissing) {
			c.JSON(http.StatusOK, gin.H{"error": err.Error(), "courses": []domain.CourseSummary{}})
			return
		}
		log.Printf("[Course search error] %v", err)
		c.JSON(http.StatusOK, []domain.CourseSummary{})
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *CourseHandler) Details(c *gin.Context) {
	course, err := h.svc.Details(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrCourseAPIKeyMissing) {
			c.JSON(http.StatusOK, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, domain.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}
		log.Printf("[Course details error] %v", err)
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, course)
}

// Raw exposes the upstream payload untouched, for debugging tee parsing.
func (h *CourseHandler) Raw(c *gin.Context) {
	raw, err := h.svc.Raw(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, raw)
}

func (h *CourseHandler) SaveCustomTee(c *gin.Context) {
	var req saveCustomTeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tee name is required"})
		return
	}

	tee := domain.CustomTee{
		Name:    req.Name,
		Yardage: req.Yardage,
		Slope:   req.Slope,
		Rating:  req.Rating,
	}

	if err := h.svc.SaveCustomTee(c.Request.Context(), c.Param("id"), req.CourseName, tee); err != nil {
		handleError(c, err)
		return
	}

	tee.AddedByUser = true
	c.JSON(http.StatusOK, gin.H{"saved": true, "tee": tee})
}
