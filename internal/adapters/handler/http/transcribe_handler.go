package http

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/productzak/fairway-tracker/internal/adapters/transcriber"
	"github.com/productzak/fairway-tracker/internal/core/services"
)

type TranscribeHandler struct {
	svc *services.TranscribeService
}

func NewTranscribeHandler(svc *services.TranscribeService) *TranscribeHandler {
	return &TranscribeHandler{svc: svc}
}

func (h *TranscribeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/transcribe", h.Transcribe)
}

func (h *TranscribeHandler) Transcribe(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No audio file provided"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read audio file"})
		return
	}
	defer file.Close()

	result, err := h.svc.Process(c.Request.Context(), file, filepath.Ext(fileHeader.Filename))
	if err != nil {
		switch {
		case errors.Is(err, transcriber.ErrFFmpegNotInstalled):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "ffmpeg is not installed. Please install ffmpeg."})
		case errors.Is(err, transcriber.ErrWhisperNotInstalled):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Whisper is not installed. Run: pip install openai-whisper"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
