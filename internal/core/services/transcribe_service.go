package services

import (
	"context"
	"io"
	"log"

	"github.com/productzak/fairway-tracker/internal/core/domain"
)

// Transcriber converts an uploaded audio stream to text. The ext hint carries
// the original filename extension so the converter can pick a decoder.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, ext string) (string, error)
}

// MemoParser turns a raw transcript into a structured session prefill.
type MemoParser interface {
	ParseMemo(ctx context.Context, transcript string) (*domain.ParsedMemo, error)
}

type TranscriptionResult struct {
	Transcript string             `json:"transcript"`
	Parsed     *domain.ParsedMemo `json:"parsed"`
}

type TranscribeService struct {
	transcriber Transcriber
	parser      MemoParser
}

func NewTranscribeService(transcriber Transcriber, parser MemoParser) *TranscribeService {
	return &TranscribeService{
		transcriber: transcriber,
		parser:      parser,
	}
}

// Process transcribes a voice memo and parses it into session data. A failed
// parse still returns the transcript; the client can fill the form manually.
func (s *TranscribeService) Process(ctx context.Context, audio io.Reader, ext string) (*TranscriptionResult, error) {
	transcript, err := s.transcriber.Transcribe(ctx, audio, ext)
	if err != nil {
		return nil, err
	}

	result := &TranscriptionResult{Transcript: transcript}

	if s.parser != nil {
		parsed, err := s.parser.ParseMemo(ctx, transcript)
		if err != nil {
			log.Printf("[AI] memo parsing failed, returning transcript only: %v", err)
		} else {
			result.Parsed = parsed
		}
	}

	return result, nil
}
