package transcriber

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

var (
	ErrFFmpegNotInstalled  = errors.New("ffmpeg is not installed")
	ErrWhisperNotInstalled = errors.New("whisper is not installed")
)

// WhisperTranscriber shells out to ffmpeg for audio conversion and the
// whisper CLI for local speech-to-text. Whisper works best on 16 kHz mono
// WAV, so everything is converted first.
type WhisperTranscriber struct {
	model string
}

func NewWhisperTranscriber() *WhisperTranscriber {
	return &WhisperTranscriber{model: "base"}
}

func (t *WhisperTranscriber) Transcribe(ctx context.Context, audio io.Reader, ext string) (string, error) {
	tmpDir, err := os.MkdirTemp("", "fairway-memo-*")
	if err != nil {
		return "", fmt.Errorf("transcriber: failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	if ext == "" || !strings.HasPrefix(ext, ".") {
		ext = ".webm"
	}
	inputPath := filepath.Join(tmpDir, "input_audio"+ext)

	input, err := os.Create(inputPath)
	if err != nil {
		return "", fmt.Errorf("transcriber: failed to create input file: %w", err)
	}
	if _, err := io.Copy(input, audio); err != nil {
		input.Close()
		return "", fmt.Errorf("transcriber: failed to save upload: %w", err)
	}
	input.Close()

	wavPath := filepath.Join(tmpDir, "audio.wav")
	if err := t.convertToWAV(ctx, inputPath, wavPath); err != nil {
		return "", err
	}

	return t.runWhisper(ctx, tmpDir, wavPath)
}

func (t *WhisperTranscriber) convertToWAV(ctx context.Context, inputPath, wavPath string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", "-i", inputPath, "-ar", "16000", "-ac", "1", wavPath)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return ErrFFmpegNotInstalled
		}
		return fmt.Errorf("ffmpeg conversion failed: %s", strings.TrimSpace(stderr.String()))
	}
	return nil
}

func (t *WhisperTranscriber) runWhisper(ctx context.Context, outDir, wavPath string) (string, error) {
	cmd := exec.CommandContext(ctx, "whisper", wavPath,
		"--model", t.model,
		"--output_format", "txt",
		"--output_dir", outDir,
		"--fp16", "False")
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", ErrWhisperNotInstalled
		}
		return "", fmt.Errorf("whisper transcription failed: %s", strings.TrimSpace(stderr.String()))
	}

	// Whisper writes <basename>.txt into the requested output dir.
	txtPath := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(wavPath), filepath.Ext(wavPath))+".txt")
	transcript, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("transcriber: failed to read transcript: %w", err)
	}

	return strings.TrimSpace(string(transcript)), nil
}
