package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/productzak/fairway-tracker/internal/core/domain"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"

	// Model used for all AI features.
	model     = "claude-sonnet-4-5-20250514"
	maxTokens = 1024
)

const notesSystemPrompt = "You are a golf practice note parser. Extract structured insights " +
	"from the player's notes. Return ONLY valid JSON with these keys:\n" +
	"  \"key_focus\": a short string summarizing the main focus,\n" +
	"  \"positives\": array of strings — things that went well,\n" +
	"  \"issues\": array of strings — problems or struggles mentioned,\n" +
	"  \"swing_thoughts\": array of strings — any swing cues or thoughts,\n" +
	"  \"equipment\": array of strings — any clubs or equipment mentioned.\n" +
	"If a category has nothing relevant, use an empty array. " +
	"Do NOT wrap the JSON in markdown code fences."

const memoSystemPrompt = "You are a golf voice memo parser. The user recorded a voice memo about " +
	"their golf practice or round. Parse it into structured data.\n" +
	"Return ONLY valid JSON with these keys:\n" +
	"  \"type\": \"range\" or \"round\",\n" +
	"  \"intention\": string — what the player was focusing on, or empty string,\n" +
	"  \"areas\": array of practice areas from [driver, woods, long_irons, mid_irons, short_irons, wedges, chipping, putting, bunker],\n" +
	"  \"ball_count\": number or null,\n" +
	"  \"feel_rating\": 1-5 or null,\n" +
	"  \"confidence\": object with keys driver, irons, short_game, putting, course_management (each 1-5 or null) — only include if mentioned,\n" +
	"  \"notes_summary\": string summary of notes,\n" +
	"  \"equipment_notes\": string — any equipment changes mentioned, or empty string,\n" +
	"  \"course\": course name or empty string,\n" +
	"  \"score\": number or null,\n" +
	"  \"front_nine\": number or null,\n" +
	"  \"back_nine\": number or null,\n" +
	"  \"tees_played\": one of \"championship\", \"blue\", \"white\", \"gold\", \"red\", \"other\", or empty string,\n" +
	"  \"fairways_hit\": number or null,\n" +
	"  \"greens_in_regulation\": number or null,\n" +
	"  \"total_putts\": number or null,\n" +
	"  \"penalties\": number or null,\n" +
	"  \"up_and_downs\": number or null,\n" +
	"  \"conditions\": object with keys weather (sunny/cloudy/windy/rainy/hot/cold), wind (calm/light/moderate/strong), course_condition (dry/normal/wet) — only include if mentioned,\n" +
	"  \"highlights\": string or empty,\n" +
	"  \"trouble_spots\": string or empty,\n" +
	"  \"key_focus\": string,\n" +
	"  \"positives\": array of strings,\n" +
	"  \"issues\": array of strings,\n" +
	"  \"swing_thoughts\": array of strings\n" +
	"Do NOT wrap the JSON in markdown code fences."

// Client talks to the Anthropic Messages API. A client with an empty key is
// valid to construct; every call fails with domain.ErrAIKeyMissing so callers
// can degrade gracefully.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
	Error   *apiError      `json:"error"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Complete sends one user message under a system prompt and returns the text
// of the reply.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	if c.apiKey == "" {
		return "", domain.ErrAIKeyMissing
	}

	body, err := json.Marshal(messagesRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  []message{{Role: "user", Content: user}},
	})
	if err != nil {
		return "", fmt.Errorf("ai: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ai: failed to read response: %w", err)
	}

	var decoded messagesResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return "", fmt.Errorf("ai: failed to decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if decoded.Error != nil {
			return "", fmt.Errorf("ai: API error (%s): %s", decoded.Error.Type, decoded.Error.Message)
		}
		return "", fmt.Errorf("ai: API returned status %d", resp.StatusCode)
	}
	if len(decoded.Content) == 0 {
		return "", fmt.Errorf("ai: empty response")
	}

	return decoded.Content[0].Text, nil
}

// ParseNotes extracts structured insights from free-text session notes.
func (c *Client) ParseNotes(ctx context.Context, notes string) (*domain.AIParsed, error) {
	text, err := c.Complete(ctx, notesSystemPrompt, notes)
	if err != nil {
		return nil, err
	}

	var parsed domain.AIParsed
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &parsed); err != nil {
		return nil, fmt.Errorf("ai: failed to parse note insights: %w", err)
	}
	return &parsed, nil
}

// ParseMemo turns a voice memo transcript into a structured session prefill.
func (c *Client) ParseMemo(ctx context.Context, transcript string) (*domain.ParsedMemo, error) {
	text, err := c.Complete(ctx, memoSystemPrompt, transcript)
	if err != nil {
		return nil, err
	}

	var parsed domain.ParsedMemo
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &parsed); err != nil {
		return nil, fmt.Errorf("ai: failed to parse memo: %w", err)
	}
	return &parsed, nil
}

// stripCodeFences removes a markdown code block wrapper (```json ... ```)
// that models sometimes add despite instructions.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		if idx := strings.Index(text, "\n"); idx >= 0 {
			text = text[idx+1:]
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
