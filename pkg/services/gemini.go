package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiService is the configured Generator variant: a thin client for
// the Gemini generateContent REST endpoint.
type GeminiService struct {
	apiKey            string
	model             string
	systemInstruction string
	baseURL           string
	client            *http.Client
}

func NewGeminiService(apiKey, model, systemInstruction string, timeout time.Duration) *GeminiService {
	return &GeminiService{
		apiKey:            apiKey,
		model:             model,
		systemInstruction: systemInstruction,
		baseURL:           defaultBaseURL,
		client:            &http.Client{Timeout: timeout},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  map[string]interface{} `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Generate sends the chat history with the fixed system instruction and
// returns the first candidate's text. A single call, no retries: the
// caller substitutes fallback text on failure.
func (s *GeminiService) Generate(ctx context.Context, chat []ChatMessage) (string, error) {
	contents := make([]geminiContent, 0, len(chat))
	for _, m := range chat {
		role := strings.ToLower(strings.TrimSpace(m.Role))
		if role != "user" && role != "model" {
			role = "user"
		}
		contents = append(contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: m.Text}},
		})
	}

	reqBody := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: s.systemInstruction}},
		},
		Contents: contents,
		GenerationConfig: map[string]interface{}{
			"temperature":     0.6,
			"maxOutputTokens": 1024,
			"topK":            40,
			"topP":            0.9,
		},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", &GenerationError{Model: s.model, Err: fmt.Errorf("encode request: %w", err)}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", &GenerationError{Model: s.model, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[gemini] model %s request failed: %v", s.model, err)
		return "", &GenerationError{Model: s.model, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &GenerationError{Model: s.model, Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[gemini] model %s returned status %d", s.model, resp.StatusCode)
		return "", &GenerationError{
			Model:  s.model,
			Status: resp.StatusCode,
			Err:    errors.New(strings.TrimSpace(string(raw))),
		}
	}

	var out geminiResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", &GenerationError{Model: s.model, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	var b strings.Builder
	if len(out.Candidates) > 0 {
		for _, p := range out.Candidates[0].Content.Parts {
			b.WriteString(p.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", &GenerationError{Model: s.model, Status: resp.StatusCode, Err: errors.New("empty response")}
	}
	return text, nil
}
