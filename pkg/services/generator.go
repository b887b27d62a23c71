// Package services adapts the external text-generation backend. The
// Generator variant is selected once at process start: with a credential
// present calls go to the Gemini REST API, without one every call returns
// a fixed message and never touches the network.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ChatMessage is one turn of conversational context passed to the backend.
// Role is "user" or "model".
type ChatMessage struct {
	Role string
	Text string
}

// Generator produces the assistant's reply for a chat history. Any
// backend problem surfaces as *GenerationError; implementations never
// panic across this boundary.
type Generator interface {
	Generate(ctx context.Context, chat []ChatMessage) (string, error)
}

// UnavailableText is the fixed reply served when no backend credential is
// configured.
const UnavailableText = "Sorry, AI service not available now."

// GenerationError is any transport error, timeout, non-2xx status, or
// malformed response from the generation backend.
type GenerationError struct {
	Model  string
	Status int // HTTP status; 0 for transport-level failures
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("gemini: model %s returned status %d: %v", e.Model, e.Status, e.Err)
	}
	return fmt.Sprintf("gemini: model %s: %v", e.Model, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// NewGenerator picks the Generator variant for the lifetime of the
// process based on credential presence.
func NewGenerator(apiKey, model, systemInstruction string, timeout time.Duration) Generator {
	if strings.TrimSpace(apiKey) == "" {
		return UnconfiguredService{}
	}
	return NewGeminiService(apiKey, model, systemInstruction, timeout)
}

// UnconfiguredService is the credential-less variant. Generate always
// succeeds with UnavailableText.
type UnconfiguredService struct{}

func (UnconfiguredService) Generate(ctx context.Context, chat []ChatMessage) (string, error) {
	return UnavailableText, nil
}
