// Package chat binds an inbound user message to a conversation, invokes
// the generation backend, and records both sides of the exchange.
package chat

import (
	"context"
	"log"
	"strings"

	"github.com/harish336/Mindboloom/models"
	"github.com/harish336/Mindboloom/pkg/services"
	"github.com/harish336/Mindboloom/pkg/store"
)

// FallbackText replaces the bot reply when the generation backend fails.
// A turn never fails because the backend is down; the conversational
// record is kept whole with this text instead.
const FallbackText = "Sorry, I'm having trouble connecting to the AI service. Please try again later."

type Orchestrator struct {
	store     *store.Store
	generator services.Generator
}

func New(st *store.Store, gen services.Generator) *Orchestrator {
	return &Orchestrator{store: st, generator: gen}
}

type TurnRequest struct {
	UserID         uint
	Message        string
	ConversationID *uint
}

type TurnResult struct {
	ConversationID uint
	Response       string
}

// Turn runs one full exchange: resolve or create the conversation, record
// the user message, generate (or fall back), record the bot message.
//
// Hard failures are store.ErrEmptyMessage and store.ErrConversationNotFound,
// both raised before any message is written. The user message is committed
// before the backend is called, so a backend failure never loses input.
func (o *Orchestrator) Turn(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, store.ErrEmptyMessage
	}

	var (
		conv *models.Conversation
		err  error
	)
	if req.ConversationID != nil {
		conv, err = o.store.GetConversation(*req.ConversationID, req.UserID)
	} else {
		conv, err = o.store.CreateConversation(req.UserID, text)
	}
	if err != nil {
		return nil, err
	}

	if _, err := o.store.AppendMessage(conv.ID, text, models.SenderUser); err != nil {
		return nil, err
	}

	// Prior turns come back from the store in chronological order; the
	// current message is appended last.
	history := make([]services.ChatMessage, 0, len(conv.Messages)+1)
	for _, m := range conv.Messages {
		role := "user"
		if strings.EqualFold(m.Sender, models.SenderBot) {
			role = "model"
		}
		history = append(history, services.ChatMessage{Role: role, Text: m.Content})
	}
	history = append(history, services.ChatMessage{Role: "user", Text: text})

	reply, err := o.generator.Generate(ctx, history)
	if err != nil {
		// Soft failure: substitute the fallback and complete the turn.
		log.Printf("[chat] generation failed, using fallback: %v", err)
		reply = FallbackText
	}
	if strings.TrimSpace(reply) == "" {
		reply = FallbackText
	}

	if _, err := o.store.AppendMessage(conv.ID, reply, models.SenderBot); err != nil {
		return nil, err
	}

	return &TurnResult{ConversationID: conv.ID, Response: reply}, nil
}
