package services

import (
	"context"

	"github.com/paulutsch/clembench/pkg/chat"
)

// LLMService is the interface to a chat-completion backend used as the
// player model.
type LLMService interface {
	// InitModel prepares the model for use on startup
	InitModel(ctx context.Context, modelName string) error

	// GetChatResponse generates a chat response for the conversation
	GetChatResponse(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)

	// IsModelReady checks if the specified model is ready for use
	IsModelReady(ctx context.Context, modelName string) (bool, error)
}
