package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/paulutsch/clembench/internal/services"
	"github.com/paulutsch/clembench/pkg/chat"
	"github.com/paulutsch/clembench/pkg/episode"
)

// LLMAgent plays by sending observations to an LLM backend and parsing
// the DIRECTION line from its responses. It keeps the full
// conversation so the model sees its own earlier moves.
type LLMAgent struct {
	llm     services.LLMService
	history []chat.ChatMessage
	logger  *slog.Logger
}

var _ Agent = (*LLMAgent)(nil)

func NewLLMAgent(llm services.LLMService, logger *slog.Logger) *LLMAgent {
	return &LLMAgent{
		llm:     llm,
		history: make([]chat.ChatMessage, 0),
		logger:  logger,
	}
}

// NextMove sends the observation as a user message and parses the
// model's reply. The raw reply is always returned so the caller can
// record it, even when parsing fails.
func (a *LLMAgent) NextMove(ctx context.Context, obs Observation) (episode.Direction, string, error) {
	a.history = append(a.history, chat.ChatMessage{
		Role:    chat.ChatRoleUser,
		Content: obs.Content,
	})

	resp, err := a.llm.GetChatResponse(ctx, a.history)
	if err != nil {
		return "", "", fmt.Errorf("llm request failed: %w", err)
	}

	a.history = append(a.history, chat.ChatMessage{
		Role:    chat.ChatRoleAgent,
		Content: resp.Message,
	})

	dir, err := ParseDirection(resp.Message)
	if err != nil {
		a.logger.Warn("Agent response violated the direction protocol",
			"response", resp.Message, "error", err)
		return "", resp.Message, err
	}

	return dir, resp.Message, nil
}

// History returns the conversation so far.
func (a *LLMAgent) History() []chat.ChatMessage {
	return a.history
}
