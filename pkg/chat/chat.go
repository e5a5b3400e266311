package chat

const (
	ChatRoleUser   = "user"      // Game master (observations, warnings)
	ChatRoleAgent  = "assistant" // Player model
	ChatRoleSystem = "system"    // Rules prompt
)

// ChatMessage is a single message in the conversation with the player
// model. The structure follows the message format shared by the Ollama
// and Anthropic chat APIs.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// ChatResponse is a chat completion returned by an LLM backend.
type ChatResponse struct {
	Message string `json:"message,omitempty"`
}
