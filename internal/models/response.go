package models

import "time"

// ChatMessage is a message as it appears on the wire
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the JSON body posted to the inference endpoint
type ChatRequest struct {
	Model    string          `json:"model"`
	Messages []ChatMessage   `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  SamplingOptions `json:"options"`
}

// NewChatRequest builds a single-turn request: the system prompt followed by
// the user's text. Previous turns are never sent.
func NewChatRequest(model, systemPrompt, userText string, opts SamplingOptions) ChatRequest {
	return ChatRequest{
		Model: model,
		Messages: []ChatMessage{
			{Role: RoleSystem, Content: systemPrompt},
			{Role: RoleUser, Content: userText},
		},
		Stream:  false,
		Options: opts,
	}
}

// ChatResult is the parsed reply from the inference endpoint
type ChatResult struct {
	Content string
	Model   string
	Done    bool

	// Timing counters reported by Ollama-compatible servers, zero when absent
	TotalDuration time.Duration
	EvalCount     int64
}

// Message converts the result into a new assistant transcript entry
func (r *ChatResult) Message() Message {
	return NewMessage(RoleAssistant, r.Content)
}
