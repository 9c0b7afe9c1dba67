package models

import "github.com/google/uuid"

// Role identifies the author of a message
type Role string

// Message roles
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single entry in the chat transcript.
// Messages are values: once created they are never modified.
type Message struct {
	ID      string
	Role    Role
	Content string
}

// NewMessage creates a message with a fresh random identifier
func NewMessage(role Role, content string) Message {
	return Message{
		ID:      uuid.NewString(),
		Role:    role,
		Content: content,
	}
}

// IsUser reports whether the message was written by the user
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

// IsAssistant reports whether the message is a model reply
func (m Message) IsAssistant() bool {
	return m.Role == RoleAssistant
}
