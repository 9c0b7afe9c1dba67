package api

import (
	"context"

	"github.com/diogo/chatboot/internal/models"
)

// ChatClientInterface is the surface of the inference client used by the
// chat session, the TUI and the commands.
type ChatClientInterface interface {
	Chat(ctx context.Context, prompt string) (*models.ChatResult, error)
	GetModel() string
	Endpoint() string
	Close()
}

var _ ChatClientInterface = (*Client)(nil)
