// Package chat holds the conversation state shown by the chat view: the
// ordered transcript and whether a reply is still outstanding.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	apierrors "github.com/diogo/chatboot/internal/errors"
	"github.com/diogo/chatboot/internal/models"
)

// ErrSessionClosed is returned by Complete once the session has been closed
var ErrSessionClosed = errors.New("chat session closed")

// Completer sends one user prompt to the model
type Completer interface {
	Chat(ctx context.Context, prompt string) (*models.ChatResult, error)
}

// Session owns the transcript and the pending state.
// It is safe for concurrent use.
type Session struct {
	client Completer
	logger *zap.Logger

	mu         sync.RWMutex
	transcript []models.Message
	inFlight   int
	closed     bool
	lastErr    error
}

// Option configures a Session
type Option func(*Session)

// WithLogger sets the logger used to record failed requests
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession creates an empty session that sends prompts through client
func NewSession(client Completer, opts ...Option) *Session {
	s := &Session{
		client: client,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Begin records a user message and marks a reply as pending. Blank input
// is ignored and reported with ok=false.
func (s *Session) Begin(text string) (msg models.Message, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Message{}, false
	}

	msg = models.NewMessage(models.RoleUser, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.Message{}, false
	}
	s.transcript = append(s.transcript, msg)
	s.inFlight++
	return msg, true
}

// Complete requests the reply for a message returned by Begin. A reply is
// appended on success. Failures are logged, leave the transcript untouched,
// and are returned so the caller can decide whether to show them.
func (s *Session) Complete(ctx context.Context, user models.Message) (*models.Message, error) {
	defer s.resolve()

	result, err := s.client.Chat(ctx, user.Content)
	if err != nil {
		s.fail(user, err)
		return nil, err
	}

	reply := result.Message()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		s.logger.Debug("dropping reply for closed session", zap.String("message_id", user.ID))
		return nil, ErrSessionClosed
	}
	s.transcript = append(s.transcript, reply)
	s.lastErr = nil
	return &reply, nil
}

// Submit is Begin followed by Complete. Blank input returns (nil, nil).
func (s *Session) Submit(ctx context.Context, text string) (*models.Message, error) {
	user, ok := s.Begin(text)
	if !ok {
		return nil, nil
	}
	return s.Complete(ctx, user)
}

func (s *Session) resolve() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight > 0 {
		s.inFlight--
	}
}

func (s *Session) fail(user models.Message, err error) {
	fields := []zap.Field{
		zap.String("message_id", user.ID),
		zap.Error(err),
	}
	if status := apierrors.GetHTTPStatus(err); status != 0 {
		fields = append(fields, zap.Int("status", status))
	}
	if endpoint := apierrors.GetEndpoint(err); endpoint != "" {
		fields = append(fields, zap.String("endpoint", endpoint))
	}

	if errors.Is(err, context.Canceled) {
		s.logger.Debug("chat request canceled", fields...)
	} else {
		s.logger.Error("chat request failed", fields...)
	}

	s.mu.Lock()
	s.lastErr = fmt.Errorf("reply to %s: %w", user.ID, err)
	s.mu.Unlock()
}

// Transcript returns a copy of the messages in display order
func (s *Session) Transcript() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Pending reports whether any reply is still outstanding
func (s *Session) Pending() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight > 0
}

// Len returns the number of messages in the transcript
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.transcript)
}

// LastReply returns the most recent assistant message
func (s *Session) LastReply() (models.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.transcript) - 1; i >= 0; i-- {
		if s.transcript[i].IsAssistant() {
			return s.transcript[i], true
		}
	}
	return models.Message{}, false
}

// LastError returns the most recent failure, cleared by the next success
func (s *Session) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Close stops the session from accepting input or replies
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
