package api

import (
	"context"
	"sync"

	"github.com/diogo/chatboot/internal/models"
)

// MockClient is a mock implementation of ChatClientInterface for testing
type MockClient struct {
	// Mock return values
	Result   *models.ChatResult
	Err      error
	Model    string
	URL      string
	ChatFunc func(ctx context.Context, prompt string) (*models.ChatResult, error)

	mu          sync.Mutex
	calls       int
	lastPrompt  string
	closeCalled bool
}

// Ensure MockClient implements ChatClientInterface
var _ ChatClientInterface = (*MockClient)(nil)

// NewMockClient returns a mock that answers every prompt with reply
func NewMockClient(reply string) *MockClient {
	return &MockClient{
		Result: &models.ChatResult{Content: reply, Model: models.DefaultModel, Done: true},
		Model:  models.DefaultModel,
		URL:    "http://localhost:11434/api/chat",
	}
}

func (m *MockClient) Chat(ctx context.Context, prompt string) (*models.ChatResult, error) {
	m.mu.Lock()
	m.calls++
	m.lastPrompt = prompt
	fn := m.ChatFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, prompt)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result == nil {
		return &models.ChatResult{}, nil
	}
	result := *m.Result
	return &result, nil
}

func (m *MockClient) GetModel() string {
	return m.Model
}

func (m *MockClient) Endpoint() string {
	return m.URL
}

func (m *MockClient) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeCalled = true
}

// Calls returns how many times Chat was invoked
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastPrompt returns the prompt of the most recent Chat call
func (m *MockClient) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastPrompt
}

// CloseCalled reports whether Close was invoked
func (m *MockClient) CloseCalled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCalled
}
