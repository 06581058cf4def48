package gemini

import (
	"context"
	"sync"
)

// MockClient for testing
type MockClient struct {
	Response *ResponseData
	Error    error

	mu                    sync.Mutex
	Requests              []RequestData
	LastSystemInstruction string
}

func (m *MockClient) Generate(ctx context.Context, request RequestData) (*ResponseData, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, request)
	m.mu.Unlock()
	return m.Response, m.Error
}

func (m *MockClient) SetSystemInstruction(prompt string) {
	m.LastSystemInstruction = prompt
}

// Calls returns how many Generate calls were made.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}
