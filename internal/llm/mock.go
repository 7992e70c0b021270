package llm

import (
	"context"
	"sync"
)

// MockCompleter is a fixed-response Completer for tests.
type MockCompleter struct {
	Response *Response
	Error    error
	Model    string

	mu       sync.Mutex
	requests []Request
}

func (m *MockCompleter) Complete(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	return m.Response, m.Error
}

func (m *MockCompleter) ModelID() string {
	if m.Model == "" {
		return "mock-model"
	}
	return m.Model
}

// Requests returns a copy of every request seen so far.
func (m *MockCompleter) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}
