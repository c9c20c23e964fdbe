package llm

import (
	"context"
	"fmt"
	"sync"
)

// MockGateway is a scriptable Gateway for development and tests. Queued
// replies are returned in order; once the script runs out it echoes the
// query.
type MockGateway struct {
	mu      sync.Mutex
	replies []string
	err     error
}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

// Script queues replies to return from subsequent Generate calls.
func (m *MockGateway) Script(replies ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, replies...)
}

// Fail makes every Generate call return the given error as a GatewayError.
func (m *MockGateway) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockGateway) Generate(ctx context.Context, req Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return "", &GatewayError{Err: m.err}
	}
	if len(m.replies) > 0 {
		reply := m.replies[0]
		m.replies = m.replies[1:]
		return reply, nil
	}
	return fmt.Sprintf("I heard you say %q. How can I help with your EV rental?", req.Query), nil
}
