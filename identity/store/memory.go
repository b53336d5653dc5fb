package store

import (
	"context"
	"sync"

	"github.com/ncobase/blogclient/structs"
)

// Memory keeps tokens for the life of the process.
type Memory struct {
	mu     sync.RWMutex
	tokens *structs.Tokens
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Load(context.Context) (*structs.Tokens, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.tokens == nil {
		return nil, nil
	}
	t := *m.tokens
	return &t, nil
}

func (m *Memory) Save(_ context.Context, tokens *structs.Tokens) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tokens == nil {
		m.tokens = nil
		return nil
	}
	t := *tokens
	m.tokens = &t
	return nil
}

func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	m.tokens = nil
	m.mu.Unlock()
	return nil
}
