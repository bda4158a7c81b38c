// Package credentials persists the surveyor's username and password between runs.
package credentials

import (
	"context"
	"sync"
)

// Credentials is the username/password pair used for Basic auth and login.
type Credentials struct {
	Username string
	Password string
}

// Valid reports whether both parts are present.
func (c Credentials) Valid() bool {
	return c.Username != "" && c.Password != ""
}

// Store holds at most one credential pair.
type Store interface {
	// Get returns the stored pair and whether a valid one was present.
	Get(ctx context.Context) (Credentials, bool, error)
	// Set replaces the stored pair. Setting an invalid pair removes it.
	Set(ctx context.Context, c Credentials) error
	// Delete removes the stored pair; deleting nothing is not an error.
	Delete(ctx context.Context) error
}

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps credentials in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	creds Credentials
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get(_ context.Context) (Credentials, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creds, m.creds.Valid(), nil
}

func (m *MemoryStore) Set(_ context.Context, c Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !c.Valid() {
		m.creds = Credentials{}
		return nil
	}
	m.creds = c
	return nil
}

func (m *MemoryStore) Delete(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = Credentials{}
	return nil
}
