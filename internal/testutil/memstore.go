package testutil

import (
	"sync"

	"golang.org/x/oauth2"

	"taskhub/internal/service"
)

// MemStore is an in-memory session.Store for tests.
type MemStore struct {
	mu   sync.Mutex
	tok  *oauth2.Token
	user *service.User

	// ClearCalls counts Clear invocations.
	ClearCalls int
}

// NewMemStore creates a MemStore, optionally pre-loaded with a token.
func NewMemStore(tok *oauth2.Token) *MemStore {
	return &MemStore{tok: tok}
}

// Token implements session.Store.
func (m *MemStore) Token() (*oauth2.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tok == nil {
		return nil, nil
	}
	cp := *m.tok
	return &cp, nil
}

// SetToken implements session.Store.
func (m *MemStore) SetToken(tok *oauth2.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tok = tok
	return nil
}

// SetAccessToken implements session.Store.
func (m *MemStore) SetAccessToken(access string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tok == nil {
		m.tok = &oauth2.Token{}
	}
	m.tok.AccessToken = access
	return nil
}

// User implements session.Store.
func (m *MemStore) User() (*service.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user, nil
}

// SetUser implements session.Store.
func (m *MemStore) SetUser(u *service.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = u
	return nil
}

// Clear implements session.Store.
func (m *MemStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tok = nil
	m.user = nil
	m.ClearCalls++
	return nil
}
