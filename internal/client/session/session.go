// Package session holds the signed-in operator's credential and identity.
//
// Components receive a Context explicitly instead of reading ambient state,
// so tests can inject a fake.
package session

import (
	"sync"

	"github.com/dmitrijs2005/gzapadmin/internal/client/models"
	"github.com/dmitrijs2005/gzapadmin/internal/common"
)

// Context is the session capability handed to the gate, the REST client and
// the CLI.
type Context interface {
	Credential() (string, bool)
	SetCredential(token string)
	ClearCredential()
	Identity() (*models.Identity, bool)
	SetIdentity(id *models.Identity)
}

// Store is a process-scoped key/value slot set. The credential lives under
// common.CredentialKey and disappears with the process, like a tab session.
// Last write wins.
type Store struct {
	mu       sync.RWMutex
	slots    map[string]string
	identity *models.Identity
}

func NewStore() *Store {
	return &Store{slots: make(map[string]string)}
}

func (s *Store) Credential() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tkn, ok := s.slots[common.CredentialKey]
	return tkn, ok
}

func (s *Store) SetCredential(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[common.CredentialKey] = token
}

// ClearCredential removes the token and forgets the cached identity.
func (s *Store) ClearCredential() {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, common.CredentialKey)
	s.identity = nil
}

func (s *Store) Identity() (*models.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil, false
	}
	id := *s.identity
	return &id, true
}

// SetIdentity supersedes the previous identity. A nil id clears it.
func (s *Store) SetIdentity(id *models.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == nil {
		s.identity = nil
		return
	}
	cp := *id
	s.identity = &cp
}
