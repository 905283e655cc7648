package navigation

import (
	"errors"
	"sync"
)

// ErrNoWarehouseSelected indicates a user action that requires a
// warehouse before one was picked for the session. Recoverable: the
// caller re-prompts warehouse selection.
var ErrNoWarehouseSelected = errors.New("no warehouse selected for session")

// SessionStore keeps the per-user selected warehouse. It is the only
// state shared between independent token decodes; everything else lives
// inside the tokens themselves. Safe for concurrent use across users.
type SessionStore struct {
	mu        sync.RWMutex
	warehouse map[int64]int
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{warehouse: make(map[int64]int)}
}

// Warehouse returns the warehouse selected by the user, or
// ErrNoWarehouseSelected when the session has none.
func (s *SessionStore) Warehouse(userID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id, ok := s.warehouse[userID]; ok {
		return id, nil
	}
	return 0, ErrNoWarehouseSelected
}

// SetWarehouse records the user's warehouse choice, replacing any
// previous one. Downstream filters live in tokens, so they reset
// naturally with the next menu render.
func (s *SessionStore) SetWarehouse(userID int64, warehouseID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warehouse[userID] = warehouseID
}

// Clear removes the user's session.
func (s *SessionStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.warehouse, userID)
}
