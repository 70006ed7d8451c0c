// Package memstore is the in-process session and result store. It backs
// single-instance deployments and the test suites; entries expire after the
// configured TTL, mirroring browser-session scoping.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/jamiesoo123/ENG40011-EndoMML/domain/core"
	"github.com/jamiesoo123/ENG40011-EndoMML/domain/wizard"
	"github.com/jamiesoo123/ENG40011-EndoMML/ports"
)

type sessionEntry struct {
	state     wizard.State
	expiresAt time.Time
}

type resultEntry struct {
	result    ports.SurveyResult
	vector    wizard.Vector
	expiresAt time.Time
}

// Store holds wizard sessions and hand-off results in memory
type Store struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[core.SessionID]sessionEntry
	results  map[core.SessionID]resultEntry
}

// New creates a store with the given entry TTL
func New(ttl time.Duration) *Store {
	if ttl == 0 {
		ttl = time.Hour
	}
	return &Store{
		ttl:      ttl,
		sessions: make(map[core.SessionID]sessionEntry),
		results:  make(map[core.SessionID]resultEntry),
	}
}

// Save stores the wizard state for its session. The answer map is cloned so
// the stored entry never aliases a map a handler is still writing.
func (s *Store) Save(ctx context.Context, state wizard.State) error {
	state.Answers = state.Answers.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[state.SessionID] = sessionEntry{
		state:     state,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Get fetches the wizard state for a session. Each caller receives its own
// copy of the answer map; concurrent requests on one session must not share
// mutable state.
func (s *Store) Get(ctx context.Context, id core.SessionID) (*wizard.State, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, core.ErrSessionNotFound
	}
	state := entry.state
	state.Answers = state.Answers.Clone()
	return &state, nil
}

// Delete removes the wizard state for a session
func (s *Store) Delete(ctx context.Context, id core.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// SaveResult stores the merged result and the vector in one write
func (s *Store) SaveResult(ctx context.Context, id core.SessionID, result ports.SurveyResult, vector wizard.Vector) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[id] = resultEntry{
		result:    result,
		vector:    vector,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// GetResult fetches the persisted result for a session
func (s *Store) GetResult(ctx context.Context, id core.SessionID) (*ports.SurveyResult, error) {
	s.mu.RLock()
	entry, ok := s.results[id]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, core.ErrNoResult
	}
	result := entry.result
	return &result, nil
}

// GetVector fetches the persisted feature vector for a session
func (s *Store) GetVector(ctx context.Context, id core.SessionID) (wizard.Vector, error) {
	s.mu.RLock()
	entry, ok := s.results[id]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, core.ErrNoResult
	}
	return entry.vector, nil
}
