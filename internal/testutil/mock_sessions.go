// mock_sessions.go - In-memory fakes for handler tests
package testutil

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ChapterSevenSeeds/triangles/internal/models"
)

// ErrSessionNotFound is returned by MockSessionManager for unknown ids.
var ErrSessionNotFound = errors.New("mock session not found")

// MockSessionManager implements api.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*models.LiveSession
	next     int
	// OpenErr, when set, is returned by Open.
	OpenErr error
	mu      sync.Mutex
}

// NewMockSessionManager creates an empty mock session manager
func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*models.LiveSession),
	}
}

func (m *MockSessionManager) Open() (*models.LiveSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	m.next++
	sess := models.NewLiveSession(fmt.Sprintf("test-session-%d", m.next))
	m.sessions[sess.ID] = sess
	snapshot := *sess
	return &snapshot, nil
}

func (m *MockSessionManager) GetSession(id string) (*models.LiveSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	snapshot := *s
	return &snapshot, true
}

func (m *MockSessionManager) Submit(id string, seq int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return false, ErrSessionNotFound
	}
	if seq <= s.LatestSeq {
		s.Superseded++
		return false, nil
	}
	s.LatestSeq = seq
	return true, nil
}

func (m *MockSessionManager) IsLatest(id string, seq int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	return ok && s.LatestSeq == seq
}

func (m *MockSessionManager) Complete(id string, seq int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		s.LastComputedSeq = seq
		s.Computations++
	}
}

func (m *MockSessionManager) TouchSession(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.sessions[id]
	return ok
}

func (m *MockSessionManager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		s.Status = models.LiveSessionClosed
	}
}

// AddSession registers a session directly, bypassing Open
func (m *MockSessionManager) AddSession(sess *models.LiveSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
}

// SessionIDs returns the ids of all known sessions
func (m *MockSessionManager) SessionIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}
