package session

import (
	"errors"
	"sync"
	"time"

	"github.com/ChapterSevenSeeds/triangles/internal/models"
	"github.com/google/uuid"
)

// MaxSessions is the default cap on concurrently open live sessions.
const MaxSessions = 256

// SessionMaxAge is how long an idle session is kept before cleanup.
const SessionMaxAge = 30 * time.Minute

var (
	ErrSessionNotFound = errors.New("session: not found")
	ErrTooManySessions = errors.New("session: too many open sessions")
)

// Manager tracks live sessions and the newest request sequence each one has
// seen, so superseded results can be dropped instead of sent.
type Manager struct {
	sessions    map[string]*models.LiveSession
	mu          sync.RWMutex
	maxSessions int
}

// NewManager creates a manager with the default session cap.
func NewManager() *Manager {
	return NewManagerWithLimit(MaxSessions)
}

// NewManagerWithLimit creates a manager that refuses to open more than
// maxSessions sessions at once.
func NewManagerWithLimit(maxSessions int) *Manager {
	if maxSessions <= 0 {
		maxSessions = MaxSessions
	}
	return &Manager{
		sessions:    make(map[string]*models.LiveSession),
		maxSessions: maxSessions,
	}
}

// Open starts a new session.
func (m *Manager) Open() (*models.LiveSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) >= m.maxSessions {
		m.evictOldestLocked()
		if len(m.sessions) >= m.maxSessions {
			return nil, ErrTooManySessions
		}
	}

	sess := models.NewLiveSession(uuid.New().String())
	m.sessions[sess.ID] = sess
	snapshot := *sess
	return &snapshot, nil
}

// evictOldestLocked drops the least recently used closed session, if any.
func (m *Manager) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, s := range m.sessions {
		if s.Status != models.LiveSessionClosed {
			continue
		}
		if oldestID == "" || s.LastAccessed.Before(oldest) {
			oldestID, oldest = id, s.LastAccessed
		}
	}
	if oldestID != "" {
		delete(m.sessions, oldestID)
	}
}

// GetSession returns a copy of the session state.
func (m *Manager) GetSession(id string) (*models.LiveSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	snapshot := *s
	return &snapshot, true
}

// Submit records seq as the newest request of session id. It returns false
// when seq is not newer than one already seen; the request is then counted
// as superseded and must be dropped.
func (m *Manager) Submit(id string, seq int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return false, ErrSessionNotFound
	}
	s.LastAccessed = time.Now()
	if seq <= s.LatestSeq {
		s.Superseded++
		return false, nil
	}
	if s.LatestSeq > s.LastComputedSeq {
		// The previous request never made it to a result.
		s.Superseded++
	}
	s.LatestSeq = seq
	return true, nil
}

// IsLatest reports whether seq is still the newest request of session id.
func (m *Manager) IsLatest(id string, seq int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	return ok && s.LatestSeq == seq
}

// Complete records that the result for seq was delivered.
func (m *Manager) Complete(id string, seq int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		s.LastComputedSeq = seq
		s.Computations++
		s.LastAccessed = time.Now()
	}
}

// TouchSession refreshes the keep-alive timestamp.
func (m *Manager) TouchSession(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if ok {
		s.LastAccessed = time.Now()
	}
	return ok
}

// Close marks the session closed. It stays readable until cleanup.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		s.Status = models.LiveSessionClosed
		s.LastAccessed = time.Now()
	}
}

// CleanupOldSessions removes sessions idle for longer than maxAge and returns
// how many were removed.
func (m *Manager) CleanupOldSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, s := range m.sessions {
		if s.LastAccessed.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Count returns the number of tracked sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
