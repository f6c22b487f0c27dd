package session

import (
	"testing"
	"time"

	"github.com/ChapterSevenSeeds/triangles/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManager(t *testing.T) {
	m := NewManager()

	sess, err := m.Open()
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, models.LiveSessionOpen, sess.Status)

	ok, err := m.Submit(sess.ID, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, m.IsLatest(sess.ID, 1))

	// A newer request supersedes the first before it was answered.
	ok, err = m.Submit(sess.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, m.IsLatest(sess.ID, 1))
	assert.True(t, m.IsLatest(sess.ID, 2))

	m.Complete(sess.ID, 2)

	got, ok := m.GetSession(sess.ID)
	require.True(t, ok)
	assert.Equal(t, int64(2), got.LatestSeq)
	assert.Equal(t, int64(2), got.LastComputedSeq)
	assert.Equal(t, 1, got.Computations)
	assert.Equal(t, 1, got.Superseded)
}

func TestSessionManager_StaleSequenceIsDropped(t *testing.T) {
	m := NewManager()
	sess, err := m.Open()
	require.NoError(t, err)

	ok, err := m.Submit(sess.ID, 5)
	require.NoError(t, err)
	require.True(t, ok)

	for _, seq := range []int64{5, 4, 1} {
		ok, err = m.Submit(sess.ID, seq)
		require.NoError(t, err)
		assert.False(t, ok, "seq %d must be rejected", seq)
	}

	got, _ := m.GetSession(sess.ID)
	assert.Equal(t, int64(5), got.LatestSeq)
	assert.Equal(t, 3, got.Superseded)
}

func TestSessionManager_UnknownSession(t *testing.T) {
	m := NewManager()

	_, err := m.Submit("nope", 1)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.False(t, m.IsLatest("nope", 1))
	assert.False(t, m.TouchSession("nope"))

	_, ok := m.GetSession("nope")
	assert.False(t, ok)
}

func TestSessionManager_Limit(t *testing.T) {
	m := NewManagerWithLimit(2)

	first, err := m.Open()
	require.NoError(t, err)
	_, err = m.Open()
	require.NoError(t, err)

	_, err = m.Open()
	assert.ErrorIs(t, err, ErrTooManySessions)

	// Closed sessions make room.
	m.Close(first.ID)
	_, err = m.Open()
	require.NoError(t, err)
	assert.Equal(t, 2, m.Count())

	_, ok := m.GetSession(first.ID)
	assert.False(t, ok, "closed session should have been evicted")
}

func TestSessionManager_CleanupOldSessions(t *testing.T) {
	m := NewManager()
	sess, err := m.Open()
	require.NoError(t, err)

	assert.Equal(t, 0, m.CleanupOldSessions(time.Hour))
	assert.Equal(t, 1, m.Count())

	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 1, m.CleanupOldSessions(time.Millisecond))
	_, ok := m.GetSession(sess.ID)
	assert.False(t, ok)
}

func TestSessionManager_GetSessionReturnsCopy(t *testing.T) {
	m := NewManager()
	sess, err := m.Open()
	require.NoError(t, err)

	got, _ := m.GetSession(sess.ID)
	got.LatestSeq = 99

	again, _ := m.GetSession(sess.ID)
	assert.Equal(t, int64(0), again.LatestSeq)
}
