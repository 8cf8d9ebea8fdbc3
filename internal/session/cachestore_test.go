package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/featreq-go/internal/cache"
)

func newTestStore(t *testing.T) *CacheStore {
	t.Helper()
	c := cache.NewSimpleMemoryCache(time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	return NewCacheStore(c)
}

func TestCacheStoreCommitFind(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Commit("token", []byte("data"), time.Now().Add(time.Hour)))

	b, found, err := s.Find("token")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("data"), b)
}

func TestCacheStoreFindMissing(t *testing.T) {
	s := newTestStore(t)

	_, found, err := s.Find("absent")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheStoreExpiry(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Commit("token", []byte("data"), time.Now().Add(20*time.Millisecond)))
	time.Sleep(50 * time.Millisecond)

	_, found, err := s.Find("token")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheStoreCommitPastExpiry(t *testing.T) {
	s := newTestStore(t)

	// Committing an already-expired token must not resurrect it.
	require.NoError(t, s.Commit("token", []byte("data"), time.Now().Add(time.Hour)))
	require.NoError(t, s.Commit("token", []byte("data"), time.Now().Add(-time.Minute)))

	_, found, err := s.Find("token")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheStoreDelete(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Commit("token", []byte("data"), time.Now().Add(time.Hour)))
	require.NoError(t, s.Delete("token"))

	_, found, err := s.Find("token")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSessionManagerCookieFlags(t *testing.T) {
	c := cache.NewSimpleMemoryCache(time.Minute)
	t.Cleanup(func() { _ = c.Close() })

	dev := NewWithCache(c, true)
	assert.False(t, dev.Cookie.Secure)
	assert.True(t, dev.Cookie.HttpOnly)
	assert.Equal(t, Lifetime, dev.Lifetime)

	prod := NewWithCache(c, false)
	assert.True(t, prod.Cookie.Secure)
}
