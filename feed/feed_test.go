package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/junaidrashid-git/kataplum-api/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCache struct {
	mu      sync.Mutex
	entries map[string]cache.Entry
	stale   bool
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]cache.Entry)}
}

func (m *memCache) Get(_ context.Context, key string, _ time.Duration) (cache.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return cache.Entry{}, cache.ErrMiss
	}
	e.Fresh = !m.stale
	return e, nil
}

func (m *memCache) Put(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = cache.Entry{Payload: payload, StoredAt: time.Now()}
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func feedServer(t *testing.T, status *int32, payload string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if code := atomic.LoadInt32(status); code != http.StatusOK {
			w.WriteHeader(int(code))
			return
		}
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestPosts_NoEndpointServesMocks(t *testing.T) {
	s := New("", time.Minute, time.Second, nil)
	r := s.Posts(context.Background())

	assert.Equal(t, SourceMock, r.Source)
	assert.False(t, r.Offline)
	assert.Len(t, r.Posts, 6)
}

func TestPosts_LiveThenCached(t *testing.T) {
	status := int32(http.StatusOK)
	srv, hits := feedServer(t, &status, `{"data":[{"id":17841,"media_url":"a.jpg","caption":"Festa","permalink":"https://instagram.com/p/1"}]}`)
	c := newMemCache()
	s := New(srv.URL, 30*time.Minute, time.Second, c)
	ctx := context.Background()

	r := s.Posts(ctx)
	assert.Equal(t, SourceLive, r.Source)
	require.Len(t, r.Posts, 1)
	assert.Equal(t, Post{ID: "17841", Image: "a.jpg", Caption: "Festa", Link: "https://instagram.com/p/1"}, r.Posts[0])

	r = s.Posts(ctx)
	assert.Equal(t, SourceCache, r.Source)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))

	r = s.Refresh(ctx)
	assert.Equal(t, SourceLive, r.Source)
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
}

func TestPosts_FailureFallsBackToStaleThenMocks(t *testing.T) {
	status := int32(http.StatusBadGateway)
	srv, _ := feedServer(t, &status, `[]`)
	c := newMemCache()
	s := New(srv.URL, time.Minute, time.Second, c)
	ctx := context.Background()

	r := s.Posts(ctx)
	assert.Equal(t, SourceMock, r.Source)
	assert.True(t, r.Offline)
	assert.Len(t, r.Posts, 6)

	cached, err := json.Marshal([]Post{{ID: "old", Image: "old.jpg", Link: "#"}})
	require.NoError(t, err)
	require.NoError(t, c.Put(ctx, CacheKey, cached))
	c.stale = true

	r = s.Posts(ctx)
	assert.Equal(t, SourceStale, r.Source)
	assert.True(t, r.Offline)
	require.Len(t, r.Posts, 1)
	assert.Equal(t, "old", r.Posts[0].ID)
}

func TestDecodePosts(t *testing.T) {
	posts, err := decodePosts([]byte(` [{"id":"a","image":"i.jpg","caption":"c","link":"l"},{"id":2}]`))
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "i.jpg", posts[0].Image)
	assert.Equal(t, "l", posts[0].Link)
	assert.Equal(t, "2", posts[1].ID)
	assert.Equal(t, "#", posts[1].Link)

	_, err = decodePosts([]byte(`nope`))
	assert.Error(t, err)
}
