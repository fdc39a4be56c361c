package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestCacheServesRepeatedGets(t *testing.T) {
	PurgeCache()
	gin.SetMode(gin.TestMode)

	var hits int64
	r := gin.New()
	r.GET("/cached", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		n := atomic.AddInt64(&hits, 1)
		c.String(http.StatusOK, strconv.FormatInt(n, 10))
	})

	get := func() string {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cached", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("unexpected status %d", w.Code)
		}
		return w.Body.String()
	}

	first := get()
	second := get()
	if first != second {
		t.Fatalf("second request missed the cache: %q vs %q", first, second)
	}
	if atomic.LoadInt64(&hits) != 1 {
		t.Fatalf("handler ran %d times, expected 1", hits)
	}

	PurgeCache()
	third := get()
	if third == first {
		t.Fatal("purge did not invalidate the cached response")
	}
}

func TestCacheKeyedByQuery(t *testing.T) {
	PurgeCache()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/echo", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		c.String(http.StatusOK, c.Query("page"))
	})

	get := func(url string) string {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
		return w.Body.String()
	}

	if get("/echo?page=1") == get("/echo?page=2") {
		t.Fatal("different query strings shared one cache entry")
	}
}

func TestCacheSkipsMutatingMethods(t *testing.T) {
	PurgeCache()
	gin.SetMode(gin.TestMode)

	var hits int64
	r := gin.New()
	r.POST("/mutate", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		atomic.AddInt64(&hits, 1)
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/mutate", nil))
	}
	if atomic.LoadInt64(&hits) != 2 {
		t.Fatalf("POST requests were cached: handler ran %d times", hits)
	}
}

func TestCacheIgnoresErrorResponses(t *testing.T) {
	PurgeCache()
	gin.SetMode(gin.TestMode)

	var hits int64
	r := gin.New()
	r.GET("/failing", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		atomic.AddInt64(&hits, 1)
		c.Status(http.StatusInternalServerError)
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/failing", nil))
	}
	if atomic.LoadInt64(&hits) != 2 {
		t.Fatalf("error response was cached: handler ran %d times", hits)
	}
}

// fakeStore is a map-backed CacheStore standing in for the redis backend
type fakeStore struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: make(map[string][]byte)}
}

func (s *fakeStore) Set(key string, value interface{}, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = append([]byte(nil), value.([]byte)...)
	return nil
}

func (s *fakeStore) Get(key string, dest interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.items[key]
	if !ok {
		return errKeyMissing
	}
	*dest.(*[]byte) = append([]byte(nil), content...)
	return nil
}

func (s *fakeStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

func (s *fakeStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

var errKeyMissing = errors.New("key not found")

func TestCacheWritesThroughRemoteStore(t *testing.T) {
	PurgeCache()
	store := newFakeStore()
	UseCacheStore(store)
	t.Cleanup(func() { UseCacheStore(nil) })
	gin.SetMode(gin.TestMode)

	var hits int64
	r := gin.New()
	r.GET("/backed", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		atomic.AddInt64(&hits, 1)
		c.String(http.StatusOK, "payload")
	})

	get := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/backed", nil))
		return w
	}

	get()
	if store.len() != 1 {
		t.Fatalf("response not written through to the store: %d entries", store.len())
	}

	// Drop only the local map: the next request must be served from the
	// store without running the handler, as another instance would see it.
	cache.Lock()
	cache.items = make(map[string]cacheEntry)
	cache.Unlock()

	w := get()
	if w.Body.String() != "payload" {
		t.Fatalf("unexpected body from store-backed hit: %q", w.Body.String())
	}
	if atomic.LoadInt64(&hits) != 1 {
		t.Fatalf("handler ran %d times, expected the store to serve the second request", hits)
	}

	PurgeCache()
	if store.len() != 0 {
		t.Fatalf("purge left %d entries in the store", store.len())
	}
	get()
	if atomic.LoadInt64(&hits) != 2 {
		t.Fatalf("handler ran %d times after purge, expected 2", hits)
	}
}

func TestCleanExpiredCache(t *testing.T) {
	PurgeCache()

	cache.Lock()
	cache.items["fresh"] = cacheEntry{Expiration: time.Now().Add(time.Minute)}
	cache.items["stale"] = cacheEntry{Expiration: time.Now().Add(-time.Minute)}
	cache.Unlock()

	cleanExpiredCache()

	cache.RLock()
	_, fresh := cache.items["fresh"]
	_, stale := cache.items["stale"]
	cache.RUnlock()

	if !fresh || stale {
		t.Fatalf("expected only the fresh entry to survive: fresh=%v stale=%v", fresh, stale)
	}
}
